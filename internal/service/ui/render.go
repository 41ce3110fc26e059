package ui

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/pkg/conv"
)

const (
	wordWrap      = 80
	excerptLength = 160
)

var (
	rendererOnce sync.Once
	renderer     *glamour.TermRenderer
)

// Markdown renders md for the terminal, returning md unchanged when glamour
// cannot be set up.
func Markdown(md string) string {
	rendererOnce.Do(func() {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrap),
		)
		if err == nil {
			renderer = r
		}
	})

	if renderer == nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

// Sources lists citations below an answer.
func Sources(sources []core.Source) string {
	if len(sources) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(DescStyle.Render("Sources") + "\n")
	for i, s := range sources {
		title := s.ActTitle
		if s.SectionNumber != "" {
			title += ", s " + s.SectionNumber
		}
		b.WriteString(fmt.Sprintf("  %d. %s", i+1, SourceStyle.Render(title)))
		if s.SectionHeading != "" {
			b.WriteString(" " + s.SectionHeading)
		}
		b.WriteString("\n")

		if excerpt := conv.Truncate(conv.PlainText(s.Excerpt), excerptLength); excerpt != "" {
			b.WriteString("     " + DescStyle.Render(excerpt) + "\n")
		}
		if s.URL != "" {
			b.WriteString("     " + DescStyle.Render(s.URL) + "\n")
		}
	}
	return b.String()
}

// Answer renders an assistant message with its citations.
func Answer(msg core.Message) string {
	out := Markdown(msg.Content)
	if src := Sources(msg.Sources); src != "" {
		out = strings.TrimRight(out, "\n") + "\n\n" + src
	}
	return out
}

// Error renders a failure line, with the wait the service asked for if any.
func Error(msg string, retryAfter time.Duration) string {
	out := ErrorStyle.Render(msg)
	if retryAfter > 0 {
		out += "\n" + DescStyle.Render(fmt.Sprintf("The service asked to retry in %s. Type /retry to resend.", retryAfter))
	}
	return out
}

// Banner is printed when the REPL starts.
func Banner(messages int) string {
	lines := []string{
		TitleStyle.UnsetMarginBottom().Render(core.BowenName + " · New Zealand legislation Q&A"),
		DescStyle.Render("Answers are general information, not legal advice."),
		DescStyle.Render("Type /help for commands, exit to quit."),
	}
	if messages > 0 {
		lines = append(lines, DescStyle.Render(fmt.Sprintf("Restored %d messages from your last session.", messages)))
	}
	return BannerStyle.Render(strings.Join(lines, "\n"))
}
