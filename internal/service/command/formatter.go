package command

import (
	"fmt"
	"strings"

	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/pkg/conv"
)

const excerptLength = 240

type ResponseFormatter struct{}

func NewResponseFormatter() *ResponseFormatter {
	return &ResponseFormatter{}
}

func (f *ResponseFormatter) Info(title string) string {
	return fmt.Sprintf("⚖️ **%s**\n", title)
}

func (f *ResponseFormatter) Success(message string) string {
	return fmt.Sprintf("✅ **%s**\n", message)
}

func (f *ResponseFormatter) Warning(message string) string {
	return fmt.Sprintf("⚠️ %s\n", message)
}

func (f *ResponseFormatter) Failure(message string) string {
	return fmt.Sprintf("❌ %s\n", message)
}

func (f *ResponseFormatter) Label(label, value string) string {
	return fmt.Sprintf("**%s**  ›  `%s`\n", label, value)
}

func (f *ResponseFormatter) Usage(command string) string {
	return fmt.Sprintf("**Usage**:\n```%s```\n", command)
}

func (f *ResponseFormatter) Examples(examples []string) string {
	var sb strings.Builder
	sb.WriteString("**Examples**:\n")
	for _, ex := range examples {
		sb.WriteString(fmt.Sprintf("`%s`\n", ex))
	}
	return sb.String()
}

func (f *ResponseFormatter) List(items []string) string {
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("› %s\n", item))
	}
	return sb.String()
}

func (f *ResponseFormatter) Tip(text string) string {
	return fmt.Sprintf("**Tip**: %s\n", text)
}

// Sources renders citations as a numbered markdown list.
func (f *ResponseFormatter) Sources(sources []core.Source) string {
	var sb strings.Builder
	for i, s := range sources {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, citation(s.ActTitle, s.SectionNumber, s.SectionHeading, s.URL)))
		if excerpt := conv.Truncate(conv.PlainText(s.Excerpt), excerptLength); excerpt != "" {
			sb.WriteString(fmt.Sprintf("   > %s\n", excerpt))
		}
	}
	return sb.String()
}

func (f *ResponseFormatter) SearchResults(results []core.SearchResult) string {
	var sb strings.Builder
	for i, r := range results {
		sb.WriteString(fmt.Sprintf("%d. %s (%.2f)\n", i+1, citation(r.ActTitle, r.SectionNumber, r.SectionHeading, r.URL), r.Score))
		if text := conv.Truncate(conv.PlainText(r.Text), excerptLength); text != "" {
			sb.WriteString(fmt.Sprintf("   > %s\n", text))
		}
	}
	return sb.String()
}

func (f *ResponseFormatter) Combine(sections ...string) string {
	return strings.Join(sections, "\n")
}

// citation renders "Act, s 18 Heading" linked to url when there is one.
func citation(act, section, heading, url string) string {
	label := act
	if section != "" {
		label += ", s " + section
	}
	if heading != "" {
		label += " " + heading
	}
	label = "**" + label + "**"
	if url != "" {
		return fmt.Sprintf("[%s](%s)", label, url)
	}
	return label
}
