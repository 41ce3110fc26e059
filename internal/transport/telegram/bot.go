package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sandevgo/bowen/internal/core"
	"github.com/sandevgo/bowen/internal/service/chat"
	"github.com/sandevgo/bowen/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const (
	baseContextKey = "base_context"
	// conversations kept in memory; evicted ones reopen from storage
	maxOpenChats = 1024
)

type Bot struct {
	bot     *tele.Bot
	sender  *sender
	router  core.CmdRouter
	chats   *chat.Factory
	ownerID int64

	mu    sync.Mutex
	convs *lru.Cache[int64, core.Conversation]
}

func newConversationCache(size int) *lru.Cache[int64, core.Conversation] {
	cache, err := lru.New[int64, core.Conversation](size)
	if err != nil {
		// only a non-positive size fails
		panic(err)
	}
	return cache
}

func NewBot(
	ctx context.Context,
	cfg core.TelegramConfig,
	router core.CmdRouter,
	chats *chat.Factory,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		sender:  newSender(b),
		router:  router,
		chats:   chats,
		ownerID: cfg.GetTelegramOwnerID(),
		convs:   newConversationCache(maxOpenChats),
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil || !bot.allowed(c.Sender().ID) {
				return nil
			}
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Int64("owner", b.ownerID).Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

// allowed reports whether a user may talk to the bot. Owner zero is public.
func (b *Bot) allowed(userID int64) bool {
	return b.ownerID == 0 || userID == b.ownerID
}

// conversation returns the chat's own conversation, opening it on first use.
// The least recently used chats are dropped from memory past maxOpenChats.
func (b *Bot) conversation(ctx context.Context, chatID int64) core.Conversation {
	b.mu.Lock()
	defer b.mu.Unlock()

	if conv, ok := b.convs.Get(chatID); ok {
		return conv
	}
	conv := b.chats.Open(ctx, scopeFor(chatID))
	if b.convs.Add(chatID, conv) {
		log.FromCtx(ctx).Debug().Int64("chat", chatID).Msg("evicted least recently used conversation")
	}
	return conv
}

func scopeFor(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	var sb strings.Builder
	sb.WriteString("**Kia ora! I answer questions about New Zealand legislation.**\n\n")
	sb.WriteString("Ask in plain English, for example:\n")
	for _, q := range core.ExampleQuestions[:3] {
		sb.WriteString(fmt.Sprintf("› %s\n", q))
	}
	sb.WriteString("\nType /help for commands. Answers are general information, not legal advice.")

	return b.sender.sendMarkdown(ctx, c.Chat(), sb.String(), false)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx).With().Int64("chat", c.Chat().ID).Logger()
	conv := b.conversation(ctx, c.Chat().ID)

	if reply, ok := b.router.Execute(ctx, conv, c.Text()); ok {
		return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
	}

	_ = c.Notify(tele.Typing)

	out := conv.Send(ctx, c.Text())
	if out.Failed() {
		logger.Debug().Str("error", out.Error).Msg("question failed")
	}

	reply, markdown := outcomeReply(out, conv.IsLoading())
	switch {
	case reply == "":
		return nil
	case markdown:
		return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
	default:
		return c.Send(reply)
	}
}

// outcomeReply turns the result of one Send into the message for this update.
// markdown is false for plain status and error text.
func outcomeReply(out core.Outcome, busy bool) (reply string, markdown bool) {
	switch {
	case !out.Accepted:
		if busy {
			return "Still working on your previous question, one moment.", false
		}
		return "", false
	case out.Failed():
		msg := out.Error
		if out.RetryAfter > 0 {
			msg += fmt.Sprintf("\n\nTry /retry in %s.", out.RetryAfter)
		}
		return msg, false
	case out.Answer == nil:
		return "", false
	}
	return answerMarkdown(*out.Answer), true
}

// answerMarkdown appends linked citations to the answer text.
func answerMarkdown(msg core.Message) string {
	if len(msg.Sources) == 0 {
		return msg.Content
	}

	var sb strings.Builder
	sb.WriteString(strings.TrimRight(msg.Content, "\n"))
	sb.WriteString("\n\n**Sources**\n")
	for i, s := range msg.Sources {
		label := s.ActTitle
		if s.SectionNumber != "" {
			label += ", s " + s.SectionNumber
		}
		if s.SectionHeading != "" {
			label += " " + s.SectionHeading
		}
		if s.URL != "" {
			label = fmt.Sprintf("[%s](%s)", label, s.URL)
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, label))
	}
	return sb.String()
}
