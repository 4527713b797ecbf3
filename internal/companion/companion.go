// Package companion implements the Lumi chat: a conversation with a
// typed-in greeting, quick-reply chips and replies generated through an
// llm.Provider.
package companion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/lumi/internal/llm"
	"github.com/abhisek/lumi/internal/logger"
)

// ErrEmptyMessage is returned by Send for blank input.
var ErrEmptyMessage = errors.New("empty message")

// Sender identifies who wrote a message.
type Sender string

const (
	SenderLumi Sender = "lumi"
	SenderUser Sender = "user"
)

// Kind is the message body type.
type Kind string

const (
	KindText Kind = "text"
	KindCard Kind = "card"
)

// Card is a review card attached to a Lumi message.
type Card struct {
	Title  string `yaml:"title" json:"title"`
	Action string `yaml:"action" json:"action"`
}

// Message is one chat bubble.
type Message struct {
	ID      string    `yaml:"id" json:"id"`
	Sender  Sender    `yaml:"sender" json:"sender"`
	Kind    Kind      `yaml:"kind" json:"kind"`
	Content string    `yaml:"content" json:"content"`
	Time    time.Time `yaml:"time" json:"time"`
	Card    *Card     `yaml:"card" json:"card,omitempty"`
}

// Greetings are shown above the chat when a conversation opens.
var Greetings = []string{
	"系统就绪。今天想探索什么知识？⚡️",
	"监测到思维活跃度提升。随时待命。🚀",
	"嘿，我是 Lumi。你的专属 AI 领航员。🌌",
	"数据同步完成。准备好解决难题了吗？🧠",
}

// QuickChips are canned prompts the learner can send with one key.
var QuickChips = []string{"🎯 制定今日计划", "😭 我好累求安慰", "📖 考前复习", "🎲 玩个成语接龙"}

const (
	// CannedReply answers when no provider is configured or it fails.
	CannedReply = "收到指令。正在分析解题路径..."

	newChatGreeting = "新会话已建立。"
	historyWindow   = 20
)

const systemPrompt = `你是 Lumi，一名初中生的 AI 学习伙伴。用简短、温暖的中文回答，一次不超过三句话。
遇到作业题时先引导思路，不要直接给出最终答案。`

var replySchema = &llm.Schema{
	Name:        "companion-reply",
	Description: "A short chat reply from Lumi",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"reply": map[string]any{"type": "string", "minLength": 1},
		},
		"required":             []any{"reply"},
		"additionalProperties": false,
	},
}

// Options configures a Conversation. Every field is optional.
type Options struct {
	Provider llm.Provider
	Log      *logger.Logger
	Rand     *rand.Rand
	Timeout  time.Duration
	Now      func() time.Time
}

// Conversation is the chat state.
type Conversation struct {
	messages []Message
	greeting string
	provider llm.Provider
	log      *logger.Logger
	timeout  time.Duration
	now      func() time.Time
}

// New opens a conversation seeded with history and picks a greeting.
func New(history []Message, opts Options) *Conversation {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	greeting := Greetings[0]
	if opts.Rand != nil {
		greeting = Greetings[opts.Rand.IntN(len(Greetings))]
	}
	return &Conversation{
		messages: slices.Clone(history),
		greeting: greeting,
		provider: opts.Provider,
		log:      opts.Log,
		timeout:  opts.Timeout,
		now:      opts.Now,
	}
}

// Greeting returns the banner line.
func (c *Conversation) Greeting() string { return c.greeting }

// Messages returns a copy of the transcript.
func (c *Conversation) Messages() []Message { return slices.Clone(c.messages) }

// Chips returns the quick-reply prompts.
func (c *Conversation) Chips() []string { return QuickChips }

// Live reports whether replies come from a model.
func (c *Conversation) Live() bool { return c.provider != nil }

// NewChat clears the transcript.
func (c *Conversation) NewChat() {
	c.messages = nil
	c.greeting = newChatGreeting
}

// Send appends the learner's text and Lumi's reply, returning the reply.
// A provider failure is logged and answered with CannedReply.
func (c *Conversation) Send(ctx context.Context, text string) (Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, ErrEmptyMessage
	}
	c.messages = append(c.messages, c.message(SenderUser, text))

	content := CannedReply
	if c.provider != nil {
		reply, err := c.generate(ctx)
		switch {
		case err == nil:
			content = reply
		case ctx.Err() != nil:
			return Message{}, ctx.Err()
		default:
			c.log.Warn("companion reply failed, using canned reply", "error", err)
		}
	}

	reply := c.message(SenderLumi, content)
	c.messages = append(c.messages, reply)
	return reply, nil
}

func (c *Conversation) generate(ctx context.Context) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	ctx = llm.WithPurpose(ctx, "companion-chat")

	resp, err := c.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    c.history(),
		Schema:      replySchema,
		MaxTokens:   512,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	var out struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("decode reply: %w", err)
	}
	if strings.TrimSpace(out.Reply) == "" {
		return "", fmt.Errorf("decode reply: empty")
	}
	return out.Reply, nil
}

// history maps the recent transcript onto model roles. Cards become their
// title so the model sees what was suggested.
func (c *Conversation) history() []llm.Message {
	msgs := c.messages
	if len(msgs) > historyWindow {
		msgs = msgs[len(msgs)-historyWindow:]
	}
	out := make([]llm.Message, 0, len(msgs))
	for _, m := range msgs {
		role := llm.RoleUser
		if m.Sender == SenderLumi {
			role = llm.RoleAssistant
		}
		content := m.Content
		if m.Card != nil {
			content = m.Card.Title
		}
		out = append(out, llm.Message{Role: role, Content: content})
	}
	// Providers expect the first turn to come from the user.
	for len(out) > 0 && out[0].Role != llm.RoleUser {
		out = out[1:]
	}
	return out
}

func (c *Conversation) message(from Sender, text string) Message {
	return Message{
		ID:      uuid.NewString(),
		Sender:  from,
		Kind:    KindText,
		Content: text,
		Time:    c.now(),
	}
}
