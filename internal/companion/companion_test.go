package companion

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/abhisek/lumi/internal/llm"
)

var fixed = time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)

func history() []Message {
	return []Message{
		{ID: "1", Sender: SenderLumi, Kind: KindText, Content: "嗨！今天过得怎么样？"},
		{ID: "2", Sender: SenderUser, Kind: KindText, Content: "还可以，就是数学作业有点难。"},
		{ID: "3", Sender: SenderLumi, Kind: KindCard, Content: "Review: Equation Basics", Card: &Card{Title: "复习：移项变号口诀", Action: "查看卡片"}},
	}
}

func TestSendWithoutProvider(t *testing.T) {
	c := New(history(), Options{Now: func() time.Time { return fixed }})
	if c.Live() {
		t.Error("Live() = true without a provider")
	}

	reply, err := c.Send(context.Background(), "  一元一次方程怎么移项？ ")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Content != CannedReply || reply.Sender != SenderLumi {
		t.Errorf("reply = %+v", reply)
	}
	msgs := c.Messages()
	if len(msgs) != 5 {
		t.Fatalf("messages = %d, want 5", len(msgs))
	}
	if msgs[3].Content != "一元一次方程怎么移项？" || msgs[3].Sender != SenderUser {
		t.Errorf("user message = %+v", msgs[3])
	}
	if msgs[3].ID == "" || msgs[3].ID == msgs[4].ID {
		t.Error("messages need distinct IDs")
	}
	if !msgs[4].Time.Equal(fixed) {
		t.Errorf("Time = %v, want %v", msgs[4].Time, fixed)
	}
}

func TestSendEmpty(t *testing.T) {
	c := New(nil, Options{})
	if _, err := c.Send(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("err = %v, want ErrEmptyMessage", err)
	}
	if len(c.Messages()) != 0 {
		t.Error("blank input must not be recorded")
	}
}

func TestSendWithProvider(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"reply":"先把含 x 的项移到左边，记得变号哦。"}`)})
	c := New(history(), Options{Provider: mock})

	reply, err := c.Send(context.Background(), "移项要注意什么？")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Content != "先把含 x 的项移到左边，记得变号哦。" {
		t.Errorf("reply = %q", reply.Content)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "companion-reply" {
		t.Error("request must carry the reply schema")
	}
	// The leading Lumi greeting is dropped so the first turn is the user's.
	if len(req.Messages) != 3 {
		t.Fatalf("history = %d, want 3", len(req.Messages))
	}
	if req.Messages[0].Role != llm.RoleUser {
		t.Errorf("first role = %s, want user", req.Messages[0].Role)
	}
	if req.Messages[1].Content != "复习：移项变号口诀" {
		t.Errorf("card turn = %q, want card title", req.Messages[1].Content)
	}
}

func TestSendFallsBackOnProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("boom")})
	c := New(nil, Options{Provider: mock})

	reply, err := c.Send(context.Background(), "你好")
	if err != nil {
		t.Fatal(err)
	}
	if reply.Content != CannedReply {
		t.Errorf("reply = %q, want canned", reply.Content)
	}
}

func TestSendCancelled(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: context.Canceled})
	c := New(nil, Options{Provider: mock})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Send(ctx, "你好"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewChat(t *testing.T) {
	c := New(history(), Options{Rand: rand.New(rand.NewPCG(3, 4))})
	found := false
	for _, g := range Greetings {
		if g == c.Greeting() {
			found = true
		}
	}
	if !found {
		t.Errorf("Greeting() = %q, not in Greetings", c.Greeting())
	}

	c.NewChat()
	if len(c.Messages()) != 0 {
		t.Errorf("messages = %d, want 0", len(c.Messages()))
	}
	if c.Greeting() != "新会话已建立。" {
		t.Errorf("Greeting() = %q", c.Greeting())
	}
	if len(c.Chips()) != 4 {
		t.Errorf("chips = %d, want 4", len(c.Chips()))
	}
}
