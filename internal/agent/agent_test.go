package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/utils"
)

// stubGenerator returns a fixed reply or error.
type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) GenerateReply(ctx context.Context, intent string) (string, error) {
	return g.reply, g.err
}

func newTestAgent(g *stubGenerator) *ResponseAgent {
	logger := zap.NewNop()
	tp := utils.NewTextProcessor(logger)
	if g == nil {
		return NewResponseAgent(nil, tp, logger, time.Second, 18)
	}
	return NewResponseAgent(g, tp, logger, time.Second, 18)
}

func TestReplyBenignForNonScam(t *testing.T) {
	a := newTestAgent(nil)
	got := a.Reply(context.Background(), false, 0, "hello")
	if got != "Thanks for the update." {
		t.Errorf("non-scam reply = %q", got)
	}
}

func TestReplyUsesGeneratedText(t *testing.T) {
	a := newTestAgent(&stubGenerator{reply: "Oh no, what happened to my account?"})
	got := a.Reply(context.Background(), true, 0, "verify your account")
	if got != "Oh no, what happened to my account?" {
		t.Errorf("reply = %q", got)
	}
}

func TestReplyFallsBackToTemplates(t *testing.T) {
	cases := []struct {
		name string
		stub *stubGenerator
	}{
		{"nil generator", nil},
		{"provider error", &stubGenerator{err: errors.New("rate limited")}},
		{"degenerate output", &stubGenerator{reply: "ok"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := newTestAgent(tc.stub)
			got := a.Reply(context.Background(), true, 2, "please verify now")
			if got == "" {
				t.Fatal("empty reply")
			}
			found := false
			for _, opts := range templates {
				for _, opt := range opts {
					if got == opt {
						found = true
					}
				}
			}
			if !found {
				t.Errorf("reply %q is not a known template", got)
			}
		})
	}
}

func TestReplyWordLimit(t *testing.T) {
	long := strings.Repeat("really ", 40) + "long reply from the model"
	a := newTestAgent(&stubGenerator{reply: long})
	got := a.Reply(context.Background(), true, 1, "send payment")
	if n := len(strings.Fields(got)); n > 18 {
		t.Errorf("reply has %d words, want <= 18", n)
	}
}

func TestIntentForDepth(t *testing.T) {
	if IntentForDepth(0) != "confused and worried" {
		t.Errorf("depth 0 intent = %q", IntentForDepth(0))
	}
	if IntentForDepth(-5) != IntentForDepth(0) {
		t.Error("negative depth should clamp to the start")
	}
	if IntentForDepth(100) != IntentForDepth(len(intents)-1) {
		t.Error("deep conversations should clamp to the last intent")
	}
}

func TestTemplateReplyPrefersMatchingFraming(t *testing.T) {
	a := newTestAgent(nil)

	// Verification framing at the confirmation depth should always pick a
	// template that echoes it.
	for i := 0; i < 20; i++ {
		got := a.templateReply("asking for verification", "please verify your identity")
		lower := strings.ToLower(got)
		if !strings.Contains(lower, "verify") && !strings.Contains(lower, "confirm") {
			t.Fatalf("reply %q ignores verification framing", got)
		}
	}

	// Payment framing steers toward step-by-step templates.
	for i := 0; i < 20; i++ {
		got := a.templateReply("asking for guidance", "pay via upi now")
		lower := strings.ToLower(got)
		if !strings.Contains(lower, "step") && !strings.Contains(lower, "guide") {
			t.Fatalf("reply %q ignores payment framing", got)
		}
	}
}

func TestTemplateReplyUnknownIntent(t *testing.T) {
	a := newTestAgent(nil)
	got := a.templateReply("no such intent", "")
	if got == "" {
		t.Fatal("empty reply for unknown intent")
	}
	found := false
	for _, opt := range templates["asking for guidance"] {
		if got == opt {
			found = true
		}
	}
	if !found {
		t.Errorf("unknown intent reply %q not from the guidance set", got)
	}
}
