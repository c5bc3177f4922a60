package callback

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/core"
)

func scamResult(sessionID string) *core.EngagementResult {
	return &core.EngagementResult{
		SessionID: sessionID,
		Detection: &core.DetectionResult{IsScam: true, Confidence: 0.9},
		Reply:     "What should I do next?",
		Intelligence: &core.ExtractedIntelligence{
			UPIIDs: []string{"attacker@paytm"},
		},
		AgentNotes:    "engaged",
		TotalMessages: 5,
	}
}

func TestNotifyDeliversPayload(t *testing.T) {
	received := make(chan payload, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		var p payload
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			t.Errorf("decode: %v", err)
		}
		received <- p
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, time.Second, NewMemorySentStore(), zap.NewNop())
	if !n.Notify(scamResult("sess-1")) {
		t.Fatal("Notify returned false")
	}

	select {
	case p := <-received:
		if p.SessionID != "sess-1" {
			t.Errorf("sessionId = %q", p.SessionID)
		}
		if !p.ScamDetected {
			t.Error("scamDetected = false")
		}
		if p.TotalMessagesExchanged != 5 {
			t.Errorf("totalMessagesExchanged = %d", p.TotalMessagesExchanged)
		}
		if p.ExtractedIntelligence == nil || len(p.ExtractedIntelligence.UPIIDs) != 1 {
			t.Errorf("extractedIntelligence = %+v", p.ExtractedIntelligence)
		}
		if p.AgentNotes != "engaged" {
			t.Errorf("agentNotes = %q", p.AgentNotes)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback never arrived")
	}
}

func TestNotifyDeduplicatesSessions(t *testing.T) {
	hits := make(chan struct{}, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits <- struct{}{}
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, time.Second, NewMemorySentStore(), zap.NewNop())
	if !n.Notify(scamResult("sess-dup")) {
		t.Fatal("first Notify returned false")
	}
	if n.Notify(scamResult("sess-dup")) {
		t.Fatal("second Notify for the same session returned true")
	}

	select {
	case <-hits:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never arrived")
	}
	select {
	case <-hits:
		t.Fatal("duplicate session was delivered twice")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNotifyDisabledWithoutURL(t *testing.T) {
	n := NewNotifier("", time.Second, NewMemorySentStore(), zap.NewNop())
	if n.Notify(scamResult("sess-off")) {
		t.Error("Notify with empty URL returned true")
	}
}

func TestMemorySentStore(t *testing.T) {
	s := NewMemorySentStore()
	if !s.MarkSent("a") {
		t.Error("first MarkSent = false")
	}
	if s.MarkSent("a") {
		t.Error("second MarkSent = true")
	}
	if !s.MarkSent("b") {
		t.Error("different session MarkSent = false")
	}
}
