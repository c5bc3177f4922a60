// Package callback delivers extracted intelligence to a downstream
// collector. Delivery is fire-and-forget and at most once per session.
package callback

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/core"
)

// SentSessionStore records which sessions have already been reported.
// Swappable so the dedup state can outlive the process if needed.
type SentSessionStore interface {
	// MarkSent records the session, returning false if it was already sent.
	MarkSent(sessionID string) bool
}

// MemorySentStore is the default process-lifetime dedup store.
type MemorySentStore struct {
	mu   sync.Mutex
	sent map[string]struct{}
}

// NewMemorySentStore creates a new in-memory sent-session store.
func NewMemorySentStore() *MemorySentStore {
	return &MemorySentStore{sent: make(map[string]struct{})}
}

// MarkSent implements SentSessionStore.
func (s *MemorySentStore) MarkSent(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sent[sessionID]; ok {
		return false
	}
	s.sent[sessionID] = struct{}{}
	return true
}

// payload is the wire format expected by the collector endpoint.
type payload struct {
	SessionID              string                      `json:"sessionId"`
	ScamDetected           bool                        `json:"scamDetected"`
	TotalMessagesExchanged int                         `json:"totalMessagesExchanged"`
	ExtractedIntelligence  *core.ExtractedIntelligence `json:"extractedIntelligence"`
	AgentNotes             string                      `json:"agentNotes"`
}

// Notifier posts engagement results to the collector URL in the background.
// Implements core.IntelNotifier.
type Notifier struct {
	url    string
	client *http.Client
	store  SentSessionStore
	logger *zap.Logger
}

// NewNotifier creates a new notifier. An empty URL disables delivery.
func NewNotifier(url string, timeout time.Duration, store SentSessionStore, logger *zap.Logger) *Notifier {
	return &Notifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		store:  store,
		logger: logger,
	}
}

// Notify dispatches the result without blocking the caller. Returns false
// when delivery is disabled or the session was already reported.
func (n *Notifier) Notify(result *core.EngagementResult) bool {
	if n.url == "" {
		return false
	}
	if result.SessionID != "" && !n.store.MarkSent(result.SessionID) {
		n.logger.Debug("Session already reported, skipping callback",
			zap.String("session_id", result.SessionID))
		return false
	}

	go n.post(payload{
		SessionID:              result.SessionID,
		ScamDetected:           result.Detection != nil && result.Detection.IsScam,
		TotalMessagesExchanged: result.TotalMessages,
		ExtractedIntelligence:  result.Intelligence,
		AgentNotes:             result.AgentNotes,
	})
	return true
}

// post performs the best-effort delivery. Failures are logged only.
func (n *Notifier) post(p payload) {
	body, err := json.Marshal(p)
	if err != nil {
		n.logger.Error("Failed to marshal callback payload", zap.Error(err))
		return
	}

	resp, err := n.client.Post(n.url, "application/json", bytes.NewReader(body))
	if err != nil {
		n.logger.Warn("Callback delivery failed",
			zap.String("session_id", p.SessionID),
			zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		n.logger.Warn("Callback rejected",
			zap.String("session_id", p.SessionID),
			zap.Int("status", resp.StatusCode))
		return
	}

	n.logger.Info("Callback delivered",
		zap.String("session_id", p.SessionID),
		zap.Int("status", resp.StatusCode))
}
