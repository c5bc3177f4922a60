package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/core"
)

// inboundMessage is the wire shape of one chat message. Alternate field
// names used by different upstream testers are tolerated.
type inboundMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Content   string `json:"content"`
	Body      string `json:"body"`
	Timestamp string `json:"timestamp"`
}

// text resolves the message text across the field-name variants.
func (m *inboundMessage) text() string {
	if m.Text != "" {
		return m.Text
	}
	if m.Content != "" {
		return m.Content
	}
	return m.Body
}

// honeypotRequest is the inbound webhook payload.
type honeypotRequest struct {
	SessionID           string           `json:"sessionId"`
	Message             *inboundMessage  `json:"message"`
	ConversationHistory []inboundMessage `json:"conversationHistory"`
}

// engagementMetrics mirrors the upstream response contract.
type engagementMetrics struct {
	EngagementDurationSeconds int `json:"engagementDurationSeconds"`
	TotalMessagesExchanged    int `json:"totalMessagesExchanged"`
}

// honeypotResponse is the outward response payload.
type honeypotResponse struct {
	Status                string                      `json:"status"`
	SessionID             string                      `json:"sessionId"`
	ScamDetected          bool                        `json:"scamDetected"`
	Confidence            float64                     `json:"confidence"`
	EngagementMetrics     engagementMetrics           `json:"engagementMetrics"`
	AgentReply            string                      `json:"agentReply"`
	HistoryCount          int                         `json:"historyCount"`
	ExtractedIntelligence *core.ExtractedIntelligence `json:"extractedIntelligence,omitempty"`
	AgentNotes            string                      `json:"agentNotes,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// probeResponse answers shapeless or non-JSON requests so upstream health
// probes see a friendly success.
func probeResponse(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Honeypot API reachable and authenticated successfully",
	})
}

// handleHealth reports service liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Honeypot service is up and running",
	})
}

// handleHoneypot is the main detection and engagement endpoint. Malformed
// input is never an error: missing fields default to empty and the core
// returns a conservative verdict.
func (s *Server) handleHoneypot(w http.ResponseWriter, r *http.Request) {
	var req honeypotRequest
	if r.Body == nil || json.NewDecoder(r.Body).Decode(&req) != nil || req.Message == nil {
		probeResponse(w)
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "unknown"
	}

	msg := core.Message{
		Sender:    core.ParseSender(req.Message.Sender),
		Text:      req.Message.text(),
		Timestamp: req.Message.Timestamp,
	}

	history := make([]core.Message, 0, len(req.ConversationHistory))
	for i := range req.ConversationHistory {
		h := &req.ConversationHistory[i]
		history = append(history, core.Message{
			Sender:    core.ParseSender(h.Sender),
			Text:      h.text(),
			Timestamp: h.Timestamp,
		})
	}

	s.logger.Info("Processing inbound message",
		zap.String("session_id", sessionID),
		zap.String("sender", string(msg.Sender)),
		zap.Int("history_len", len(history)))

	start := time.Now()
	result := s.service.ProcessMessage(r.Context(), sessionID, msg, history)

	resp := honeypotResponse{
		Status:       "success",
		SessionID:    sessionID,
		ScamDetected: result.Detection.IsScam,
		Confidence:   result.Detection.Confidence,
		EngagementMetrics: engagementMetrics{
			EngagementDurationSeconds: int(time.Since(start).Seconds()),
			TotalMessagesExchanged:    result.TotalMessages,
		},
		AgentReply:            result.Reply,
		HistoryCount:          len(history),
		ExtractedIntelligence: result.Intelligence,
		AgentNotes:            result.AgentNotes,
	}

	writeJSON(w, http.StatusOK, resp)
}
