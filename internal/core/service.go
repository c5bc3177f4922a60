package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go.uber.org/zap"
)

const agentNotes = "Detected using tiered signal scoring with ML fusion and legitimacy guard rails. " +
	"Agent engaged scammer and extracted actionable intelligence."

// Responder produces the honeypot persona's reply for a turn.
type Responder interface {
	// Reply maps the verdict and conversation depth to a reply string.
	// It must not fail; provider errors fall back to templates internally.
	Reply(ctx context.Context, isScam bool, depth int, lastScammerText string) string
}

// IntelExtractor pulls structured intelligence out of the scammer side of a
// conversation.
type IntelExtractor func(history []Message, currentMessage string) *ExtractedIntelligence

// HoneypotService orchestrates detection, engagement and intelligence
// extraction for inbound messages.
type HoneypotService struct {
	detector       *Detector
	responder      Responder
	extract        IntelExtractor
	cache          CacheRepository
	notifier       IntelNotifier
	logger         *zap.Logger
	cacheEnabled   bool
	cacheTTL       time.Duration
	intelThreshold int
}

// NewHoneypotService creates a new honeypot service.
func NewHoneypotService(
	detector *Detector,
	responder Responder,
	extract IntelExtractor,
	cache CacheRepository,
	notifier IntelNotifier,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	intelThreshold int,
) *HoneypotService {
	return &HoneypotService{
		detector:       detector,
		responder:      responder,
		extract:        extract,
		cache:          cache,
		notifier:       notifier,
		logger:         logger,
		cacheEnabled:   cacheEnabled,
		cacheTTL:       cacheTTL,
		intelThreshold: intelThreshold,
	}
}

// TextDigest returns the cache key for a combined text.
func TextDigest(combinedText string) string {
	sum := sha256.Sum256([]byte(combinedText))
	return hex.EncodeToString(sum[:])
}

// ProcessMessage handles one inbound message end to end. It never returns
// an error to the transport: malformed or empty input yields a conservative
// not-scam result with a benign reply.
func (s *HoneypotService) ProcessMessage(ctx context.Context, sessionID string, msg Message, history []Message) *EngagementResult {
	detection := s.detect(ctx, msg.Text, history)

	depth := len(history)
	reply := s.responder.Reply(ctx, detection.IsScam, depth, msg.Text)

	result := &EngagementResult{
		SessionID:     sessionID,
		Detection:     detection,
		Reply:         reply,
		TotalMessages: len(history) + 1,
	}

	if detection.IsScam && result.TotalMessages >= s.intelThreshold {
		result.Intelligence = s.extract(history, msg.Text)
		result.AgentNotes = agentNotes
		if s.notifier != nil {
			s.notifier.Notify(result)
		}
	}

	s.logger.Info("Processed honeypot message",
		zap.String("session_id", sessionID),
		zap.Bool("scam_detected", detection.IsScam),
		zap.Float64("confidence", detection.Confidence),
		zap.Int("heuristic_score", detection.HeuristicScore),
		zap.Int("history_len", depth))

	return result
}

// detect runs verdict fusion with an optional result cache in front.
// Detection is deterministic over its inputs, so a cache hit is equivalent
// to a fresh run.
func (s *HoneypotService) detect(ctx context.Context, messageText string, history []Message) *DetectionResult {
	combined := combineText(messageText, history)

	if s.cacheEnabled && s.cache != nil {
		digest := TextDigest(combined)
		if entry, err := s.cache.Get(ctx, digest); err == nil {
			s.logger.Debug("Detection cache hit", zap.String("digest", digest))
			return &DetectionResult{
				IsScam:           entry.IsScam,
				Confidence:       entry.Confidence,
				MLProbability:    entry.MLProbability,
				HeuristicScore:   entry.HeuristicScore,
				LegitimacyScore:  entry.LegitimacyScore,
				CombinedTextUsed: combined,
				AnalyzedAt:       time.Now(),
			}
		}
	}

	detection := s.detector.Analyze(messageText, history)

	if s.cacheEnabled && s.cache != nil {
		entry := &CacheEntry{
			TextDigest:      TextDigest(combined),
			IsScam:          detection.IsScam,
			Confidence:      detection.Confidence,
			MLProbability:   detection.MLProbability,
			HeuristicScore:  detection.HeuristicScore,
			LegitimacyScore: detection.LegitimacyScore,
			LastSeen:        time.Now(),
			ExpiresAt:       time.Now().Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update detection cache", zap.Error(err))
		}
	}

	return detection
}
