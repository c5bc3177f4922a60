package core

import (
	"context"
)

// ScamClassifier provides the trained model's probability that a text is
// part of a scam conversation.
type ScamClassifier interface {
	// ScamProbability returns a probability in [0, 1] for the given text.
	ScamProbability(text string) (float64, error)
}

// ReplyGenerator produces a short human-sounding reply expressing an
// emotional intent, typically backed by a generative text provider.
type ReplyGenerator interface {
	// GenerateReply asks the provider for a reply with the given intent.
	GenerateReply(ctx context.Context, intent string) (string, error)
}

// CacheRepository caches detection results keyed by combined-text digest.
// Detection is deterministic, so a cached entry is as good as a fresh run.
type CacheRepository interface {
	// Get retrieves a cached entry for a text digest.
	Get(ctx context.Context, textDigest string) (*CacheEntry, error)

	// Set stores a cache entry.
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry.
	Delete(ctx context.Context, textDigest string) error

	// Cleanup removes expired entries.
	Cleanup(ctx context.Context) error
}

// IntelNotifier forwards extracted intelligence to a downstream collector.
// Implementations must be fire-and-forget: the caller is never blocked on
// or failed by delivery.
type IntelNotifier interface {
	// Notify dispatches the engagement result for a session. Returns false
	// if the session was already reported.
	Notify(result *EngagementResult) bool
}

// MessageFilter is the inbound transport surface of the honeypot.
type MessageFilter interface {
	// Start starts serving inbound messages.
	Start() error

	// Stop stops the filter service.
	Stop() error
}
