package core

import (
	"time"
)

// Sender identifies who authored a conversation message.
type Sender string

const (
	SenderScammer Sender = "scammer"
	SenderUser    Sender = "user"
	SenderUnknown Sender = "unknown"
)

// ParseSender maps a raw sender field to a known Sender value.
func ParseSender(raw string) Sender {
	switch raw {
	case "scammer":
		return SenderScammer
	case "user":
		return SenderUser
	default:
		return SenderUnknown
	}
}

// Message is a single chat message in a honeypot conversation.
type Message struct {
	Sender    Sender
	Text      string
	Timestamp string
}

// FeatureVector is the fixed-order numeric representation of a message text.
// Order: urgency, financial, action, reward, threat, link, phone, handle,
// word count norm, char count norm, legitimacy score.
type FeatureVector [11]float64

// LegitimacyScore returns the legitimacy component of the vector.
func (v FeatureVector) LegitimacyScore() float64 {
	return v[10]
}

// DetectionResult is the outcome of verdict fusion for one inbound message.
type DetectionResult struct {
	IsScam           bool
	Confidence       float64
	MLProbability    float64
	HeuristicScore   int
	LegitimacyScore  float64
	CombinedTextUsed string
	AnalyzedAt       time.Time
}

// ExtractedIntelligence holds actionable artifacts pulled out of the
// scammer side of a conversation. All slices are deduplicated and sorted.
type ExtractedIntelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// CacheEntry is a cached detection result keyed by the digest of the
// combined text the detector analyzed.
type CacheEntry struct {
	TextDigest      string
	IsScam          bool
	Confidence      float64
	MLProbability   float64
	HeuristicScore  int
	LegitimacyScore float64
	LastSeen        time.Time
	ExpiresAt       time.Time
}

// EngagementResult is the full outcome of processing one inbound message:
// the verdict, the agent's reply and, once the conversation is deep enough,
// extracted intelligence.
type EngagementResult struct {
	SessionID     string
	Detection     *DetectionResult
	Reply         string
	TotalMessages int
	Intelligence  *ExtractedIntelligence
	AgentNotes    string
}
