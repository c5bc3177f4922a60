package core

import (
	"math"
)

// Triage is the coarse three-tier classification produced by the heuristic
// scorer alone, used by simpler deployments and the CLI quick mode. The
// authoritative policy lives in the Detector.
type Triage int

const (
	TriageSafe Triage = iota
	TriageBorderline
	TriageScam
)

func (t Triage) String() string {
	switch t {
	case TriageScam:
		return "scam"
	case TriageBorderline:
		return "borderline"
	default:
		return "safe"
	}
}

var otpPinWords = []string{"otp", "pin", "upi pin"}

// HeuristicScore computes the rule-based scam signal score for a text.
// Each category contributes its weight at most once.
func HeuristicScore(text string) int {
	textLower := NormalizeText(text)
	score := 0

	// Urgency / threat markers.
	if containsAny(textLower, []string{
		"urgent", "immediately", "within", "blocked", "suspended",
		"deactivated", "limited", "unusual activity", "suspicious", "avoid",
	}) {
		score += 2
	}
	if containsAny(textLower, financialWords) {
		score += 2
	}
	if containsAny(textLower, actionWords) {
		score += 1
	}
	if containsAny(textLower, otpPinWords) {
		score += 2
	}
	if containsAny(textLower, rewardWords) {
		score += 3
	}
	if linkRe.MatchString(textLower) {
		score += 3
	}
	return score
}

// QuickTriage classifies a message with heuristics only: score >= 4 is a
// scam, 2-3 is borderline (history consulted for prior scammer signals),
// below 2 is safe.
func QuickTriage(text string, history []Message) Triage {
	score := HeuristicScore(text)
	if score >= 4 {
		return TriageScam
	}
	if score >= 2 {
		for _, msg := range history {
			if msg.Sender == SenderScammer && HeuristicScore(msg.Text) >= 2 {
				return TriageScam
			}
		}
		return TriageBorderline
	}
	return TriageSafe
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
