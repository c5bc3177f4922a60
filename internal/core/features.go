package core

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Keyword categories used by both the feature extractor and the heuristic
// scorer. Membership is a case-insensitive substring test.
var (
	urgencyWords   = []string{"urgent", "immediately", "asap", "within", "hurry", "now", "today"}
	financialWords = []string{"bank", "account", "payment", "transfer", "refund", "upi", "credit", "debit"}
	actionWords    = []string{"restore", "reactivate", "verify", "confirm", "submit", "update", "click", "login", "respond"}
	rewardWords    = []string{"prize", "reward", "lottery", "cashback", "free", "offer", "won", "bonus"}
	threatWords    = []string{"blocked", "suspended", "deactivated", "limited", "closing", "blacklist", "otp", "pin"}

	// Benign banking vocabulary. One hit already yields a legitimacy score
	// of 1/3 so routine bank notices are hard to misclassify.
	legitimacyWords = []string{
		"otp",
		"one time password",
		"debited",
		"credited",
		"txn",
		"transaction",
		"statement",
		"maintenance",
		"account ending",
		"available balance",
		"avl bal",
		"emi",
	}
)

var (
	linkRe   = regexp.MustCompile(`https?://`)
	phoneRe  = regexp.MustCompile(`\+?91\d{10}|\b[6-9]\d{9}\b`)
	handleRe = regexp.MustCompile(`\b[a-z0-9._-]+@[a-z0-9.-]+\b`)
)

// NormalizeText applies NFKC normalization and lowercases, so keyword and
// regex matching is stable across visually-identical Unicode forms.
func NormalizeText(text string) string {
	return strings.ToLower(norm.NFKC.String(text))
}

func containsAny(textLower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(textLower, w) {
			return true
		}
	}
	return false
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// LegitimacyScore estimates how strongly text resembles a routine legitimate
// banking notification, in [0, 1].
func LegitimacyScore(text string) float64 {
	textLower := NormalizeText(text)
	present := 0
	for _, w := range legitimacyWords {
		if strings.Contains(textLower, w) {
			present++
		}
	}
	score := float64(present) / 3.0
	if score > 1.0 {
		score = 1.0
	}
	return round3(score)
}

// ExtractFeatures computes the fixed-order 11-dimensional feature vector for
// a text. Pure and deterministic.
func ExtractFeatures(text string) FeatureVector {
	textLower := NormalizeText(text)

	wordCountNorm := float64(len(strings.Fields(text))) / 50.0
	if wordCountNorm > 1.0 {
		wordCountNorm = 1.0
	}
	charCountNorm := float64(len(text)) / 280.0
	if charCountNorm > 1.0 {
		charCountNorm = 1.0
	}

	return FeatureVector{
		boolFeature(containsAny(textLower, urgencyWords)),
		boolFeature(containsAny(textLower, financialWords)),
		boolFeature(containsAny(textLower, actionWords)),
		boolFeature(containsAny(textLower, rewardWords)),
		boolFeature(containsAny(textLower, threatWords)),
		boolFeature(linkRe.MatchString(textLower)),
		boolFeature(phoneRe.MatchString(textLower)),
		boolFeature(handleRe.MatchString(textLower)),
		wordCountNorm,
		charCountNorm,
		LegitimacyScore(text),
	}
}
