// Package intel extracts actionable intelligence from the scammer side of a
// honeypot conversation: payment identifiers, contact channels and phishing
// links. Pure regex matching over the concatenated text, no I/O.
package intel

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mikey/scam-honeypot/internal/core"
)

var (
	// Prefer 12-18 digit spans or 4-4-4/4-4-5 grouped forms; avoids
	// swallowing 10-digit phone numbers.
	bankAccountRe = regexp.MustCompile(`\b\d{4}-\d{4}-\d{4,5}\b|\b\d{12,18}\b`)
	upiIDRe       = regexp.MustCompile(`\b[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\b`)
	linkRe        = regexp.MustCompile(`https?://\S+`)
	// +91 with optional separator, or bare 10-digit Indian mobile numbers.
	phoneRe = regexp.MustCompile(`\+?91[- ]?\d{10}|\b[6-9]\d{9}\b`)
)

var suspiciousKeywords = []string{
	"urgent",
	"immediately",
	"blocked",
	"suspended",
	"deactivated",
	"limited",
	"unusual activity",
	"verify",
	"confirm",
	"update",
	"click",
	"login",
	"respond",
	"upi",
	"payment",
	"transfer",
	"refund",
	"reward",
	"prize",
	"lottery",
}

// collectText concatenates the current message with every scammer-authored
// history message. Unlike detection, extraction wants the full history.
func collectText(history []core.Message, currentMessage string) string {
	var b strings.Builder
	b.WriteString(currentMessage)
	for _, msg := range history {
		if msg.Sender == core.SenderScammer {
			b.WriteString(" ")
			b.WriteString(msg.Text)
		}
	}
	return b.String()
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// Extract pulls bank accounts, UPI IDs, phishing links, phone numbers and
// suspicious keywords out of a conversation. Results are deduplicated and
// sorted for determinism.
func Extract(history []core.Message, currentMessage string) *core.ExtractedIntelligence {
	fullText := collectText(history, currentMessage)
	textLower := strings.ToLower(fullText)

	keywords := make([]string, 0, len(suspiciousKeywords))
	for _, kw := range suspiciousKeywords {
		if strings.Contains(textLower, kw) {
			keywords = append(keywords, kw)
		}
	}

	return &core.ExtractedIntelligence{
		BankAccounts:       uniqueSorted(bankAccountRe.FindAllString(fullText, -1)),
		UPIIDs:             uniqueSorted(upiIDRe.FindAllString(fullText, -1)),
		PhishingLinks:      uniqueSorted(linkRe.FindAllString(fullText, -1)),
		PhoneNumbers:       uniqueSorted(phoneRe.FindAllString(fullText, -1)),
		SuspiciousKeywords: uniqueSorted(keywords),
	}
}
