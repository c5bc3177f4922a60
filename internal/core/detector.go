package core

import (
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Unambiguous legitimate-notification phrases. A match short-circuits the
// whole pipeline before the classifier runs.
var safePatterns = []string{
	"scheduled maintenance",
	"maintenance",
	"debited",
	"credited",
	"available balance",
	"avl bal",
}

// Legitimate-pattern regexes matched against the combined lowercased text.
// Any hit forces a safe verdict regardless of classifier output.
var legitPatterns = []*regexp.Regexp{
	regexp.MustCompile(`inr\s+[\d,.]+\s+(debited|credited)\s+from\s+a/c`),
	regexp.MustCompile(`credit of rs`),
	regexp.MustCompile(`credited to your account`),
	regexp.MustCompile(`your otp is \d{4,6}`),
	regexp.MustCompile(`scheduled maintenance`),
	regexp.MustCompile(`available balance`),
	regexp.MustCompile(`monthly account statement`),
	regexp.MustCompile(`emi .* auto-debited`),
}

// Detector fuses classifier probability, heuristic score and legitimacy
// guard rails into a final verdict. It is stateless per call and safe for
// concurrent use once constructed.
type Detector struct {
	classifier ScamClassifier
	logger     *zap.Logger
}

// NewDetector creates a new detector. A nil classifier puts the detector in
// heuristic-only degraded mode from the start.
func NewDetector(classifier ScamClassifier, logger *zap.Logger) *Detector {
	return &Detector{
		classifier: classifier,
		logger:     logger,
	}
}

// combineText builds the text window for detection: the current message plus
// the scammer-authored subset of the last three history entries, in
// chronological order.
func combineText(messageText string, history []Message) string {
	start := len(history) - 3
	if start < 0 {
		start = 0
	}
	parts := make([]string, 0, 3)
	for _, msg := range history[start:] {
		if msg.Sender == SenderScammer {
			parts = append(parts, msg.Text)
		}
	}
	combined := strings.TrimSpace(messageText) + " " + strings.Join(parts, " ")
	return strings.TrimSpace(combined)
}

// Analyze runs the tiered decision policy over the current message and
// conversation history. It never fails: if the classifier is unavailable
// it degrades to heuristic-only scoring.
func (d *Detector) Analyze(messageText string, history []Message) *DetectionResult {
	combined := combineText(messageText, history)
	textLower := NormalizeText(combined)

	// Hard safety override for clearly legitimate bank notifications.
	for _, p := range safePatterns {
		if strings.Contains(textLower, p) {
			legitimacy := 0.667
			if strings.Contains(textLower, "maintenance") {
				legitimacy = 1.0
			}
			return &DetectionResult{
				IsScam:           false,
				Confidence:       0.05,
				MLProbability:    0,
				HeuristicScore:   0,
				LegitimacyScore:  legitimacy,
				CombinedTextUsed: combined,
				AnalyzedAt:       time.Now(),
			}
		}
	}

	heuristic := HeuristicScore(combined)
	legitimacy := LegitimacyScore(combined)

	mlProba, degraded := d.probability(combined)

	legitOverride := false
	for _, re := range legitPatterns {
		if re.MatchString(textLower) {
			legitOverride = true
			break
		}
	}

	confidence := mlProba
	if h := float64(heuristic) / 6.0; h > confidence {
		confidence = h
	}
	confidence *= 1 - legitimacy*0.4
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 0.99 {
		confidence = 0.99
	}
	confidence = round3(confidence)

	safeOverride := (legitimacy >= 0.3 && heuristic <= 1) || legitOverride

	var isScam bool
	if degraded {
		// No usable classifier: lean on the heuristic score alone, one
		// tier above the standalone triage threshold.
		isScam = !safeOverride && heuristic >= 5 && legitimacy < 0.7
	} else {
		isScam = !safeOverride &&
			(mlProba >= 0.55 || (mlProba >= 0.45 && heuristic >= 3)) &&
			legitimacy < 0.7
	}

	if safeOverride {
		isScam = false
		if confidence > 0.15 {
			confidence = 0.15
		}
	}

	// Low-signal messages need a stronger classifier vote to be scams.
	if heuristic <= 1 && mlProba < 0.65 {
		isScam = false
		if confidence > 0.2 {
			confidence = 0.2
		}
	}

	return &DetectionResult{
		IsScam:           isScam,
		Confidence:       confidence,
		MLProbability:    round3(mlProba),
		HeuristicScore:   heuristic,
		LegitimacyScore:  legitimacy,
		CombinedTextUsed: combined,
		AnalyzedAt:       time.Now(),
	}
}

// probability consults the classifier, reporting degraded mode when it is
// missing or fails.
func (d *Detector) probability(text string) (float64, bool) {
	if d.classifier == nil {
		return 0, true
	}
	proba, err := d.classifier.ScamProbability(text)
	if err != nil {
		d.logger.Warn("Classifier unavailable, degrading to heuristics",
			zap.Error(err))
		return 0, true
	}
	return proba, false
}
