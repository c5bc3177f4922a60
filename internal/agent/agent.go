// Package agent maps detection state and conversation depth to an emotional
// engagement stance and produces the honeypot persona's reply, preferring a
// generative provider and falling back to curated templates.
package agent

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/core"
	"github.com/mikey/scam-honeypot/internal/utils"
)

// benignReply is returned verbatim whenever the verdict is not scam.
const benignReply = "Thanks for the update."

// intents is the depth-ordered engagement ladder. Depths past the end clamp
// to the last entry.
var intents = []string{
	"confused and worried",
	"needs explanation",
	"suspicious but polite",
	"seeking confirmation",
	"asking for guidance",
	"requesting more details",
	"expressing concern",
	"asking for verification",
}

var templates = map[string][]string{
	"confused and worried": {
		"I'm confused and worried, what does this mean?",
		"This is worrying. Can you explain what's happening?",
		"I'm a bit concerned. What exactly do you need from me?",
	},
	"needs explanation": {
		"Can you explain this more clearly?",
		"I didn't get that. Please explain in simple terms.",
		"What exactly do you want me to do?",
	},
	"suspicious but polite": {
		"This sounds a bit suspicious; can you clarify why?",
		"I'm trying to understand, why is this required?",
		"Okay, but I need more detail before I proceed.",
	},
	"seeking confirmation": {
		"Is this really from the bank?",
		"How can I know this is legitimate?",
		"Is my account actually affected?",
	},
	"asking for guidance": {
		"What should I do next?",
		"Please guide me step by step.",
		"I'm not sure what to do, can you guide me?",
	},
	"requesting more details": {
		"Can you share the exact steps you want me to follow?",
		"What details do you need from me?",
		"Which information do you expect me to provide?",
	},
	"expressing concern": {
		"I'm concerned, why is this so urgent?",
		"This feels risky. Can you reassure me?",
		"I'm worried about sharing anything without proof.",
	},
	"asking for verification": {
		"How do I verify you are from the bank?",
		"Do you have an official contact I can call?",
		"Can you prove this request is genuine?",
	},
}

// ResponseAgent implements core.Responder. The generator may be nil, in
// which case every scam turn is answered from templates.
type ResponseAgent struct {
	generator     core.ReplyGenerator
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
	replyTimeout  time.Duration
	maxWords      int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewResponseAgent creates a new response agent.
func NewResponseAgent(
	generator core.ReplyGenerator,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
	replyTimeout time.Duration,
	maxWords int,
) *ResponseAgent {
	return &ResponseAgent{
		generator:     generator,
		textProcessor: textProcessor,
		logger:        logger,
		replyTimeout:  replyTimeout,
		maxWords:      maxWords,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// IntentForDepth maps the conversation depth to an engagement intent,
// clamping past the end of the ladder.
func IntentForDepth(depth int) string {
	if depth < 0 {
		depth = 0
	}
	if depth >= len(intents) {
		depth = len(intents) - 1
	}
	return intents[depth]
}

// Reply implements core.Responder. It never fails: any provider problem
// falls back to templates.
func (a *ResponseAgent) Reply(ctx context.Context, isScam bool, depth int, lastScammerText string) string {
	if !isScam {
		return benignReply
	}

	intent := IntentForDepth(depth)
	a.logger.Debug("Selected engagement intent",
		zap.Int("depth", depth),
		zap.String("intent", intent))

	if reply := a.generatedReply(ctx, intent); reply != "" {
		return reply
	}
	return a.templateReply(intent, lastScammerText)
}

// generatedReply asks the provider for a reply, bounded by the configured
// timeout. Returns "" on any failure or degenerate output.
func (a *ResponseAgent) generatedReply(ctx context.Context, intent string) string {
	if a.generator == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, a.replyTimeout)
	defer cancel()

	raw, err := a.generator.GenerateReply(ctx, intent)
	if err != nil {
		a.logger.Warn("Reply provider failed, using templates",
			zap.String("intent", intent),
			zap.Error(err))
		return ""
	}

	reply := a.textProcessor.ProcessReply(raw, a.maxWords)
	if len(reply) < 3 {
		a.logger.Debug("Provider reply too short, using templates",
			zap.String("reply", reply))
		return ""
	}
	return reply
}

// templateReply chooses a canned phrase for the intent, preferring templates
// that echo the scammer's own framing (verification vs. payment steps).
// Selection among the remaining candidates is uniformly random so the
// persona stays varied across turns.
func (a *ResponseAgent) templateReply(intent string, lastScammerText string) string {
	options := templates[intent]
	if len(options) == 0 {
		options = templates["asking for guidance"]
	}

	textLower := strings.ToLower(lastScammerText)
	if strings.Contains(textLower, "verify") || strings.Contains(textLower, "confirm") {
		options = prefer(options, "verify", "confirm")
	}
	if strings.Contains(textLower, "upi") || strings.Contains(textLower, "pay") {
		options = prefer(options, "step", "guide")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return options[a.rng.Intn(len(options))]
}

// prefer narrows options to those containing any of the given keywords,
// keeping the full set when nothing matches.
func prefer(options []string, keywords ...string) []string {
	matched := make([]string, 0, len(options))
	for _, opt := range options {
		optLower := strings.ToLower(opt)
		for _, kw := range keywords {
			if strings.Contains(optLower, kw) {
				matched = append(matched, opt)
				break
			}
		}
	}
	if len(matched) == 0 {
		return options
	}
	return matched
}
