package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mikey/scam-honeypot/internal/core"
	"github.com/mikey/scam-honeypot/internal/di"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the analysis
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main analysis function that gets all dependencies injected
func run(
	logger *zap.Logger,
	flags *di.CLIFlags,
	detector *core.Detector,
) error {
	defer logger.Sync()

	// Read message from file or stdin
	var messageReader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", flags.InputFile))
		}
		defer file.Close()
		messageReader = file
		logger.Info("Reading message from file", zap.String("file", flags.InputFile))
	} else {
		messageReader = os.Stdin
		logger.Info("Reading message from stdin")
	}

	textBytes, err := io.ReadAll(messageReader)
	if err != nil {
		logger.Fatal("Failed to read message", zap.Error(err))
	}
	text := strings.TrimSpace(string(textBytes))
	if text == "" {
		logger.Fatal("Empty message")
	}

	history := parseHistory(flags.History)

	// Print message summary
	fmt.Printf("\n=== Message Summary ===\n")
	fmt.Printf("Length: %d bytes\n", len(text))
	fmt.Printf("History turns: %d\n", len(history))
	fmt.Printf("\n")

	startTime := time.Now()

	// Quick mode skips the trained classifier entirely
	if flags.Quick {
		triage := core.QuickTriage(text, history)
		fmt.Printf("=== Results ===\n")
		fmt.Printf("Triage: %s\n", triage)
		fmt.Printf("Heuristic score: %d\n", core.HeuristicScore(text))
		fmt.Printf("Processing time: %v\n", time.Since(startTime))
		return nil
	}

	result := detector.Analyze(text, history)
	duration := time.Since(startTime)

	// Print results
	fmt.Printf("=== Results ===\n")
	fmt.Printf("Is scam: %t\n", result.IsScam)
	fmt.Printf("Confidence: %.3f\n", result.Confidence)
	fmt.Printf("ML probability: %.4f\n", result.MLProbability)
	fmt.Printf("Heuristic score: %d\n", result.HeuristicScore)
	fmt.Printf("Legitimacy score: %.3f\n", result.LegitimacyScore)
	fmt.Printf("Processing time: %v\n", duration)
	return nil
}

// parseHistory decodes the -history flag: sender:text pairs separated by |.
// A pair without a sender prefix is attributed to the scammer.
func parseHistory(raw string) []core.Message {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	pairs := strings.Split(raw, "|")
	history := make([]core.Message, 0, len(pairs))
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		sender := core.SenderScammer
		text := pair
		if idx := strings.Index(pair, ":"); idx >= 0 {
			if s := core.ParseSender(strings.TrimSpace(pair[:idx])); s != core.SenderUnknown {
				sender = s
				text = strings.TrimSpace(pair[idx+1:])
			}
		}
		history = append(history, core.Message{Sender: sender, Text: text})
	}
	return history
}
