package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/config"
	"github.com/mikey/scam-honeypot/internal/core"
	"github.com/mikey/scam-honeypot/internal/factory"
	"github.com/mikey/scam-honeypot/internal/logging"
	"github.com/mikey/scam-honeypot/internal/ml"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Analysis flags
	Quick   bool
	History string

	// Artifact flags
	ArtifactStore string
	ArtifactPath  string
	Retrain       bool

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Analysis flags
	flag.BoolVar(&flags.Quick, "quick", false, "Heuristic-only triage without the trained classifier")
	flag.StringVar(&flags.History, "history", "", "Prior conversation turns as sender:text pairs separated by |")

	// Artifact flags
	flag.StringVar(&flags.ArtifactStore, "artifact-store", "file", "Classifier artifact store (file, sqlite)")
	flag.StringVar(&flags.ArtifactPath, "artifact-path", "", "Path to the classifier artifact (empty for in-memory training)")
	flag.BoolVar(&flags.Retrain, "retrain", false, "Ignore any stored artifact and retrain from the corpus")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input message file (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewArtifactFactory); err != nil {
		return nil, err
	}

	// Register classifier. Quick mode skips training entirely and runs on
	// heuristics alone.
	if err := container.Provide(func(flags *CLIFlags, f *factory.ArtifactFactory, logger *zap.Logger) core.ScamClassifier {
		if flags.Quick {
			return nil
		}
		if flags.Retrain {
			return ml.Train(logger)
		}
		var store ml.ArtifactStore
		if flags.ArtifactPath != "" {
			var err error
			store, err = f.CreateArtifactStore()
			if err != nil {
				logger.Error("Failed to open artifact store, training in memory", zap.Error(err))
				store = nil
			}
		}
		classifier, err := ml.NewClassifier(store, logger)
		if err != nil {
			logger.Error("Failed to initialize classifier, degrading to heuristics", zap.Error(err))
			return nil
		}
		return classifier
	}); err != nil {
		return nil, err
	}

	// Register detector
	if err := container.Provide(core.NewDetector); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set some cli specific settings
	v.Set("server.filter_type", "cli")
	v.Set("cli.verbose", flags.Verbose)

	// Classifier artifact settings
	v.Set("detector.artifact_store", flags.ArtifactStore)
	switch flags.ArtifactStore {
	case "sqlite":
		v.Set("detector.artifact_sqlite_path", flags.ArtifactPath)
	default:
		v.Set("detector.artifact_path", flags.ArtifactPath)
	}

	return config.NewFromViper(v)
}
