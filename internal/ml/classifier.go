package ml

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/core"
)

// ModelVersion tags persisted artifacts. Bump it whenever the corpus,
// features or training parameters change; stale artifacts are retrained.
const ModelVersion = "v3"

const (
	maxVocabulary = 100
	numTrees      = 120
	maxTreeDepth  = 10
	trainingSeed  = 42
)

// Compact embedded corpus used to bootstrap the model.
var scamMessages = []string{
	"Your bank account will be blocked immediately. Verify now at https://fake-bank.com",
	"Congratulations! You won a lottery. Claim your prize by sharing bank details",
	"Share your UPI ID to verify your account and receive refund",
	"Click this link to update KYC or your account will be suspended",
	"Confirm debit card number and CVV to avoid account suspension",
	"You have been selected for cash reward. Provide account number now",
	"We detected unusual activity. Reactivate account by sending payment to scam@upi",
	"Pay processing fee within 10 minutes to release your reward",
	"Final notice: account limited due to suspicious activity. Login immediately",
	"Claim bonus by transferring 500 INR to winner@oksbi",
}

var legitimateMessages = []string{
	"INR 2,500 debited from A/C XXXX1234 on 02-Feb. If not you, call bank immediately.",
	"Your OTP is 123456 for transaction at Amazon. Do not share with anyone.",
	"Scheduled maintenance: NetBanking will be unavailable on Feb 5 from 1AM-3AM.",
	"Payment of Rs 600 completed using UPI at ZOMATO. If not you, contact bank.",
	"Monthly account statement is ready. Login to internet banking to view.",
	"Credit of Rs 1,000 received from ACME PAYROLL. Available balance updated.",
	"Thanks for using NetBanking. Your transaction reference is TXN12345.",
	"Dear customer, your card ending 4455 has been shipped. Track in app.",
	"Reminder: EMI of Rs 1,200 will be auto-debited on 10 Feb.",
	"Security alert: login from new device detected. If not you, please reset password via app.",
}

// Artifact is the persisted trained model bundle.
type Artifact struct {
	Version    string
	Vectorizer *Vectorizer
	Forest     *Forest
}

// ArtifactStore persists trained model artifacts across process lifetimes.
type ArtifactStore interface {
	// Load returns the stored artifact, or an error if absent or corrupt.
	Load() (*Artifact, error)

	// Save stores the artifact, overwriting any previous one.
	Save(artifact *Artifact) error
}

// Classifier scores arbitrary text with a TF-IDF + bagged-trees model.
// The trained state is read-only after construction, so a single instance
// is safe for concurrent use.
type Classifier struct {
	vectorizer *Vectorizer
	forest     *Forest
	logger     *zap.Logger
}

// NewClassifier loads a compatible artifact from the store, or trains from
// the embedded corpus and persists the result. A save failure is logged but
// does not fail construction.
func NewClassifier(store ArtifactStore, logger *zap.Logger) (*Classifier, error) {
	if store != nil {
		artifact, err := store.Load()
		if err == nil && artifact.Version == ModelVersion &&
			artifact.Vectorizer != nil && artifact.Forest != nil {
			logger.Info("Loaded classifier artifact",
				zap.String("version", artifact.Version),
				zap.Int("vocabulary", len(artifact.Vectorizer.Vocabulary)))
			return &Classifier{
				vectorizer: artifact.Vectorizer,
				forest:     artifact.Forest,
				logger:     logger,
			}, nil
		}
		if err != nil {
			logger.Debug("No usable classifier artifact, training", zap.Error(err))
		} else {
			logger.Info("Classifier artifact version mismatch, retraining",
				zap.String("stored", artifact.Version),
				zap.String("current", ModelVersion))
		}
	}

	c := Train(logger)

	if store != nil {
		artifact := &Artifact{
			Version:    ModelVersion,
			Vectorizer: c.vectorizer,
			Forest:     c.forest,
		}
		if err := store.Save(artifact); err != nil {
			logger.Error("Failed to persist classifier artifact", zap.Error(err))
		}
	}

	return c, nil
}

// Train fits the model from the embedded corpus. Deterministic: two runs
// produce identical classification behavior.
func Train(logger *zap.Logger) *Classifier {
	corpus := make([]string, 0, len(scamMessages)+len(legitimateMessages))
	corpus = append(corpus, scamMessages...)
	corpus = append(corpus, legitimateMessages...)

	labels := make([]int, len(corpus))
	for i := range scamMessages {
		labels[i] = 1
	}

	vectorizer := NewVectorizer(corpus, maxVocabulary)

	features := make([][]float64, len(corpus))
	for i, text := range corpus {
		features[i] = featureRow(vectorizer, text)
	}

	forest := NewForest(features, labels, numTrees, maxTreeDepth, trainingSeed)

	logger.Info("Trained scam classifier",
		zap.Int("samples", len(corpus)),
		zap.Int("vocabulary", len(vectorizer.Vocabulary)),
		zap.Int("trees", numTrees))

	return &Classifier{
		vectorizer: vectorizer,
		forest:     forest,
		logger:     logger,
	}
}

// featureRow concatenates the TF-IDF vector with the handcrafted features.
func featureRow(v *Vectorizer, text string) []float64 {
	tfidf := v.Transform(text)
	custom := core.ExtractFeatures(text)
	return append(tfidf, custom[:]...)
}

// ScamProbability implements core.ScamClassifier.
func (c *Classifier) ScamProbability(text string) (float64, error) {
	if c.vectorizer == nil || c.forest == nil {
		return 0, fmt.Errorf("classifier not initialized")
	}
	return c.forest.PredictProba(featureRow(c.vectorizer, text)), nil
}
