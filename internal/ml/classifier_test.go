package ml

import (
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestTrainSeparatesHeldOutMessages(t *testing.T) {
	c := Train(zap.NewNop())

	scams := []string{
		"Your account is suspended! Verify immediately at https://secure-verify.biz or lose access",
		"You won a cash prize! Share your bank account number to claim the reward now",
		"Urgent: pay the processing fee and share UPI ID to receive your refund",
	}
	legits := []string{
		"INR 1,200 debited from A/C XXXX9876 on 14-Mar. If not you, call bank.",
		"Your OTP is 654321 for transaction at Flipkart. Do not share with anyone.",
		"Monthly account statement is ready. Login to internet banking to view.",
	}

	for _, text := range scams {
		proba, err := c.ScamProbability(text)
		if err != nil {
			t.Fatalf("ScamProbability: %v", err)
		}
		if proba < 0.5 {
			t.Errorf("scam message scored %v, want >= 0.5: %q", proba, text)
		}
	}
	for _, text := range legits {
		proba, err := c.ScamProbability(text)
		if err != nil {
			t.Fatalf("ScamProbability: %v", err)
		}
		if proba >= 0.5 {
			t.Errorf("legitimate message scored %v, want < 0.5: %q", proba, text)
		}
	}
}

func TestTrainIsDeterministic(t *testing.T) {
	a := Train(zap.NewNop())
	b := Train(zap.NewNop())

	texts := []string{
		"Verify your account now at https://fake-bank.com",
		"Scheduled maintenance tonight, NetBanking unavailable.",
		"Claim your lottery prize by sharing bank details",
	}
	for _, text := range texts {
		pa, _ := a.ScamProbability(text)
		pb, _ := b.ScamProbability(text)
		if pa != pb {
			t.Errorf("two trainings disagree on %q: %v vs %v", text, pa, pb)
		}
	}
}

func TestScamProbabilityRange(t *testing.T) {
	c := Train(zap.NewNop())
	for _, text := range append(append([]string{}, scamMessages...), legitimateMessages...) {
		proba, err := c.ScamProbability(text)
		if err != nil {
			t.Fatalf("ScamProbability: %v", err)
		}
		if proba < 0 || proba > 1 {
			t.Errorf("probability %v out of range for %q", proba, text)
		}
	}
}

// memoryStore is an in-memory ArtifactStore for tests.
type memoryStore struct {
	artifact *Artifact
	saves    int
}

func (s *memoryStore) Load() (*Artifact, error) {
	if s.artifact == nil {
		return nil, errors.New("no artifact")
	}
	return s.artifact, nil
}

func (s *memoryStore) Save(artifact *Artifact) error {
	s.artifact = artifact
	s.saves++
	return nil
}

func TestNewClassifierTrainsAndPersists(t *testing.T) {
	store := &memoryStore{}

	first, err := NewClassifier(store, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	if store.saves != 1 {
		t.Fatalf("saves = %d, want 1", store.saves)
	}
	if store.artifact.Version != ModelVersion {
		t.Errorf("artifact version = %q, want %q", store.artifact.Version, ModelVersion)
	}

	// Second construction must load the stored artifact, not retrain.
	second, err := NewClassifier(store, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClassifier (reload): %v", err)
	}
	if store.saves != 1 {
		t.Errorf("saves after reload = %d, want 1", store.saves)
	}

	text := scamMessages[0]
	p1, _ := first.ScamProbability(text)
	p2, _ := second.ScamProbability(text)
	if p1 != p2 {
		t.Errorf("loaded classifier disagrees with trained one: %v vs %v", p1, p2)
	}
}

func TestNewClassifierRetrainsOnVersionMismatch(t *testing.T) {
	store := &memoryStore{}
	if _, err := NewClassifier(store, zap.NewNop()); err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	store.artifact.Version = "v0"

	if _, err := NewClassifier(store, zap.NewNop()); err != nil {
		t.Fatalf("NewClassifier (mismatch): %v", err)
	}
	if store.saves != 2 {
		t.Errorf("saves = %d, want 2 after retrain", store.saves)
	}
	if store.artifact.Version != ModelVersion {
		t.Errorf("artifact version = %q, want %q", store.artifact.Version, ModelVersion)
	}
}

func TestNewClassifierWithoutStore(t *testing.T) {
	c, err := NewClassifier(nil, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	if _, err := c.ScamProbability("verify your account now"); err != nil {
		t.Errorf("ScamProbability: %v", err)
	}
}
