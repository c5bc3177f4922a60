package artifact

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/mikey/scam-honeypot/internal/ml"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "scam_model.gob")
	store, err := NewFileStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if _, err := store.Load(); err == nil {
		t.Fatal("Load on empty store succeeded")
	}

	trained := ml.Train(zap.NewNop())
	saved, err := ml.NewClassifier(store, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}

	artifact, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if artifact.Version != ml.ModelVersion {
		t.Errorf("version = %q, want %q", artifact.Version, ml.ModelVersion)
	}
	if artifact.Vectorizer == nil || artifact.Forest == nil {
		t.Fatal("artifact missing trained state")
	}

	// A reloaded classifier must behave identically to a fresh training run.
	loaded, err := ml.NewClassifier(store, zap.NewNop())
	if err != nil {
		t.Fatalf("NewClassifier (reload): %v", err)
	}
	for _, text := range []string{
		"Verify your account now at https://fake-bank.com",
		"Monthly account statement is ready.",
	} {
		want, _ := trained.ScamProbability(text)
		if got, _ := saved.ScamProbability(text); got != want {
			t.Errorf("saved classifier disagrees on %q: %v vs %v", text, got, want)
		}
		if got, _ := loaded.ScamProbability(text); got != want {
			t.Errorf("loaded classifier disagrees on %q: %v vs %v", text, got, want)
		}
	}
}

func TestFileStoreReplacesStaleVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.gob")
	store, err := NewFileStore(path, zap.NewNop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	// Seed the store with a stale-version artifact.
	if _, err := ml.NewClassifier(store, zap.NewNop()); err != nil {
		t.Fatalf("NewClassifier: %v", err)
	}
	stale, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	stale.Version = "v0"
	if err := store.Save(stale); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Construction must retrain and overwrite the stale artifact.
	if _, err := ml.NewClassifier(store, zap.NewNop()); err != nil {
		t.Fatalf("NewClassifier (stale): %v", err)
	}
	artifact, err := store.Load()
	if err != nil {
		t.Fatalf("Load (after retrain): %v", err)
	}
	if artifact.Version != ml.ModelVersion {
		t.Errorf("version = %q, want %q after retrain", artifact.Version, ml.ModelVersion)
	}
}
