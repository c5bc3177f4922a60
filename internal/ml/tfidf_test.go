package ml

import (
	"math"
	"testing"
)

func TestVectorizerVocabularyCap(t *testing.T) {
	corpus := []string{
		"share your bank account details now",
		"verify your bank account immediately",
		"lottery prize reward claim bonus",
	}
	v := NewVectorizer(corpus, 5)
	if len(v.Vocabulary) != 5 {
		t.Fatalf("vocabulary size = %d, want 5", len(v.Vocabulary))
	}
	if len(v.IDF) != 5 {
		t.Fatalf("idf size = %d, want 5", len(v.IDF))
	}
}

func TestVectorizerStopWordsDropped(t *testing.T) {
	v := NewVectorizer([]string{"the bank and the account"}, 100)
	for _, stop := range []string{"the", "and"} {
		if _, ok := v.Vocabulary[stop]; ok {
			t.Errorf("stop word %q made it into the vocabulary", stop)
		}
	}
	if _, ok := v.Vocabulary["bank account"]; !ok {
		t.Error("bigram skipping stop words missing from vocabulary")
	}
}

func TestTransformL2Normalized(t *testing.T) {
	v := NewVectorizer([]string{
		"verify bank account",
		"lottery prize claim",
	}, 100)

	vec := v.Transform("verify bank account now")
	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if math.Abs(norm-1.0) > 1e-9 {
		t.Errorf("squared norm = %v, want 1.0", norm)
	}

	// Out-of-vocabulary text maps to the zero vector.
	zero := v.Transform("completely unrelated words")
	for i, x := range zero {
		if x != 0 {
			t.Errorf("component %d = %v, want 0", i, x)
		}
	}
}

func TestVectorizerFitDeterministic(t *testing.T) {
	corpus := append(append([]string{}, scamMessages...), legitimateMessages...)
	a := NewVectorizer(corpus, maxVocabulary)
	b := NewVectorizer(corpus, maxVocabulary)

	if len(a.Vocabulary) != len(b.Vocabulary) {
		t.Fatalf("vocabulary sizes differ: %d vs %d", len(a.Vocabulary), len(b.Vocabulary))
	}
	for term, idx := range a.Vocabulary {
		if b.Vocabulary[term] != idx {
			t.Errorf("term %q indexed %d vs %d", term, idx, b.Vocabulary[term])
		}
	}
	for i := range a.IDF {
		if a.IDF[i] != b.IDF[i] {
			t.Errorf("idf[%d] differs: %v vs %v", i, a.IDF[i], b.IDF[i])
		}
	}
}
