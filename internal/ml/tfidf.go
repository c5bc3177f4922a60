package ml

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// tokenRe mirrors the usual bag-of-words token pattern: runs of two or more
// word characters.
var tokenRe = regexp.MustCompile(`\b\w\w+\b`)

// stopWords is a compact English stop-word list applied before n-gram
// construction. Function words carry no scam signal and would crowd the
// capped vocabulary.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(
		"a about above after again against all am an and any are as at be because been before being below between both but by " +
			"can cannot could did do does doing down during each few for from further had has have having he her here hers him his how " +
			"i if in into is it its itself just me more most my myself no nor not now of off on once only or other our ours out over own " +
			"same she should so some such than that the their theirs them then there these they this those through to too under until up " +
			"very was we were what when where which while who whom why will with you your yours") {
		stopWords[w] = struct{}{}
	}
}

// Vectorizer is a TF-IDF term weighter over unigrams and bigrams with a
// capped vocabulary. Exported fields so the trained state gob-encodes.
type Vectorizer struct {
	Vocabulary map[string]int
	IDF        []float64
	MaxTerms   int
}

// terms tokenizes text and returns its unigrams and bigrams, stop words
// removed before bigram construction.
func terms(text string) []string {
	tokens := tokenRe.FindAllString(strings.ToLower(text), -1)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := stopWords[tok]; !stop {
			kept = append(kept, tok)
		}
	}
	out := make([]string, 0, len(kept)*2)
	out = append(out, kept...)
	for i := 0; i+1 < len(kept); i++ {
		out = append(out, kept[i]+" "+kept[i+1])
	}
	return out
}

// NewVectorizer fits a vectorizer on the corpus: the most frequent maxTerms
// terms form the vocabulary (ties broken alphabetically, so fitting is
// deterministic), with smoothed IDF weights.
func NewVectorizer(corpus []string, maxTerms int) *Vectorizer {
	totalCounts := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		ts := terms(doc)
		seen := make(map[string]struct{}, len(ts))
		for _, t := range ts {
			totalCounts[t]++
			seen[t] = struct{}{}
		}
		for t := range seen {
			docFreq[t]++
		}
	}

	ranked := make([]string, 0, len(totalCounts))
	for t := range totalCounts {
		ranked = append(ranked, t)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if totalCounts[ranked[i]] != totalCounts[ranked[j]] {
			return totalCounts[ranked[i]] > totalCounts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > maxTerms {
		ranked = ranked[:maxTerms]
	}
	sort.Strings(ranked)

	v := &Vectorizer{
		Vocabulary: make(map[string]int, len(ranked)),
		IDF:        make([]float64, len(ranked)),
		MaxTerms:   maxTerms,
	}
	n := float64(len(corpus))
	for i, t := range ranked {
		v.Vocabulary[t] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}
	return v
}

// Transform maps a text to its L2-normalized TF-IDF vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.IDF))
	for _, t := range terms(text) {
		if idx, ok := v.Vocabulary[t]; ok {
			vec[idx]++
		}
	}
	var norm float64
	for i := range vec {
		vec[i] *= v.IDF[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
