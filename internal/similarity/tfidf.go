package similarity

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

// maxVocabulary caps the joint vocabulary per comparison.
const maxVocabulary = 5000

var errDegenerateInput = errors.New("degenerate input for vectorization")

// cosineTFIDF vectorizes both texts with term-frequency–inverse-document-
// frequency weights over unigrams and bigrams and returns their cosine
// similarity. The vocabulary is fit jointly over exactly these two documents
// and discarded afterwards: fitting is stateful, so a fresh fit per
// comparison keeps concurrent comparisons independent.
func cosineTFIDF(a, b string) (float64, error) {
	countsA := termCounts(tokenize(a))
	countsB := termCounts(tokenize(b))
	if len(countsA) == 0 || len(countsB) == 0 {
		return 0, errDegenerateInput
	}

	vocab := buildVocabulary(countsA, countsB, maxVocabulary)

	vecA := tfidfVector(countsA, countsB, vocab)
	vecB := tfidfVector(countsB, countsA, vocab)

	var dot float64
	for i := range vecA {
		dot += vecA[i] * vecB[i]
	}
	if math.IsNaN(dot) || math.IsInf(dot, 0) {
		return 0, errDegenerateInput
	}
	return dot, nil
}

// tokenize splits text into lower-case alphanumeric terms of two or more
// runes, the token shape the reference vectorizer used.
func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() > 1 {
			tokens = append(tokens, b.String())
		}
		b.Reset()
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()
	return tokens
}

// termCounts tallies unigram and bigram frequencies.
func termCounts(tokens []string) map[string]int {
	counts := make(map[string]int, len(tokens)*2)
	for i, tok := range tokens {
		counts[tok]++
		if i+1 < len(tokens) {
			counts[tok+" "+tokens[i+1]]++
		}
	}
	return counts
}

// buildVocabulary merges both documents' terms, keeping the most frequent
// limit terms. Ties break lexically so the fit is deterministic.
func buildVocabulary(countsA, countsB map[string]int, limit int) []string {
	total := make(map[string]int, len(countsA)+len(countsB))
	for t, c := range countsA {
		total[t] += c
	}
	for t, c := range countsB {
		total[t] += c
	}

	vocab := make([]string, 0, len(total))
	for t := range total {
		vocab = append(vocab, t)
	}
	sort.Slice(vocab, func(i, j int) bool {
		if total[vocab[i]] != total[vocab[j]] {
			return total[vocab[i]] > total[vocab[j]]
		}
		return vocab[i] < vocab[j]
	})
	if len(vocab) > limit {
		vocab = vocab[:limit]
	}
	return vocab
}

// tfidfVector builds an L2-normalized tf-idf vector for the document with
// counts own, where other is the second document of the joint fit. The idf
// uses the smoothed form ln((1+n)/(1+df)) + 1 with n = 2.
func tfidfVector(own, other map[string]int, vocab []string) []float64 {
	vec := make([]float64, len(vocab))
	var norm float64
	for i, term := range vocab {
		tf := float64(own[term])
		if tf == 0 {
			continue
		}
		df := 1.0
		if other[term] > 0 {
			df = 2.0
		}
		idf := math.Log(3.0/(1.0+df)) + 1.0
		vec[i] = tf * idf
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
