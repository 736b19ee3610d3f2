// Package similarity scores how faithfully a markdown rendering preserves
// the transcript it was derived from.
package similarity

import (
	"math"
	"regexp"
	"strings"
)

// Blend weights for the two sub-scores.
const (
	levenshteinWeight = 0.6
	cosineWeight      = 0.4
)

// fallbackScore replaces the result when the computation degenerates. The
// score is an advisory signal, so degradation beats propagating an error.
const fallbackScore = 0.5

// Score is a blended fidelity score with its constituents, all in [0, 1].
type Score struct {
	Overall     float64 `json:"overall"`
	Levenshtein float64 `json:"levenshtein"`
	Cosine      float64 `json:"cosine"`
	Degraded    bool    `json:"degraded"`
}

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	mdPunctRe    = regexp.MustCompile("[#*`\\-_]")
	markerRe     = regexp.MustCompile(`--- (página|slide|tabela) \d+ ---`)
)

// normalize prepares a text for comparison: lower-case, collapsed whitespace,
// markdown punctuation and injected page/slide/table markers removed.
func normalize(text string) string {
	text = strings.ToLower(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = markerRe.ReplaceAllString(text, "")
	text = mdPunctRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// ScoreTexts computes the blended similarity between a transcript and its
// markdown rendering. It never fails: degenerate computations collapse to the
// conservative fallback value instead.
func ScoreTexts(original, markdown string) Score {
	normOriginal := normalize(original)
	normMarkdown := normalize(markdown)

	if normOriginal == "" && normMarkdown == "" {
		return Score{Overall: 1.0, Levenshtein: 1.0, Cosine: 1.0}
	}
	if normOriginal == "" || normMarkdown == "" {
		return Score{}
	}

	a := []rune(normOriginal)
	b := []rune(normMarkdown)
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	lev := 1.0 - float64(levenshtein(a, b))/float64(maxLen)

	cos, err := cosineTFIDF(normOriginal, normMarkdown)
	if err != nil {
		// Degenerate vectorization (all-stopword or single-token input):
		// the edit-distance similarity stands in for the vector sub-score.
		cos = lev
	}

	overall := levenshteinWeight*lev + cosineWeight*cos
	if math.IsNaN(overall) || math.IsInf(overall, 0) {
		return Score{Overall: fallbackScore, Levenshtein: fallbackScore, Cosine: fallbackScore, Degraded: true}
	}

	return Score{
		Overall:     clamp01(overall),
		Levenshtein: clamp01(lev),
		Cosine:      clamp01(cos),
	}
}

// Levenshtein returns the edit distance between two strings, counted in runes.
func Levenshtein(s1, s2 string) int {
	return levenshtein([]rune(s1), []rune(s2))
}

// levenshtein computes edit distance with a single-row recurrence; the row
// spans the shorter string to bound memory at O(min(len)).
func levenshtein(s1, s2 []rune) int {
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}
	if len(s1) == 0 {
		return len(s2)
	}

	row := make([]int, len(s1)+1)
	for i := range row {
		row[i] = i
	}

	for i2, c2 := range s2 {
		prev := row[0]
		row[0] = i2 + 1
		for i1, c1 := range s1 {
			cur := row[i1+1]
			if c1 == c2 {
				row[i1+1] = prev
			} else {
				row[i1+1] = 1 + min(prev, row[i1], row[i1+1])
			}
			prev = cur
		}
	}
	return row[len(s1)]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
