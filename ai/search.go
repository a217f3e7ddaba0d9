package ai

import (
	"encoding/json"
	"math"
	"sort"
)

// EncodeVector serializes an embedding for storage as a JSON column.
func EncodeVector(v []float32) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeVector restores an embedding from its stored JSON form.
func DecodeVector(s string) ([]float32, error) {
	var v []float32
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, err
	}
	return v, nil
}

// CosineSimilarity returns the cosine of the angle between two vectors, or 0
// when dimensions mismatch or either vector is zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Scored pairs an item index with its similarity to a query vector.
type Scored struct {
	Index int
	Score float64
}

// RankBySimilarity scores every candidate vector against the query and
// returns indices sorted by descending similarity, keeping at most topK with
// a score above minScore.
func RankBySimilarity(query []float32, candidates [][]float32, topK int, minScore float64) []Scored {
	scored := make([]Scored, 0, len(candidates))
	for i, c := range candidates {
		s := CosineSimilarity(query, c)
		if s >= minScore {
			scored = append(scored, Scored{Index: i, Score: s})
		}
	}
	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}
