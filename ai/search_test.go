package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
}

func TestCosineSimilarityDegenerate(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}

func TestEncodeDecodeVector(t *testing.T) {
	enc, err := EncodeVector([]float32{0.5, -1.25, 3})
	require.NoError(t, err)
	dec, err := DecodeVector(enc)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, -1.25, 3}, dec)
}

func TestRankBySimilarity(t *testing.T) {
	query := []float32{1, 0}
	candidates := [][]float32{
		{0, 1},    // orthogonal
		{1, 0.1},  // close
		{1, 0},    // identical direction
		{-1, 0},   // opposite
	}
	ranked := RankBySimilarity(query, candidates, 2, 0.5)
	require.Len(t, ranked, 2)
	assert.Equal(t, 2, ranked[0].Index)
	assert.Equal(t, 1, ranked[1].Index)
}
