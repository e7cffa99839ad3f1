package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainedContent(t *testing.T) *ContentFilter {
	t.Helper()
	p := processed(t, sampleSnapshot())
	m, err := p.ProductFeatures()
	require.NoError(t, err)

	f := NewContentFilter()
	f.Train(m)
	return f
}

func TestContentExcludesPurchased(t *testing.T) {
	f := trainedContent(t)

	recs := f.Recommend([]float64{25, 1}, []string{"p1", "p2"}, 3)
	assert.Equal(t, []string{"p3"}, recs)
}

func TestContentUntrainedReturnsEmpty(t *testing.T) {
	f := NewContentFilter()
	assert.Empty(t, f.Recommend([]float64{25, 1}, []string{"p1"}, 3))
}

func TestContentColdStartUnknownPurchases(t *testing.T) {
	f := trainedContent(t)

	// nada de lo comprado existe en el índice entrenado
	assert.Empty(t, f.Recommend([]float64{25, 1}, []string{"zzz", "qqq"}, 3))
	assert.Empty(t, f.Recommend([]float64{25, 1}, nil, 3))
}

func TestContentUserFeaturesDoNotAffectRanking(t *testing.T) {
	f := trainedContent(t)

	// el vector de usuario se acepta pero no participa del ranking
	a := f.Recommend([]float64{25, 1}, []string{"p1"}, 3)
	b := f.Recommend([]float64{99, 0}, []string{"p1"}, 3)
	c := f.Recommend(nil, []string{"p1"}, 3)
	assert.Equal(t, a, b)
	assert.Equal(t, a, c)
}

func TestContentRanksByAverageSimilarity(t *testing.T) {
	// p2 comparte categoría y marca con p1; p3 no comparte nada
	f := trainedContent(t)

	recs := f.Recommend(nil, []string{"p1"}, 3)
	require.Len(t, recs, 2)
	assert.Equal(t, "p2", recs[0], "el más parecido a p1 va primero")
	assert.Equal(t, "p3", recs[1])
}

func TestContentRespectsN(t *testing.T) {
	f := trainedContent(t)

	assert.Len(t, f.Recommend(nil, []string{"p1"}, 1), 1)
	assert.LessOrEqual(t, len(f.Recommend(nil, []string{"p1"}, 50)), 2)
}
