package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"whitespace only", "   \n  ", nil},
		{"single sentence", "The roof needs inspection.", []string{"The roof needs inspection."}},
		{
			"multiple terminators",
			"Is it leaking? Yes! Call a professional today. They will help.",
			[]string{"Is it leaking", "Yes", "Call a professional today", "They will help."},
		},
		{
			"ellipsis collapses",
			"Wait... then decide. Done.",
			[]string{"Wait", "then decide", "Done."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.text))
		})
	}
}

func TestJaccard(t *testing.T) {
	set := func(words ...string) map[string]bool {
		m := make(map[string]bool)
		for _, w := range words {
			m[w] = true
		}
		return m
	}

	t.Run("both empty is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Jaccard(nil, nil))
		assert.Equal(t, 0.0, Jaccard(map[string]bool{}, map[string]bool{}))
	})

	t.Run("identical non-empty is one", func(t *testing.T) {
		s := set("roof", "repair", "cost")
		assert.Equal(t, 1.0, Jaccard(s, s))
	})

	t.Run("one empty is zero", func(t *testing.T) {
		assert.Equal(t, 0.0, Jaccard(set("roof"), nil))
	})

	t.Run("partial overlap", func(t *testing.T) {
		a := set("roof", "repair")
		b := set("roof", "inspection")
		assert.InDelta(t, 1.0/3.0, Jaccard(a, b), 0.001)
	})
}

func TestOverlapMin(t *testing.T) {
	a := WordSet("the quick brown fox jumps over fences", 3)
	b := WordSet("the quick brown fox sleeps", 3)
	// a: quick brown jumps over fences; b: quick brown sleeps (tokens >3 chars).
	// intersection 2, min set size 3.
	assert.InDelta(t, 2.0/3.0, OverlapMin(a, b), 0.001)

	assert.Equal(t, 0.0, OverlapMin(nil, b))
	assert.Equal(t, 0.0, OverlapMin(a, nil))
}

func TestSignificantWords(t *testing.T) {
	set := SignificantWords("The inspection of the roof is important")
	assert.True(t, set["inspection"])
	assert.True(t, set["roof"])
	assert.True(t, set["important"])
	assert.False(t, set["the"], "stop words excluded")
	assert.False(t, set["of"], "short words excluded")
	assert.False(t, set["is"])
}
