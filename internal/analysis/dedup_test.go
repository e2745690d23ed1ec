package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"ISO 9001 certified", "iso 9001 CERTIFIED", 1},
		{"a b c d", "a b", 0.5},
		{"a b", "a b c d", 0.5},
		{"one two", "three four", 0},
		{"", "", 1},
		{"", "word", 0},
		{"a a a b", "a b", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Similarity(tt.a, tt.b), "Similarity(%q, %q)", tt.a, tt.b)
		assert.Equal(t, Similarity(tt.a, tt.b), Similarity(tt.b, tt.a), "Similarity(%q, %q) is not symmetric", tt.a, tt.b)
	}
}

func TestDedup(t *testing.T) {
	items := []Criterion{
		{Description: "Company must be registered in the EU", Importance: Critical},
		{Description: "Annual revenue above 1M EUR", Importance: Important},
		{Description: "company must be registered in the EU region", Importance: Important},
		{Description: "Annual revenue above 2M USD", Importance: Critical},
		{Description: "ISO 27001 certification", Importance: NiceToHave},
	}

	want := []Criterion{
		{Description: "Company must be registered in the EU", Importance: Critical},
		{Description: "Annual revenue above 1M EUR", Importance: Important},
		{Description: "Annual revenue above 2M USD", Importance: Critical},
		{Description: "ISO 27001 certification", Importance: NiceToHave},
	}

	got := Dedup(items)
	assert.Equal(t, want, got)
	assert.Equal(t, got, Dedup(got), "dedup is not idempotent")
	assert.Equal(t, "company must be registered in the EU region", items[2].Description, "input was modified")
}

func TestDedupThresholdIsExclusive(t *testing.T) {
	// 7 of 10 shared words is exactly 0.7 and is kept.
	a := Criterion{Description: "w1 w2 w3 w4 w5 w6 w7 a8 a9 a10"}
	b := Criterion{Description: "w1 w2 w3 w4 w5 w6 w7 b8 b9 b10"}

	assert.Len(t, Dedup([]Criterion{a, b}), 2)
}

func TestDedupEmpty(t *testing.T) {
	assert.Empty(t, Dedup(nil))
}
