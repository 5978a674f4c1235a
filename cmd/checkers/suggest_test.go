package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "xyz", 3},
		{"kitten", "sitting", 3},
		{"govet", "gevet", 1},
		{"security", "securty", 1},
		{"same", "same", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, levenshtein(tt.a, tt.b))
		})
	}
}

func TestSuggest(t *testing.T) {
	profiles := []string{"default", "extreme", "portability", "security", "sensitive"}

	assert.Equal(t, []string{"security"}, suggest("securty", profiles))
	assert.Equal(t, []string{"default"}, suggest("defualt", profiles))
	assert.Empty(t, suggest("zzzzzzzzzzzzzzzzzz", profiles))
	assert.Empty(t, suggest("default", []string{"default"}), "exact matches are not suggestions")
}

func TestSuggest_LimitsToThree(t *testing.T) {
	got := suggest("abc", []string{"abd", "abe", "abf", "abg", "xyz"})

	assert.Equal(t, []string{"abd", "abe", "abf"}, got)
}
