package main

import (
	"sort"
)

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	if la < lb {
		a, b = b, a
		la, lb = lb, la
	}

	prev := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr := make([]int, lb+1)
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev = curr
	}
	return prev[lb]
}

// suggest returns up to 3 candidates closest to the input by edit distance.
func suggest(input string, candidates []string) []string {
	type match struct {
		name string
		dist int
	}

	maxDist := max(len(input)/2, 3)

	var matches []match
	for _, c := range candidates {
		if d := levenshtein(input, c); d <= maxDist && d > 0 {
			matches = append(matches, match{name: c, dist: d})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].name < matches[j].name
	})

	result := make([]string, 0, 3)
	for _, m := range matches[:min(len(matches), 3)] {
		result = append(result, m.name)
	}
	return result
}
