package match

import "math"

// NoMatch is the sentinel returned by Rank when there are no candidates.
// Callers must treat it as "no match" and classify the requirement as unmet.
const NoMatch = -1

// Rank computes the cosine similarity between the query vector and every
// candidate and returns the index and score of the best match. Ties break to
// the lowest index. An empty candidate set yields (NoMatch, NoMatch).
func Rank(query []float64, candidates [][]float64) (int, float64) {
	if len(candidates) == 0 {
		return NoMatch, float64(NoMatch)
	}
	// Start below -1 so a best score of exactly -1 still selects a candidate.
	bestIdx, bestScore := NoMatch, math.Inf(-1)
	for i, c := range candidates {
		if score := cosine(query, c); score > bestScore {
			bestIdx, bestScore = i, score
		}
	}
	return bestIdx, bestScore
}

// cosine returns the cosine similarity of a and b, or 0 when either vector
// has zero magnitude. Vectors of unequal length compare over the shorter one.
func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
