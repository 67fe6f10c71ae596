// Package editdist computes Levenshtein edit distance and the similarity ratios derived from it.
//
// Comparisons operate on runes and ignore ASCII case only; any other rune is
// compared as is. Insert, delete and substitute each cost 1.
package editdist

// Distance returns the edit distance between a and b using two rolling rows,
// so memory is O(len(b)) regardless of how long a is.
func Distance(a, b string) int {
	ra, rb := fold(a), fold(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = min(prev[j-1], prev[j], curr[j-1]) + 1
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

// DistanceFull is the textbook full-table version of Distance.
// Both always return the same value; this one is kept for verification and small inputs.
func DistanceFull(a, b string) int {
	ra, rb := fold(a), fold(b)
	la, lb := len(ra), len(rb)

	dp := make([][]int, la+1)
	for i := range dp {
		dp[i] = make([]int, lb+1)
		dp[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		dp[0][j] = j
	}
	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			if ra[i-1] == rb[j-1] {
				dp[i][j] = dp[i-1][j-1]
				continue
			}
			dp[i][j] = min(
				dp[i-1][j-1], // substitute
				dp[i-1][j],   // delete
				dp[i][j-1],   // insert
			) + 1
		}
	}
	return dp[la][lb]
}

// Similarity returns 1 - distance/max(len(a), len(b)), in [0, 1].
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	la, lb := len([]rune(a)), len([]rune(b))
	longest := max(la, lb)
	if longest == 0 {
		return 1.0
	}
	return 1.0 - float64(Distance(a, b))/float64(longest)
}

// IsSimilar reports whether a and b are within maxDistance edits of each other.
func IsSimilar(a, b string, maxDistance int) bool {
	return Distance(a, b) <= maxDistance
}

func fold(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			runes[i] = r + 'a' - 'A'
		}
	}
	return runes
}
