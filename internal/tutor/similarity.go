package tutor

// similarityRatio measures how alike two strings are as 2*M/T, where M is
// the total length of the longest matching blocks and T the combined length.
// 1 means identical, 0 means nothing in common.
func similarityRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb)) / float64(total)
}

// matchingRunes finds the longest common block, then recurses on the pieces
// before and after it.
func matchingRunes(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size + matchingRunes(a[:ai], b[:bi]) + matchingRunes(a[ai+size:], b[bi+size:])
}

func longestMatch(a, b []rune) (int, int, int) {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	bestI, bestJ, bestSize := 0, 0, 0
	lengths := map[int]int{}
	for i, r := range a {
		next := map[int]int{}
		for _, j := range b2j[r] {
			k := lengths[j-1] + 1
			next[j] = k
			if k > bestSize {
				bestI, bestJ, bestSize = i-k+1, j-k+1, k
			}
		}
		lengths = next
	}
	return bestI, bestJ, bestSize
}

// tooSimilar reports whether candidate is close to any prior explanation.
func tooSimilar(candidate string, prior []string, threshold float64) bool {
	for _, p := range prior {
		if similarityRatio(p, candidate) > threshold {
			return true
		}
	}
	return false
}
