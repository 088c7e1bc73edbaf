package truncio

// failureTable builds the Knuth-Morris-Pratt partial-match table for pattern:
// table[i] is the length of the longest proper prefix of pattern[:i] that is
// also its suffix. Built once per sentinel, O(len(pattern)).
func failureTable(pattern []byte) []int {
	table := make([]int, len(pattern)+1)

	k := 0
	for i := 1; i < len(pattern); i++ {
		for k > 0 && pattern[i] != pattern[k] {
			k = table[k]
		}
		if pattern[i] == pattern[k] {
			k++
		}
		table[i+1] = k
	}

	return table
}
