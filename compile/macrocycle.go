package compile

import "sort"

// macroCallGraph is the adjacency list of a macro-call graph: each macro
// name maps to the names of the macros it invokes in its body. detectCycle
// walks it with three-color DFS and Booth's minimal-rotation algorithm to
// report a deterministic representative of the first cycle found, adapted
// from a general-purpose graph cycle detector in the retrieval pack
// retargeted to this always-directed, attribute-free name graph (macro
// calls have no weights or parallel edges to track).
type macroCallGraph map[string][]string

const (
	white = iota
	gray
	black
)

// detectCycle returns (true, cyclePath) if the call graph contains a cycle
// reachable from any macro, where cyclePath is a canonical closed loop
// (first element repeated at the end). Returns (false, nil) if acyclic.
func detectCycle(g macroCallGraph) (bool, []string) {
	names := make([]string, 0, len(g))
	for n := range g {
		names = append(names, n)
	}
	sort.Strings(names)

	state := make(map[string]int, len(names))
	var path []string
	var found []string

	var visit func(id string) bool
	visit = func(id string) bool {
		state[id] = gray
		path = append(path, id)
		for _, nbr := range g[id] {
			switch state[nbr] {
			case white:
				if visit(nbr) {
					return true
				}
			case gray:
				idx := indexOf(path, nbr)
				seq := append([]string(nil), path[idx:]...)
				seq = append(seq, nbr)
				found = canonicalCycle(seq)
				return true
			}
		}
		path = path[:len(path)-1]
		state[id] = black
		return false
	}

	for _, n := range names {
		if state[n] == white {
			if visit(n) {
				return true, found
			}
		}
	}
	return false, nil
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

// canonicalCycle returns the lexicographically minimal rotation of the
// closed cycle seq (seq[0] == seq[len(seq)-1]), considering both the
// forward sequence and its reversal, so the same cycle reported from
// different starting points renders identically.
func canonicalCycle(seq []string) []string {
	n := len(seq) - 1
	base := seq[:n]

	rotF := minimalRotation(base)
	rotB := minimalRotation(reverseStrings(base))

	picker := rotF
	if compareStrings(rotB, rotF) < 0 {
		picker = rotB
	}
	return append(append([]string(nil), picker...), picker[0])
}

func reverseStrings(s []string) []string {
	out := make([]string, len(s))
	for i := range s {
		out[i] = s[len(s)-1-i]
	}
	return out
}

func compareStrings(a, b []string) int {
	for i := range a {
		if a[i] < b[i] {
			return -1
		} else if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

// minimalRotation implements Booth's algorithm: the lexicographically
// smallest rotation of s, in O(n).
func minimalRotation(s []string) []string {
	doubled := append(append([]string(nil), s...), s...)
	n := len(s)
	f := make([]int, 2*n)
	for i := range f {
		f[i] = -1
	}
	k := 0
	for j := 1; j < 2*n; j++ {
		i := f[j-k-1]
		for i != -1 && doubled[j] != doubled[k+i+1] {
			if doubled[j] < doubled[k+i+1] {
				k = j - i - 1
			}
			i = f[i]
		}
		if i == -1 && doubled[j] != doubled[k] {
			if doubled[j] < doubled[k] {
				k = j
			}
			f[j-k] = -1
		} else if doubled[j] == doubled[k+i+1] {
			f[j-k] = i + 1
		} else {
			f[j-k] = -1
		}
	}
	res := make([]string, n)
	for i := 0; i < n; i++ {
		res[i] = doubled[k+i]
	}
	return res
}
