package tournament

// bye pads an odd roster so the circle method has an even table
const bye = -1

// Pair is one scheduled match between two roster positions, A < B
type Pair struct {
	A, B int
}

// Schedule builds a round-robin over n participants with the circle
// method: position 0 stays fixed while the others rotate one seat per
// round, and seat i plays seat len-1-i. Every participant plays at most
// once per round and every unordered pair exactly once.
func Schedule(n int) [][]Pair {
	if n < 2 {
		return nil
	}

	seats := make([]int, n, n+1)
	for i := range seats {
		seats[i] = i
	}
	if n%2 == 1 {
		seats = append(seats, bye)
	}
	size := len(seats)

	rounds := make([][]Pair, 0, size-1)
	for range size - 1 {
		round := make([]Pair, 0, size/2)
		for i := range size / 2 {
			a, b := seats[i], seats[size-1-i]
			if a == bye || b == bye {
				continue
			}
			round = append(round, Pair{A: min(a, b), B: max(a, b)})
		}
		rounds = append(rounds, round)

		// rotate everything but the first seat one place clockwise
		last := seats[size-1]
		copy(seats[2:], seats[1:size-1])
		seats[1] = last
	}
	return rounds
}

// Flatten returns the pairs of every round in play order
func Flatten(rounds [][]Pair) []Pair {
	var out []Pair
	for _, r := range rounds {
		out = append(out, r...)
	}
	return out
}
