package blockmapping

import "math/rand"

// Shuffle returns a copy of states in an order derived only from seed.
// It uses its own generator, the process wide one is left alone.
func Shuffle(states []BlockState, seed int64) []BlockState {
	out := make([]BlockState, len(states))
	copy(out, states)
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
