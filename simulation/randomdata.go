package simulation

import (
	"math/rand"

	mat "github.com/nathanhack/sparsemat"
)

//RandomMessage creates a random message of length len using rng.
func RandomMessage(rng *rand.Rand, len int) mat.SparseVector {
	message := mat.CSRVec(len)
	for i := 0; i < len; i++ {
		message.Set(i, rng.Intn(2))
	}
	return message
}
