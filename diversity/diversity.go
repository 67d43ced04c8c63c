//Package diversity implements a rate 1/2 two-branch diversity code: every
// message bit is transmitted twice and the receiver combines the two soft
// branch values before deciding.
package diversity

import (
	"fmt"

	mat "github.com/nathanhack/sparsemat"
)

//Encode repeats the message, bit i lands at positions i and i+k.
func Encode(message mat.SparseVector) (codeword mat.SparseVector) {
	k := message.Len()
	codeword = mat.CSRVec(2 * k)
	for i := 0; i < k; i++ {
		b := message.At(i)
		codeword.Set(i, b)
		codeword.Set(i+k, b)
	}
	return codeword
}

//Decode sums the two branch LLRs per bit and hard-decides the combined
// value, negative favoring bit=1. llr length must be even.
func Decode(llr []float64) (message mat.SparseVector) {
	if len(llr)%2 != 0 {
		panic(fmt.Sprintf("llr length must be even but found %v", len(llr)))
	}

	k := len(llr) / 2
	message = mat.CSRVec(k)
	for i := 0; i < k; i++ {
		if llr[i]+llr[i+k] < 0 {
			message.Set(i, 1)
		}
	}
	return message
}
