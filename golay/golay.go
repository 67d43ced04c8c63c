//Package golay implements the extended Golay(24,12) code: 12 message bits
// into a 24 bit codeword, correcting up to three bit errors per word.
package golay

import (
	"fmt"
	"math/bits"

	mat "github.com/nathanhack/sparsemat"
)

const (
	MessageBits  = 12
	CodewordBits = 24
)

//precomputed parity generator columns for Golay(24,12)
var encodeMatrix = [12]uint16{
	0x8eb, 0x93e, 0xa97, 0xdc6, 0x367, 0x6cd,
	0xd99, 0x3da, 0x7b4, 0xf68, 0x63b, 0xc75,
}

//Encode returns the 24 bit codeword for the low 12 bits of data:
// data in bits [12,24), parity checksum in bits [0,12).
func Encode(data uint16) uint32 {
	var checksum uint16
	for i := 0; i < MessageBits; i++ {
		if data&(1<<i) != 0 {
			checksum ^= encodeMatrix[i]
		}
	}
	return uint32(data)<<MessageBits | uint32(checksum)
}

func checksum(data uint16) uint16 {
	return uint16(Encode(data) & 0xFFF)
}

//Decode corrects up to three bit errors in a 24 bit codeword by syndrome
// weight search over candidate data-bit error patterns. ok is false when the
// word is uncorrectable.
func Decode(codeword uint32) (data uint16, ok bool) {
	data = uint16(codeword>>MessageBits) & 0xFFF
	parity := uint16(codeword) & 0xFFF

	syndrome := parity ^ checksum(data)
	if bits.OnesCount16(syndrome) <= 3 {
		//errors confined to the parity bits
		return data, true
	}

	for i := 0; i < MessageBits; i++ {
		test := data ^ 1<<i
		if bits.OnesCount16(parity^checksum(test)) <= 2 {
			return test, true
		}
	}

	for i := 0; i < MessageBits; i++ {
		for j := i + 1; j < MessageBits; j++ {
			test := data ^ 1<<i ^ 1<<j
			if bits.OnesCount16(parity^checksum(test)) <= 1 {
				return test, true
			}
		}
	}

	for i := 0; i < MessageBits; i++ {
		for j := i + 1; j < MessageBits; j++ {
			for k := j + 1; k < MessageBits; k++ {
				test := data ^ 1<<i ^ 1<<j ^ 1<<k
				if parity == checksum(test) {
					return test, true
				}
			}
		}
	}

	return 0, false
}

//EncodeVector encodes a MessageBits long bit vector into a CodewordBits long
// codeword vector. Vector index i maps to bit i of the packed word.
func EncodeVector(message mat.SparseVector) (codeword mat.SparseVector) {
	if message.Len() != MessageBits {
		panic(fmt.Sprintf("message length == %v is required but found %v", MessageBits, message.Len()))
	}

	var data uint16
	for i := 0; i < MessageBits; i++ {
		if message.At(i) == 1 {
			data |= 1 << i
		}
	}

	word := Encode(data)
	codeword = mat.CSRVec(CodewordBits)
	for i := 0; i < CodewordBits; i++ {
		codeword.Set(i, int(word>>i)&1)
	}
	return codeword
}

//DecodeVector hard-decides the LLR signs (negative favors bit=1), decodes
// the word and returns the message bits. When the word is uncorrectable the
// uncorrected hard data bits are returned, the trial harness counts whatever
// errors remain.
func DecodeVector(llr []float64) (message mat.SparseVector) {
	if len(llr) != CodewordBits {
		panic(fmt.Sprintf("llr length == %v is required but found %v", CodewordBits, len(llr)))
	}

	var word uint32
	for i, v := range llr {
		if v < 0 {
			word |= 1 << i
		}
	}

	data, ok := Decode(word)
	if !ok {
		data = uint16(word>>MessageBits) & 0xFFF
	}

	message = mat.CSRVec(MessageBits)
	for i := 0; i < MessageBits; i++ {
		message.Set(i, int(data>>i)&1)
	}
	return message
}
