package ldpc

import (
	"math/rand"
	"strconv"
	"testing"

	mat "github.com/nathanhack/sparsemat"
)

func TestEncode_AllChecksSatisfied(t *testing.T) {
	g := NewGraph(testH())
	H := testH()

	tests := []mat.SparseVector{
		mat.DOKVec(4, 0, 0, 0, 0),
		mat.DOKVec(4, 1, 0, 0, 0),
		mat.DOKVec(4, 1, 0, 1, 1),
		mat.DOKVec(4, 1, 1, 1, 1),
	}
	for i, message := range tests {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			codeword := Encode(g, message)

			if s := g.SatisfiedChecks(codeword); s != g.CheckCount() {
				t.Fatalf("expected %v checks satisfied but found %v", g.CheckCount(), s)
			}

			syndrome := mat.CSRVec(4)
			syndrome.MatMul(H, codeword)
			if !syndrome.IsZero() {
				t.Fatalf("expected zero syndrome but found %v", syndrome)
			}

			if !Message(g, codeword).Equals(message) {
				t.Fatalf("expected systematic bits %v but found %v", message, Message(g, codeword))
			}
		})
	}
}

func TestEncode_RejectsNonStaircase(t *testing.T) {
	//check 0's highest variable sits at column 3, not its parity column 2
	g := NewGraph(mat.CSRMat(2, 4,
		1, 0, 0, 1,
		0, 1, 1, 0,
	))

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic but found none")
		}
	}()
	Encode(g, mat.DOKVec(2, 1, 0))
}

func TestEncode_RandomMessages(t *testing.T) {
	g := NewGraph(testH())
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		message := mat.CSRVec(4)
		for i := 0; i < 4; i++ {
			message.Set(i, rng.Intn(2))
		}

		codeword := Encode(g, message)
		if s := g.SatisfiedChecks(codeword); s != g.CheckCount() {
			t.Fatalf("trial %v: expected %v checks satisfied but found %v", trial, g.CheckCount(), s)
		}
	}
}
