package simulation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteErrorPattern(t *testing.T) {
	points := []PointStats{
		{ErrorPattern: []int16{0, 1, 0, 0}},
		{ErrorPattern: []int16{1, 1}},
	}

	path := filepath.Join(t.TempDir(), "errors.bin")
	if err := WriteErrorPattern(path, points); err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	bs, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected no error but found: %v", err)
	}

	//two bytes per bit, little endian, points concatenated in sweep order
	expected := []byte{0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 1, 0}
	if len(bs) != len(expected) {
		t.Fatalf("expected %v bytes but found %v", len(expected), len(bs))
	}
	for i := range expected {
		if bs[i] != expected[i] {
			t.Fatalf("byte %v: expected %v but found %v", i, expected[i], bs[i])
		}
	}
}

func TestWriteErrorPattern_BadPath(t *testing.T) {
	err := WriteErrorPattern(filepath.Join(t.TempDir(), "missing", "errors.bin"), nil)
	if err == nil {
		t.Fatalf("expected an error but found none")
	}
}
