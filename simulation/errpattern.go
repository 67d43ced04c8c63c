package simulation

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

//WriteErrorPattern writes the concatenated error indicator streams of all
// points, in sweep order, as little endian two-byte signed integers (0 or 1),
// one per transmitted bit position. Consumed by downstream analysis tools.
func WriteErrorPattern(filepath string, points []PointStats) error {
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("error while creating file %v: %v", filepath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, p := range points {
		if err := binary.Write(w, binary.LittleEndian, p.ErrorPattern); err != nil {
			return fmt.Errorf("error while writing file %v: %v", filepath, err)
		}
	}
	return w.Flush()
}
