package ldpc

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	mat "github.com/nathanhack/sparsemat"
)

//LoadMatrix reads a dense 0/1 parity check matrix from a whitespace
// separated text file, one matrix row per line. Rows are checks and columns
// are codeword bits, so a (Nr,Nc) matrix implies code rate (Nc-Nr)/Nc.
// Row m must place its highest 1 at its parity column k+m, the systematic
// staircase structure the encoder's back substitution relies on.
func LoadMatrix(filepath string) (mat.SparseMat, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("error while reading file %v: %v", filepath, err)
	}
	defer f.Close()

	var rows [][]int
	cols := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		row := make([]int, len(fields))
		for i, field := range fields {
			v, err := strconv.Atoi(field)
			if err != nil || (v != 0 && v != 1) {
				return nil, fmt.Errorf("matrix entries must be 0 or 1 but found %q on line %v", field, len(rows)+1)
			}
			row[i] = v
		}

		if cols == 0 {
			cols = len(row)
		} else if len(row) != cols {
			return nil, fmt.Errorf("matrix rows must all have %v columns but line %v has %v", cols, len(rows)+1, len(row))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error while reading file %v: %v", filepath, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("matrix file %v contains no rows", filepath)
	}

	k := cols - len(rows)
	if k < 0 {
		return nil, fmt.Errorf("matrix file %v has more rows than columns", filepath)
	}
	for m, row := range rows {
		last := -1
		for j, v := range row {
			if v == 1 {
				last = j
			}
		}
		if last != k+m {
			return nil, fmt.Errorf("row %v must have its highest 1 at parity column %v but found %v", m+1, k+m, last)
		}
	}

	H := mat.DOKMat(len(rows), cols)
	for i, row := range rows {
		for j, v := range row {
			if v == 1 {
				H.Set(i, j, 1)
			}
		}
	}
	return H, nil
}
