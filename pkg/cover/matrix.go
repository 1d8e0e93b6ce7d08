package cover

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"github.com/matzehuels/rackwatch/pkg/geom"
	"github.com/matzehuels/rackwatch/pkg/rack"
)

// Oracle answers whether a guard location sees a rack.
type Oracle interface {
	CanSee(g geom.Point, id rack.ID) bool
}

// Matrix is a boolean rack-by-guard coverage matrix. Row i is the rack with
// ID i, column j is candidate guard j.
type Matrix struct {
	rows, cols int
	data       []bitset // one bitset over columns per row
}

// NewMatrix returns an all-false matrix.
func NewMatrix(rows, cols int) *Matrix {
	m := &Matrix{rows: rows, cols: cols, data: make([]bitset, rows)}
	for i := range m.data {
		m.data[i] = newBitset(cols)
	}
	return m
}

// FromRows builds a matrix from a row-major boolean table.
func FromRows(rows [][]bool) *Matrix {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m := NewMatrix(len(rows), cols)
	for i, r := range rows {
		for j, v := range r {
			m.Set(i, j, v)
		}
	}
	return m
}

// Build evaluates oracle for every rack in arena against every location.
// It checks ctx between racks.
func Build(ctx context.Context, arena *rack.Arena, locs []geom.Point, oracle Oracle) (*Matrix, error) {
	m := NewMatrix(arena.Len(), len(locs))
	for _, r := range arena.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j, p := range locs {
			if oracle.CanSee(p, r.ID) {
				m.data[r.ID].set(j)
			}
		}
	}
	return m, nil
}

// Rows returns the number of racks.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of candidate guards.
func (m *Matrix) Cols() int { return m.cols }

// At reports whether guard j sees rack i.
func (m *Matrix) At(i, j int) bool { return m.data[i].has(j) }

// Value returns At(i, j) as 0 or 1.
func (m *Matrix) Value(i, j int) int {
	if m.At(i, j) {
		return 1
	}
	return 0
}

// Set assigns entry (i, j).
func (m *Matrix) Set(i, j int, v bool) {
	if v {
		m.data[i].set(j)
	} else {
		m.data[i].clear(j)
	}
}

// RowCount returns how many guards see rack i.
func (m *Matrix) RowCount(i int) int { return m.data[i].count() }

// Covers reports whether the guards in sel see every rack.
func (m *Matrix) Covers(sel []int) bool {
	for i := 0; i < m.rows; i++ {
		ok := false
		for _, j := range sel {
			if m.At(i, j) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Hash returns a hex SHA-256 digest of the matrix shape and contents.
func (m *Matrix) Hash() string {
	h := sha256.New()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(m.rows))
	binary.LittleEndian.PutUint64(dims[8:], uint64(m.cols))
	h.Write(dims[:])
	for _, r := range m.data {
		h.Write([]byte(r.key()))
	}
	return hex.EncodeToString(h.Sum(nil))
}
