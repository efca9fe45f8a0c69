// Copyright © 2023-2024 Wei Shen <shenwei356@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package align

import (
	"math"

	"github.com/pkg/errors"
)

// NegInf marks an unreachable state. It is far above the minimum int64,
// and add never goes below it, so it always loses a comparison and never wraps.
const NegInf int64 = math.MinInt64 / 4

// add is a saturating addition keeping NegInf absorbing.
func add(a, b int64) int64 {
	if a <= NegInf {
		return NegInf
	}
	v := a + b
	if v < NegInf {
		return NegInf
	}
	return v
}

func max3(a, b, c int64) int64 {
	if a > b {
		if a > c {
			return a
		}
		return c
	}
	if b > c {
		return b
	}
	return c
}

// State is one of the three layers of the matrix.
type State uint8

const (
	S State = iota // substitution, symbol against symbol
	D              // deletion, gap in sequence 2
	I              // insertion, gap in sequence 1
)

func (s State) String() string {
	switch s {
	case S:
		return "S"
	case D:
		return "D"
	case I:
		return "I"
	}
	return "?"
}

// cell holds the three running scores of a position.
type cell struct {
	s, d, i int64
}

func (c *cell) max() int64 {
	return max3(c.s, c.d, c.i)
}

func (c *cell) get(s State) int64 {
	switch s {
	case D:
		return c.d
	case I:
		return c.i
	}
	return c.s
}

// matrix is the dense (m+1)x(n+1) grid of one alignment run.
type matrix struct {
	mode  Mode
	h, w  int // height (m+1) and width (n+1)
	cells []cell

	// the best cell, only for local alignment
	bestI, bestJ int
}

// ErrAllocation means the matrix could not be allocated.
var ErrAllocation = errors.New("failed to allocate the alignment matrix")

// newMatrix allocates the grid for sequences of length m and n,
// and initializes row 0 and column 0 according to the mode.
func newMatrix(m, n int, mode Mode, scoring *Scoring, maxCells int) (mtx *matrix, err error) {
	h, w := m+1, n+1
	if m < 0 || n < 0 || w > math.MaxInt/h {
		return nil, errors.Wrapf(ErrAllocation, "matrix of %d x %d cells is too large", h, w)
	}
	size := h * w
	if maxCells > 0 && size > maxCells {
		return nil, errors.Wrapf(ErrAllocation, "%d cells exceed the limit of %d", size, maxCells)
	}

	// make panics when the size can not be satisfied
	defer func() {
		if r := recover(); r != nil {
			mtx = nil
			err = errors.Wrapf(ErrAllocation, "%d cells: %v", size, r)
		}
	}()

	mtx = &matrix{
		mode:  mode,
		h:     h,
		w:     w,
		cells: make([]cell, size),
	}
	mtx.init(scoring)
	return mtx, nil
}

func (mtx *matrix) at(i, j int) *cell {
	return &mtx.cells[i*mtx.w+j]
}

func (mtx *matrix) init(scoring *Scoring) {
	// the origin and, for local alignment, all boundary cells are zero.
	if mtx.mode == Local {
		return
	}

	h, g := scoring.GapOpen, int64(scoring.GapExtend)
	var c *cell
	for i := 1; i < mtx.h; i++ {
		c = mtx.at(i, 0)
		c.s = NegInf
		c.d = add(int64(h), g*int64(i))
		c.i = NegInf
	}
	for j := 1; j < mtx.w; j++ {
		c = mtx.at(0, j)
		c.s = NegInf
		c.d = NegInf
		c.i = add(int64(h), g*int64(j))
	}
}
