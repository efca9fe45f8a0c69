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
	"github.com/pkg/errors"
	"github.com/shenwei356/pwalign/pwalign/util"
)

// ErrInconsistentMatrix means no predecessor state explains a cell value
// during the traceback. It indicates a bug, never bad input.
var ErrInconsistentMatrix = errors.New("inconsistent alignment matrix")

// startState returns the state with the highest score in the cell,
// preferring S, then D, then I.
func startState(c *cell) State {
	best := c.max()
	if c.s == best {
		return S
	}
	if c.d == best {
		return D
	}
	return I
}

// traceback walks back from the cell (i, j) and fills the alignment strings
// and counts of r.
//
// Global alignment stops at the origin, local alignment stops as soon as
// the highest score of the current cell is 0.
func (mtx *matrix) traceback(a, b []byte, scoring *Scoring, i, j int, r *Result) error {
	local := mtx.mode == Local
	ma, mi := int64(scoring.Match), int64(scoring.Mismatch)
	g := int64(scoring.GapExtend)
	hg := int64(scoring.GapOpen) + g

	r.AEnd, r.BEnd = i, j

	var c, prev *cell
	var v, score int64
	var match bool
	state := startState(mtx.at(i, j))
	for i > 0 || j > 0 {
		c = mtx.at(i, j)
		if local && c.max() == 0 {
			break
		}
		v = c.get(state)

		switch state {
		case S:
			if i == 0 || j == 0 {
				return errors.Wrapf(ErrInconsistentMatrix, "state S at cell (%d, %d)", i, j)
			}
			match = a[i-1] == b[j-1]
			if match {
				score = ma
				r.Matches++
			} else {
				score = mi
				r.Mismatches++
			}

			prev = mtx.at(i-1, j-1)
			if v == add(prev.d, score) {
				state = D
			} else if v == add(prev.s, score) {
				state = S
			} else if v == add(prev.i, score) || (local && v == 0) {
				state = I
			} else {
				return errors.Wrapf(ErrInconsistentMatrix, "no predecessor for state S at cell (%d, %d)", i, j)
			}

			i--
			j--
			r.AlignA = append(r.AlignA, a[i])
			r.AlignB = append(r.AlignB, b[j])
			if match {
				r.AlignM = append(r.AlignM, '|')
			} else {
				r.AlignM = append(r.AlignM, ' ')
			}
		case D:
			if i == 0 {
				return errors.Wrapf(ErrInconsistentMatrix, "state D at cell (%d, %d)", i, j)
			}

			prev = mtx.at(i-1, j)
			if v == add(prev.d, g) {
				state = D
			} else if v == add(prev.s, hg) {
				state = S
				r.GapOpens++
			} else if v == add(prev.i, hg) || (local && v == 0) {
				state = I
				r.GapOpens++
			} else {
				return errors.Wrapf(ErrInconsistentMatrix, "no predecessor for state D at cell (%d, %d)", i, j)
			}

			i--
			r.AlignA = append(r.AlignA, a[i])
			r.AlignB = append(r.AlignB, '-')
			r.AlignM = append(r.AlignM, ' ')
			r.Gaps++
		case I:
			if j == 0 {
				return errors.Wrapf(ErrInconsistentMatrix, "state I at cell (%d, %d)", i, j)
			}

			prev = mtx.at(i, j-1)
			if v == add(prev.i, g) {
				state = I
			} else if v == add(prev.s, hg) {
				state = S
				r.GapOpens++
			} else if v == add(prev.d, hg) || (local && v == 0) {
				state = D
				r.GapOpens++
			} else {
				return errors.Wrapf(ErrInconsistentMatrix, "no predecessor for state I at cell (%d, %d)", i, j)
			}

			j--
			r.AlignA = append(r.AlignA, '-')
			r.AlignB = append(r.AlignB, b[j])
			r.AlignM = append(r.AlignM, ' ')
			r.Gaps++
		}
	}

	util.ReverseBytes(r.AlignA)
	util.ReverseBytes(r.AlignM)
	util.ReverseBytes(r.AlignB)

	r.Len = len(r.AlignM)
	if r.Len == 0 {
		r.AEnd, r.BEnd = 0, 0
		return nil
	}
	r.ABegin, r.BBegin = i+1, j+1
	return nil
}
