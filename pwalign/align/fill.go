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

// fill computes all cells in row-major order with the affine gap recurrence
//
//	S[i][j] = max(S, D, I at [i-1][j-1]) + (match or mismatch)
//	D[i][j] = max(S[i-1][j] + h + g, I[i-1][j] + h + g, D[i-1][j] + g)
//	I[i][j] = max(S[i][j-1] + h + g, I[i][j-1] + g,     D[i][j-1] + h + g)
//
// and returns the optimal score. In local mode, each value is clamped at 0,
// and the first cell with the highest score is recorded as the best cell.
func (mtx *matrix) fill(a, b []byte, scoring *Scoring) int64 {
	local := mtx.mode == Local
	ma, mi := int64(scoring.Match), int64(scoring.Mismatch)
	g := int64(scoring.GapExtend)
	hg := int64(scoring.GapOpen) + g

	var i, j int
	var c, diag, top, left *cell
	var score int64
	for i = 1; i < mtx.h; i++ {
		for j = 1; j < mtx.w; j++ {
			c = mtx.at(i, j)
			diag = mtx.at(i-1, j-1)
			top = mtx.at(i-1, j)
			left = mtx.at(i, j-1)

			if a[i-1] == b[j-1] {
				score = ma
			} else {
				score = mi
			}

			c.s = add(diag.max(), score)
			c.d = max3(add(top.s, hg), add(top.i, hg), add(top.d, g))
			c.i = max3(add(left.s, hg), add(left.i, g), add(left.d, hg))

			if local {
				if c.s < 0 {
					c.s = 0
				}
				if c.d < 0 {
					c.d = 0
				}
				if c.i < 0 {
					c.i = 0
				}
			}
		}
	}

	if !local {
		return mtx.at(mtx.h-1, mtx.w-1).max()
	}

	// strictly greater, so ties keep the first cell in row-major order.
	mtx.bestI, mtx.bestJ = 0, 0
	best := mtx.at(0, 0).max()
	var v int64
	for i = 1; i < mtx.h; i++ {
		for j = 1; j < mtx.w; j++ {
			v = mtx.at(i, j).max()
			if v > best {
				best = v
				mtx.bestI, mtx.bestJ = i, j
			}
		}
	}
	return best
}
