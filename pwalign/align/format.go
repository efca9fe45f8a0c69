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
	"bytes"
	"fmt"
	"io"

	"github.com/shenwei356/pwalign/pwalign/util"
)

// DefaultLineWidth is the number of alignment columns in a line.
const DefaultLineWidth = 60

// Format writes the alignment in blocks of width columns:
//
//	s1: 00001 GATTACA 7
//	          | |  ||
//	s2: 00001 GCATGCU 7
//
// Coordinates are 1-based positions in the original sequences.
func (r *Result) Format(w io.Writer, width int) error {
	if width <= 0 {
		width = DefaultLineWidth
	}

	posA, posB := r.ABegin, r.BBegin
	var n int
	var err error
	for start := 0; start < r.Len; start += width {
		end := start + width
		if end > r.Len {
			end = r.Len
		}

		if start > 0 {
			if _, err = fmt.Fprintln(w); err != nil {
				return err
			}
		}

		n = util.CountNonGaps(r.AlignA[start:end])
		_, err = fmt.Fprintf(w, "s1: %05d %s %d\n", posA, r.AlignA[start:end], posA+n-1)
		if err != nil {
			return err
		}
		posA += n

		_, err = fmt.Fprintf(w, "%10s%s\n", "", r.AlignM[start:end])
		if err != nil {
			return err
		}

		n = util.CountNonGaps(r.AlignB[start:end])
		_, err = fmt.Fprintf(w, "s2: %05d %s %d\n", posB, r.AlignB[start:end], posB+n-1)
		if err != nil {
			return err
		}
		posB += n
	}
	return nil
}

// FormatSummary writes the score and statistics of the alignment.
// Percentages are truncated, and 0 for an empty alignment.
func (r *Result) FormatSummary(w io.Writer) error {
	total := r.Matches + r.Mismatches + r.Gaps
	_, err := fmt.Fprintf(w, "Score: %d\n"+
		"Number of: Matches = %d, Mismatches = %d, Gaps = %d, Openings = %d\n"+
		"Identities = %d/%d (%d%%), Gaps = %d/%d (%d%%)\n",
		r.Score,
		r.Matches, r.Mismatches, r.Gaps, r.GapOpens,
		r.Matches, total, util.PercentInt(r.Matches, total),
		r.Gaps, total, util.PercentInt(r.Gaps, total))
	return err
}

// format renders the three layers of the matrix.
func (mtx *matrix) format(a, b []byte) []byte {
	var buf bytes.Buffer
	var i, j int
	var c *cell

	value := func(v int64) string {
		if v <= NegInf {
			return "-inf"
		}
		return fmt.Sprintf("%d", v)
	}

	for _, state := range [...]State{S, D, I} {
		fmt.Fprintf(&buf, "[%s]\n", state)

		// b
		fmt.Fprintf(&buf, "%c %5s", ' ', " ")
		for j = 0; j < len(b); j++ {
			fmt.Fprintf(&buf, " %5c", b[j])
		}
		buf.WriteByte('\n')

		for i = 0; i < mtx.h; i++ {
			if i == 0 {
				buf.WriteByte(' ')
			} else {
				buf.WriteByte(a[i-1])
			}

			for j = 0; j < mtx.w; j++ {
				c = mtx.at(i, j)
				fmt.Fprintf(&buf, " %5s", value(c.get(state)))
			}
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes()
}
