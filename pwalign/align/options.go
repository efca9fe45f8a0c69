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
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Mode selects the boundary initialization of the matrix
// and the termination rule of the traceback.
type Mode uint8

const (
	Global Mode = iota // Needleman-Wunsch
	Local              // Smith-Waterman
)

func (m Mode) String() string {
	switch m {
	case Global:
		return "global"
	case Local:
		return "local"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode parses an alignment mode from its name.
// "0" and "1" are accepted as in the old command line.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "global", "nw", "needleman-wunsch", "0":
		return Global, nil
	case "local", "sw", "smith-waterman", "1":
		return Local, nil
	}
	return Global, fmt.Errorf("invalid alignment mode: %q, available: global, local", s)
}

// Scoring is the affine gap scoring scheme.
// A gap of length L costs GapOpen + GapExtend*L.
type Scoring struct {
	Match     int `json:"match"`      // score of a match, ma
	Mismatch  int `json:"mismatch"`   // score of a mismatch, mi
	GapOpen   int `json:"gap_open"`   // one-time cost of opening a gap, h
	GapExtend int `json:"gap_extend"` // cost of each gap symbol, g
}

func (s Scoring) String() string {
	return fmt.Sprintf("Match = %d, Mismatch = %d, h = %d, g = %d",
		s.Match, s.Mismatch, s.GapOpen, s.GapExtend)
}

// DefaultScoring is the scoring scheme used when nothing is given.
var DefaultScoring = Scoring{
	Match:     1,
	Mismatch:  -2,
	GapOpen:   -5,
	GapExtend: -2,
}

// MaxScoreValue is the largest magnitude accepted for a scoring value.
const MaxScoreValue = 1 << 30

// ErrInvalidScoring means a scoring value is out of the accepted range.
var ErrInvalidScoring = errors.New("invalid scoring scheme")

// CheckScoring checks that every value lies in [-MaxScoreValue, MaxScoreValue].
// Any finite values in that range are accepted, though alignments only
// make sense with Match > 0 and Mismatch < Match.
func CheckScoring(s Scoring) error {
	for _, v := range [...]struct {
		name  string
		value int
	}{
		{"match", s.Match},
		{"mismatch", s.Mismatch},
		{"h", s.GapOpen},
		{"g", s.GapExtend},
	} {
		if v.value > MaxScoreValue || v.value < -MaxScoreValue {
			return errors.Wrapf(ErrInvalidScoring, "%s = %d, valid range: [%d, %d]",
				v.name, v.value, -MaxScoreValue, MaxScoreValue)
		}
	}
	return nil
}

// Options contains all alignment options.
type Options struct {
	Scoring Scoring
	Mode    Mode

	// MaxCells limits the number of matrix cells, i.e., (m+1)*(n+1).
	// 0 for no limit.
	MaxCells int

	// save the three matrices in the result, only for debugging.
	SaveMatrix bool
}

// DefaultOptions is the default Options.
var DefaultOptions = Options{
	Scoring: DefaultScoring,
	Mode:    Global,

	MaxCells:   0,
	SaveMatrix: false,
}
