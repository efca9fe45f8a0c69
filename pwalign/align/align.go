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

// Package align implements pairwise alignment of two DNA sequences with
// affine gap penalties (Gotoh), in global (Needleman-Wunsch) or
// local (Smith-Waterman) mode.
package align

import (
	"github.com/pkg/errors"
	"github.com/shenwei356/pwalign/pwalign/util"
)

// Aligner aligns sequence pairs with fixed options.
// The matrix is allocated in every call and dropped after the traceback,
// so an Aligner can be shared by multiple goroutines.
type Aligner struct {
	Options *Options
}

// NewAligner returns an aligner.
func NewAligner(options *Options) *Aligner {
	if options == nil {
		opt := DefaultOptions
		options = &opt
	}
	return &Aligner{Options: options}
}

// Result holds the details of the alignment.
type Result struct {
	Mode  Mode
	Score int64 // optimal score

	Len        int // length of alignment, i.e., number of columns
	Matches    int // number of matches
	Mismatches int // number of mismatches
	Gaps       int // number of gap symbols
	GapOpens   int // number of gap opening events

	// 1-based positions of the aligned region, both 0 for an empty alignment.
	// Begin is End+1 when no symbol of the sequence is aligned.
	ABegin, AEnd int
	BBegin, BEnd int

	// AT-GTTAT
	// || | ||
	// ATCG-TAC
	AlignA []byte // Alignment string for seq A
	AlignM []byte // Matching symbols, "|" for match, " " for others
	AlignB []byte // Alignment string for seq B

	Matrix []byte // Matrix text, only for debugging.
}

// Empty tells if nothing is aligned.
func (r *Result) Empty() bool {
	return r.Len == 0
}

// Identity returns the percentage of matches in all columns, 0 for an empty alignment.
func (r *Result) Identity() float64 {
	return util.Percent(r.Matches, r.Matches+r.Mismatches+r.Gaps)
}

// GapRatio returns the percentage of gaps in all columns, 0 for an empty alignment.
func (r *Result) GapRatio() float64 {
	return util.Percent(r.Gaps, r.Matches+r.Mismatches+r.Gaps)
}

// Align aligns two sequences.
//
// Errors: ErrInvalidScoring for out-of-range scores, ErrAllocation when the
// matrix can not be allocated, ErrInconsistentMatrix when the traceback fails.
func (alg *Aligner) Align(a, b []byte) (*Result, error) {
	opt := alg.Options
	if err := CheckScoring(opt.Scoring); err != nil {
		return nil, err
	}

	// ---------------------------------------------------
	// initialize

	mtx, err := newMatrix(len(a), len(b), opt.Mode, &opt.Scoring, opt.MaxCells)
	if err != nil {
		return nil, err
	}

	// ---------------------------------------------------
	// compute

	score := mtx.fill(a, b, &opt.Scoring)

	// ---------------------------------------------------
	// traceback

	var i, j int
	if opt.Mode == Local {
		i, j = mtx.bestI, mtx.bestJ
	} else {
		i, j = len(a), len(b)
	}

	n := len(a) + len(b)
	r := &Result{
		Mode:   opt.Mode,
		Score:  score,
		AlignA: make([]byte, 0, n),
		AlignM: make([]byte, 0, n),
		AlignB: make([]byte, 0, n),
	}

	if opt.SaveMatrix {
		r.Matrix = mtx.format(a, b)
	}

	if err = mtx.traceback(a, b, &opt.Scoring, i, j, r); err != nil {
		return nil, errors.Wrapf(err, "traceback from cell (%d, %d)", i, j)
	}

	return r, nil
}

// Align aligns two sequences with the given scoring scheme and mode.
func Align(a, b []byte, scoring Scoring, mode Mode) (*Result, error) {
	opt := DefaultOptions
	opt.Scoring = scoring
	opt.Mode = mode
	return NewAligner(&opt).Align(a, b)
}
