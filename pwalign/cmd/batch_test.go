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

package cmd

import (
	"testing"

	"github.com/shenwei356/pwalign/pwalign/align"
	"github.com/stretchr/testify/require"
)

func TestAlignBatch(t *testing.T) {
	query := &Seq{ID: []byte("q"), Seq: []byte("GATTACA")}
	targets := []*Seq{
		{ID: []byte("t1"), Seq: []byte("GCATGCT")},
		{ID: []byte("t2"), Seq: []byte("GATTACA")},
		{ID: []byte("t3"), Seq: []byte("GCATGCT")},
		{ID: []byte("t4"), Seq: []byte("AAAA")},
	}

	firsts, groups := uniqTargets(targets)
	require.Equal(t, []int{0, 1, 3}, firsts)
	require.Equal(t, []int{0, 1, 0, 2}, groups)

	alg := align.NewAligner(&align.Options{
		Scoring: align.Scoring{Match: 1, Mismatch: -1, GapOpen: -2, GapExtend: -1},
		Mode:    align.Global,
	})
	hits, err := alignBatch(alg, query, targets, 2, false)
	require.NoError(t, err)
	require.Len(t, hits, 4)

	scores := make([]int64, len(hits))
	for i, h := range hits {
		require.Equal(t, i, h.Idx)
		require.Equal(t, targets[i], h.Target)
		scores[i] = h.Result.Score
	}
	require.Equal(t, []int64{-1, 7, -1, -5}, scores)
	require.Same(t, hits[0].Result, hits[2].Result)

	meanScore, meanIdent := summarizeHits(hits)
	require.InDelta(t, 0, meanScore, 1e-9)
	require.InDelta(t, 53.5714285714, meanIdent, 1e-6)

	sortHits(hits)
	idxs := make([]int, len(hits))
	for i, h := range hits {
		idxs[i] = h.Idx
	}
	require.Equal(t, []int{1, 0, 2, 3}, idxs)
}

func TestAlignBatchError(t *testing.T) {
	query := &Seq{ID: []byte("q"), Seq: []byte("GATTACA")}
	targets := []*Seq{{ID: []byte("t1"), Seq: []byte("GCATGCT")}}

	alg := align.NewAligner(&align.Options{Scoring: align.DefaultScoring, MaxCells: 10})
	_, err := alignBatch(alg, query, targets, 1, false)
	require.ErrorIs(t, err, align.ErrAllocation)
}

func TestSummarizeNoHits(t *testing.T) {
	meanScore, meanIdent := summarizeHits(nil)
	require.Zero(t, meanScore)
	require.Zero(t, meanIdent)
}
