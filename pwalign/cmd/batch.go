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
	"bytes"
	"os"
	"sync"
	"time"

	"github.com/shenwei356/pwalign/pwalign/align"
	"github.com/twotwotwo/sorts"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"github.com/zeebo/wyhash"
	"gonum.org/v1/gonum/stat"
)

// Hit is the alignment of the query against a target.
type Hit struct {
	Idx    int // index of the target
	Target *Seq
	Result *align.Result
}

// Hits sorts hits by score in descending order, then by index.
type Hits []*Hit

func (h Hits) Len() int { return len(h) }
func (h Hits) Less(i, j int) bool {
	if h[i].Result.Score == h[j].Result.Score {
		return h[i].Idx < h[j].Idx
	}
	return h[i].Result.Score > h[j].Result.Score
}
func (h Hits) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

// uniqTargets groups targets with identical sequences.
// It returns the indexes of the first target of each group,
// and the group index of every target.
func uniqTargets(targets []*Seq) ([]int, []int) {
	firsts := make([]int, 0, len(targets))
	groups := make([]int, len(targets))
	m := make(map[uint64][]int, len(targets)) // hash -> group indexes

	var h uint64
	var found bool
	for i, t := range targets {
		h = wyhash.Hash(t.Seq, 1)
		found = false
		for _, g := range m[h] {
			if bytes.Equal(targets[firsts[g]].Seq, t.Seq) {
				groups[i] = g
				found = true
				break
			}
		}
		if found {
			continue
		}

		groups[i] = len(firsts)
		m[h] = append(m[h], len(firsts))
		firsts = append(firsts, i)
	}
	return firsts, groups
}

// alignBatch aligns the query against all targets with at most threads
// concurrent alignments. Identical targets are aligned only once.
// Hits are returned in the order of targets.
func alignBatch(alg *align.Aligner, query *Seq, targets []*Seq, threads int, verbose bool) (Hits, error) {
	if threads < 1 {
		threads = 1
	}
	firsts, groups := uniqTargets(targets)
	results := make([]*align.Result, len(firsts))

	// process bar
	var pbs *mpb.Progress
	var bar *mpb.Bar
	if verbose {
		pbs = mpb.New(mpb.WithWidth(40), mpb.WithOutput(os.Stderr))
		bar = pbs.AddBar(int64(len(firsts)),
			mpb.PrependDecorators(
				decor.Name("aligned targets: ", decor.WC{W: len("aligned targets: "), C: decor.DindentRight}),
				decor.Name("", decor.WCSyncSpaceR),
				decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.Name("ETA: ", decor.WC{W: len("ETA: ")}),
				decor.EwmaETA(decor.ET_STYLE_GO, 3),
				decor.OnComplete(decor.Name(""), ". done"),
			),
		)
	}

	var wg sync.WaitGroup
	tokens := make(chan int, threads)
	var mu sync.Mutex
	var firstErr error

	for g, i := range firsts {
		tokens <- 1
		wg.Add(1)

		go func(g int, target *Seq) {
			defer func() {
				<-tokens
				wg.Done()
			}()

			startTime := time.Now()
			r, err := alg.Align(query.Seq, target.Seq)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
			results[g] = r

			if verbose {
				bar.EwmaIncrement(time.Since(startTime))
			}
		}(g, targets[i])
	}
	wg.Wait()
	if verbose {
		if firstErr != nil {
			bar.Abort(false)
		}
		pbs.Wait()
	}
	if firstErr != nil {
		return nil, firstErr
	}

	hits := make(Hits, len(targets))
	for i, t := range targets {
		hits[i] = &Hit{Idx: i, Target: t, Result: results[groups[i]]}
	}
	return hits, nil
}

// sortHits sorts hits by score in descending order.
func sortHits(hits Hits) {
	sorts.Quicksort(hits)
}

// summarizeHits returns the mean score and mean identity of hits.
func summarizeHits(hits Hits) (float64, float64) {
	if len(hits) == 0 {
		return 0, 0
	}
	scores := make([]float64, len(hits))
	idents := make([]float64, len(hits))
	for i, h := range hits {
		scores[i] = float64(h.Result.Score)
		idents[i] = h.Result.Identity()
	}
	return stat.Mean(scores, nil), stat.Mean(idents, nil)
}
