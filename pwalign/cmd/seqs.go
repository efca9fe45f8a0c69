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
	"io"

	"github.com/pkg/errors"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
)

// Seq is a named DNA sequence.
type Seq struct {
	ID  []byte
	Seq []byte

	Skipped int // number of symbols out of the alphabet
}

// cleanSeq returns the upper-cased sequence with symbols other than
// A, C, G, T removed, and the number of removed symbols.
func cleanSeq(s []byte) ([]byte, int) {
	t := make([]byte, 0, len(s))
	var skipped int
	for _, c := range s {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		switch c {
		case 'A', 'C', 'G', 'T':
			t = append(t, c)
		default:
			skipped++
		}
	}
	return t, skipped
}

// readSeqs reads all sequences in a FASTA/Q file.
// Symbols are not validated, invalid ones are dropped by cleanSeq.
func readSeqs(file string) ([]*Seq, error) {
	seq.ValidateSeq = false

	fastxReader, err := fastx.NewReader(nil, file, "")
	if err != nil {
		return nil, errors.Wrapf(err, "reading sequence file: %s", file)
	}
	defer fastxReader.Close()

	seqs := make([]*Seq, 0, 2)
	var record *fastx.Record
	for {
		record, err = fastxReader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, errors.Wrapf(err, "reading sequence file: %s", file)
		}

		s, skipped := cleanSeq(record.Seq.Seq)
		seqs = append(seqs, &Seq{
			ID:      append([]byte(nil), record.ID...),
			Seq:     s,
			Skipped: skipped,
		})
	}

	return seqs, nil
}
