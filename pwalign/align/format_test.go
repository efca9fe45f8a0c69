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
	"testing"
)

func TestFormat(t *testing.T) {
	r, err := Align([]byte("GATTACA"), []byte("GCATGCU"), testScoring, Global)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err = r.Format(&buf, 0); err != nil {
		t.Fatal(err)
	}
	expected := "s1: 00001 GATTACA 7\n" +
		"          |  | | \n" +
		"s2: 00001 GCATGCU 7\n"
	if buf.String() != expected {
		t.Errorf("unexpected output:\n%s\nexpected:\n%s", buf.String(), expected)
	}

	buf.Reset()
	if err = r.FormatSummary(&buf); err != nil {
		t.Fatal(err)
	}
	expected = "Score: -1\n" +
		"Number of: Matches = 3, Mismatches = 4, Gaps = 0, Openings = 0\n" +
		"Identities = 3/7 (42%), Gaps = 0/7 (0%)\n"
	if buf.String() != expected {
		t.Errorf("unexpected summary:\n%s\nexpected:\n%s", buf.String(), expected)
	}
}

func TestFormatWrap(t *testing.T) {
	scoring := Scoring{Match: 2, Mismatch: -1, GapOpen: -3, GapExtend: -1}
	r, err := Align([]byte("AAAACCCCGGGG"), []byte("AAAAGGGG"), scoring, Global)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err = r.Format(&buf, 4); err != nil {
		t.Fatal(err)
	}
	expected := "s1: 00001 AAAA 4\n" +
		"          ||||\n" +
		"s2: 00001 AAAA 4\n" +
		"\n" +
		"s1: 00005 CCCC 8\n" +
		"              \n" +
		"s2: 00005 ---- 4\n" +
		"\n" +
		"s1: 00009 GGGG 12\n" +
		"          ||||\n" +
		"s2: 00005 GGGG 8\n"
	if buf.String() != expected {
		t.Errorf("unexpected output:\n%s\nexpected:\n%s", buf.String(), expected)
	}
}

func TestFormatLocalPositions(t *testing.T) {
	r, err := Align([]byte("TTTTACGTACGTGGGG"), []byte("CCACGTACGTCC"), testScoring, Local)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err = r.Format(&buf, 60); err != nil {
		t.Fatal(err)
	}
	expected := "s1: 00005 ACGTACGT 12\n" +
		"          ||||||||\n" +
		"s2: 00003 ACGTACGT 10\n"
	if buf.String() != expected {
		t.Errorf("unexpected output:\n%s\nexpected:\n%s", buf.String(), expected)
	}
}

func TestFormatEmpty(t *testing.T) {
	r, err := Align([]byte("AAAA"), []byte("CCCC"), testScoring, Local)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err = r.Format(&buf, 60); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("unexpected output: %q", buf.String())
	}

	if err = r.FormatSummary(&buf); err != nil {
		t.Fatal(err)
	}
	expected := "Score: 0\n" +
		"Number of: Matches = 0, Mismatches = 0, Gaps = 0, Openings = 0\n" +
		"Identities = 0/0 (0%), Gaps = 0/0 (0%)\n"
	if buf.String() != expected {
		t.Errorf("unexpected summary:\n%s\nexpected:\n%s", buf.String(), expected)
	}
}
