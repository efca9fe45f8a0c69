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
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/shenwei356/pwalign/pwalign/align"
	"github.com/shenwei356/util/pathutil"
	"github.com/shenwei356/xopen"
	"github.com/spf13/cobra"
)

// DefaultParamsFile is the scoring parameter file read when none is given.
const DefaultParamsFile = "parameters.config"

// scoringTOML is a scoring parameter file in TOML format.
// Long key names take precedence over the short ones.
type scoringTOML struct {
	Match     *int `toml:"match"`
	Mismatch  *int `toml:"mismatch"`
	H         *int `toml:"h"`
	G         *int `toml:"g"`
	GapOpen   *int `toml:"gap_open"`
	GapExtend *int `toml:"gap_extend"`
}

func (p *scoringTOML) scoring() align.Scoring {
	var s align.Scoring
	set := func(dst *int, values ...*int) {
		for _, v := range values {
			if v != nil {
				*dst = *v
			}
		}
	}
	set(&s.Match, p.Match)
	set(&s.Mismatch, p.Mismatch)
	set(&s.GapOpen, p.H, p.GapOpen)
	set(&s.GapExtend, p.G, p.GapExtend)
	return s
}

// isTOMLFile tells if the file is in TOML format, by the extension.
func isTOMLFile(file string) bool {
	_, ext, _ := filepathTrimExtension(file, nil)
	return strings.EqualFold(ext, ".toml")
}

// readScoring reads a scoring parameter file.
// Fields missing in the file are 0.
//
// Files with the extension ".toml" are parsed as TOML,
// others are in the format of one "name value" pair per line:
//
//	match    1
//	mismatch -2
//	h        -5
//	g        -2
//
// Unknown names are ignored.
func readScoring(file string) (align.Scoring, error) {
	var s align.Scoring

	fh, err := xopen.Ropen(file)
	if err != nil {
		return s, errors.Wrapf(err, "reading scoring parameters: %s", file)
	}
	defer fh.Close()

	if isTOMLFile(file) {
		var p scoringTOML
		if err = toml.NewDecoder(fh).Decode(&p); err != nil {
			return s, errors.Wrapf(err, "parsing scoring parameters: %s", file)
		}
		return p.scoring(), nil
	}

	scanner := bufio.NewScanner(fh)
	var line string
	var items []string
	var value int
	var nLine int
	for scanner.Scan() {
		nLine++
		line = strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		items = strings.Fields(line)
		if len(items) < 2 {
			continue
		}

		var dst *int
		switch items[0] {
		case "match":
			dst = &s.Match
		case "mismatch":
			dst = &s.Mismatch
		case "h":
			dst = &s.GapOpen
		case "g":
			dst = &s.GapExtend
		default:
			continue
		}

		value, err = strconv.Atoi(items[1])
		if err != nil {
			return s, fmt.Errorf("invalid value of %s in line %d of %s: %s", items[0], nLine, file, items[1])
		}
		*dst = value
	}
	if err = scanner.Err(); err != nil {
		return s, errors.Wrapf(err, "reading scoring parameters: %s", file)
	}

	return s, nil
}

// addScoringFlags adds the flags of the parameter file and the scoring values.
func addScoringFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("params", "p", DefaultParamsFile,
		formatFlagUsage(`Scoring parameter file.`))

	cmd.Flags().IntP("match", "", 0,
		formatFlagUsage(`Score of a match, overriding the value in the parameter file.`))

	cmd.Flags().IntP("mismatch", "", 0,
		formatFlagUsage(`Score of a mismatch, overriding the value in the parameter file.`))

	cmd.Flags().IntP("gap-open", "", 0,
		formatFlagUsage(`Gap opening score (h), overriding the value in the parameter file.`))

	cmd.Flags().IntP("gap-extend", "", 0,
		formatFlagUsage(`Gap extension score (g), overriding the value in the parameter file.`))
}

// getScoring returns the scoring scheme from the parameter file
// and the flags which override values in the file.
//
// A missing default parameter file is not an error, DefaultScoring is used then.
func getScoring(cmd *cobra.Command) (align.Scoring, error) {
	var scoring align.Scoring

	file, err := cmd.Flags().GetString("params")
	if err != nil {
		return scoring, err
	}
	file = expandPath(file)

	ok, err := pathutil.Exists(file)
	if err != nil {
		return scoring, errors.Wrapf(err, "checking scoring parameter file: %s", file)
	}
	if ok {
		if scoring, err = readScoring(file); err != nil {
			return scoring, err
		}
	} else if cmd.Flags().Changed("params") {
		return scoring, fmt.Errorf("scoring parameter file does not exist: %s", file)
	} else {
		scoring = align.DefaultScoring
		log.Warningf("parameter file %s not found, default scoring parameters used: %s", file, scoring)
	}

	var value int
	for _, f := range [...]struct {
		flag string
		dst  *int
	}{
		{"match", &scoring.Match},
		{"mismatch", &scoring.Mismatch},
		{"gap-open", &scoring.GapOpen},
		{"gap-extend", &scoring.GapExtend},
	} {
		if !cmd.Flags().Changed(f.flag) {
			continue
		}
		if value, err = cmd.Flags().GetInt(f.flag); err != nil {
			return scoring, err
		}
		*f.dst = value
	}

	return scoring, align.CheckScoring(scoring)
}
