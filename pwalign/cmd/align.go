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
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/shenwei356/pwalign/pwalign/align"
	"github.com/spf13/cobra"
	"github.com/twotwotwo/sorts/sortutil"
)

var alignCmd = &cobra.Command{
	Use:   "align",
	Short: "Align two DNA sequences with affine gap penalties",
	Long: `Align two DNA sequences with affine gap penalties

Input:
  1. The first two sequences in the FASTA/Q file (-i/--in-file, or the
     first positional argument) are aligned.
  2. If target files (-t/--target) or a directory of target files
     (-I/--target-dir) are given, the first sequence is aligned against
     every sequence in the targets.
  3. Only A, C, G, T are kept, lower-case letters are converted to upper-case,
     other symbols are removed.

Scoring parameters:
  A parameter file (-p/--params) contains one "name value" pair per line,
  for names of match, mismatch, h (gap opening) and g (gap extension).
  A gap of length L costs h + g*L. Missing values are 0.
  Files with the extension ".toml" are parsed as TOML.
  Values in the file can be overridden by --match, --mismatch, --gap-open and --gap-extend.
  The default scoring scheme (match 1, mismatch -2, h -5, g -2) is used if the
  default file "parameters.config" does not exist.

Output:
  The alignment is printed with 60 columns per line (-w/--line-width),
  followed by the score, numbers of matches, mismatches, gaps and gap openings.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		var fhLog *os.File
		if opt.Log2File {
			fhLog = addLog(opt.LogFile, opt.Verbose)
		}

		outputLog := opt.Verbose || opt.Log2File

		timeStart := time.Now()
		defer func() {
			if outputLog {
				log.Info()
				log.Infof("elapsed time: %s", time.Since(timeStart))
				log.Info()
			}
			if opt.Log2File {
				fhLog.Close()
			}
		}()

		// ---------------------------------------------------------------
		// flags

		inFile := getFlagString(cmd, "in-file")
		if inFile == "" {
			if len(args) == 0 {
				checkError(fmt.Errorf("flag -i/--in-file needed"))
			}
			inFile = args[0]
		}
		inFile = expandPath(inFile)

		mode, err := align.ParseMode(getFlagString(cmd, "mode"))
		checkError(err)

		scoring, err := getScoring(cmd)
		checkError(err)

		targetFiles := getFlagStringSlice(cmd, "target")
		for i, file := range targetFiles {
			targetFiles[i] = expandPath(file)
		}
		targetDir := expandPath(getFlagString(cmd, "target-dir"))
		reFileStr := getFlagString(cmd, "file-regexp")

		outFile := expandPath(getFlagString(cmd, "out-file"))
		lineWidth := getFlagNonNegativeInt(cmd, "line-width")
		if lineWidth == 0 {
			lineWidth = 1 << 30
		}
		plotFile := expandPath(getFlagString(cmd, "plot"))
		saveMatrix := getFlagBool(cmd, "matrix")
		sortByScore := getFlagBool(cmd, "sort")
		maxCells := getFlagNonNegativeInt(cmd, "max-cells")

		// ---------------------------------------------------------------
		// sequences

		checkFiles(inFile)
		checkFiles(targetFiles...)

		seqs, err := readSeqs(inFile)
		checkError(err)

		if targetDir != "" {
			if !strings.HasPrefix(reFileStr, "(?i)") {
				reFileStr = "(?i)" + reFileStr
			}
			reFile, err := regexp.Compile(reFileStr)
			if err != nil {
				checkError(errors.Wrapf(err, "failed to parse regular expression for matching file: %s", reFileStr))
			}
			files, err := getFileListFromDir(targetDir, reFile, opt.NumCPUs)
			if err != nil {
				checkError(errors.Wrapf(err, "walking dir: %s", targetDir))
			}
			if len(files) == 0 {
				log.Warningf("no files matching regular expression: %s", reFileStr)
			}
			sortutil.Strings(files)
			targetFiles = append(targetFiles, files...)
		}

		batch := len(targetFiles) > 0
		var query *Seq
		var targets []*Seq
		if batch {
			if len(seqs) < 1 {
				checkError(fmt.Errorf("no sequences found in %s", inFile))
			}
			query = seqs[0]

			for _, file := range targetFiles {
				_seqs, err := readSeqs(file)
				checkError(err)
				targets = append(targets, _seqs...)
			}
			if len(targets) == 0 {
				checkError(fmt.Errorf("no target sequences found"))
			}
		} else {
			if len(seqs) < 2 {
				checkError(fmt.Errorf("two sequences are needed in %s, %d found", inFile, len(seqs)))
			}
			query = seqs[0]
			targets = seqs[1:2]
		}

		for _, s := range append([]*Seq{query}, targets...) {
			if s.Skipped > 0 && outputLog {
				log.Warningf("%d symbols other than A, C, G, T removed from sequence %s", s.Skipped, s.ID)
			}
		}

		// ---------------------------------------------------------------
		// log

		if outputLog {
			log.Infof("pwalign v%s", VERSION)
			log.Info()
			log.Infof("algorithm: %s", algorithmName(mode))
			log.Infof("scoring parameters: %s", scoring)
			log.Infof("sequence 1: %s, %d bp", query.ID, len(query.Seq))
			if batch {
				log.Infof("targets: %d sequences from %d files", len(targets), len(targetFiles))
			} else {
				t := targets[0]
				log.Infof("sequence 2: %s, %d bp", t.ID, len(t.Seq))
				log.Infof("matrix cells: %s",
					humanize.Comma(int64(len(query.Seq)+1)*int64(len(t.Seq)+1)))
			}
			log.Info()
		}

		// ---------------------------------------------------------------
		// align

		alg := align.NewAligner(&align.Options{
			Scoring:    scoring,
			Mode:       mode,
			MaxCells:   maxCells,
			SaveMatrix: saveMatrix,
		})

		hits, err := alignBatch(alg, query, targets, opt.NumCPUs, opt.Verbose && batch)
		if err != nil {
			if errors.Is(err, align.ErrAllocation) {
				checkError(errors.Wrap(err, "allocation stage failed"))
			}
			if errors.Is(err, align.ErrInconsistentMatrix) {
				checkError(errors.Wrap(err, "traceback stage failed"))
			}
			checkError(err)
		}

		if sortByScore {
			sortHits(hits)
		}

		// ---------------------------------------------------------------
		// output

		outfh, gw, w, err := outStream(outFile, strings.HasSuffix(strings.ToLower(outFile), ".gz"), opt.CompressionLevel)
		checkError(err)
		defer func() {
			outfh.Flush()
			if gw != nil {
				gw.Close()
			}
			w.Close()
		}()

		fmt.Fprintf(outfh, "Algorithm: %s\n\n", algorithmName(mode))
		fmt.Fprintf(outfh, "Scoring Parameters: %s\n\n", scoring)
		for i, hit := range hits {
			if i > 0 {
				fmt.Fprintf(outfh, "\n%s\n\n", strings.Repeat("=", 70))
			}
			checkError(writeHit(outfh, query, hit, lineWidth))
		}

		if batch && outputLog {
			meanScore, meanIdent := summarizeHits(hits)
			log.Infof("%d alignments, mean score: %.2f, mean identity: %.2f%%", len(hits), meanScore, meanIdent)
		}

		if plotFile != "" {
			if batch {
				log.Warningf("flag --plot is ignored for multiple targets")
			} else {
				hit := hits[0]
				title := fmt.Sprintf("%s vs %s", query.ID, hit.Target.ID)
				checkError(plotPath(hit.Result, len(query.Seq), len(hit.Target.Seq), title, plotFile))
				if outputLog {
					log.Infof("alignment path plotted: %s", plotFile)
				}
			}
		}
	},
}

func init() {
	RootCmd.AddCommand(alignCmd)

	// -----------------------------  input  -----------------------------

	alignCmd.Flags().StringP("in-file", "i", "",
		formatFlagUsage(`FASTA/Q file of the two sequences, or the query sequence when targets are given.`))

	alignCmd.Flags().StringSliceP("target", "t", []string{},
		formatFlagUsage(`FASTA/Q files of target sequences.`))

	alignCmd.Flags().StringP("target-dir", "I", "",
		formatFlagUsage(`Directory containing FASTA/Q files of target sequences. Directory symlinks are followed.`))

	alignCmd.Flags().StringP("file-regexp", "r", `\.(f[aq](st[aq])?|fna)(.gz)?$`,
		formatFlagUsage(`Regular expression for matching sequence files in -I/--target-dir, case ignored.`))

	// -----------------------------  alignment  -----------------------------

	alignCmd.Flags().StringP("mode", "m", "global",
		formatFlagUsage(`Alignment mode: global (Needleman-Wunsch, or 0), local (Smith-Waterman, or 1).`))

	addScoringFlags(alignCmd)

	alignCmd.Flags().IntP("max-cells", "", 0,
		formatFlagUsage(`Maximum number of matrix cells, i.e., (len1+1)*(len2+1). 0 for no limit.`))

	// -----------------------------  output  -----------------------------

	alignCmd.Flags().StringP("out-file", "o", "-",
		formatFlagUsage(`Out file, supports the ".gz" suffix ("-" for stdout).`))

	alignCmd.Flags().IntP("line-width", "w", align.DefaultLineWidth,
		formatFlagUsage(`Number of alignment columns per line (0 for no wrap).`))

	alignCmd.Flags().StringP("plot", "", "",
		formatFlagUsage(`Plot the alignment path to a file (.png, .pdf, .svg), only for a single pair.`))

	alignCmd.Flags().BoolP("matrix", "", false,
		formatFlagUsage(`Output the three DP matrices, only for debugging short sequences.`))

	alignCmd.Flags().BoolP("sort", "", false,
		formatFlagUsage(`Sort alignments of multiple targets by score in descending order.`))

	alignCmd.SetUsageTemplate(usageTemplate("{-i <seqs.fa> | <seqs.fa>} [-m global|local] [-p <params>] [-t <targets.fa>] [-o <out>]"))
}

func algorithmName(mode align.Mode) string {
	if mode == align.Local {
		return "Smith-Waterman"
	}
	return "Needleman-Wunsch"
}

// writeHit writes the alignment of a query-target pair.
func writeHit(outfh *bufio.Writer, query *Seq, hit *Hit, lineWidth int) error {
	t := hit.Target
	r := hit.Result

	fmt.Fprintf(outfh, "Sequence 1 = %s\nLength = %d characters\n", query.ID, len(query.Seq))
	fmt.Fprintf(outfh, "Sequence 2 = %s\nLength = %d characters\n\n", t.ID, len(t.Seq))

	if len(r.Matrix) > 0 {
		outfh.Write(r.Matrix)
		outfh.WriteByte('\n')
	}

	if err := r.Format(outfh, lineWidth); err != nil {
		return err
	}
	outfh.WriteByte('\n')
	return r.FormatSummary(outfh)
}
