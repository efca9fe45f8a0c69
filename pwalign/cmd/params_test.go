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
	"os"
	"path/filepath"
	"testing"

	"github.com/shenwei356/pwalign/pwalign/align"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0644))
	return file
}

func TestReadScoringLegacy(t *testing.T) {
	file := writeFile(t, "parameters.config", "match\t1\nmismatch -2\n\nh -5\ng\t-2\nfoo 100\n")

	s, err := readScoring(file)
	require.NoError(t, err)
	require.Equal(t, align.Scoring{Match: 1, Mismatch: -2, GapOpen: -5, GapExtend: -2}, s)
}

func TestReadScoringMissingFields(t *testing.T) {
	file := writeFile(t, "parameters.config", "# only gap costs\nh -3\ng -1\n")

	s, err := readScoring(file)
	require.NoError(t, err)
	require.Equal(t, align.Scoring{GapOpen: -3, GapExtend: -1}, s)
}

func TestReadScoringInvalidValue(t *testing.T) {
	file := writeFile(t, "parameters.config", "match one\n")

	_, err := readScoring(file)
	require.Error(t, err)
}

func TestReadScoringTOML(t *testing.T) {
	file := writeFile(t, "params.toml", "match = 2\nmismatch = -1\nh = -4\ng = -1\n")

	s, err := readScoring(file)
	require.NoError(t, err)
	require.Equal(t, align.Scoring{Match: 2, Mismatch: -1, GapOpen: -4, GapExtend: -1}, s)

	file = writeFile(t, "params.toml", "match = 1\ngap_open = -6\ngap_extend = -2\n")
	s, err = readScoring(file)
	require.NoError(t, err)
	require.Equal(t, align.Scoring{Match: 1, GapOpen: -6, GapExtend: -2}, s)

	file = writeFile(t, "params.toml", "match = \n")
	_, err = readScoring(file)
	require.Error(t, err)
}

func TestReadScoringMissingFile(t *testing.T) {
	_, err := readScoring(filepath.Join(t.TempDir(), "none.config"))
	require.Error(t, err)
}

func TestIsTOMLFile(t *testing.T) {
	require.True(t, isTOMLFile("a.toml"))
	require.True(t, isTOMLFile("dir/a.TOML.gz"))
	require.False(t, isTOMLFile("parameters.config"))
	require.False(t, isTOMLFile("toml"))
}

func newScoringCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addScoringFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

// chdir changes into a new empty directory, so the default parameter file is absent.
func chdir(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestGetScoringDefaultFileMissing(t *testing.T) {
	chdir(t)

	s, err := getScoring(newScoringCmd(t))
	require.NoError(t, err)
	require.Equal(t, align.DefaultScoring, s)

	s, err = getScoring(newScoringCmd(t, "--match", "3", "--gap-extend", "0"))
	require.NoError(t, err)
	require.Equal(t, align.Scoring{Match: 3, Mismatch: -2, GapOpen: -5, GapExtend: 0}, s)
}

func TestGetScoringDefaultFile(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultParamsFile), []byte("h -3\ng -1\n"), 0644))

	s, err := getScoring(newScoringCmd(t))
	require.NoError(t, err)
	require.Equal(t, align.Scoring{GapOpen: -3, GapExtend: -1}, s)
}

func TestGetScoringFlagsOverrideFile(t *testing.T) {
	file := writeFile(t, "scoring.txt", "match 1\nmismatch -2\nh -5\ng -2\n")

	s, err := getScoring(newScoringCmd(t, "-p", file, "--mismatch", "-4", "--gap-open", "-10"))
	require.NoError(t, err)
	require.Equal(t, align.Scoring{Match: 1, Mismatch: -4, GapOpen: -10, GapExtend: -2}, s)
}

func TestGetScoringExplicitFileMissing(t *testing.T) {
	chdir(t)

	_, err := getScoring(newScoringCmd(t, "-p", "no-such-file.config"))
	require.Error(t, err)

	_, err = getScoring(newScoringCmd(t, "--params", DefaultParamsFile))
	require.Error(t, err)
}

func TestGetScoringInvalid(t *testing.T) {
	chdir(t)

	_, err := getScoring(newScoringCmd(t, "--match", "2000000000"))
	require.ErrorIs(t, err, align.ErrInvalidScoring)
}
