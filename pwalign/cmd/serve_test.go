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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func postAlign(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, AlignResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/align", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp AlignResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestServeAlign(t *testing.T) {
	h := newRouter(0, 0, false)

	rec, resp := postAlign(t, h, `{"seq1": "GATTACA", "seq2": "GCATGCT"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "global", resp.Mode)
	require.EqualValues(t, -5, resp.Score)
	require.Equal(t, "GATTACA", resp.AlignedA)
	require.Equal(t, "|  | | ", resp.Annotation)
	require.Equal(t, "GCATGCT", resp.AlignedB)
	require.Equal(t, 3, resp.Matches)
	require.Equal(t, 4, resp.Mismatches)

	rec, resp = postAlign(t, h, `{"seq1": "gattaca", "seq2": "GCATGCT", "mode": "local"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "local", resp.Mode)
	require.EqualValues(t, 2, resp.Score)
	require.Equal(t, "AT", resp.AlignedA)
	require.Equal(t, 2, resp.Begin1)
	require.Equal(t, 3, resp.End1)
	require.Equal(t, 3, resp.Begin2)
	require.Equal(t, 4, resp.End2)
	require.InDelta(t, 100, resp.Identity, 1e-9)

	rec, resp = postAlign(t, h, `{"seq1": "AAAA", "seq2": "CCCC", "mode": "sw", "match": 1, "mismatch": -1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Zero(t, resp.Score)
	require.Zero(t, resp.Length)
	require.Zero(t, resp.Identity)
	require.Zero(t, resp.GapRatio)
}

func TestServeAlignErrors(t *testing.T) {
	h := newRouter(50, 0, false)

	rec, _ := postAlign(t, h, `{"seq1": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = postAlign(t, h, `{"seq1": "ACGT", "seq2": "ACGT", "mode": "semi"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = postAlign(t, h, `{"seq1": "ACGT", "seq2": "ACGT", "match": 2000000000}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = postAlign(t, h, `{"seq1": "ACGTACGTACGT", "seq2": "ACGTACGTACGT"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestServeAlignBodyLimit(t *testing.T) {
	h := newRouter(0, 64, false)

	rec, resp := postAlign(t, h, `{"seq1": "ACGT", "seq2": "ACGT"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 4, resp.Score)

	rec, _ = postAlign(t, h, `{"seq1": "`+strings.Repeat("A", 100)+`", "seq2": "ACGT"}`)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.Contains(t, rec.Body.String(), "exceeds 64 bytes")
}

func TestServeHealth(t *testing.T) {
	h := newRouter(0, 0, false)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"ok"`)
}
