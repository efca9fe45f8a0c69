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
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/shenwei356/pwalign/pwalign/align"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve alignments over HTTP",
	Long: `Serve alignments over HTTP

Endpoints:
  GET  /health   liveness check
  POST /align    align two sequences, with a JSON body:

    {"seq1": "GATTACA", "seq2": "GCATGCT", "mode": "global",
     "match": 1, "mismatch": -2, "gap_open": -5, "gap_extend": -2}

  Scoring values not given are taken from the default scoring scheme,
  mode is "global" by default. Symbols other than A, C, G, T are removed.
  Requests with bodies larger than --max-body get the status 413.

`,
	Run: func(cmd *cobra.Command, args []string) {
		opt := getOptions(cmd)

		addr := getFlagString(cmd, "addr")
		maxCells := getFlagNonNegativeInt(cmd, "max-cells")

		maxBodyS := getFlagString(cmd, "max-body")
		maxBody, err := humanize.ParseBytes(maxBodyS)
		if err != nil {
			checkError(fmt.Errorf("invalid value of --max-body: %s. supported units: KB, MB, GB, KiB, MiB, GiB", maxBodyS))
		}

		if opt.Verbose {
			log.Infof("pwalign v%s", VERSION)
			log.Infof("listening on %s", addr)
		}

		srv := &http.Server{
			Addr:              addr,
			Handler:           newRouter(maxCells, int64(maxBody), opt.Verbose),
			ReadHeaderTimeout: 10 * time.Second,
		}
		checkError(srv.ListenAndServe())
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", ":8080",
		formatFlagUsage(`Address to listen on.`))

	serveCmd.Flags().IntP("max-cells", "", 100_000_000,
		formatFlagUsage(`Maximum number of matrix cells of a request, i.e., (len1+1)*(len2+1). 0 for no limit.`))

	serveCmd.Flags().StringP("max-body", "", "64MiB",
		formatFlagUsage(`Maximum size of a request body, e.g., 512KB, 64MiB. 0 for no limit.`))

	serveCmd.SetUsageTemplate(usageTemplate(""))
}

// AlignRequest is the body of an alignment request.
type AlignRequest struct {
	Seq1      string `json:"seq1"`
	Seq2      string `json:"seq2"`
	Mode      string `json:"mode"`
	Match     *int   `json:"match"`
	Mismatch  *int   `json:"mismatch"`
	GapOpen   *int   `json:"gap_open"`
	GapExtend *int   `json:"gap_extend"`
}

func (req *AlignRequest) scoring() align.Scoring {
	s := align.DefaultScoring
	if req.Match != nil {
		s.Match = *req.Match
	}
	if req.Mismatch != nil {
		s.Mismatch = *req.Mismatch
	}
	if req.GapOpen != nil {
		s.GapOpen = *req.GapOpen
	}
	if req.GapExtend != nil {
		s.GapExtend = *req.GapExtend
	}
	return s
}

// AlignResponse is the alignment result.
type AlignResponse struct {
	Mode       string        `json:"mode"`
	Scoring    align.Scoring `json:"scoring"`
	Score      int64         `json:"score"`
	AlignedA   string        `json:"aligned_seq1"`
	Annotation string        `json:"annotation"`
	AlignedB   string        `json:"aligned_seq2"`
	Length     int           `json:"length"`
	Matches    int           `json:"matches"`
	Mismatches int           `json:"mismatches"`
	Gaps       int           `json:"gaps"`
	GapOpens   int           `json:"gap_opens"`
	Identity   float64       `json:"identity"`
	GapRatio   float64       `json:"gap_ratio"`
	Begin1     int           `json:"begin1"`
	End1       int           `json:"end1"`
	Begin2     int           `json:"begin2"`
	End2       int           `json:"end2"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warningf("failed to write response: %s", err)
	}
}

func newRouter(maxCells int, maxBody int64, verbose bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if verbose {
		r.Use(requestLogger)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": VERSION})
	})
	r.Post("/align", alignHandler(maxCells, maxBody))

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Infof("%s %s %s %d %s", middleware.GetReqID(r.Context()),
			r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func alignHandler(maxCells int, maxBody int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if maxBody > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		}

		var req AlignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var errTooLarge *http.MaxBytesError
			if errors.As(err, &errTooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge,
					errorResponse{Error: fmt.Sprintf("request body exceeds %d bytes", errTooLarge.Limit)})
				return
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}

		mode := align.Global
		if req.Mode != "" {
			var err error
			if mode, err = align.ParseMode(req.Mode); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
		}

		scoring := req.scoring()
		if err := align.CheckScoring(scoring); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		a, _ := cleanSeq([]byte(req.Seq1))
		b, _ := cleanSeq([]byte(req.Seq2))

		alg := align.NewAligner(&align.Options{
			Scoring:  scoring,
			Mode:     mode,
			MaxCells: maxCells,
		})
		res, err := alg.Align(a, b)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, align.ErrAllocation) {
				status = http.StatusRequestEntityTooLarge
			}
			writeJSON(w, status, errorResponse{Error: fmt.Sprintf("alignment failed: %s", err)})
			return
		}

		writeJSON(w, http.StatusOK, AlignResponse{
			Mode:       mode.String(),
			Scoring:    scoring,
			Score:      res.Score,
			AlignedA:   string(res.AlignA),
			Annotation: string(res.AlignM),
			AlignedB:   string(res.AlignB),
			Length:     res.Len,
			Matches:    res.Matches,
			Mismatches: res.Mismatches,
			Gaps:       res.Gaps,
			GapOpens:   res.GapOpens,
			Identity:   res.Identity(),
			GapRatio:   res.GapRatio(),
			Begin1:     res.ABegin,
			End1:       res.AEnd,
			Begin2:     res.BBegin,
			End2:       res.BEnd,
		})
	}
}
