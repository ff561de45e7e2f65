package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/circuitgen/pkg/buildinfo"
	"github.com/matzehuels/circuitgen/pkg/decoders"
	"github.com/matzehuels/circuitgen/pkg/errors"
	"github.com/matzehuels/circuitgen/pkg/observability"
	"github.com/matzehuels/circuitgen/pkg/pipeline"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.table)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	d, err := s.table.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.build(w, r, d, pipeline.FormatJSON)
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	d, err := s.table.Lookup(chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.build(w, r, d, chi.URLParam(r, "format"))
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	d, err := decoders.ParseDecoder(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSchem
	}
	s.build(w, r, d, format)
}

// build runs the pipeline for one format and writes the artifact.
func (s *Server) build(w http.ResponseWriter, r *http.Request, d *decoders.Decoder, format string) {
	opts := pipeline.Options{Formats: []string{format}, Logger: s.logger}
	if q := r.URL.Query().Get("offset"); q != "" {
		off, err := parseOffset(q)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		opts.Offset = off
	}

	res, err := s.runner.Build(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	h := w.Header()
	h.Set("Content-Type", pipeline.ContentTypes[format])
	h.Set("X-Job-Hash", res.JobHash)
	h.Set("X-Cache", cacheHeader(res.CacheHit))
	if format == pipeline.FormatSchem || format == pipeline.FormatNBT {
		h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("rvc_%s.%s", d.Name, format)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// parseOffset parses "x,y,z".
func parseOffset(s string) ([3]int, error) {
	var off [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return off, errors.New(errors.ErrCodeInvalidInput, "offset must be x,y,z, got %q", s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return off, errors.Wrap(errors.ErrCodeInvalidInput, err, "offset component %q", p)
		}
		off[i] = n
	}
	return off, nil
}

func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	pattern := r.URL.Path
	if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
		pattern = rc.RoutePattern()
	}
	observability.HTTP().OnError(r.Context(), r.Method, pattern, err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "err", err)
	}

	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: msg, RequestID: RequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
