package server

import (
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/matzehuels/footlights/pkg/buildinfo"
	"github.com/matzehuels/footlights/pkg/config"
	"github.com/matzehuels/footlights/pkg/errors"
	"github.com/matzehuels/footlights/pkg/pipeline"
)

// Response headers set on renders.
const (
	headerRenderID = "X-Render-ID"
	headerCache    = "X-Cache"
	headerDocHash  = "X-Document-Hash"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error    string `json:"error"`
	Code     string `json:"code"`
	RenderID string `json:"render_id,omitempty"`
}

func newRenderID() string { return uuid.NewString() }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{Status: "ok", Version: buildinfo.Version})
}

func (s *Server) handleDefault(w http.ResponseWriter, r *http.Request) {
	format := config.FormatTOML
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := config.ParseFormat(q)
		if err != nil {
			s.writeError(w, r, "", err)
			return
		}
		format = f
	}

	data, err := config.Marshal(config.Default(), format)
	if err != nil {
		s.writeError(w, r, "", err)
		return
	}
	w.Header().Set("Content-Type", mediaType(format))
	w.Write(data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	id := s.newID()
	w.Header().Set(headerRenderID, id)
	logger := s.logger.With("render_id", id)

	opts, vars, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, id, err)
		return
	}

	format := config.FormatTOML
	if ct := r.Header.Get("Content-Type"); ct != "" {
		if format, err = config.ParseFormat(ct); err != nil {
			s.writeError(w, r, id, err)
			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		s.writeError(w, r, id, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read body"))
		return
	}
	expanded, err := config.Template(body, config.TemplateData{Vars: vars})
	if err != nil {
		s.writeError(w, r, id, err)
		return
	}
	doc, err := config.Parse(expanded, format)
	if err != nil {
		s.writeError(w, r, id, err)
		return
	}

	opts.Logger = logger
	result, err := s.runner.Render(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, id, err)
		return
	}

	cacheStatus := "miss"
	if result.CacheHit {
		cacheStatus = "hit"
	}
	w.Header().Set("Content-Type", result.MediaType())
	w.Header().Set(headerCache, cacheStatus)
	w.Header().Set(headerDocHash, result.DocHash)
	w.Header().Set("Content-Length", strconv.Itoa(len(result.Artifact)))
	w.Write(result.Artifact)
}

// renderOptions reads ?format, ?scale and ?set from the query.
func renderOptions(r *http.Request) (pipeline.Options, map[string]string, error) {
	q := r.URL.Query()
	opts := pipeline.Options{Format: q.Get("format")}
	if opts.Format == "" {
		opts.Format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(opts.Format); err != nil {
		return opts, nil, err
	}
	if s := q.Get("scale"); s != "" {
		scale, err := strconv.ParseFloat(s, 64)
		if err != nil || scale <= 0 {
			return opts, nil, errors.New(errors.ErrCodeInvalidConfig, "invalid scale %q", s)
		}
		opts.Scale = scale
	}

	vars := make(map[string]string)
	for _, kv := range q["set"] {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return opts, nil, errors.New(errors.ErrCodeInvalidConfig, "set %q: want key=value", kv)
		}
		vars[k] = v
	}
	return opts, vars, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, id string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("render failed", "render_id", id, "err", err)
	}
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{
		Error:    errors.UserMessage(err),
		Code:     string(errors.GetCodeOr(err, errors.ErrCodeInternal)),
		RenderID: id,
	})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	if stderrors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeStyleNotFound, errors.ErrCodeMissingAttribute, errors.ErrCodeInvalidConfig,
		errors.ErrCodeImageSize, errors.ErrCodeFileNotFound:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeUnimplemented, errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func mediaType(f config.Format) string {
	switch f {
	case config.FormatYAML:
		return "application/yaml"
	case config.FormatJSON:
		return "application/json"
	}
	return "application/toml"
}
