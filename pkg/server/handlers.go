package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/speich/dGraph/pkg/buildinfo"
	"github.com/speich/dGraph/pkg/cache"
	dgerrors "github.com/speich/dGraph/pkg/errors"
	"github.com/speich/dGraph/pkg/graph"
	"github.com/speich/dGraph/pkg/grid"
	"github.com/speich/dGraph/pkg/pathfind"
	"github.com/speich/dGraph/pkg/pipeline"
)

// Request is the body of every /v1 endpoint.
type Request struct {
	Graph   graph.Data       `json:"graph"`
	Options pipeline.Options `json:"options"`
	// Start is the label of the path search start node (/v1/path only).
	Start string `json:"start,omitempty"`
}

// LayoutResponse is the body returned by /v1/layout.
type LayoutResponse struct {
	RequestID string     `json:"requestId"`
	GraphHash string     `json:"graphHash"`
	Cached    bool       `json:"cached"`
	Stats     grid.Stats `json:"stats"`
	Grid      *grid.Grid `json:"grid"`
}

// PathResponse is the body returned by /v1/path.
type PathResponse struct {
	RequestID string              `json:"requestId"`
	Start     string              `json:"start"`
	Reachable []string            `json:"reachable"`
	Highlight *pathfind.Highlight `json:"highlight"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:      "image/svg+xml",
	pipeline.FormatNodelink: "image/svg+xml",
	pipeline.FormatDOT:      "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatJSON:     "application/json",
	pipeline.FormatPDF:      "application/pdf",
	pipeline.FormatPNG:      "image/png",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
	return nil
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) error {
	req, err := s.decode(r)
	if err != nil {
		return err
	}
	g, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), req.Graph, req.Options)
	if err != nil {
		return err
	}
	raw, err := graph.Marshal(req.Graph)
	if err != nil {
		return dgerrors.Wrap(dgerrors.ErrCodeInternal, err, "encode graph")
	}
	writeJSON(w, http.StatusOK, LayoutResponse{
		RequestID: requestIDFrom(r.Context()),
		GraphHash: cache.Hash(raw),
		Cached:    hit,
		Stats:     g.Stats(),
		Grid:      g,
	})
	return nil
}

// handleRender returns a single artifact. The format comes from the
// "format" query parameter, else from the first entry of options.formats.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) error {
	req, err := s.decode(r)
	if err != nil {
		return err
	}
	format := r.URL.Query().Get("format")
	if format == "" && len(req.Options.Formats) > 0 {
		format = req.Options.Formats[0]
	}
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return dgerrors.Wrap(dgerrors.ErrCodeInvalidFormat, err, "format")
	}
	req.Options.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), req.Graph, req.Options)
	if err != nil {
		return err
	}
	data := res.Artifacts[format]

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
	return nil
}

func (s *Server) handlePath(w http.ResponseWriter, r *http.Request) error {
	req, err := s.decode(r)
	if err != nil {
		return err
	}
	if err := dgerrors.ValidateLabel(req.Start); err != nil {
		return err
	}
	g, err := s.runner.Layout(r.Context(), req.Graph, req.Options)
	if err != nil {
		return err
	}
	start := g.Find(req.Start)
	if start == nil {
		return dgerrors.New(dgerrors.ErrCodeNodeNotFound, "node %q not found", req.Start)
	}

	reachable := []string{}
	for _, n := range pathfind.Reachable(g, start) {
		reachable = append(reachable, n.Label)
	}
	writeJSON(w, http.StatusOK, PathResponse{
		RequestID: requestIDFrom(r.Context()),
		Start:     req.Start,
		Reachable: reachable,
		Highlight: pathfind.NewHighlight(g, start),
	})
	return nil
}

// decode reads the request body with the server defaults pre-filled, so
// absent option fields keep their configured values.
func (s *Server) decode(r *http.Request) (Request, error) {
	req := Request{Options: s.defaults}
	req.Options.Formats = append([]string(nil), s.defaults.Formats...)
	req.Options.Logger = loggerFrom(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Request{}, dgerrors.New(dgerrors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		}
		if errors.Is(err, io.EOF) {
			return Request{}, dgerrors.New(dgerrors.ErrCodeInvalidInput, "request body is empty")
		}
		return Request{}, dgerrors.Wrap(dgerrors.ErrCodeInvalidInput, err, "decode request")
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes err as an ErrorResponse. Uncoded errors are reported as
// internal errors without exposing their text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := dgerrors.GetCode(err)
	msg := dgerrors.UserMessage(err)
	if code == "" {
		code = dgerrors.ErrCodeInternal
		msg = "internal error"
	}
	status := dgerrors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		loggerFrom(r.Context()).Error("request failed", "code", code, "err", err)
	}
	writeJSON(w, status, ErrorResponse{
		Error:     msg,
		Code:      string(code),
		RequestID: requestIDFrom(r.Context()),
	})
}

func cacheHeader(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}
