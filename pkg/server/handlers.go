package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/archdiagram/pkg/errors"
	"github.com/matzehuels/archdiagram/pkg/observability"
	"github.com/matzehuels/archdiagram/pkg/pipeline"
)

// DocumentRequest is the body of POST /v1/documents.
type DocumentRequest struct {
	Model         string `json:"model"`
	Response      string `json:"response"`
	SkipDetection bool   `json:"skip_detection,omitempty"`
	Refresh       bool   `json:"refresh,omitempty"`
}

// DocumentResponse is returned by POST /v1/documents.
type DocumentResponse struct {
	ID       string `json:"id"`
	Document string `json:"document"`
	ViewURL  string `json:"view_url"`
	EditURL  string `json:"edit_url"`
	Cached   bool   `json:"cached"`
}

// CheckRequest is the body of POST /v1/check.
type CheckRequest struct {
	Response string `json:"response"`
}

// CheckResponse is returned by POST /v1/check.
type CheckResponse struct {
	Cycle bool   `json:"cycle"`
	Node  string `json:"node,omitempty"`
	// Error is set when detection failed; the verdict is then "no cycle".
	Error string `json:"error,omitempty"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// EventsResponse is returned by GET /v1/events.
type EventsResponse struct {
	Counts map[observability.Event]int `json:"counts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req DocumentRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		ModelName:     req.Model,
		Response:      req.Response,
		SkipDetection: req.SkipDetection,
		Refresh:       req.Refresh,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DocumentResponse{
		ID:       result.RunID.String(),
		Document: result.Document,
		ViewURL:  result.ViewLink,
		EditURL:  result.EditLink,
		Cached:   result.CacheHit,
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if !s.decode(w, r, &req) {
		return
	}

	result, err := s.runner.Check(r.Context(), req.Response)
	if errors.Is(err, errors.ErrCodeNoDiagram) {
		s.writeError(w, r, err)
		return
	}

	resp := CheckResponse{Cycle: result.Found, Node: result.Node}
	if err != nil {
		resp.Error = errors.UserMessage(err)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, EventsResponse{Counts: s.events.Counts()})
}

// decode reads a JSON body into v, writing a 400 reply on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: errors.UserMessage(err)})
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeNoDiagram:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
