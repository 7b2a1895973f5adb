package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/tournevent/parcel/internal/tracking"
	"github.com/tournevent/parcel/pkg/tracker"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

// envelope wraps every JSON response.
type envelope struct {
	OK            bool          `json:"ok"`
	Data          any           `json:"data,omitempty"`
	Error         string        `json:"error,omitempty"`
	Code          string        `json:"code,omitempty"`
	GraphQLErrors gqlerror.List `json:"graphQLErrors,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleCarriers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := tracking.ListCarriersRequest{CountryCode: q.Get("countryCode")}
	if raw := q.Get("first"); raw != "" {
		first, err := strconv.Atoi(raw)
		if err != nil || first < 1 {
			s.writeError(w, r, tracker.NewTrackerError(tracker.ErrInvalidInput, tracker.CodeInvalidInput,
				"first must be a positive integer"))
			return
		}
		req.First = first
	}

	carriers, err := s.service.ListCarriers(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{OK: true, Data: carriers})
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	var req tracking.TrackRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.logger.Ctx(r.Context()).Warn("Invalid track request body", zap.Error(err))
		s.writeError(w, r, tracker.NewTrackerError(tracker.ErrInvalidInput, tracker.CodeInvalidInput,
			"request body must be a JSON object").WithCause(err))
		return
	}

	result, err := s.service.Track(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, envelope{OK: true, Data: result})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusNotFound, envelope{Error: "route not found", Code: "ROUTE_NOT_FOUND"})
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusMethodNotAllowed, envelope{Error: "method not allowed", Code: "METHOD_NOT_ALLOWED"})
}

// writeError maps err onto an HTTP status and an error envelope.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	body := envelope{Error: "internal error", Code: tracker.CodeOf(err)}
	if te, ok := tracker.AsTrackerError(err); ok {
		body.Error = te.Message
		body.GraphQLErrors = te.GraphQLErrors
	}

	if status >= http.StatusInternalServerError {
		s.logger.Ctx(r.Context()).Error("Request failed", zap.String("code", body.Code), zap.Error(err))
	}
	s.writeJSON(w, status, body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tracker.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, tracker.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		s.logger.Warn("Failed to write response", zap.Error(err))
	}
}
