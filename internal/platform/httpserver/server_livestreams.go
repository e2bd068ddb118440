package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	livestreamerrors "squpe/contexts/social-impact/livestream-service/domain/errors"
	livestreamhttp "squpe/contexts/social-impact/livestream-service/transport/http"
)

func writeLivestreamDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, livestreamerrors.ErrInvalidStreamInput):
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, livestreamerrors.ErrStreamNotFound):
		writeError(w, http.StatusNotFound, "LIVESTREAM_NOT_FOUND", "Livestream not found")
	case errors.Is(err, livestreamerrors.ErrNotStreamOwner):
		writeError(w, http.StatusForbidden, "NOT_STREAM_OWNER", "Not authorized to end this stream")
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

func (s *Server) handleStartStream(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}

	var req livestreamhttp.StartStreamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "request body must be valid JSON")
		return
	}

	resp, err := s.livestreams.Handler.StartStreamHandler(r.Context(), user.ID, req)
	if err != nil {
		writeLivestreamDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetStream(w http.ResponseWriter, r *http.Request) {
	resp, err := s.livestreams.Handler.GetStreamHandler(r.Context(), r.PathValue("stream_id"))
	if err != nil {
		writeLivestreamDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListStreams(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Absent status means the live directory; an explicit empty status
	// clears the filter and returns ended streams too.
	status := "live"
	if query.Has("status") {
		status = query.Get("status")
	}

	limit := 0
	if raw := query.Get("limit"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "limit must be an integer")
			return
		}
		limit = value
	}

	resp, err := s.livestreams.Handler.ListStreamsHandler(
		r.Context(),
		status,
		query.Get("category"),
		limit,
	)
	if err != nil {
		writeLivestreamDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEndStream(w http.ResponseWriter, r *http.Request) {
	user, ok := s.resolveUser(w, r)
	if !ok {
		return
	}

	resp, err := s.livestreams.Handler.EndStreamHandler(r.Context(), user.ID, r.PathValue("stream_id"))
	if err != nil {
		writeLivestreamDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateViewerCount(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("count")
	if raw == "" {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "count query parameter is required")
		return
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "count must be an integer")
		return
	}

	resp, err := s.livestreams.Handler.UpdateViewerCountHandler(r.Context(), r.PathValue("stream_id"), count)
	if err != nil {
		writeLivestreamDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
