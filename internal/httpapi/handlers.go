package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/mathcoach/internal/credential"
	"github.com/abhisek/mathcoach/internal/curriculum"
	"github.com/abhisek/mathcoach/internal/questiongen"
	"github.com/abhisek/mathcoach/internal/session"
)

type apiResponse struct {
	Success bool      `json:"success"`
	Data    any       `json:"data,omitempty"`
	Error   *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Snapshot *session.Snapshot `json:"snapshot,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	s.write(w, status, apiResponse{Success: status >= 200 && status < 300, Data: data})
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string, snap *session.Snapshot) {
	s.write(w, status, apiResponse{Error: &apiError{Code: code, Message: message, Snapshot: snap}})
}

func (s *Server) write(w http.ResponseWriter, status int, resp apiResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

// respondSessionError maps session and generation errors onto status codes.
// The snapshot is always attached so clients can render the status message.
func (s *Server) respondSessionError(w http.ResponseWriter, m *session.Machine, err error) {
	snap := m.Snapshot()

	var (
		verr *questiongen.ValidationError
		gerr *questiongen.GenerationError
	)
	switch {
	case errors.As(err, &verr):
		s.respondError(w, http.StatusUnprocessableEntity, string(verr.Code), verr.Message(), &snap)
	case errors.As(err, &gerr):
		s.respondError(w, http.StatusBadGateway, string(gerr.Cause), snap.StatusMessage, &snap)
	case errors.Is(err, session.ErrSuperseded):
		s.respondError(w, http.StatusConflict, "superseded", "a newer request replaced this one", &snap)
	case errors.Is(err, session.ErrNoActiveQuestion):
		s.respondError(w, http.StatusConflict, "no-active-question", snap.StatusMessage, &snap)
	case errors.Is(err, session.ErrAlreadyGraded):
		s.respondError(w, http.StatusConflict, "already-graded", "this question has already been answered", &snap)
	default:
		s.log.Error().Err(err).Str("session_id", m.ID()).Msg("session request failed")
		s.respondError(w, http.StatusInternalServerError, "internal_error", "internal error", &snap)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.len(),
	})
}

// machine resolves the {id} URL parameter, writing a 404 when unknown.
func (s *Server) machine(w http.ResponseWriter, r *http.Request) (*session.Machine, bool) {
	id := chi.URLParam(r, "id")
	m, ok := s.sessions.get(id)
	if !ok {
		s.respondError(w, http.StatusNotFound, "session_not_found", "session not found", nil)
	}
	return m, ok
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	m := s.newMachine()

	if r.ContentLength > 0 {
		var req selectionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
			return
		}
		sel, err := req.apply(m.Selection())
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid_selection", err.Error(), nil)
			return
		}
		m.SetSelection(sel)
	}

	s.sessions.add(m)
	s.respondJSON(w, http.StatusCreated, m.Snapshot())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	m, ok := s.machine(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, m.Snapshot())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	m, ok := s.sessions.remove(chi.URLParam(r, "id"))
	if !ok {
		s.respondError(w, http.StatusNotFound, "session_not_found", "session not found", nil)
		return
	}
	m.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// selectionRequest is a partial update. Omitted fields keep their value;
// an empty string clears an enum.
type selectionRequest struct {
	Cycle        *string `json:"cycle"`
	Topic        *string `json:"topic"`
	Difficulty   *string `json:"difficulty"`
	SmartMode    *bool   `json:"smartMode"`
	AdaptiveMode *bool   `json:"adaptiveMode"`
}

func (req selectionRequest) apply(sel curriculum.Selection) (curriculum.Selection, error) {
	if req.Cycle != nil {
		c, err := curriculum.ParseCycle(*req.Cycle)
		if err != nil {
			return sel, err
		}
		sel.Cycle = c
	}
	if req.Topic != nil {
		t, err := curriculum.ParseTopic(*req.Topic)
		if err != nil {
			return sel, err
		}
		sel.Topic = t
	}
	if req.Difficulty != nil {
		d, err := curriculum.ParseDifficulty(*req.Difficulty)
		if err != nil {
			return sel, err
		}
		sel.Difficulty = d
	}
	if req.SmartMode != nil {
		sel.SmartMode = *req.SmartMode
	}
	if req.AdaptiveMode != nil {
		sel.AdaptiveMode = *req.AdaptiveMode
	}
	return sel, nil
}

func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	m, ok := s.machine(w, r)
	if !ok {
		return
	}

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	var applyErr error
	m.UpdateSelection(func(sel *curriculum.Selection) {
		next, err := req.apply(*sel)
		if err != nil {
			applyErr = err
			return
		}
		*sel = next
	})
	if applyErr != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_selection", applyErr.Error(), nil)
		return
	}
	s.respondJSON(w, http.StatusOK, m.Snapshot())
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	m, ok := s.machine(w, r)
	if !ok {
		return
	}
	if err := m.RequestNext(r.Context(), m.Selection()); err != nil {
		s.respondSessionError(w, m, err)
		return
	}
	s.respondJSON(w, http.StatusOK, m.Snapshot())
}

type answerRequest struct {
	Answer string `json:"answer"`
}

// handleAnswer grades the answer. A failed or superseded follow-up still
// returns 200: the verdict stands and the snapshot carries the feedback.
func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	m, ok := s.machine(w, r)
	if !ok {
		return
	}

	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	_, err := m.SubmitAndAdapt(r.Context(), req.Answer)
	var gerr *questiongen.GenerationError
	switch {
	case err == nil, errors.As(err, &gerr), errors.Is(err, session.ErrSuperseded):
		s.respondJSON(w, http.StatusOK, m.Snapshot())
	default:
		s.respondSessionError(w, m, err)
	}
}

func (s *Server) handleHint(w http.ResponseWriter, r *http.Request) {
	m, ok := s.machine(w, r)
	if !ok {
		return
	}
	if err := m.ToggleHint(); err != nil {
		s.respondSessionError(w, m, err)
		return
	}
	s.respondJSON(w, http.StatusOK, m.Snapshot())
}

type credentialRequest struct {
	Key string `json:"key"`
}

type credentialResponse struct {
	Present bool `json:"present"`
}

func (s *Server) handleGetCredential(w http.ResponseWriter, r *http.Request) {
	present, err := s.creds.Has(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("credential lookup failed")
		s.respondError(w, http.StatusInternalServerError, "internal_error", "credential lookup failed", nil)
		return
	}
	s.respondJSON(w, http.StatusOK, credentialResponse{Present: present})
}

func (s *Server) handleSetCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body", nil)
		return
	}

	if err := s.creds.Set(r.Context(), req.Key); err != nil {
		switch {
		case errors.Is(err, credential.ErrEmptyKey):
			s.respondError(w, http.StatusBadRequest, string(questiongen.CodeMissingKey), "❌ Please enter your API key.", nil)
		case errors.Is(err, credential.ErrReadOnly):
			s.respondError(w, http.StatusConflict, "read_only", "credential store is read-only", nil)
		default:
			s.log.Error().Err(err).Msg("saving credential failed")
			s.respondError(w, http.StatusInternalServerError, "internal_error", "saving credential failed", nil)
		}
		return
	}
	s.respondJSON(w, http.StatusOK, credentialResponse{Present: true})
}

func (s *Server) handleClearCredential(w http.ResponseWriter, r *http.Request) {
	if err := s.creds.Clear(r.Context()); err != nil && !errors.Is(err, credential.ErrReadOnly) {
		s.log.Error().Err(err).Msg("clearing credential failed")
		s.respondError(w, http.StatusInternalServerError, "internal_error", "clearing credential failed", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
