package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/maorhav/concierge/internal/intent"
)

// Health Check

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "healthy",
		"gcal":   "disconnected",
	}

	if s.gcalClient != nil && s.gcalClient.IsAuthenticated() {
		status["gcal"] = "connected"
	}

	respondJSON(w, http.StatusOK, status)
}

// Command API

type commandRequest struct {
	Text string `json:"text"`
}

type actionResult struct {
	Kind    string `json:"kind"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Ref     string `json:"ref,omitempty"`
	Error   string `json:"error,omitempty"`
}

type commandResponse struct {
	Success  bool           `json:"success"`
	Message  string         `json:"message"`
	Degraded bool           `json:"degraded,omitempty"`
	Results  []actionResult `json:"results"`
}

// handleCommand accepts one natural-language command plus an
// externally-verified identity and returns the per-action outcomes.
// Authentication itself happens upstream; this endpoint trusts the
// X-User-Name / X-User-Email headers the proxy sets.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req commandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	identity := intent.Identity{
		Name:  r.Header.Get("X-User-Name"),
		Email: r.Header.Get("X-User-Email"),
	}

	result := s.proc.Process(r.Context(), identity, req.Text)

	resp := commandResponse{
		Success:  true,
		Degraded: result.Degraded,
		Results:  make([]actionResult, 0, len(result.Outcomes)),
	}

	succeeded := 0
	for _, outcome := range result.Outcomes {
		ar := actionResult{
			Kind:    string(outcome.Action.Kind()),
			Success: outcome.Success(),
			Message: outcome.Message,
			Ref:     outcome.Ref,
		}
		if outcome.Err != nil {
			ar.Error = outcome.Err.Error()
		} else {
			succeeded++
		}
		resp.Results = append(resp.Results, ar)
	}

	resp.Message = fmt.Sprintf("%d of %d actions completed", succeeded, len(result.Outcomes))
	respondJSON(w, http.StatusOK, resp)
}

// Today's Schedule

func (s *Server) handleListTodayEvents(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil || !s.gcalClient.IsAuthenticated() {
		respondError(w, http.StatusServiceUnavailable, "Google Calendar not connected")
		return
	}

	events, err := s.gcalClient.ListTodayEvents("")
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// OAuth connect flow

func (s *Server) handleGCalConnect(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil {
		respondError(w, http.StatusServiceUnavailable, "Google Calendar client not initialized. Check credentials.json.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"auth_url": s.gcalClient.GetAuthURL()})
}

func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	if s.gcalClient == nil {
		respondError(w, http.StatusServiceUnavailable, "Google Calendar client not initialized")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	if err := s.gcalClient.ExchangeCode(r.Context(), code); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "connected"})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		fmt.Printf("Error encoding JSON response: %v\n", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
