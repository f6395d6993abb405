package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/aetherium/content-engine/internal/pipeline"
	"github.com/aetherium/content-engine/internal/types"
)

// GenerateRequest is the body of POST /api/v1/generate.
type GenerateRequest struct {
	URL    string `json:"url"`
	UserID string `json:"userId,omitempty"`
}

// handleGenerate runs the full generation pipeline for one article URL.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.URL == "" {
		s.errorResponse(w, http.StatusBadRequest, "URL is required", "")
		return
	}

	if subject := Scope(r); subject != "" {
		log.Printf("[generate] authenticated request from %s", subject)
	}

	result, err := s.runner.Run(r.Context(), pipeline.Request{
		URL:    req.URL,
		UserID: req.UserID,
	})
	if err != nil {
		log.Printf("Error during content generation: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to generate content.", err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, result)
}

// handleGetPersona returns the stored persona for a user, or null when
// none exists. A missing row is success, not an error.
func (s *Server) handleGetPersona(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		s.errorResponse(w, http.StatusBadRequest, "User ID is required.", "")
		return
	}

	persona, err := s.store.GetPersona(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch persona.", err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, persona)
}

// SavePersonaResponse is the body returned by POST /api/v1/persona.
type SavePersonaResponse struct {
	Message string `json:"message"`
	Persona any    `json:"persona"`
}

// handleSavePersona creates or updates a persona, keyed on user identifier.
func (s *Server) handleSavePersona(w http.ResponseWriter, r *http.Request) {
	var req types.SavePersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "User ID is required.", "")
		return
	}

	persona, err := s.store.UpsertPersona(r.Context(), req.UserID, req.BrandVoice, req.TargetAudience, req.ContentGoal)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to save persona.", err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, SavePersonaResponse{
		Message: "Persona saved successfully!",
		Persona: persona,
	})
}

// FeedbackResponse is the body returned by POST /api/v1/feedback.
type FeedbackResponse struct {
	Message  string `json:"message"`
	Exemplar any    `json:"exemplar"`
}

// handleFeedback stores a user-approved content sample together with a
// server-side computed embedding for later similarity retrieval.
func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req types.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "userId, platform, and content are required.", "")
		return
	}

	log.Printf("Creating embedding for successful content...")
	embedding, err := s.embedder.Embed(r.Context(), req.Content)
	if err != nil {
		log.Printf("Error in feedback loop: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to learn from feedback.", err.Error())
		return
	}

	exemplar, err := s.store.InsertExemplar(r.Context(), req.UserID, req.Platform, req.Content, embedding)
	if err != nil {
		log.Printf("Error in feedback loop: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to learn from feedback.", err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, FeedbackResponse{
		Message:  "Feedback learned!",
		Exemplar: exemplar,
	})
}
