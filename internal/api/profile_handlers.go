package api

import (
	"net/http"

	"github.com/vytor/studyflash/internal/logger"
)

type createProfileRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.ProfileService.ListProfiles(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nonNil(profiles))
}

// handleCreateProfile also selects the profile for cookie-based clients.
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req createProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.CreateProfile(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("profile ready: id=%d", profile.ID)
	setProfileCookie(w, profile.ID)
	writeJSON(w, r, http.StatusCreated, profile)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	profile, err := s.ProfileService.GetProfile(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.ProfileService.DeleteProfile(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// nonNil makes empty lists encode as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
