package api

import "net/http"

type startSessionRequest struct {
	DeckID         int64 `json:"deck_id"`
	SizePreference int   `json:"size_preference"`
}

// handleStartSession accepts an empty body for an all-decks session with the
// default size.
func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req startSessionRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil && err != errEmptyBody {
			handleError(w, r, err)
			return
		}
	}

	session, err := s.SessionService.Start(r.Context(), profile.ID, req.DeckID, req.SizePreference)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, session)
}
