package api

import "net/http"

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	overview, err := s.StatsService.Overview(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, overview)
}
