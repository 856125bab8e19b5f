package api

import (
	stderrors "errors"
	"net/http"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/worker"
)

type createDeckRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type importDeckRequest struct {
	Cards []models.CardInput `json:"cards"`
}

func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	decks, err := s.DeckService.ListDecks(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nonNil(decks))
}

func (s *Server) handleCreateDeck(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req createDeckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	deck, err := s.DeckService.CreateDeck(r.Context(), profile.ID, req.Name, req.Description)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, deck)
}

func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	deck, err := s.DeckService.GetDeck(r.Context(), profile.ID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleDeleteDeck(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.DeckService.DeleteDeck(r.Context(), profile.ID, id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleImportDeck validates the batch up front and queues the insert.
func (s *Server) handleImportDeck(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	profile := profileFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req importDeckRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if _, err := s.DeckService.GetDeck(r.Context(), profile.ID, id); err != nil {
		handleError(w, r, err)
		return
	}
	cards, err := s.ImportService.PrepareCards(req.Cards)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.JobQueue.EnqueueImport(profile.ID, id, cards); err != nil {
		if stderrors.Is(err, worker.ErrQueueFull) || stderrors.Is(err, worker.ErrPoolStopped) {
			handleError(w, r, errors.NewServiceUnavailableError("import queue is busy, retry later", err))
			return
		}
		handleError(w, r, errors.NewInternalError(err))
		return
	}

	log.Info("queued import of %d cards into deck %d", len(cards), id)
	writeJSON(w, r, http.StatusAccepted, map[string]any{
		"deck_id": id,
		"queued":  len(cards),
	})
}
