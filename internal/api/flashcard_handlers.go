package api

import (
	"net/http"
	"strconv"

	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/services"
	"github.com/vytor/studyflash/internal/srs"
)

type createFlashcardRequest struct {
	DeckID int64  `json:"deck_id"`
	Front  string `json:"front"`
	Back   string `json:"back"`
}

// reviewRequest carries exactly one outcome: a quality grade, or a
// correctness flag with a confidence.
type reviewRequest struct {
	Quality     *int     `json:"quality"`
	IsCorrect   *bool    `json:"is_correct"`
	Confidence  *float64 `json:"confidence"`
	TimeSeconds float64  `json:"time_seconds"`
	Version     int64    `json:"version"`
}

func (req reviewRequest) outcome() (srs.Outcome, error) {
	graded := req.Quality != nil
	flagged := req.IsCorrect != nil || req.Confidence != nil
	switch {
	case graded && flagged:
		return nil, errors.NewBadRequestError("send either quality or is_correct with confidence, not both")
	case graded:
		return srs.Quality(*req.Quality), nil
	case req.IsCorrect == nil:
		if req.Confidence != nil {
			return nil, errors.NewBadRequestError("confidence requires is_correct")
		}
		return nil, errors.NewBadRequestError("quality or is_correct with confidence is required")
	case req.Confidence == nil:
		return nil, errors.NewBadRequestError("is_correct requires confidence")
	}
	return srs.CorrectnessConfidence{IsCorrect: *req.IsCorrect, Confidence: *req.Confidence}, nil
}

type flashcardList struct {
	Cards  []models.Flashcard `json:"cards"`
	Total  int                `json:"total"`
	Limit  int                `json:"limit"`
	Offset int                `json:"offset"`
}

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	q := r.URL.Query()

	filter := models.FlashcardFilter{ProfileID: profile.ID, Phase: srs.Phase(q.Get("phase"))}
	if raw := q.Get("deck_id"); raw != "" {
		deckID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid deck_id: "+raw))
			return
		}
		filter.DeckID = deckID
	}
	if raw := q.Get("due"); raw != "" {
		due, err := strconv.ParseBool(raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid due: "+raw))
			return
		}
		if due {
			now := services.SystemClock()
			filter.DueBefore = &now
		}
	}
	var err error
	if filter.Limit, err = queryInt(r, "limit"); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.Offset, err = queryInt(r, "offset"); err != nil {
		handleError(w, r, err)
		return
	}

	cards, total, err := s.FlashcardService.ListFlashcards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, flashcardList{
		Cards:  nonNil(cards),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req createFlashcardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.DeckID <= 0 {
		handleError(w, r, errors.NewValidationError("deck_id", "is required"))
		return
	}

	card, err := s.FlashcardService.CreateFlashcard(r.Context(), profile.ID, req.DeckID, req.Front, req.Back)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleGetFlashcard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	card, err := s.FlashcardService.GetFlashcard(r.Context(), profile.ID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleDeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.FlashcardService.DeleteFlashcard(r.Context(), profile.ID, id); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFlashcardHistory(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}
	history, err := s.FlashcardService.ReviewHistory(r.Context(), profile.ID, id, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, nonNil(history))
}

func (s *Server) handleReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req reviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	outcome, err := req.outcome()
	if err != nil {
		handleError(w, r, err)
		return
	}

	res, err := s.FlashcardService.Review(r.Context(), profile.ID, id, services.ReviewInput{
		Outcome:         outcome,
		TimeSeconds:     req.TimeSeconds,
		ExpectedVersion: req.Version,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}
