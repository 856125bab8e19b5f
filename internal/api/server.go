package api

import (
	"context"

	"github.com/vytor/studyflash/internal/jobs"
	"github.com/vytor/studyflash/internal/services"
)

// Pinger reports storage reachability for readiness probes.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	DB               Pinger
	ProfileService   services.ProfileService
	DeckService      services.DeckService
	FlashcardService services.FlashcardService
	SessionService   services.SessionService
	StatsService     services.StatsService
	ImportService    services.ImportService
	JobQueue         jobs.JobQueue
	// ReviewLimiter throttles review submissions per profile. Nil disables it.
	ReviewLimiter *RateLimiter
	// AllowedOrigins enables CORS for these browser origins.
	AllowedOrigins []string
}
