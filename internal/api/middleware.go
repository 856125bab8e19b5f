package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/studyflash/internal/errors"
	"github.com/vytor/studyflash/internal/logger"
	"github.com/vytor/studyflash/internal/models"
)

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.size += n
	return n, err
}

type contextKey string

const (
	profileContextKey contextKey = "profile"
	profileCookieName            = "profile_id"
	profileHeader                = "X-Profile-ID"
)

func profileFromContext(ctx context.Context) *models.Profile {
	if v := ctx.Value(profileContextKey); v != nil {
		if p, ok := v.(*models.Profile); ok {
			return p
		}
	}
	return nil
}

// profileMiddleware resolves the acting profile from the X-Profile-ID header,
// falling back to the profile_id cookie.
func (s *Server) profileMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		raw := r.Header.Get(profileHeader)
		if raw == "" {
			if cookie, err := r.Cookie(profileCookieName); err == nil {
				raw = cookie.Value
			}
		}
		if raw == "" {
			log.Debug("no profile on request")
			handleError(w, r, errors.NewBadRequestError("profile required: send "+profileHeader))
			return
		}

		profileID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || profileID <= 0 {
			log.Warn("invalid profile id: %q", raw)
			handleError(w, r, errors.NewBadRequestError("invalid profile id"))
			return
		}

		profile, err := s.ProfileService.GetProfile(r.Context(), profileID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), profileContextKey, profile)
		ctx = logger.NewContext(ctx, log.WithField("profile_id", profile.ID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func setProfileCookie(w http.ResponseWriter, id int64) {
	http.SetCookie(w, &http.Cookie{
		Name:     profileCookieName,
		Value:    strconv.FormatInt(id, 10),
		Path:     "/",
		Expires:  time.Now().Add(30 * 24 * time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// loggingMiddleware logs HTTP requests with timing, status codes, and request IDs.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		// Create a request-scoped logger with the request ID
		log := logger.Default().WithFields(map[string]any{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
		})

		if r.RemoteAddr != "" {
			log = log.WithField("remote_addr", r.RemoteAddr)
		}

		ctx := logger.NewContext(r.Context(), log)
		r = r.WithContext(ctx)

		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		log.Debug("request started")

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log = log.WithFields(map[string]any{
			"status":      wrapped.status,
			"size":        wrapped.size,
			"duration_ms": duration.Milliseconds(),
		})

		if wrapped.status >= 500 {
			log.Error("request completed with server error")
		} else if wrapped.status >= 400 {
			log.Warn("request completed with client error")
		} else {
			log.Info("request completed")
		}
	})
}

// recoveryMiddleware recovers from panics and logs them.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log := logger.FromContext(r.Context())
				log.Error("panic recovered: %v", rec)
				handleError(w, r, errors.NewInternalError(nil))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// rateLimitMiddleware throttles per profile, or per remote address when no
// profile is resolved.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.ReviewLimiter == nil {
			next.ServeHTTP(w, r)
			return
		}
		key := r.RemoteAddr
		if p := profileFromContext(r.Context()); p != nil {
			key = "profile:" + strconv.FormatInt(p.ID, 10)
		}
		if !s.ReviewLimiter.Allow(key) {
			w.Header().Set("Retry-After", "1")
			handleError(w, r, errors.NewTooManyRequestsError())
			return
		}
		next.ServeHTTP(w, r)
	})
}
