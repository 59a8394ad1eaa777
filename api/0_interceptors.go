package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fulldump/box"
	"github.com/google/uuid"

	"github.com/fulldump/listdb/database"
)

var ErrUnauthorized = errors.New("unauthorized")
var ErrUnavailable = errors.New("temporary unavailable")
var ErrPanic = errors.New("internal panic")

func RecoverFromPanic(next box.H) box.H {
	return func(ctx context.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("panic", "err", err, "stack", string(debug.Stack()))
				box.SetError(ctx, fmt.Errorf("%w: %v", ErrPanic, err))
			}
		}()
		next(ctx)
	}
}

func AccessLog(l *slog.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			r := box.GetRequest(ctx)
			requestID := uuid.New().String()
			box.GetResponse(ctx).Header().Set("X-Request-Id", requestID)
			now := time.Now()
			defer func() {
				attrs := []any{
					"id", requestID,
					"remote", formatRemoteAddr(r),
					"method", r.Method,
					"url", r.URL.String(),
					"took", time.Since(now),
				}
				if err := box.GetError(ctx); err != nil {
					attrs = append(attrs, "err", err)
				}
				l.Info("access", attrs...)
			}()

			next(ctx)
		}
	}
}

func formatRemoteAddr(r *http.Request) string {
	xorigin := strings.TrimSpace(strings.Split(
		r.Header.Get("X-Forwarded-For"), ",")[0])
	if xorigin != "" {
		return xorigin
	}

	i := strings.LastIndex(r.RemoteAddr, ":")
	if i < 0 {
		return r.RemoteAddr
	}
	return r.RemoteAddr[0:i]
}

func InterceptorUnavailable(db *database.Database) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {

			status := db.GetStatus()
			if status == database.StatusOpening {
				box.SetError(ctx, fmt.Errorf("%w: opening", ErrUnavailable))
				return
			}
			if status == database.StatusClosing {
				box.SetError(ctx, fmt.Errorf("%w: closing", ErrUnavailable))
				return
			}
			next(ctx)
		}
	}
}

// Authenticate checks X-Api-Key and X-Api-Secret headers. An empty apiKey
// disables it.
func Authenticate(apiKey, apiSecret string) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			if apiKey == "" {
				next(ctx)
				return
			}

			r := box.GetRequest(ctx)
			key := r.Header.Get("X-Api-Key")
			secret := r.Header.Get("X-Api-Secret")
			if subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 ||
				subtle.ConstantTimeCompare([]byte(secret), []byte(apiSecret)) != 1 {
				box.SetError(ctx, ErrUnauthorized)
				return
			}

			next(ctx)
		}
	}
}
