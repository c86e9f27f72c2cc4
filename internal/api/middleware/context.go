package middleware

import (
	"context"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

type sessionKey struct{}

// WithSession кладет сессию в контекст запроса
func WithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// GetSession достает сессию, установленную Auth
func GetSession(ctx context.Context) (domain.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(domain.Session)
	return session, ok && session.Valid()
}
