package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

// UserIDHeader заголовок с ID пользователя, который проставляет API gateway
const UserIDHeader = "X-User-ID"

const (
	msgMissingCredentials = "отсутствует токен или ID пользователя"
	msgInvalidToken       = "недействительный токен"
	msgUnknownUser        = "пользователь не найден"
)

var errNoCredentials = errors.New("no credentials")

// UserRepository источник ролей. Роль из токена не используется: она могла измениться.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth строит сессию из Bearer JWT (sub = ID пользователя) или из заголовка X-User-ID
type Auth struct {
	secret          []byte
	trustUserHeader bool
	users           UserRepository
	logger          Logger
}

// NewAuth создает middleware аутентификации
func NewAuth(jwtSecret string, trustUserHeader bool, users UserRepository, logger Logger) *Auth {
	return &Auth{
		secret:          []byte(jwtSecret),
		trustUserHeader: trustUserHeader,
		users:           users,
		logger:          logger,
	}
}

// Middleware отвечает 401, если пользователя не удалось определить
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.identify(r)
		if err != nil {
			a.logger.Warn("Auth: %s %s - %v", r.Method, r.URL.Path, err)
			if errors.Is(err, errNoCredentials) {
				handlers.RespondUnauthorized(w, msgMissingCredentials)
			} else {
				handlers.RespondUnauthorized(w, msgInvalidToken)
			}
			return
		}

		user, err := a.users.GetByID(r.Context(), userID)
		if err != nil {
			// Неизвестный пользователь не получает роль по умолчанию
			a.logger.Warn("Auth: %s %s - user=%s not resolved: %v", r.Method, r.URL.Path, userID, err)
			handlers.RespondUnauthorized(w, msgUnknownUser)
			return
		}

		session := domain.Session{UserID: user.ID, Role: user.Role}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
	})
}

func (a *Auth) identify(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" && len(a.secret) > 0 {
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", errors.New("invalid authorization format")
		}
		return a.parseToken(parts[1])
	}

	if a.trustUserHeader {
		if userID := strings.TrimSpace(r.Header.Get(UserIDHeader)); userID != "" {
			return userID, nil
		}
	}

	return "", errNoCredentials
}

func (a *Auth) parseToken(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return a.secret, nil
	}, jwt.WithLeeway(5*time.Second), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
