package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Заголовки, проставляемые внешним Authorization Provider на периметре
const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

const (
	msgMissingIdentity = "запрос не аутентифицирован"
	msgInvalidRole     = "неизвестная роль пользователя"
)

type contextKey string

const actorContextKey contextKey = "actor"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает личность вызывающей стороны из заголовков запроса
// Сервис доверяет заголовкам: аутентификацию выполняет внешний периметр,
// здесь только разбор и проверка формата
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := r.Header.Get(headerUserID)
			roleStr := r.Header.Get(headerUserRole)

			if userIDStr == "" || roleStr == "" {
				logger.Warn("auth: missing identity headers, path=%s", r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingIdentity)
				return
			}

			userID, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("auth: invalid %s header: %q", headerUserID, userIDStr)
				handlers.RespondUnauthorized(w, msgMissingIdentity)
				return
			}

			role := domain.ActorRole(roleStr)
			if !domain.ValidRole(role) {
				logger.Warn("auth: invalid %s header: %q", headerUserRole, roleStr)
				handlers.RespondUnauthorized(w, msgInvalidRole)
				return
			}

			actor := domain.Actor{UserID: userID, Role: role}
			next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
		})
	}
}

// ContextWithActor кладет личность вызывающей стороны в контекст
func ContextWithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext возвращает личность вызывающей стороны из контекста
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(domain.Actor)
	return actor, ok
}
