package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/access"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/auth"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/metrics"
)

// Auth проверяет сессию пользователя и добавляет объект User в контекст запроса.
func Auth(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionCookie, err := r.Cookie(auth.SessionCookieName)
			if err != nil {
				// Куки нет, пользователь не аутентифицирован.
				next.ServeHTTP(w, r)
				return
			}

			user, err := svc.GetUserBySession(r.Context(), sessionCookie.Value)
			if err != nil {
				// Сессия недействительна или истекла. Очищаем куки.
				svc.ClearSessionCookie(w)
				log.Debugf(r.Context(), "Invalid or expired session: %v", err)
				next.ServeHTTP(w, r) // Продолжаем без пользователя в контексте
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

// RequireRoute пропускает запрос, только если зритель имеет доступ к маршруту routeID.
// Анонимный пользователь на защищенном маршруте получает 401, неподходящий тариф - 403.
func RequireRoute(resolver *access.Resolver, routeID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer := access.ViewerOf(auth.GetUserFromContext(r.Context()))
			if resolver.CanAccess(routeID, viewer) {
				next.ServeHTTP(w, r)
				return
			}

			route, known := resolver.Route(routeID)
			switch {
			case !known:
				metrics.RouteDenied(routeID, "unknown")
				writeError(w, http.StatusNotFound, "Not Found")
			case !viewer.Authenticated():
				metrics.RouteDenied(routeID, "anonymous")
				writeError(w, http.StatusUnauthorized, "Unauthorized")
			default:
				metrics.RouteDenied(routeID, "tier")
				log.Infof(r.Context(), "User %s (%s) denied route %s", viewer.ID, viewer.Tier, route.ID)
				writeError(w, http.StatusForbidden, "Forbidden: upgrade required")
			}
		})
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
