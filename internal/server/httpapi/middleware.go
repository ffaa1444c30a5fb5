package httpapi

import (
	"context"
	"net/http"
)

// requireAuth gates protected routes behind the bearer strategy. On
// failure the request is rejected with a uniform 401 before any handler
// logic runs; on success the identity is attached to the request
// context for handlers to read via AuthUserFromContext.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := s.bearer.Authenticate(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), authUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
