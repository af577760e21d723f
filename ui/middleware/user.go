package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"methodcost/domain/core"

	"github.com/google/uuid"
)

// UserHeader carries the caller's user ID
const UserHeader = "X-User-ID"

type userKey struct{}

// UserScope resolves the X-User-ID header into a user ID on the request
// context. A missing header means defaultID; a malformed one is rejected.
func UserScope(defaultID uuid.UUID) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := defaultID
			if raw := r.Header.Get(UserHeader); raw != "" {
				parsed, err := core.ParseUserID(raw)
				if err != nil {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusBadRequest)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "invalid " + UserHeader + " header",
						"code":  "INVALID_INPUT",
					})
					return
				}
				userID = parsed
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, userID)))
		})
	}
}

// UserID returns the user resolved by UserScope, or core.DefaultUserID
func UserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userKey{}).(uuid.UUID); ok {
		return id
	}
	return core.DefaultUserID
}
