package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hadirin/attendance-backend-go/internal/domain/auth"
	"github.com/hadirin/attendance-backend-go/internal/domain/user"
	"github.com/hadirin/attendance-backend-go/internal/handler/http/response"
)

// AdminOnly guards write endpoints: approvals, suspensions and the salary
// configuration. Operators keep read access through routes outside this group.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || user.Role(role) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
