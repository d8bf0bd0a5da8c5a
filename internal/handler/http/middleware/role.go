package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/workpulse-hr/workpulse-backend-go/internal/domain/employee"
	"github.com/workpulse-hr/workpulse-backend-go/internal/handler/http/response"
)

// HROnly requires the hr role
func HROnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, employee.ErrHRAccessRequired)
			return
		}

		role, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, employee.ErrHRAccessRequired)
			return
		}

		if role != string(employee.RoleHR) {
			response.HandleError(w, employee.ErrHRAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
