package adaptor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kweeen04/EandP/internal/data/entity"
	"github.com/kweeen04/EandP/pkg/utils"
)

// actor pulls the authenticated subject out of the request context. The auth
// middleware guarantees both values are present on protected routes.
func actor(r *http.Request) (uuid.UUID, entity.UserRole, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := utils.GetRoleFromContext(r.Context())
	if !ok {
		return uuid.Nil, "", false
	}
	return userID, entity.UserRole(role), true
}

// pathUUID parses a UUID route parameter.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
