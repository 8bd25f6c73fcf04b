package handler

import (
	"log/slog"
	"net/http"

	"github.com/courtside/platform/internal/domain"
	"github.com/courtside/platform/internal/envelope"
	"github.com/courtside/platform/internal/service"
)

// UserHandler handles the /api/users collection.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// List handles GET /api/users. The body is the bare user array.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		h.logger.Error("list users failed", "tag", "GET_USERS", "error", err)
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, users)
}

// Create handles POST /api/users with body {email, name}. The body of a
// 201 is the created user.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateUserInput
	if err := DecodeJSON(r, &input); err != nil {
		Respond(w, envelope.Failure("Invalid request body").WithStatus(http.StatusBadRequest))
		return
	}

	user, err := h.users.Create(r.Context(), input)
	if err != nil {
		if isServerError(err) {
			h.logger.Error("create user failed", "tag", "CREATE_USER", "error", err)
		}
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusCreated, user)
}
