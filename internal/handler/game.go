package handler

import (
	"log/slog"
	"net/http"

	"github.com/courtside/platform/internal/auth"
	"github.com/courtside/platform/internal/domain"
	"github.com/courtside/platform/internal/envelope"
	"github.com/courtside/platform/internal/service"
)

// GameHandler handles pickup game endpoints. Both routes require identity.
type GameHandler struct {
	games  *service.GameService
	logger *slog.Logger
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(games *service.GameService, logger *slog.Logger) *GameHandler {
	return &GameHandler{games: games, logger: logger}
}

// List handles GET /api/games.
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.List(r.Context())
	if err != nil {
		h.logger.Error("list games failed", "tag", "GET_GAMES", "error", err)
		RespondError(w, err)
		return
	}
	Respond(w, envelope.Success(envelope.Payload{"games": games}))
}

// Create handles POST /api/games. The caller becomes the host.
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateGameInput
	if err := DecodeJSON(r, &input); err != nil {
		Respond(w, envelope.Failure("Invalid request body").WithStatus(http.StatusBadRequest))
		return
	}

	game, err := h.games.Create(r.Context(), auth.SubjectFromContext(r.Context()), input)
	if err != nil {
		if isServerError(err) {
			h.logger.Error("create game failed", "tag", "CREATE_GAME", "error", err)
		}
		RespondError(w, err)
		return
	}

	Respond(w, envelope.Success(envelope.Payload{"game": game}).WithStatus(http.StatusCreated))
}
