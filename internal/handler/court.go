package handler

import (
	"log/slog"
	"net/http"

	"github.com/courtside/platform/internal/domain"
	"github.com/courtside/platform/internal/envelope"
	"github.com/courtside/platform/internal/repository"
)

// CourtHandler serves the court listing.
type CourtHandler struct {
	courts repository.CourtRepository
	db     repository.DBTX
	logger *slog.Logger
}

// NewCourtHandler creates a new CourtHandler.
func NewCourtHandler(courts repository.CourtRepository, db repository.DBTX, logger *slog.Logger) *CourtHandler {
	return &CourtHandler{courts: courts, db: db, logger: logger}
}

// GetCourts handles GET /api/courts. It expects to sit behind
// auth.RequireIdentity and answers {success, courts} ordered by name.
func (h *CourtHandler) GetCourts(w http.ResponseWriter, r *http.Request) {
	courts, err := h.courts.List(r.Context(), h.db)
	if err != nil {
		h.logger.Error("list courts failed", "tag", "GET_COURTS", "error", err)
		RespondError(w, domain.ErrInternal("Failed to fetch courts", err))
		return
	}
	Respond(w, envelope.Success(envelope.Payload{"courts": courts}))
}
