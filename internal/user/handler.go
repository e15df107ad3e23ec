package user

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	internal "github.com/frahmantamala/school-management/internal"
	"github.com/frahmantamala/school-management/internal/auth"
	"github.com/frahmantamala/school-management/internal/transport"
	"github.com/frahmantamala/school-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// CreateUser handles POST /users. The session middleware has already put a
// fresh principal in context; the hierarchy and institution rules run in the
// service.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(actor, dto)
	if err != nil {
		h.Logger.Warn("user creation failed", "actor_id", actor.ID, "error", err)
		h.writeUserError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, offset := transport.Pagination(r, 50)

	users, err := h.Service.ListByInstitution(actor, limit, offset)
	if err != nil {
		h.Logger.Warn("user listing failed", "actor_id", actor.ID, "error", err)
		h.writeUserError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) writeUserError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		status, body := appErr.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return
	}

	if errors.Is(err, auth.ErrUserNotFound) {
		h.WriteError(w, http.StatusNotFound, "User not found")
		return
	}

	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}
