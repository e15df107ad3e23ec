package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	internal "github.com/frahmantamala/school-management/internal"
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

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.Login(dto)
	if err != nil {
		// submitted credentials stay out of the logs; the error class is enough
		h.Logger.Warn("login failed", "error", err)

		switch {
		case errors.Is(err, ErrInvalidCredentials):
			h.WriteError(w, http.StatusUnauthorized, "Invalid email, password, or role")
		default:
			var vErr ValidationError
			if errors.As(err, &vErr) {
				h.WriteError(w, http.StatusBadRequest, vErr.Error())
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.ChangePassword(user.ID, dto)
	if err != nil {
		h.Logger.Warn("change password failed", "user_id", user.ID, "error", err)
		h.writeAuthError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) AdminResetPassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok || actor == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto AdminResetPasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.AdminResetPassword(actor, dto); err != nil {
		h.Logger.Warn("admin reset password failed", "actor_id", actor.ID, "target_id", dto.UserID, "error", err)
		h.writeAuthError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Password reset successfully. User will need to change it on next login.",
	})
}

// Me returns the freshly loaded principal, never token claims.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.WriteJSON(w, http.StatusOK, user)
}

// Logout only acknowledges: tokens are stateless, so there is nothing to
// invalidate server-side and the token stays valid until expiry.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

// writeAuthError maps service errors onto the HTTP taxonomy without leaking
// internal detail for unexpected failures.
func (h *Handler) writeAuthError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		status, body := appErr.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		h.WriteError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, ErrCurrentPasswordIncorrect):
		h.WriteError(w, http.StatusBadRequest, "Current password is incorrect")
	case errors.Is(err, ErrDefaultPassword):
		h.WriteError(w, http.StatusBadRequest, "New password cannot be the default password")
	case errors.Is(err, ErrOwnership):
		h.WriteError(w, http.StatusForbidden, "You can only reset passwords for users in your institution")
	default:
		var vErr ValidationError
		if errors.As(err, &vErr) {
			h.WriteError(w, http.StatusBadRequest, vErr.Error())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

// AuthMiddleware is the session boundary. It verifies the bearer token, then
// re-fetches the user so role, institution and status come from the live
// record rather than the token's copy.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		claims, err := h.Service.VerifyAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		uid, err := strconv.ParseInt(claims.UserID, 10, 64)
		if err != nil {
			h.Logger.Warn("failed to parse user id from token claims", "value", claims.UserID, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}

		user, err := h.Service.GetActiveUser(uid)
		if err != nil {
			h.Logger.Warn("auth middleware: user rejected", "user_id", uid, "error", err)
			h.WriteError(w, http.StatusUnauthorized, "User not found or account is inactive.")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}

// RequirePasswordChanged locks first-login users out of everything except the
// change-password operation. It reads the freshly fetched principal, so an
// administrative reset takes effect on the next request.
func (h *Handler) RequirePasswordChanged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user == nil {
			h.WriteError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		if !user.IsPasswordChanged {
			h.WriteJSON(w, http.StatusForbidden, map[string]interface{}{
				"message":                  "Please change your password before accessing this resource.",
				"requires_password_change": true,
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRoles gates a route to the given roles.
func (h *Handler) RequireRoles(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				h.WriteError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			h.Logger.Warn("access denied: insufficient role", "user_id", user.ID, "role", user.Role)
			h.WriteError(w, http.StatusForbidden, "Insufficient permissions to access this resource")
		})
	}
}
