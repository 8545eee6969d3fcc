package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/jfscargo/backoffice/internal/platform/httpx"
)

// Handler exposes the public authentication endpoints. These routes are the
// only part of the API reachable without a token.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers authentication routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/login", h.login)
	r.Post("/forgot-password", h.forgotPassword)
	r.Get("/reset-password", h.checkResetToken)
	r.Post("/reset-password", h.resetPassword)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "a valid email and a password are required")
		return
	}
	result, err := h.service.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		h.logger.Warn("login rejected", slog.String("email", in.Email))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var in forgotPasswordRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "a valid email is required")
		return
	}
	if err := h.service.RequestPasswordReset(r.Context(), in.Email); err != nil {
		h.logger.Error("request password reset", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, "If the address exists, a reset link has been sent", nil)
}

func (h *Handler) checkResetToken(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		httpx.Error(w, http.StatusBadRequest, "token is required")
		return
	}
	if err := h.service.CheckResetToken(r.Context(), token); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Token is valid", nil)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var in resetPasswordRequest
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Error(w, http.StatusBadRequest, "token and password are required")
		return
	}
	if err := h.service.ResetPassword(r.Context(), in.Token, in.Password); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.Message(w, http.StatusOK, "Password updated", nil)
}
