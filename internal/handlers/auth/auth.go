package auth

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/services/auth"
	"gitlab.com/bugfix-arena.net/internal/handlers"
	"gitlab.com/bugfix-arena.net/internal/handlers/response"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Handler struct {
	authService auth.IAuthService
	logger      primary.Logger
}

func NewHandler(authService auth.IAuthService, logger primary.Logger) *Handler {
	return &Handler{
		authService: authService,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/auth/login", h.Login).Methods(http.MethodPost)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		handlers.ResponseError(w, "username and password are required", http.StatusBadRequest)
		return
	}

	loginResponse, err := h.authService.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		handlers.ResponseServiceError(w, h.logger, err)
		return
	}
	response.WriteSuccess(w, loginResponse)
}
