package handlers

import (
	"net/http"

	"github.com/unais-08/blogs-fullstack/internal/service"
	"github.com/unais-08/blogs-fullstack/internal/transport/http/response"
	"github.com/unais-08/blogs-fullstack/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	errs        *response.Writer
}

func NewAuthHandler(authService *service.AuthService, errs *response.Writer) *AuthHandler {
	return &AuthHandler{authService: authService, errs: errs}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		h.errs.Error(w, r, err)
		return
	}

	if err := validator.ValidateRegister(input.Name, input.Email, input.Password).Err(); err != nil {
		h.errs.Error(w, r, err)
		return
	}

	resp, err := h.authService.Register(r.Context(), input)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	response.Success(w, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		h.errs.Error(w, r, err)
		return
	}

	if err := validator.ValidateLogin(input.Email, input.Password).Err(); err != nil {
		h.errs.Error(w, r, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), input)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, resp)
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	user, err := h.authService.GetProfile(r.Context(), p.UserID)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	response.Success(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.errs.Error(w, r, err)
		return
	}

	if err := h.authService.Logout(r.Context(), p); err != nil {
		h.errs.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "Logged out successfully")
}
