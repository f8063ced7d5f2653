package accounts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/BulkSecurityGeneratorProject/parking-api/internal/domain"
	"github.com/BulkSecurityGeneratorProject/parking-api/internal/rest"
)

// LoginRequest carries the credentials of an authentication attempt.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse carries the signed token of a successful authentication.
type TokenResponse struct {
	IDToken string `json:"id_token"`
}

// resetFinishRequest carries the key and new password of a password reset.
type resetFinishRequest struct {
	Key         string `json:"key"`
	NewPassword string `json:"newPassword"`
}

// accountDTO is the externally visible shape of an account.
type accountDTO struct {
	ID          int64    `json:"id"`
	Login       string   `json:"login"`
	FirstName   string   `json:"firstName,omitempty"`
	LastName    string   `json:"lastName,omitempty"`
	Email       string   `json:"email,omitempty"`
	Activated   bool     `json:"activated"`
	LangKey     string   `json:"langKey,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Authorities []string `json:"authorities"`
}

func toAccountDTO(u domain.User) accountDTO {
	return accountDTO{
		ID:          u.ID,
		Login:       u.Login,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Activated:   u.Activated,
		LangKey:     u.LangKey,
		ImageURL:    u.ImageURL,
		Authorities: u.Authorities,
	}
}

// Handler exposes the account operations over HTTP.
type Handler struct {
	service *Service
}

// NewHTTPHandler creates the account HTTP handler.
func NewHTTPHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register wires the account routes into the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/register", h.register)
	mux.HandleFunc("GET /api/activate", h.activate)
	mux.HandleFunc("POST /api/authenticate", h.authenticate)
	mux.HandleFunc("GET /api/account", h.account)
	mux.HandleFunc("POST /api/account/reset-password/init", h.resetPasswordInit)
	mux.HandleFunc("POST /api/account/reset-password/finish", h.resetPasswordFinish)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{Message: "invalid request body"})
		return
	}
	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, toAccountDTO(user))
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{Message: "missing activation key"})
		return
	}
	if _, err := h.service.Activate(r.Context(), key); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{Message: "invalid request body"})
		return
	}
	token, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrNotActivated) {
			rest.WriteJSON(w, http.StatusUnauthorized, rest.ErrorResponse{Message: err.Error()})
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	rest.WriteJSON(w, http.StatusOK, TokenResponse{IDToken: token})
}

func (h *Handler) account(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetCurrent(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			rest.WriteJSON(w, http.StatusUnauthorized, rest.ErrorResponse{Message: "authentication required"})
			return
		}
		rest.WriteError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, toAccountDTO(user))
}

func (h *Handler) resetPasswordInit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{Message: "invalid request body"})
		return
	}
	if _, err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		// Unknown emails get the same answer as known ones, so the endpoint
		// cannot be used to enumerate accounts.
		if errors.Is(err, domain.ErrNotFound) {
			w.WriteHeader(http.StatusOK)
			return
		}
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) resetPasswordFinish(w http.ResponseWriter, r *http.Request) {
	var req resetFinishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteJSON(w, http.StatusBadRequest, rest.ErrorResponse{Message: "invalid request body"})
		return
	}
	if err := h.service.FinishPasswordReset(r.Context(), req.Key, req.NewPassword); err != nil {
		rest.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
