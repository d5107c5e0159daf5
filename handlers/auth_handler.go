package handlers

import (
	"errors"
	"net/http"

	"github.com/Dosada05/league-api/middleware"
	"github.com/Dosada05/league-api/services"
	"github.com/Dosada05/league-api/validation"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a user and responds with a fresh token, as if login had
// succeeded.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput

	if err := decodeBody(w, r, &input); err != nil {
		return
	}

	_, token, err := h.authService.Register(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"success": true,
		"token":   token,
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput

	if err := decodeBody(w, r, &input); err != nil {
		return
	}

	_, token, err := h.authService.Login(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"success": true,
		"token":   token,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Logout revokes the token the request authenticated with; the user's other
// tokens stay valid.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.TokenFromContext(r.Context())
	if !ok {
		mapServiceErrorToHTTP(w, r, services.ErrAuthenticationFailed)
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"success": true,
		"message": msgLoggedOut,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CurrentUser returns the authenticated user's record.
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		mapServiceErrorToHTTP(w, r, services.ErrAuthenticationFailed)
		return
	}

	if err := writeJSON(w, http.StatusOK, user, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// decodeBody reads the JSON body into dst and writes the appropriate error
// response itself; callers just return on a non-nil result.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	err := readJSON(w, r, dst)
	if err == nil {
		return nil
	}

	var fieldErrors validation.Errors
	if errors.As(err, &fieldErrors) {
		failedValidationResponse(w, r, fieldErrors)
		return err
	}
	badRequestResponse(w, r, err)
	return err
}
