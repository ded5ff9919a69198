package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/StaffDesk-io/staffdesk/internal/auth"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

func (req *registerRequest) validate() map[string][]string {
	errs := map[string][]string{}
	if req.Name == "" {
		errs["name"] = append(errs["name"], "The name field is required.")
	} else if len(req.Name) > 255 {
		errs["name"] = append(errs["name"], "The name may not be greater than 255 characters.")
	}
	validateEmailField(errs, req.Email)
	validatePasswordField(errs, req.Password)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (req *loginRequest) validate() map[string][]string {
	errs := map[string][]string{}
	validateEmailField(errs, req.Email)
	validatePasswordField(errs, req.Password)
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEmailField(errs map[string][]string, email string) {
	if email == "" {
		errs["email"] = append(errs["email"], "The email field is required.")
		return
	}
	if !auth.ValidateEmail(email) {
		errs["email"] = append(errs["email"], "The email must be a valid email address.")
	}
	if len(email) > 255 {
		errs["email"] = append(errs["email"], "The email may not be greater than 255 characters.")
	}
}

func validatePasswordField(errs map[string][]string, password string) {
	if password == "" {
		errs["password"] = append(errs["password"], "The password field is required.")
	} else if len(password) > 255 {
		errs["password"] = append(errs["password"], "The password may not be greater than 255 characters.")
	}
}

// RegisterHandler creates a user account and returns its first API token
func (api *Api) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.validate(); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	// Duplicate emails are not pre-checked; the store's uniqueness
	// constraint rejects them.
	_, token, err := api.Auth.Register(req.Name, req.Email, req.Password)
	if err != nil {
		log.Printf("Registration failed: %v", err)
		respondMessage(w, http.StatusBadRequest, "Registration failed")
		return
	}

	respondJSON(w, http.StatusCreated, tokenResponse{
		Token:   token,
		Message: "Registration successful",
	})
}

// LoginHandler validates credentials and returns a fresh API token
func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.validate(); errs != nil {
		respondValidationErrors(w, errs)
		return
	}

	user, err := api.Auth.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondMessage(w, http.StatusUnauthorized, "The provided credentials are incorrect.")
			return
		}
		log.Printf("Login failed: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := api.Auth.IssueToken(user)
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse{
		Token:   token,
		Message: "Login successful",
	})
}

// LogoutHandler revokes exactly the token that authenticated this request
func (api *Api) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	if err := api.Auth.RevokeToken(token); err != nil {
		log.Printf("Error revoking token: %v", err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondMessage(w, http.StatusOK, "Logout successful")
}

// CurrentUserHandler returns the authenticated caller's identity
func (api *Api) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	token, ok := tokenFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Unauthenticated.")
		return
	}

	user, err := api.Auth.GetUser(token.UserID)
	if err != nil {
		log.Printf("Error loading user %d: %v", token.UserID, err)
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondJSON(w, http.StatusOK, user)
}
