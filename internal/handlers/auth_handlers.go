package handlers

import (
	"errors"
	"net/http"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/auth"
)

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Login    string `json:"login"` // Can be email or username
	Password string `json:"password"`
}

// Register processes the registration form.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decode(w, r, &req, func(get func(string) string) {
		req.Email, req.Username, req.Password = get("email"), get("username"), get("password")
	}); err != nil {
		Render400(w, r, err.Error())
		return
	}

	user, err := h.Auth.RegisterUser(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		log.Infof(r.Context(), "Registration error: %v", err)
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			Render409(w, r, "Email already registered.")
		case errors.Is(err, auth.ErrUsernameExists):
			Render409(w, r, "Username already taken.")
		case errors.Is(err, auth.ErrInvalidInput):
			Render400(w, r, err.Error())
		default:
			Render500(w, r, err)
		}
		return
	}

	renderJSON(w, r, http.StatusCreated, user)
}

// Login checks credentials and sets the session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(w, r, &req, func(get func(string) string) {
		req.Login, req.Password = get("login"), get("password")
	}); err != nil {
		Render400(w, r, err.Error())
		return
	}

	user, session, err := h.Auth.LoginUser(r.Context(), req.Login, req.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrUserNotFound) && !errors.Is(err, auth.ErrInvalidPassword) {
			Render500(w, r, err)
			return
		}
		log.Infof(r.Context(), "Login error for %s: %v", req.Login, err)
		renderJSON(w, r, http.StatusUnauthorized, errorBody{Error: "Invalid email/username or password."})
		return
	}

	h.Auth.SetSessionCookie(w, session.UUID, session.Expires)
	log.Infof(r.Context(), "User '%s' (ID: %s) logged in successfully.", user.Username, user.ID)
	renderJSON(w, r, http.StatusOK, map[string]any{"user": user, "expires": session.Expires})
}

// Logout logs out the user by deleting their session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie(auth.SessionCookieName)
	if err == nil { // If cookie exists, try to delete the session
		err = h.Auth.LogoutUser(r.Context(), sessionCookie.Value)
		if err != nil && !errors.Is(err, auth.ErrSessionNotFound) {
			log.Errorf(r.Context(), "Error deleting session: %v", err)
		}
	}

	// Always clear the cookie from the client
	h.Auth.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
