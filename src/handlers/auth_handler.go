package handlers

import (
	"errors"
	"net/http"
	"strings"

	"budget-planner/src/apperr"
	"budget-planner/src/logger"
	"budget-planner/src/middleware"
	"budget-planner/src/models"
	"budget-planner/src/util"

	"golang.org/x/crypto/bcrypt"
)

const passwordRules = "password must be at least 8 characters with uppercase, lowercase, digit, and special character"

type tokenResponse struct {
	Token string `json:"token"`
}

func Register(users UserStore, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req models.RegisterRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		req.Username = strings.ToLower(strings.TrimSpace(req.Username))
		req.FirstName = strings.TrimSpace(req.FirstName)
		req.LastName = strings.TrimSpace(req.LastName)

		if !util.ValidateEmail(req.Email) {
			writeError(w, r, apperr.Validation("invalid email format"))
			return
		}
		if !util.ValidateUsername(req.Username) {
			writeError(w, r, apperr.Validation("username must be between 3 and 30 characters"))
			return
		}
		if !util.ValidatePassword(req.Password) {
			writeError(w, r, apperr.Validation(passwordRules))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, r, err)
			return
		}

		resp, err := users.CreateUser(r.Context(), req, string(hashedPassword))
		if err != nil {
			writeError(w, r, err)
			return
		}

		token, err := middleware.IssueToken(jwtSecret, resp.ID, resp.Username, resp.SuperAdmin, now())
		if err != nil {
			writeError(w, r, err)
			return
		}

		log.Info().Int64("user_id", resp.ID).Str("username", resp.Username).Msg("user registered")
		writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
	}
}

func Login(users UserStore, jwtSecret string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var credentials struct {
			UsernameOrEmail string `json:"username"`
			Password        string `json:"password"`
		}
		if err := decodeJSON(r, &credentials); err != nil {
			writeError(w, r, err)
			return
		}
		name := strings.ToLower(strings.TrimSpace(credentials.UsernameOrEmail))
		if name == "" || credentials.Password == "" {
			writeError(w, r, apperr.Validation("username and password are required"))
			return
		}

		user, err := users.GetUserByUsername(r.Context(), name)
		if errors.Is(err, apperr.ErrNotFound) {
			user, err = users.GetUserByEmail(r.Context(), name)
		}
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				err = apperr.Unauthorized("invalid credentials")
			}
			writeError(w, r, err)
			return
		}

		if user.Locked {
			writeError(w, r, apperr.Forbidden("user account is locked"))
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(credentials.Password)); err != nil {
			log.Warn().Str("username", name).Str("remote_addr", r.RemoteAddr).Msg("invalid password attempt")
			writeError(w, r, apperr.Unauthorized("invalid credentials"))
			return
		}

		token, err := middleware.IssueToken(jwtSecret, user.ID, user.Username, user.SuperAdmin, now())
		if err != nil {
			writeError(w, r, err)
			return
		}

		if err := users.UpdateUserLastLogin(r.Context(), user.ID); err != nil {
			log.Error().Err(err).Int64("user_id", user.ID).Msg("failed to update last login")
		}

		log.Info().Int64("user_id", user.ID).Msg("user logged in")
		writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	}
}
