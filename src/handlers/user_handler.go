package handlers

import (
	"net/http"

	"budget-planner/src/apperr"
	"budget-planner/src/logger"
	"budget-planner/src/util"

	"golang.org/x/crypto/bcrypt"
)

// GetMe returns the profile of the authenticated user.
func GetMe(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}
		user, err := users.GetUserByID(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func ChangePassword(users UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			writeError(w, r, err)
			return
		}

		var req struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, err)
			return
		}

		user, err := users.GetUserByID(r.Context(), userID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.CurrentPassword)); err != nil {
			writeError(w, r, apperr.Unauthorized("current password is incorrect"))
			return
		}

		if !util.ValidatePassword(req.NewPassword) {
			writeError(w, r, apperr.Validation(passwordRules))
			return
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, r, err)
			return
		}

		if err := users.UpdateUserPassword(r.Context(), userID, string(hashedPassword)); err != nil {
			writeError(w, r, err)
			return
		}

		log := logger.FromContext(r.Context())
		log.Info().Int64("user_id", userID).Msg("password changed")
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "password changed successfully",
		})
	}
}
