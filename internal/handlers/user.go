package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/webfolio-dev/webfolio/internal/auth"
	"github.com/webfolio-dev/webfolio/models"
	"gorm.io/gorm"
)

type SettingsRequest struct {
	Name        string     `json:"name" validate:"required"`
	Address     string     `json:"address"`
	DOB         *time.Time `json:"dob"`
	Linkedin    string     `json:"linkedin"`
	Whatsapp    string     `json:"whatsapp"`
	Biodata     string     `json:"biodata"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
}

// GetUserHandler is the public profile read backing a portfolio page.
func GetUserHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	id := chi.URLParam(r, "userID")
	if id == "" {
		http.Error(w, "User Id is required", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, nil)
			return
		}
		log.Println("[USER_GET]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, user)
}

// UpdateUserSettingsHandler updates the caller's profile. The path id
// is combined with the session id the same way entity writes filter on
// owner, so a mismatched caller gets a count of 0 rather than a 403.
func UpdateUserSettingsHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	sessionID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "userID")
	if id == "" {
		http.Error(w, "UserId is required", http.StatusBadRequest)
		return
	}

	var body SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	res := db.Model(&models.User{}).
		Where("id = ?", id).
		Where("id = ?", sessionID).
		Updates(map[string]any{
			"name":        body.Name,
			"address":     body.Address,
			"dob":         body.DOB,
			"linkedin":    body.Linkedin,
			"whatsapp":    body.Whatsapp,
			"biodata":     body.Biodata,
			"description": body.Description,
			"image":       body.Image,
		})
	if res.Error != nil {
		log.Println("[USER_PATCH]", res.Error)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, CountResponse{Count: res.RowsAffected})
}
