package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/markbates/goth/gothic"
	"github.com/webfolio-dev/webfolio/internal/auth"
	"github.com/webfolio-dev/webfolio/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func RegisterHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	var body RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		http.Error(w, "Email already exists", http.StatusBadRequest)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Println("[REGISTER]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("[REGISTER]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Name:         body.Name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		log.Println("[REGISTER]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := auth.SignIn(w, r, user.ID); err != nil {
		log.Println("[REGISTER]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, user)
}

func LoginHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	var body LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Invalid email or password", http.StatusBadRequest)
			return
		}
		log.Println("[LOGIN]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		http.Error(w, "Invalid email or password", http.StatusBadRequest)
		return
	}

	if err := auth.SignIn(w, r, user.ID); err != nil {
		log.Println("[LOGIN]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, user)
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := auth.SignOut(w, r); err != nil {
		log.Println("[LOGOUT]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"message": "Logged out successfully"})
}

func MeHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	user := auth.CurrentUser(r, db)
	if user == nil {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}
	writeJSON(w, user)
}

// OAuthCallbackHandler completes a provider sign-in and provisions the
// user row on first contact. The provider supplies the verified
// identity; only the email lookup and session are ours.
func OAuthCallbackHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	gothUser, err := gothic.CompleteUserAuth(w, r)
	if err != nil {
		log.Println("[OAUTH_CALLBACK]", err)
		http.Error(w, "Authentication failed", http.StatusUnauthorized)
		return
	}

	email := strings.ToLower(strings.TrimSpace(gothUser.Email))

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("[OAUTH_CALLBACK]", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		user = models.User{
			Name:  gothUser.Name,
			Email: email,
			Image: gothUser.AvatarURL,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Println("[OAUTH_CALLBACK]", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
	}

	if err := auth.SignIn(w, r, user.ID); err != nil {
		log.Println("[OAUTH_CALLBACK]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusTemporaryRedirect)
}
