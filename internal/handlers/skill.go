package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/webfolio-dev/webfolio/internal/auth"
	"github.com/webfolio-dev/webfolio/models"
	"gorm.io/gorm"
)

type SkillRequest struct {
	Label       string `json:"label" validate:"required"`
	Proficiency string `json:"proficiency" validate:"required,oneof=Beginner Intermediate Fluent"`
	ImageURL    string `json:"imageUrl"`
	RoleID      *uint  `json:"roleId" validate:"required"`
}

func CreateSkillHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	var body SkillRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	skill := models.Skill{
		UserID:      userID,
		RoleID:      body.RoleID,
		Label:       body.Label,
		Proficiency: body.Proficiency,
		ImageURL:    body.ImageURL,
	}
	if err := db.Create(&skill).Error; err != nil {
		log.Println("[SKILLS_POST]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, skill)
}

func ListSkillsHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "User Id is required", http.StatusBadRequest)
		return
	}
	roleID := r.URL.Query().Get("roleId")

	data, err := cachedList("skills:"+userID+":"+roleID, func() (any, error) {
		var skills []models.Skill
		q := db.Preload("Role").Where("user_id = ?", userID).Order("created_at desc")
		if roleID != "" {
			q = q.Where("role_id = ?", roleID)
		}
		if err := q.Find(&skills).Error; err != nil {
			return nil, err
		}
		return skills, nil
	})
	if err != nil {
		log.Println("[SKILLS_GET]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, data)
}

func GetSkillHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	id := chi.URLParam(r, "skillID")
	if id == "" {
		http.Error(w, "Skill id is required", http.StatusBadRequest)
		return
	}

	var skill models.Skill
	if err := db.Preload("Role").First(&skill, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, nil)
			return
		}
		log.Println("[SKILL_GET]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, skill)
}

func UpdateSkillHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "skillID")
	if id == "" {
		http.Error(w, "Skill id is required", http.StatusBadRequest)
		return
	}

	var body SkillRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	res := db.Model(&models.Skill{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"label":       body.Label,
			"proficiency": body.Proficiency,
			"image_url":   body.ImageURL,
			"role_id":     body.RoleID,
		})
	if res.Error != nil {
		log.Println("[SKILL_PATCH]", res.Error)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, CountResponse{Count: res.RowsAffected})
}

func DeleteSkillHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "skillID")
	if id == "" {
		http.Error(w, "Skill id is required", http.StatusBadRequest)
		return
	}

	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Skill{})
	if res.Error != nil {
		log.Println("[SKILL_DELETE]", res.Error)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, CountResponse{Count: res.RowsAffected})
}
