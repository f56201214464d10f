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

type RoleRequest struct {
	Label      string `json:"label" validate:"required"`
	IsFeatured bool   `json:"isFeatured"`
}

func CreateRoleHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	var body RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	role := models.Role{
		UserID:     userID,
		Label:      body.Label,
		IsFeatured: body.IsFeatured,
	}
	if err := db.Create(&role).Error; err != nil {
		log.Println("[ROLES_POST]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, role)
}

func ListRolesHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "User Id is required", http.StatusBadRequest)
		return
	}
	featured := r.URL.Query().Get("isFeatured")

	data, err := cachedList("roles:"+userID+":"+featured, func() (any, error) {
		var roles []models.Role
		q := db.Where("user_id = ?", userID).Order("created_at desc")
		if featured != "" {
			q = q.Where("is_featured = ?", true)
		}
		if err := q.Find(&roles).Error; err != nil {
			return nil, err
		}
		return roles, nil
	})
	if err != nil {
		log.Println("[ROLES_GET]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, data)
}

func GetRoleHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	id := chi.URLParam(r, "roleID")
	if id == "" {
		http.Error(w, "Role id is required", http.StatusBadRequest)
		return
	}

	var role models.Role
	if err := db.First(&role, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absent rows are not an error for public reads.
			writeJSON(w, nil)
			return
		}
		log.Println("[ROLE_GET]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, role)
}

func UpdateRoleHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "roleID")
	if id == "" {
		http.Error(w, "Role id is required", http.StatusBadRequest)
		return
	}

	var body RoleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	// The owner filter doubles as the authorization check: a mismatched
	// caller matches zero rows and gets a count of 0, not a 403.
	res := db.Model(&models.Role{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"label":       body.Label,
			"is_featured": body.IsFeatured,
		})
	if res.Error != nil {
		log.Println("[ROLE_PATCH]", res.Error)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, CountResponse{Count: res.RowsAffected})
}

func DeleteRoleHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "roleID")
	if id == "" {
		http.Error(w, "Role id is required", http.StatusBadRequest)
		return
	}

	// Deleting a role still referenced by a skill, work or project trips
	// the RESTRICT constraint and surfaces as a generic 500.
	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Role{})
	if res.Error != nil {
		log.Println("[ROLE_DELETE]", res.Error)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, CountResponse{Count: res.RowsAffected})
}
