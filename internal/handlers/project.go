package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/webfolio-dev/webfolio/internal/auth"
	"github.com/webfolio-dev/webfolio/models"
	"gorm.io/gorm"
)

type ProjectRequest struct {
	RoleID      *uint     `json:"roleId" validate:"required"`
	Label       string    `json:"label" validate:"required"`
	Company     string    `json:"company" validate:"required"`
	Skills      []uint    `json:"skills" validate:"required,min=1"`
	WorkDate    time.Time `json:"workDate" validate:"required"`
	ImageURL    string    `json:"imageUrl" validate:"required"`
	VideoURL    string    `json:"videoUrl"`
	LinkURL     string    `json:"linkUrl" validate:"required"`
	GithubURL   string    `json:"githubUrl"`
	Description string    `json:"description" validate:"required"`
}

func CreateProjectHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	var body ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	project := models.Project{
		UserID:      userID,
		RoleID:      *body.RoleID,
		Label:       body.Label,
		Company:     body.Company,
		WorkDate:    body.WorkDate,
		ImageURL:    body.ImageURL,
		VideoURL:    body.VideoURL,
		LinkURL:     body.LinkURL,
		GithubURL:   body.GithubURL,
		Description: body.Description,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&project).Error; err != nil {
			return err
		}
		for _, skillID := range body.Skills {
			join := models.SkillToProject{ProjectID: project.ID, SkillID: skillID}
			if err := tx.Create(&join).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Println("[PROJECTS_POST]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := db.Preload("Role").Preload("Skills").First(&project, project.ID).Error; err != nil {
		log.Println("[PROJECTS_POST]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, project)
}

func ListProjectsHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "User Id is required", http.StatusBadRequest)
		return
	}

	data, err := cachedList("projects:"+userID, func() (any, error) {
		var projects []models.Project
		err := db.Preload("Role").Preload("Skills").
			Where("user_id = ?", userID).
			Order("work_date desc").
			Find(&projects).Error
		if err != nil {
			return nil, err
		}
		return projects, nil
	})
	if err != nil {
		log.Println("[PROJECTS_GET]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, data)
}

func GetProjectHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	id := chi.URLParam(r, "projectID")
	if id == "" {
		http.Error(w, "Project id is required", http.StatusBadRequest)
		return
	}

	var project models.Project
	if err := db.Preload("Role").Preload("Skills").First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, nil)
			return
		}
		log.Println("[PROJECT_GET]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, project)
}

// UpdateProjectHandler replaces the scalar fields and rebuilds the
// skill association set from the submitted id list. Both phases run in
// one transaction so a failure cannot leave the project with its
// associations cleared but not re-created.
func UpdateProjectHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	projectID, err := strconv.ParseUint(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		http.Error(w, "Project id is required", http.StatusBadRequest)
		return
	}

	var body ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	var count int64
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Project{}).
			Where("id = ? AND user_id = ?", projectID, userID).
			Updates(map[string]any{
				"role_id":     body.RoleID,
				"label":       body.Label,
				"company":     body.Company,
				"work_date":   body.WorkDate,
				"image_url":   body.ImageURL,
				"video_url":   body.VideoURL,
				"link_url":    body.LinkURL,
				"github_url":  body.GithubURL,
				"description": body.Description,
			})
		if res.Error != nil {
			return res.Error
		}
		count = res.RowsAffected
		if count == 0 {
			// Owner filter matched nothing; leave associations alone.
			return nil
		}

		if err := tx.Where("project_id = ?", projectID).Delete(&models.SkillToProject{}).Error; err != nil {
			return err
		}
		for _, skillID := range body.Skills {
			join := models.SkillToProject{ProjectID: uint(projectID), SkillID: skillID}
			if err := tx.Create(&join).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Println("[PROJECT_PATCH]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, CountResponse{Count: count})
}

func DeleteProjectHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	projectID, err := strconv.ParseUint(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		http.Error(w, "Project id is required", http.StatusBadRequest)
		return
	}

	var count int64
	err = db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Owner filter matched nothing; report a no-op.
				return nil
			}
			return err
		}

		// Join rows go first so the association constraint cannot block
		// the project delete.
		if err := tx.Where("project_id = ?", projectID).Delete(&models.SkillToProject{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&project)
		if res.Error != nil {
			return res.Error
		}
		count = res.RowsAffected
		return nil
	})
	if err != nil {
		log.Println("[PROJECT_DELETE]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, CountResponse{Count: count})
}
