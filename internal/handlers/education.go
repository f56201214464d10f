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

type EducationRequest struct {
	Label    string     `json:"label" validate:"required"`
	Study    string     `json:"study" validate:"required"`
	FromDate time.Time  `json:"fromDate" validate:"required"`
	ToDate   *time.Time `json:"toDate"`
}

type EducationListItem struct {
	models.Education
	ToDateDisplay string `json:"toDateDisplay"`
}

func CreateEducationHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	var body EducationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	education := models.Education{
		UserID:   userID,
		Label:    body.Label,
		Study:    body.Study,
		FromDate: body.FromDate,
		ToDate:   body.ToDate,
	}
	if err := db.Create(&education).Error; err != nil {
		log.Println("[EDUCATIONS_POST]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, education)
}

func ListEducationsHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "User Id is required", http.StatusBadRequest)
		return
	}

	data, err := cachedList("educations:"+userID, func() (any, error) {
		var educations []models.Education
		err := db.Where("user_id = ?", userID).
			Order("from_date desc").
			Find(&educations).Error
		if err != nil {
			return nil, err
		}

		items := make([]EducationListItem, 0, len(educations))
		for _, education := range educations {
			items = append(items, EducationListItem{
				Education:     education,
				ToDateDisplay: DisplayDate(education.ToDate),
			})
		}
		return items, nil
	})
	if err != nil {
		log.Println("[EDUCATIONS_GET]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, data)
}

func GetEducationHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	id := chi.URLParam(r, "educationID")
	if id == "" {
		http.Error(w, "Education id is required", http.StatusBadRequest)
		return
	}

	var education models.Education
	if err := db.First(&education, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, nil)
			return
		}
		log.Println("[EDUCATION_GET]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, education)
}

func UpdateEducationHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "educationID")
	if id == "" {
		http.Error(w, "Education id is required", http.StatusBadRequest)
		return
	}

	var body EducationRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	res := db.Model(&models.Education{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"label":     body.Label,
			"study":     body.Study,
			"from_date": body.FromDate,
			"to_date":   body.ToDate,
		})
	if res.Error != nil {
		log.Println("[EDUCATION_PATCH]", res.Error)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, CountResponse{Count: res.RowsAffected})
}

func DeleteEducationHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "educationID")
	if id == "" {
		http.Error(w, "Education id is required", http.StatusBadRequest)
		return
	}

	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Education{})
	if res.Error != nil {
		log.Println("[EDUCATION_DELETE]", res.Error)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, CountResponse{Count: res.RowsAffected})
}
