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

type WorkRequest struct {
	RoleID      *uint      `json:"roleId" validate:"required"`
	Company     string     `json:"company" validate:"required"`
	CompanyLink string     `json:"companyLink"`
	Address     string     `json:"address"`
	FromDate    time.Time  `json:"fromDate" validate:"required"`
	ToDate      *time.Time `json:"toDate"`
	Description string     `json:"description" validate:"required"`
}

// WorkListItem augments the row with the rendered end date, so list
// consumers see "Present" for ongoing positions without re-implementing
// the convention.
type WorkListItem struct {
	models.Work
	ToDateDisplay string `json:"toDateDisplay"`
}

func CreateWorkHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	var body WorkRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	work := models.Work{
		UserID:      userID,
		RoleID:      *body.RoleID,
		Company:     body.Company,
		CompanyLink: body.CompanyLink,
		Address:     body.Address,
		FromDate:    body.FromDate,
		ToDate:      body.ToDate,
		Description: body.Description,
	}
	if err := db.Create(&work).Error; err != nil {
		log.Println("[WORKS_POST]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, work)
}

func ListWorksHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "User Id is required", http.StatusBadRequest)
		return
	}

	data, err := cachedList("works:"+userID, func() (any, error) {
		var works []models.Work
		err := db.Preload("Role").
			Where("user_id = ?", userID).
			Order("from_date desc").
			Find(&works).Error
		if err != nil {
			return nil, err
		}

		items := make([]WorkListItem, 0, len(works))
		for _, work := range works {
			items = append(items, WorkListItem{
				Work:          work,
				ToDateDisplay: DisplayDate(work.ToDate),
			})
		}
		return items, nil
	})
	if err != nil {
		log.Println("[WORKS_GET]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, data)
}

func GetWorkHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	id := chi.URLParam(r, "workID")
	if id == "" {
		http.Error(w, "Work id is required", http.StatusBadRequest)
		return
	}

	var work models.Work
	if err := db.First(&work, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeJSON(w, nil)
			return
		}
		log.Println("[WORK_GET]", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, work)
}

func UpdateWorkHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "workID")
	if id == "" {
		http.Error(w, "Work id is required", http.StatusBadRequest)
		return
	}

	var body WorkRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := validateBody(body); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	// ToDate is set even when nil: clearing it is how a position is
	// marked as ongoing again.
	res := db.Model(&models.Work{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{
			"role_id":      body.RoleID,
			"company":      body.Company,
			"company_link": body.CompanyLink,
			"address":      body.Address,
			"from_date":    body.FromDate,
			"to_date":      body.ToDate,
			"description":  body.Description,
		})
	if res.Error != nil {
		log.Println("[WORK_PATCH]", res.Error)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, CountResponse{Count: res.RowsAffected})
}

func DeleteWorkHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthenticated", http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "workID")
	if id == "" {
		http.Error(w, "Work id is required", http.StatusBadRequest)
		return
	}

	res := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Work{})
	if res.Error != nil {
		log.Println("[WORK_DELETE]", res.Error)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	FlushListCache()
	writeJSON(w, CountResponse{Count: res.RowsAffected})
}
