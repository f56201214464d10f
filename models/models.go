package models

import (
	"time"
)

// Skill proficiency levels accepted by the API.
const (
	ProficiencyBeginner     = "Beginner"
	ProficiencyIntermediate = "Intermediate"
	ProficiencyFluent       = "Fluent"
)

// User is the portfolio owner. Rows are provisioned at credential
// registration or on first OAuth sign-in and are never hard-deleted.
type User struct {
	ID           uint       `json:"id" gorm:"primarykey"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Name         string     `json:"name" gorm:"size:255"`
	Email        string     `json:"email" gorm:"size:255;not null;unique"`
	PasswordHash string     `json:"-"`
	Address      string     `json:"address"`
	DOB          *time.Time `json:"dob"`
	Linkedin     string     `json:"linkedin"`
	Whatsapp     string     `json:"whatsapp"`
	Biodata      string     `json:"biodata"`
	Description  string     `json:"description"`
	Image        string     `json:"image"`
}

// Role groups works, projects and skills under one position title.
// Deletes are restricted while any of those still reference the role.
type Role struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	UserID     uint      `json:"userId" gorm:"not null;index"`
	Label      string    `json:"label" gorm:"size:255;not null"`
	IsFeatured bool      `json:"isFeatured"`
}

type Skill struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	RoleID      *uint     `json:"roleId"`
	Role        *Role     `json:"role,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Label       string    `json:"label" gorm:"size:255;not null"`
	Proficiency string    `json:"proficiency" gorm:"size:32;not null"`
	ImageURL    string    `json:"imageUrl"`
}

// Work is one employment entry. A nil ToDate means the position is
// still held ("Present").
type Work struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	UserID      uint       `json:"userId" gorm:"not null;index"`
	RoleID      uint       `json:"roleId" gorm:"not null"`
	Role        *Role      `json:"role,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Company     string     `json:"company" gorm:"size:255;not null"`
	CompanyLink string     `json:"companyLink"`
	Address     string     `json:"address"`
	FromDate    time.Time  `json:"fromDate" gorm:"not null"`
	ToDate      *time.Time `json:"toDate"`
	Description string     `json:"description"`
}

// Education follows the same nil-ToDate "Present" convention as Work.
type Education struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	UserID    uint       `json:"userId" gorm:"not null;index"`
	Label     string     `json:"label" gorm:"size:255;not null"`
	Study     string     `json:"study" gorm:"size:255;not null"`
	FromDate  time.Time  `json:"fromDate" gorm:"not null"`
	ToDate    *time.Time `json:"toDate"`
}

type Project struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	RoleID      uint      `json:"roleId" gorm:"not null"`
	Role        *Role     `json:"role,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Label       string    `json:"label" gorm:"size:255;not null"`
	Company     string    `json:"company" gorm:"size:255;not null"`
	WorkDate    time.Time `json:"workDate" gorm:"not null"`
	ImageURL    string    `json:"imageUrl"`
	VideoURL    string    `json:"videoUrl"`
	LinkURL     string    `json:"linkUrl"`
	GithubURL   string    `json:"githubUrl"`
	Description string    `json:"description"`
	Skills      []Skill   `json:"skills" gorm:"many2many:skill_to_projects;constraint:OnDelete:CASCADE"`
}

// SkillToProject is the join row between a project and a skill. It has
// no identity beyond the pair and is fully replaced on project update.
type SkillToProject struct {
	ProjectID uint `json:"projectId" gorm:"primaryKey"`
	SkillID   uint `json:"skillId" gorm:"primaryKey"`
}

// Upload records an image stored in the object bucket. The returned
// public URL is what clients submit back as imageUrl/image fields.
type Upload struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	UUID       string    `json:"uuid" gorm:"type:uuid;uniqueIndex"`
	UserID     uint      `json:"userId" gorm:"not null;index"`
	Filename   string    `json:"filename"`
	StorageKey string    `json:"-"`
	ThumbKey   string    `json:"-"`
	MimeType   string    `json:"mimeType"`
}
