package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Candidate is a job-seeker profile. Date-only fields (dob, visa_expiry,
// availability_date) are stored normalized as YYYY-MM-DD strings.
type Candidate struct {
	BaseModel
	AccountCredentials

	// Identity
	Email         string `gorm:"uniqueIndex;not null" json:"email"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Whatsapp      string `json:"whatsapp"`
	PhoneVerified bool   `gorm:"default:false" json:"phone_verified"`

	// Demographics
	Gender      string         `json:"gender"`
	DOB         string         `gorm:"column:dob" json:"dob"`
	Nationality string         `json:"nationality"`
	City        string         `json:"city"`
	Languages   pq.StringArray `gorm:"type:text[]" json:"languages" swaggerignore:"true"`

	// Work
	JobTitle         string `json:"job_title"`
	ExperienceYears  int    `json:"experience_years"`
	VisaStatus       string `json:"visa_status"`
	VisaExpiry       string `json:"visa_expiry"`
	AvailabilityDate string `json:"availability_date"`

	// Free-form arrays
	Education         datatypes.JSON `gorm:"type:jsonb" json:"education"` // [{"degree": "...", "school": "...", "year": ...}]
	PreferredBenefits pq.StringArray `gorm:"type:text[]" json:"preferred_benefits" swaggerignore:"true"`

	// Media relations
	ProfilePictureID *string `gorm:"type:uuid" json:"profile_picture_id"`
	ResumeID         *string `gorm:"type:uuid" json:"resume_id"`

	ProfileViews int `gorm:"default:0" json:"profile_views"`

	AcceptedTermsAt *time.Time `json:"accepted_terms_at,omitempty"`
}
