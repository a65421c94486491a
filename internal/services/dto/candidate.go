package dto

import (
	"time"

	"rtw_backend/internal/models"

	"gorm.io/datatypes"
)

// UpdateCandidateRequest is a partial update: only non-nil fields touch the
// row. Changing the email flips the account back to unverified.
type UpdateCandidateRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Whatsapp *string `json:"whatsapp,omitempty" validate:"omitempty,max=20"`

	Gender      *string  `json:"gender,omitempty" validate:"omitempty,is-gender"`
	DOB         *string  `json:"dob,omitempty"`
	Nationality *string  `json:"nationality,omitempty" validate:"omitempty,max=100"`
	City        *string  `json:"city,omitempty" validate:"omitempty,max=100"`
	Languages   []string `json:"languages,omitempty"`

	JobTitle         *string `json:"job_title,omitempty" validate:"omitempty,max=150"`
	ExperienceYears  *int    `json:"experience_years,omitempty" validate:"omitempty,min=0,max=60"`
	VisaStatus       *string `json:"visa_status,omitempty" validate:"omitempty,is-visa-status"`
	VisaExpiry       *string `json:"visa_expiry,omitempty"`
	AvailabilityDate *string `json:"availability_date,omitempty"`

	Education         datatypes.JSON `json:"education,omitempty"`
	PreferredBenefits []string       `json:"preferred_benefits,omitempty"`

	ProfilePictureID *string `json:"profile_picture_id,omitempty" validate:"omitempty,uuid"`
	ResumeID         *string `json:"resume_id,omitempty" validate:"omitempty,uuid"`
}

type CandidateDTO struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Whatsapp      string `json:"whatsapp"`
	PhoneVerified bool   `json:"phone_verified"`

	Gender      string   `json:"gender"`
	DOB         string   `json:"dob"`
	Nationality string   `json:"nationality"`
	City        string   `json:"city"`
	Languages   []string `json:"languages"`

	JobTitle         string `json:"job_title"`
	ExperienceYears  int    `json:"experience_years"`
	VisaStatus       string `json:"visa_status"`
	VisaExpiry       string `json:"visa_expiry"`
	AvailabilityDate string `json:"availability_date"`

	Education         datatypes.JSON `json:"education,omitempty"`
	PreferredBenefits []string       `json:"preferred_benefits"`

	ProfilePictureID *string `json:"profile_picture_id,omitempty"`
	ResumeID         *string `json:"resume_id,omitempty"`

	ProfileViews int        `json:"profile_views"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// CandidatePublicDTO is what an employer sees before unlocking the contact.
// Phone, whatsapp and email stay hidden.
type CandidatePublicDTO struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Gender          string   `json:"gender"`
	Nationality     string   `json:"nationality"`
	City            string   `json:"city"`
	Languages       []string `json:"languages"`
	JobTitle        string   `json:"job_title"`
	ExperienceYears int      `json:"experience_years"`
	VisaStatus      string   `json:"visa_status"`

	AvailabilityDate string  `json:"availability_date"`
	ProfilePictureID *string `json:"profile_picture_id,omitempty"`
	ProfileViews     int     `json:"profile_views"`
}

// CandidateContactDTO extends the public view with the unlocked channels.
type CandidateContactDTO struct {
	CandidatePublicDTO
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Whatsapp string `json:"whatsapp"`
}

func CandidateDTOFromModel(c *models.Candidate) CandidateDTO {
	return CandidateDTO{
		ID:                c.ID,
		Email:             c.Email,
		EmailVerified:     c.EmailVerified,
		Name:              c.Name,
		Phone:             c.Phone,
		Whatsapp:          c.Whatsapp,
		PhoneVerified:     c.PhoneVerified,
		Gender:            c.Gender,
		DOB:               c.DOB,
		Nationality:       c.Nationality,
		City:              c.City,
		Languages:         c.Languages,
		JobTitle:          c.JobTitle,
		ExperienceYears:   c.ExperienceYears,
		VisaStatus:        c.VisaStatus,
		VisaExpiry:        c.VisaExpiry,
		AvailabilityDate:  c.AvailabilityDate,
		Education:         c.Education,
		PreferredBenefits: c.PreferredBenefits,
		ProfilePictureID:  c.ProfilePictureID,
		ResumeID:          c.ResumeID,
		ProfileViews:      c.ProfileViews,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
		LastLoginAt:       c.LastLoginAt,
	}
}

func CandidatePublicDTOFromModel(c *models.Candidate) CandidatePublicDTO {
	return CandidatePublicDTO{
		ID:               c.ID,
		Name:             c.Name,
		Gender:           c.Gender,
		Nationality:      c.Nationality,
		City:             c.City,
		Languages:        c.Languages,
		JobTitle:         c.JobTitle,
		ExperienceYears:  c.ExperienceYears,
		VisaStatus:       c.VisaStatus,
		AvailabilityDate: c.AvailabilityDate,
		ProfilePictureID: c.ProfilePictureID,
		ProfileViews:     c.ProfileViews,
	}
}

func CandidateContactDTOFromModel(c *models.Candidate) CandidateContactDTO {
	return CandidateContactDTO{
		CandidatePublicDTO: CandidatePublicDTOFromModel(c),
		Email:              c.Email,
		Phone:              c.Phone,
		Whatsapp:           c.Whatsapp,
	}
}
