package models

import "time"

// InterviewInvitation is sent by an employer to a candidate and costs one
// interview credit. The candidate answers with accepted or declined.
type InterviewInvitation struct {
	BaseModel
	EmployerID  string           `gorm:"type:uuid;not null;index" json:"employer_id"`
	CandidateID string           `gorm:"type:uuid;not null;index" json:"candidate_id"`
	Message     string           `json:"message"`
	ScheduledAt *time.Time       `json:"scheduled_at,omitempty"`
	Location    string           `json:"location"`
	Status      InvitationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`

	// Relations
	Employer  Employer  `gorm:"foreignKey:EmployerID" json:"-"`
	Candidate Candidate `gorm:"foreignKey:CandidateID" json:"-"`
}

// ContactUnlock records that an employer paid to see a candidate's contact
// details. One row per employer+candidate pair; repeat views are free.
type ContactUnlock struct {
	BaseModel
	EmployerID  string `gorm:"type:uuid;not null;index;uniqueIndex:idx_unlock_pair" json:"employer_id"`
	CandidateID string `gorm:"type:uuid;not null;index;uniqueIndex:idx_unlock_pair" json:"candidate_id"`
}
