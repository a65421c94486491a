package models

// User is a back-office account. Candidates and employers live in their own
// collections; this table only carries administrative and general accounts.
type User struct {
	BaseModel
	AccountCredentials
	Email string   `gorm:"uniqueIndex;not null" json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `gorm:"type:varchar(20);default:'general'" json:"role"`
}
