package models

// Media is an uploaded file (profile pictures, resumes). The binary lives in
// the storage backend; this row carries metadata and the public URL.
type Media struct {
	BaseModel
	OwnerKind AccountKind `gorm:"type:varchar(20);not null;index:idx_media_owner" json:"owner_kind"`
	OwnerID   string      `gorm:"type:uuid;not null;index:idx_media_owner" json:"owner_id"`
	Alt       string      `json:"alt"`
	Path      string      `gorm:"not null" json:"-"`
	URL       string      `json:"url"`
	MimeType  string      `json:"mime_type"`
	Size      int64       `json:"size"`
	Filename  string      `json:"filename"`
}
