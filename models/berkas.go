package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Berkas is a downloadable document published on the site.
type Berkas struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Filepath  string    `gorm:"column:filepath;size:1024;not null" json:"filepath"` // public path like /berkas/<name>
	UploadAt  time.Time `gorm:"column:uploadat;index" json:"uploadat"`
	CreatedAt time.Time `json:"created_at"`
}

func (Berkas) TableName() string { return "berkas" }

// BeforeCreate assigns the id and upload time when the caller left them empty.
func (b *Berkas) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.UploadAt.IsZero() {
		b.UploadAt = time.Now()
	}
	return nil
}
