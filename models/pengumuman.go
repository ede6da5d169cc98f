package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadAtLayout matches JavaScript's Date.toISOString so stored strings sort chronologically.
const UploadAtLayout = "2006-01-02T15:04:05.000Z"

// Pengumuman is an announcement backed by an attached file.
type Pengumuman struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	FilePath  string    `gorm:"column:file_path;size:1024;not null" json:"file_path"`
	UploadAt  string    `gorm:"column:uploadat;size:64;index" json:"uploadat"` // client supplied, kept verbatim
	CreatedAt time.Time `json:"created_at"`
}

func (Pengumuman) TableName() string { return "pengumuman" }

func (p *Pengumuman) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.UploadAt == "" {
		p.UploadAt = time.Now().UTC().Format(UploadAtLayout)
	}
	return nil
}
