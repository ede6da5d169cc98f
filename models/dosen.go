package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultJenisDosen is the lecturer category used when none is given.
const DefaultJenisDosen = "Dosen Ilkom"

// Dosen is a lecturer profile with a photo.
type Dosen struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	Nama       string    `gorm:"column:nama;size:255;index;not null" json:"nama"`
	NIK        string    `gorm:"column:nik;size:64" json:"nik"`
	JenisDosen string    `gorm:"column:jenis_dosen;size:64;index" json:"jenis_dosen"`
	Foto       string    `gorm:"column:foto;size:1024" json:"foto"` // public path like /dosen/<name>
	CreatedAt  time.Time `json:"created_at"`
}

func (Dosen) TableName() string { return "dosen" }

func (d *Dosen) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
