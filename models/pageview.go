package models

import "time"

// PageView stores aggregated download counts per day and public path.
type PageView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      string    `gorm:"index:idx_pv_date_path,unique;size:10;not null" json:"date"` // 2006-01-02, local time
	Path      string    `gorm:"index;index:idx_pv_date_path,unique;size:255;not null" json:"path"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PageView) TableName() string { return "page_views" }

// All lists every model the service migrates.
func All() []interface{} {
	return []interface{}{&Berkas{}, &Dosen{}, &Pengumuman{}, &PageView{}}
}
