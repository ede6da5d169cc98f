package controllers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ubg-fkdk/portal/middleware"
	"github.com/ubg-fkdk/portal/models"
	"github.com/ubg-fkdk/portal/utils"
)

// StatsController reports content counts and downloads.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns record counts per kind and today's downloads.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var berkasCount, dosenCount, pengumumanCount, downloadsToday int64

	// Fall back to 0 instead of failing the whole endpoint
	if err := s.db.Model(&models.Berkas{}).Count(&berkasCount).Error; err != nil {
		berkasCount = 0
	}
	if err := s.db.Model(&models.Dosen{}).Count(&dosenCount).Error; err != nil {
		dosenCount = 0
	}
	if err := s.db.Model(&models.Pengumuman{}).Count(&pengumumanCount).Error; err != nil {
		pengumumanCount = 0
	}
	if err := s.db.Model(&models.PageView{}).
		Where("date = ?", middleware.Today()).
		Select("COALESCE(SUM(count),0)").
		Scan(&downloadsToday).Error; err != nil {
		downloadsToday = 0
	}

	utils.Success(ctx, gin.H{
		"berkas_count":     berkasCount,
		"dosen_count":      dosenCount,
		"pengumuman_count": pengumumanCount,
		"downloads_today":  downloadsToday,
	}, "ok")
}
