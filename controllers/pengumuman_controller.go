package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ubg-fkdk/portal/models"
	"github.com/ubg-fkdk/portal/utils"
)

const pengumumanCachePrefix = "cache:pengumuman:"

var pengumumanCodes = errorCodes{base: 30}

// PengumumanController manages announcements.
type PengumumanController struct {
	db  *gorm.DB
	dir utils.UploadDir
}

func NewPengumumanController(db *gorm.DB, dir utils.UploadDir) *PengumumanController {
	return &PengumumanController{db: db, dir: dir}
}

// Create stores the announcement file and row. uploadat is kept as sent; the model fills in now when blank.
func (p *PengumumanController) Create(ctx *gin.Context) {
	saved := receiveUpload(ctx, p.dir, kindPengumuman, pengumumanCodes)
	if saved == nil {
		return
	}

	row := models.Pengumuman{
		Title:    utils.FormText(ctx.PostForm("title"), defaultTitle),
		FilePath: saved.PublicPath,
		UploadAt: strings.TrimSpace(ctx.PostForm("uploadat")),
	}
	if err := p.db.Create(&row).Error; err != nil {
		utils.Sugar.Errorw("create pengumuman row failed", "path", saved.Path, "err", err)
		discardUpload(p.dir, saved, kindPengumuman)
		utils.UploadsTotal.WithLabelValues(kindPengumuman, "db_error").Inc()
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, pengumumanCodes.dbCreate(), "Error saving file", "announcement could not be stored", err)
		return
	}

	utils.InvalidateByPrefix(pengumumanCachePrefix)
	utils.UploadsTotal.WithLabelValues(kindPengumuman, "ok").Inc()
	utils.Sugar.Infow("pengumuman stored", "id", row.ID, "file", saved.Name, "size", saved.Size)
	utils.Created(ctx, row, "file uploaded")
}

// List returns announcements, latest uploadat first.
func (p *PengumumanController) List(ctx *gin.Context) {
	cacheKey := pengumumanCachePrefix + "list"
	if data, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	items := []models.Pengumuman{}
	if err := p.db.Order("uploadat DESC").Find(&items).Error; err != nil {
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, pengumumanCodes.dbList(), "Error fetching content", "failed to list announcements", err)
		return
	}
	utils.CacheSetJSON(cacheKey, items)
	ctx.JSON(http.StatusOK, items)
}

// Delete removes an announcement by ?id=. The file is unlinked best-effort; the row goes regardless.
func (p *PengumumanController) Delete(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Query("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, pengumumanCodes.missingID(), "Invalid ID", "announcement id is required")
		return
	}

	var row models.Pengumuman
	if err := p.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.DeletesTotal.WithLabelValues(kindPengumuman, "not_found").Inc()
			utils.Error(ctx, http.StatusNotFound, pengumumanCodes.notFound(), "Announcement not found", "announcement does not exist")
			return
		}
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, pengumumanCodes.dbLoad(), "Error deleting content", "failed to load announcement", err)
		return
	}

	removeStoredFile(p.dir, row.FilePath, kindPengumuman)

	if err := p.db.Delete(&row).Error; err != nil {
		utils.Sugar.Errorw("delete pengumuman row failed", "id", row.ID, "err", err)
		utils.DeletesTotal.WithLabelValues(kindPengumuman, "db_error").Inc()
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, pengumumanCodes.dbDelete(), "Error deleting content", "failed to delete announcement", err)
		return
	}

	utils.InvalidateByPrefix(pengumumanCachePrefix)
	utils.DeletesTotal.WithLabelValues(kindPengumuman, "ok").Inc()
	utils.Success(ctx, row, "announcement deleted")
}
