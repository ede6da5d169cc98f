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

const dosenCachePrefix = "cache:dosen:"

var dosenCodes = errorCodes{base: 20}

// DosenController manages lecturer profiles and their photos.
type DosenController struct {
	db  *gorm.DB
	dir utils.UploadDir
}

func NewDosenController(db *gorm.DB, dir utils.UploadDir) *DosenController {
	return &DosenController{db: db, dir: dir}
}

// Create stores the photo and the lecturer row.
func (d *DosenController) Create(ctx *gin.Context) {
	saved := receiveUpload(ctx, d.dir, kindDosen, dosenCodes)
	if saved == nil {
		return
	}

	row := models.Dosen{
		Nama:       utils.FormText(ctx.PostForm("nama"), defaultTitle),
		NIK:        utils.FormText(ctx.PostForm("nik"), ""),
		JenisDosen: utils.FormText(ctx.PostForm("jenis_dosen"), models.DefaultJenisDosen),
		Foto:       saved.PublicPath,
	}
	if err := d.db.Create(&row).Error; err != nil {
		utils.Sugar.Errorw("create dosen row failed", "path", saved.Path, "err", err)
		discardUpload(d.dir, saved, kindDosen)
		utils.UploadsTotal.WithLabelValues(kindDosen, "db_error").Inc()
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, dosenCodes.dbCreate(), "Error saving file", "lecturer data could not be stored", err)
		return
	}

	utils.InvalidateByPrefix(dosenCachePrefix)
	utils.UploadsTotal.WithLabelValues(kindDosen, "ok").Inc()
	utils.Sugar.Infow("dosen stored", "id", row.ID, "nama", row.Nama, "file", saved.Name, "size", saved.Size)
	utils.Created(ctx, row, "lecturer data saved")
}

// List returns lecturers ordered by name, optionally limited to one jenis_dosen.
func (d *DosenController) List(ctx *gin.Context) {
	jenis := strings.TrimSpace(ctx.Query("jenis_dosen"))
	cacheKey := dosenCachePrefix + "list"
	if jenis == "" {
		if data, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
	}

	q := d.db.Order("nama ASC")
	if jenis != "" {
		q = q.Where("jenis_dosen = ?", jenis)
	}
	items := []models.Dosen{}
	if err := q.Find(&items).Error; err != nil {
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, dosenCodes.dbList(), "Error fetching content", "failed to list lecturers", err)
		return
	}
	if jenis == "" {
		utils.CacheSetJSON(cacheKey, items)
	}
	ctx.JSON(http.StatusOK, items)
}

// Delete removes a lecturer by ?id=. The photo is unlinked best-effort; the row goes regardless.
func (d *DosenController) Delete(ctx *gin.Context) {
	id := strings.TrimSpace(ctx.Query("id"))
	if id == "" {
		utils.Error(ctx, http.StatusBadRequest, dosenCodes.missingID(), "Invalid ID", "lecturer id is required")
		return
	}

	var row models.Dosen
	if err := d.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.DeletesTotal.WithLabelValues(kindDosen, "not_found").Inc()
			utils.Error(ctx, http.StatusNotFound, dosenCodes.notFound(), "Lecturer not found", "lecturer does not exist")
			return
		}
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, dosenCodes.dbLoad(), "Error deleting content", "failed to load lecturer", err)
		return
	}

	removeStoredFile(d.dir, row.Foto, kindDosen)

	if err := d.db.Delete(&row).Error; err != nil {
		utils.Sugar.Errorw("delete dosen row failed", "id", row.ID, "err", err)
		utils.DeletesTotal.WithLabelValues(kindDosen, "db_error").Inc()
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, dosenCodes.dbDelete(), "Error deleting content", "failed to delete lecturer", err)
		return
	}

	utils.InvalidateByPrefix(dosenCachePrefix)
	utils.DeletesTotal.WithLabelValues(kindDosen, "ok").Inc()
	utils.Success(ctx, row, "lecturer data deleted")
}
