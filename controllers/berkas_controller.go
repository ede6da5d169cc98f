package controllers

import (
	"errors"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ubg-fkdk/portal/models"
	"github.com/ubg-fkdk/portal/utils"
)

const berkasCachePrefix = "cache:berkas:"

var berkasCodes = errorCodes{base: 10}

// BerkasController manages downloadable documents.
type BerkasController struct {
	db      *gorm.DB
	dir     utils.UploadDir
	baseURL string
}

// NewBerkasController creates a BerkasController. baseURL is the public origin used for
// the Office viewer; when empty the request's own host is used.
func NewBerkasController(db *gorm.DB, dir utils.UploadDir, baseURL string) *BerkasController {
	return &BerkasController{db: db, dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload stores a document and records it.
func (b *BerkasController) Upload(ctx *gin.Context) {
	saved := receiveUpload(ctx, b.dir, kindBerkas, berkasCodes)
	if saved == nil {
		return
	}

	row := models.Berkas{
		Title:    utils.FormText(ctx.PostForm("title"), defaultTitle),
		Filepath: saved.PublicPath,
	}
	if err := b.db.Create(&row).Error; err != nil {
		utils.Sugar.Errorw("create berkas row failed", "path", saved.Path, "err", err)
		discardUpload(b.dir, saved, kindBerkas)
		utils.UploadsTotal.WithLabelValues(kindBerkas, "db_error").Inc()
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, berkasCodes.dbCreate(), "Error saving file", "file metadata could not be stored", err)
		return
	}

	utils.InvalidateByPrefix(berkasCachePrefix)
	utils.UploadsTotal.WithLabelValues(kindBerkas, "ok").Inc()
	utils.Sugar.Infow("berkas stored", "id", row.ID, "file", saved.Name, "size", saved.Size)
	utils.Created(ctx, row, "file uploaded")
}

// List returns documents, newest first. search filters by title; page/page_size
// slice the result and report the full count in X-Total-Count.
func (b *BerkasController) List(ctx *gin.Context) {
	search := strings.TrimSpace(ctx.Query("search"))
	paged := ctx.Query("page") != "" || ctx.Query("page_size") != ""
	cacheable := search == "" && !paged
	cacheKey := berkasCachePrefix + "list"

	if cacheable {
		if data, ok := utils.CacheGetBytes(cacheKey); ok {
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
	}

	q := b.db.Model(&models.Berkas{})
	if search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	q = q.Session(&gorm.Session{})

	if paged {
		var total int64
		if err := q.Count(&total).Error; err != nil {
			utils.ErrorWithCause(ctx, http.StatusInternalServerError, berkasCodes.dbList(), "Error fetching content", "failed to count files", err)
			return
		}
		page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
		q = q.Offset((page - 1) * pageSize).Limit(pageSize)
		ctx.Header("X-Total-Count", strconv.FormatInt(total, 10))
	}

	items := []models.Berkas{}
	if err := q.Order("uploadat DESC").Find(&items).Error; err != nil {
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, berkasCodes.dbList(), "Error fetching content", "failed to list files", err)
		return
	}
	if cacheable {
		utils.CacheSetJSON(cacheKey, items)
	}
	ctx.JSON(http.StatusOK, items)
}

// Get returns one document.
func (b *BerkasController) Get(ctx *gin.Context) {
	row, ok := b.load(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, row)
}

// Preview describes how the viewer page should render a document.
func (b *BerkasController) Preview(ctx *gin.Context) {
	row, ok := b.load(ctx)
	if !ok {
		return
	}

	ext := utils.FileExt(row.Filepath)
	kind := utils.PreviewKind(ext)
	diskPath, _ := b.dir.Resolve(row.Filepath)
	base := b.baseURL
	if base == "" {
		base = requestBaseURL(ctx)
	}

	ctx.JSON(http.StatusOK, utils.Preview{
		ID:          row.ID,
		Title:       row.Title,
		Filename:    path.Base(row.Filepath),
		Ext:         ext,
		Mime:        utils.DetectMime(ext, diskPath),
		Kind:        kind,
		Src:         utils.PreviewSource(kind, row.Filepath, base),
		DownloadURL: "/api/berkas/" + row.ID + "/download",
	})
}

// Download sends the stored file as an attachment named after the stored file name.
func (b *BerkasController) Download(ctx *gin.Context) {
	row, ok := b.load(ctx)
	if !ok {
		return
	}
	p, ok := b.dir.Resolve(row.Filepath)
	if ok {
		if _, err := os.Stat(p); err != nil {
			ok = false
		}
	}
	if !ok {
		utils.Sugar.Warnw("berkas file missing on disk", "id", row.ID, "path", row.Filepath)
		utils.Error(ctx, http.StatusNotFound, berkasCodes.fileGone(), "File not found", "file is missing on the server")
		return
	}
	ctx.FileAttachment(p, path.Base(row.Filepath))
}

func (b *BerkasController) load(ctx *gin.Context) (models.Berkas, bool) {
	var row models.Berkas
	id := strings.TrimSpace(ctx.Param("id"))
	if err := b.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, berkasCodes.notFound(), "File not found", "file does not exist")
			return row, false
		}
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, berkasCodes.dbLoad(), "Error fetching content", "failed to load file", err)
		return row, false
	}
	return row, true
}
