package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ubg-fkdk/portal/utils"
)

const (
	kindBerkas     = "berkas"
	kindDosen      = "dosen"
	kindPengumuman = "pengumuman"

	defaultTitle = "untitled"

	// room for multipart boundaries and text fields on top of the file ceiling
	multipartSlack = 1 << 20
)

// errorCodes are the app codes of one content kind; each kind owns a block of ten.
type errorCodes struct {
	base int
}

func (c errorCodes) noFile() int { return 40000 + c.base }
func (c errorCodes) tooLarge() int { return 40001 + c.base }
func (c errorCodes) missingID() int { return 40002 + c.base }
func (c errorCodes) notFound() int { return 40400 + c.base }
func (c errorCodes) mkdir() int { return 50000 + c.base }
func (c errorCodes) write() int { return 50001 + c.base }
func (c errorCodes) dbCreate() int { return 50002 + c.base }
func (c errorCodes) dbList() int { return 50003 + c.base }
func (c errorCodes) dbLoad() int { return 50004 + c.base }
func (c errorCodes) dbDelete() int { return 50005 + c.base }
func (c errorCodes) fileGone() int { return 40401 + c.base }

// receiveUpload stores the "file" part of a multipart request in dir.
// On failure it writes the error response and returns nil.
func receiveUpload(ctx *gin.Context, dir utils.UploadDir, kind string, codes errorCodes) *utils.SavedFile {
	if dir.MaxSize > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, dir.MaxSize+multipartSlack)
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			uploadTooLarge(ctx, dir, kind, codes)
			return nil
		}
		utils.UploadsTotal.WithLabelValues(kind, "no_file").Inc()
		utils.Error(ctx, http.StatusBadRequest, codes.noFile(), "File not found", "no file was uploaded")
		return nil
	}

	saved, err := dir.Save(fh)
	switch {
	case err == nil:
		utils.UploadBytesTotal.WithLabelValues(kind).Add(float64(saved.Size))
		return saved
	case errors.Is(err, utils.ErrTooLarge):
		uploadTooLarge(ctx, dir, kind, codes)
	case errors.Is(err, utils.ErrMkdir):
		utils.Sugar.Errorw("create upload directory failed", "kind", kind, "dir", dir.Dir(), "err", err)
		utils.UploadsTotal.WithLabelValues(kind, "mkdir_error").Inc()
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, codes.mkdir(), "Failed to create upload directory", "upload directory could not be created", err)
	default:
		utils.Sugar.Errorw("save upload failed", "kind", kind, "file", fh.Filename, "err", err)
		utils.UploadsTotal.WithLabelValues(kind, "write_error").Inc()
		utils.ErrorWithCause(ctx, http.StatusInternalServerError, codes.write(), "File failed to save", "file could not be saved to the server", err)
	}
	return nil
}

func uploadTooLarge(ctx *gin.Context, dir utils.UploadDir, kind string, codes errorCodes) {
	utils.UploadsTotal.WithLabelValues(kind, "too_large").Inc()
	utils.Error(ctx, http.StatusBadRequest, codes.tooLarge(), "File too large",
		fmt.Sprintf("file exceeds the %d MB limit", dir.MaxSize>>20))
}

// discardUpload undoes a stored file whose row could not be written.
func discardUpload(dir utils.UploadDir, saved *utils.SavedFile, kind string) {
	if err := dir.Remove(saved.PublicPath); err != nil {
		utils.Sugar.Warnw("remove orphaned upload failed", "kind", kind, "path", saved.Path, "err", err)
	}
}

// removeStoredFile unlinks the file behind a row that is being deleted. Failure is logged and ignored
// so the row can still be removed.
func removeStoredFile(dir utils.UploadDir, publicPath, kind string) {
	if publicPath == "" {
		return
	}
	if err := dir.Remove(publicPath); err != nil {
		utils.Sugar.Warnw("delete stored file failed", "kind", kind, "path", publicPath, "err", err)
		return
	}
	utils.Sugar.Infow("stored file deleted", "kind", kind, "path", publicPath)
}

func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 10
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

// requestBaseURL rebuilds scheme://host of the incoming request, honouring a proxy's X-Forwarded-Proto.
func requestBaseURL(ctx *gin.Context) string {
	scheme := "http"
	if ctx.Request.TLS != nil {
		scheme = "https"
	}
	if p := ctx.GetHeader("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	return scheme + "://" + ctx.Request.Host
}
