package utils

import (
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	PreviewIframe = "iframe"
	PreviewImage  = "image"
	PreviewOffice = "office"
	PreviewNone   = "none"

	officeViewerURL = "https://view.officeapps.live.com/op/embed.aspx?src="
	octetStream     = "application/octet-stream"
)

var mimeByExt = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"txt":  "text/plain",
}

// Preview tells the front end which widget renders a stored file.
type Preview struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Filename    string `json:"filename"`
	Ext         string `json:"ext"`
	Mime        string `json:"mime"`
	Kind        string `json:"kind"`
	Src         string `json:"src"`
	DownloadURL string `json:"download_url"`
}

// RegisterMimeTypes teaches the process MIME table the office formats so static files get a proper Content-Type.
func RegisterMimeTypes() {
	for ext, typ := range mimeByExt {
		_ = mime.AddExtensionType("."+ext, typ)
	}
}

// FileExt returns the lower-cased extension without the dot, or "" when there is none.
func FileExt(p string) string {
	ext := path.Ext(path.Base(p))
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MimeFromExt looks the extension up in the known table.
func MimeFromExt(ext string) string {
	if m, ok := mimeByExt[strings.ToLower(ext)]; ok {
		return m
	}
	return octetStream
}

// DetectMime prefers the extension table and sniffs the file content for anything else.
func DetectMime(ext, diskPath string) string {
	if m, ok := mimeByExt[ext]; ok {
		return m
	}
	if diskPath != "" {
		if mt, err := mimetype.DetectFile(diskPath); err == nil {
			return mt.String()
		}
	}
	return octetStream
}

// PreviewKind picks the widget for an extension.
func PreviewKind(ext string) string {
	switch ext {
	case "pdf", "txt":
		return PreviewIframe
	case "jpg", "jpeg", "png", "gif", "webp":
		return PreviewImage
	case "doc", "docx", "xls", "xlsx", "ppt", "pptx":
		return PreviewOffice
	default:
		return PreviewNone
	}
}

// PreviewSource returns the URL the widget loads. Office files go through the external viewer,
// which needs an absolute URL built from baseURL.
func PreviewSource(kind, publicPath, baseURL string) string {
	switch kind {
	case PreviewOffice:
		return OfficeEmbedURL(strings.TrimRight(baseURL, "/") + publicPath)
	case PreviewNone:
		return ""
	default:
		return publicPath
	}
}

// OfficeEmbedURL wraps an absolute file URL for the Office online viewer.
func OfficeEmbedURL(absURL string) string {
	return officeViewerURL + strings.ReplaceAll(url.QueryEscape(absURL), "+", "%20")
}
