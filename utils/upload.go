package utils

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

var (
	ErrNoFile   = errors.New("no file uploaded")
	ErrTooLarge = errors.New("file exceeds size limit")
	ErrMkdir    = errors.New("failed to create upload directory")
	ErrWrite    = errors.New("failed to write file")
)

// UploadDir is one public upload folder, e.g. <public>/berkas served at /berkas.
type UploadDir struct {
	Root    string // public root on disk
	Sub     string // subdirectory and URL prefix
	MaxSize int64  // bytes
}

// SavedFile describes a file written by UploadDir.Save.
type SavedFile struct {
	Name       string
	Path       string
	PublicPath string
	Original   string
	Size       int64
}

// Dir returns the folder on disk.
func (d UploadDir) Dir() string {
	return filepath.Join(d.Root, d.Sub)
}

// Prefix returns the URL prefix the folder is served under.
func (d UploadDir) Prefix() string {
	return "/" + d.Sub
}

// PublicPath returns the URL of a stored name.
func (d UploadDir) PublicPath(name string) string {
	return d.Prefix() + "/" + name
}

// Ensure creates the folder if it does not exist.
func (d UploadDir) Ensure() error {
	if err := os.MkdirAll(d.Dir(), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrMkdir, err)
	}
	return nil
}

// Resolve maps a stored public path back to a file inside the folder.
// Paths outside the folder are rejected.
func (d UploadDir) Resolve(publicPath string) (string, bool) {
	clean := path.Clean("/" + strings.TrimSpace(publicPath))
	if !strings.HasPrefix(clean, d.Prefix()+"/") {
		return "", false
	}
	name := strings.TrimPrefix(clean, d.Prefix()+"/")
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return filepath.Join(d.Dir(), name), true
}

// Save copies an uploaded part into the folder under a generated name.
// Oversized input fails with ErrTooLarge and leaves nothing behind.
func (d UploadDir) Save(fh *multipart.FileHeader) (*SavedFile, error) {
	if fh == nil {
		return nil, ErrNoFile
	}
	if d.MaxSize > 0 && fh.Size > d.MaxSize {
		return nil, ErrTooLarge
	}
	if err := d.Ensure(); err != nil {
		return nil, err
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	defer src.Close()

	name := UniqueName(fh.Filename, time.Now())
	dst := filepath.Join(d.Dir(), name)
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	var reader io.Reader = src
	if d.MaxSize > 0 {
		// header size can lie; enforce on the bytes actually copied
		reader = &io.LimitedReader{R: src, N: d.MaxSize + 1}
	}
	written, err := io.Copy(out, reader)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(dst)
		return nil, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if d.MaxSize > 0 && written > d.MaxSize {
		_ = os.Remove(dst)
		return nil, ErrTooLarge
	}

	return &SavedFile{
		Name:       name,
		Path:       dst,
		PublicPath: d.PublicPath(name),
		Original:   fh.Filename,
		Size:       written,
	}, nil
}

// Remove deletes the file behind a stored public path. A file that is already gone is not an error.
func (d UploadDir) Remove(publicPath string) error {
	p, ok := d.Resolve(publicPath)
	if !ok {
		return fmt.Errorf("path %q is outside %s", publicPath, d.Prefix())
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// UniqueName prefixes the client file name with the time in milliseconds and a random number.
// Only the base name survives, so "../x.pdf" becomes "x.pdf".
func UniqueName(original string, now time.Time) string {
	base := path.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == ".." || base == "" {
		base = "file"
	}
	return fmt.Sprintf("%d-%d-%s", now.UnixMilli(), rand.Int63n(1e9), base)
}
