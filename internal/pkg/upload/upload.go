package upload

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxImageSize = 5 << 20 // 5MB

var (
	ErrNotAnImage = errors.New("upload: file is not an image")
	ErrTooLarge   = errors.New("upload: file exceeds 5MB")
)

// Storage saves uploaded files under a local directory that the server
// exposes at /static.
type Storage struct {
	dir string
}

func NewStorage(dir string) *Storage {
	return &Storage{dir: dir}
}

// SaveImage writes an uploaded image into <dir>/<folder>/ under a
// unique name and returns the public /static URL.
func (s *Storage) SaveImage(c *gin.Context, file *multipart.FileHeader, folder string) (string, error) {
	if file.Size > maxImageSize {
		return "", ErrTooLarge
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return "", ErrNotAnImage
	}

	targetDir := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(targetDir, os.ModePerm); err != nil {
		return "", err
	}

	filename := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(targetDir, filename)); err != nil {
		return "", err
	}

	return "/static/" + folder + "/" + filename, nil
}
