package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/denizatik/edutrack/internal/pkg/apperrors"
	"github.com/denizatik/edutrack/internal/pkg/logger"
)

// urlPrefix is the public prefix the server serves the storage root under.
const urlPrefix = "uploads"

// LocalStorage saves attachments to the local filesystem.
type LocalStorage struct {
	basePath string // root directory where files are stored
}

// NewLocalStorage creates a new LocalStorage instance rooted at basePath.
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{basePath: basePath}, nil
}

// BasePath returns the storage root directory
func (ls *LocalStorage) BasePath() string {
	return ls.basePath
}

// SaveUpload persists an uploaded file as <category>/<ownerID>_<name> and
// returns the reference "uploads/<category>/<ownerID>_<name>". On a write
// failure any partial file is removed and apperrors.ErrFileSaveFailed is
// returned so the enclosing create can abort.
func (ls *LocalStorage) SaveUpload(fileHeader *multipart.FileHeader, category string, ownerID int64) (string, error) {
	if fileHeader == nil {
		return "", nil // no file uploaded
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("%w: %v", apperrors.ErrFileSaveFailed, err)
	}
	defer file.Close()

	dirPath := filepath.Join(ls.basePath, category)
	if err := os.MkdirAll(dirPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dirPath).Msg("Failed to create category directory")
		return "", fmt.Errorf("%w: %v", apperrors.ErrFileSaveFailed, err)
	}

	// The owner prefix keeps uploads of different users apart; raw client
	// filenames are not unique.
	name := fmt.Sprintf("%d_%s", ownerID, sanitizeFilename(fileHeader.Filename))
	dstPath := filepath.Join(dirPath, name)

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("%w: %v", apperrors.ErrFileSaveFailed, err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("%w: %v", apperrors.ErrFileSaveFailed, err)
	}

	reference := path.Join(urlPrefix, category, name)
	logger.Info().Str("filename", fileHeader.Filename).Str("reference", reference).Msg("File saved")
	return reference, nil
}

// Open returns a reader for a previously stored reference
func (ls *LocalStorage) Open(reference string) (io.ReadCloser, error) {
	fullPath := ls.FullPath(reference)
	if fullPath == "" {
		return nil, apperrors.ErrFileNotFound
	}

	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, fmt.Errorf("failed to open stored file: %w", err)
	}
	return f, nil
}

// FullPath resolves a reference like "uploads/submissions/3_essay.pdf" to
// its path under the storage root. References that escape the root resolve
// to the empty string.
func (ls *LocalStorage) FullPath(reference string) string {
	rel := strings.TrimPrefix(reference, urlPrefix+"/")
	rel = filepath.Clean(filepath.FromSlash(rel))
	if rel == "" || rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return ""
	}
	return filepath.Join(ls.basePath, rel)
}

// sanitizeFilename strips any path components from a client-supplied name
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.FromSlash(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "upload"
	}
	return strings.ReplaceAll(name, " ", "_")
}
