package filestorage

import (
	"io"
	"mime/multipart"
)

// Upload categories. They become subdirectories under the storage root and
// under the static /uploads URL prefix.
const (
	CategoryAssignments = "assignments"
	CategorySubmissions = "submissions"
)

// FileStorage defines the interface for attachment storage operations.
// References returned by SaveUpload are stable strings that stay valid
// independently of the rows that point at them.
type FileStorage interface {
	// SaveUpload persists an uploaded file under the given category,
	// prefixing the name with the owning identity's id so that unrelated
	// uploads cannot collide. It returns the stable reference.
	SaveUpload(fileHeader *multipart.FileHeader, category string, ownerID int64) (string, error)

	// Open returns a reader for a previously stored reference
	Open(reference string) (io.ReadCloser, error)

	// FullPath resolves a reference to its filesystem path
	FullPath(reference string) string
}
