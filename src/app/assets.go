package app

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PhotoAsset describes one stored image as exposed over the API.
type PhotoAsset struct {
	// Opaque storage key, meaningful only to the backend that issued it.
	Ref string `json:"publicId"`

	// Display URL for the image.
	URL string `json:"url"`
}

// AssetStore abstracts where uploaded image bytes live. Two backends
// exist: a local uploads directory and a minio bucket, selected once at
// construction from the configuration.
type AssetStore interface {
	// List enumerates current assets; excludeRef hides one ref (the
	// active avatar) from the result.
	List(excludeRef string) ([]PhotoAsset, error)
	// Put validates and stores the payload, deriving a collision-resistant
	// key from originalName. Returns ErrUnsupportedType or ErrTooLarge
	// before persisting anything.
	Put(originalName string, content io.Reader, size int64) (PhotoAsset, error)
	// Delete removes an asset; a nonexistent ref is a no-op success.
	Delete(ref string) error
	// URL resolves a stored ref to its display URL.
	URL(ref string) (string, error)
}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file too large")
)

// MaxUploadSize is the per-file ceiling, 10 MiB.
const MaxUploadSize = 10 << 20

var allowedExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

var unsafeRunes = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// AllowedImage reports whether name carries a recognized image extension.
func AllowedImage(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range allowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func checkUpload(originalName string, size int64) error {
	if !AllowedImage(originalName) {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Ext(originalName))
	}
	if size > MaxUploadSize {
		return fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}
	return nil
}

// deriveKey builds a timestamp-prefixed sanitized key from a client
// supplied filename. The name is reduced to its base before any join, so
// a ref can never escape the storage root.
func deriveKey(originalName string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	safe := strings.Trim(unsafeRunes.ReplaceAllString(base, "-"), "-")
	if safe == "" {
		safe = uuid.NewString()
	}
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), safe, ext)
}
