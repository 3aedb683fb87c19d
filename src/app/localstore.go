package app

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// LocalAssetStore keeps uploaded images in a directory under the public
// root; they are served back as /uploads/<name>.
type LocalAssetStore struct {
	baseDir string
	now     func() time.Time
}

func NewLocalAssetStore(baseDir string) (*LocalAssetStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("can not create uploads dir %s: %w", baseDir, err)
	}
	return &LocalAssetStore{baseDir: baseDir, now: time.Now}, nil
}

func (l *LocalAssetStore) List(excludeRef string) ([]PhotoAsset, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		return nil, fmt.Errorf("can not read uploads dir: %w", err)
	}
	result := []PhotoAsset{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !AllowedImage(name) {
			continue
		}
		if excludeRef != "" && name == filepath.Base(excludeRef) {
			continue
		}
		result = append(result, PhotoAsset{Ref: name, URL: localURL(name)})
	}
	return result, nil
}

func (l *LocalAssetStore) Put(originalName string, content io.Reader, size int64) (PhotoAsset, error) {
	if err := checkUpload(originalName, size); err != nil {
		return PhotoAsset{}, err
	}
	name := deriveKey(originalName, l.now())
	target, err := os.Create(filepath.Join(l.baseDir, name))
	if err != nil {
		return PhotoAsset{}, fmt.Errorf("can not create upload file: %w", err)
	}
	defer target.Close()
	if _, err := io.Copy(target, io.LimitReader(content, MaxUploadSize)); err != nil {
		os.Remove(target.Name())
		return PhotoAsset{}, fmt.Errorf("can not write upload file: %w", err)
	}
	return PhotoAsset{Ref: name, URL: localURL(name)}, nil
}

// Delete is idempotent: removing a ref that is already gone succeeds.
func (l *LocalAssetStore) Delete(ref string) error {
	name := filepath.Base(ref)
	if err := os.Remove(filepath.Join(l.baseDir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("can not delete %s: %w", name, err)
	}
	return nil
}

func (l *LocalAssetStore) URL(ref string) (string, error) {
	return localURL(filepath.Base(ref)), nil
}

func localURL(name string) string {
	return "/uploads/" + url.PathEscape(name)
}
