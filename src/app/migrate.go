package app

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

// ImportRootImages is a one-time migration step: images left next to the
// binary (a hold-over from manual deploys) are copied into the uploads
// directory so the gallery can see them. Best-effort, existing targets
// are left alone.
func ImportRootImages(rootDir, uploadsDir string) {
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		log.Printf("can not create uploads dir %s: %v", uploadsDir, err)
		return
	}
	entries, err := os.ReadDir(rootDir)
	if err != nil {
		log.Printf("can not read root dir %s: %v", rootDir, err)
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !AllowedImage(name) {
			continue
		}
		dst := filepath.Join(uploadsDir, name)
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		if err := copyFile(filepath.Join(rootDir, name), dst); err != nil {
			log.Printf("can not import %s: %v", name, err)
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
