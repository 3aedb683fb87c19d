package server

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (a *AppHandler) PostAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Файл не получен"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить аватар"})
		return
	}
	defer src.Close()

	asset, err := a.assets.Put(file.Filename, src, file.Size)
	if err != nil {
		log.Printf("can not store avatar %s: %v", file.Filename, err)
		status, message := assetErrorStatus(err)
		c.JSON(status, gin.H{"error": message})
		return
	}

	// Single-slot asset: the previous avatar goes away best-effort, a
	// failed delete never blocks the new one from taking effect.
	record := a.contacts.Load()
	if record.Avatar != "" {
		if err := a.assets.Delete(record.Avatar); err != nil {
			log.Printf("can not delete previous avatar %s: %v", record.Avatar, err)
		}
	}

	// Remote refs are object keys with a folder prefix; only those get
	// an external id.
	publicID := ""
	if strings.Contains(asset.Ref, "/") {
		publicID = asset.Ref
	}
	if _, err := a.contacts.SetAvatar(asset.Ref, publicID); err != nil {
		log.Printf("can not save avatar ref: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось загрузить аватар"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatar": asset.URL})
}

func (a *AppHandler) DeleteAvatar(c *gin.Context) {
	record := a.contacts.Load()
	if record.Avatar != "" {
		if err := a.assets.Delete(record.Avatar); err != nil {
			log.Printf("can not delete avatar %s: %v", record.Avatar, err)
		}
		if _, err := a.contacts.ClearAvatar(); err != nil {
			log.Printf("can not clear avatar ref: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить файл"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
