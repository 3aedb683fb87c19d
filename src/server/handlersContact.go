package server

import (
	"log"
	"net/http"
	"strings"

	db "github.com/ruopp93-dot/INKCRAFTE/src/repository"

	"github.com/gin-gonic/gin"
)

func (a *AppHandler) GetContact(c *gin.Context) {
	record := a.contacts.Load()
	c.JSON(http.StatusOK, gin.H{
		"name":           record.Name,
		"phone":          record.Phone,
		"instagram":      record.Instagram,
		"telegram":       record.Telegram,
		"whatsapp":       record.Whatsapp,
		"avatar":         record.Avatar,
		"avatarPublicId": record.AvatarPublicID,
		"avatarUrl":      a.avatarURL(record.Avatar),
	})
}

func (a *AppHandler) PutContact(c *gin.Context) {
	var patch db.ContactPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный запрос"})
		return
	}
	record, err := a.contacts.Update(patch)
	if err != nil {
		log.Printf("can not update contact: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось сохранить контакты"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (a *AppHandler) avatarURL(ref string) string {
	if ref == "" {
		return ""
	}
	// Refs recorded by older deployments may already be full urls.
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	resolved, err := a.assets.URL(ref)
	if err != nil {
		log.Printf("can not resolve avatar url for %s: %v", ref, err)
		return ""
	}
	return resolved
}
