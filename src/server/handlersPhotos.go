package server

import (
	"errors"
	"log"
	"net/http"

	app "github.com/ruopp93-dot/INKCRAFTE/src/app"

	"github.com/gin-gonic/gin"
)

func (a *AppHandler) GetPhotos(c *gin.Context) {
	record := a.contacts.Load()
	photos, err := a.assets.List(record.Avatar)
	if err != nil {
		log.Printf("can not list photos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось получить список работ"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

func (a *AppHandler) PostPhotos(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Файл не получен"})
		return
	}
	files := form.File["photos"]
	if len(files) > maxBatchUpload {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Слишком много файлов"})
		return
	}

	uploaded := []app.PhotoAsset{}
	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			log.Printf("can not open upload %s: %v", file.Filename, err)
			continue
		}
		asset, err := a.assets.Put(file.Filename, src, file.Size)
		src.Close()
		if err != nil {
			log.Printf("can not store upload %s: %v", file.Filename, err)
			continue
		}
		uploaded = append(uploaded, asset)
	}
	c.JSON(http.StatusOK, gin.H{"uploaded": uploaded})
}

func (a *AppHandler) DeletePhoto(c *gin.Context) {
	ref := c.Param("name")
	if ref == "" {
		var body DeletePhotoBody
		if err := c.ShouldBindJSON(&body); err != nil || body.PublicID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "publicId обязателен"})
			return
		}
		ref = body.PublicID
	}
	if err := a.assets.Delete(ref); err != nil {
		log.Printf("can not delete photo %s: %v", ref, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось удалить файл"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func assetErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrUnsupportedType):
		return http.StatusBadRequest, "Недопустимый формат файла"
	case errors.Is(err, app.ErrTooLarge):
		return http.StatusBadRequest, "Файл слишком большой"
	default:
		return http.StatusInternalServerError, "Не удалось загрузить файл"
	}
}
