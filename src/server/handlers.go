package server

import (
	"net/http"

	app "github.com/ruopp93-dot/INKCRAFTE/src/app"
	cfg "github.com/ruopp93-dot/INKCRAFTE/src/configuration"
	db "github.com/ruopp93-dot/INKCRAFTE/src/repository"

	"github.com/gin-gonic/gin"
)

type (
	AppHandler struct {
		sessions     *app.SessionAuth
		assets       app.AssetStore
		contacts     db.ContactDB
		cookieName   string
		secureCookie bool
	}

	LoginBody struct {
		Pin string `json:"pin"`
	}

	DeletePhotoBody struct {
		PublicID string `json:"publicId"`
	}
)

// maxBatchUpload caps one multipart photos request.
const maxBatchUpload = 20

func NewHandler(config *cfg.Properties, assets app.AssetStore, contacts db.ContactDB) *AppHandler {
	return &AppHandler{
		sessions:     app.NewSessionAuth(config),
		assets:       assets,
		contacts:     contacts,
		cookieName:   config.Auth.CookieName,
		secureCookie: config.Production(),
	}
}

func (a *AppHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
