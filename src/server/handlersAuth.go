package server

import (
	"errors"
	"net/http"

	app "github.com/ruopp93-dot/INKCRAFTE/src/app"

	"github.com/gin-gonic/gin"
)

func (a *AppHandler) AuthStatus(c *gin.Context) {
	token, _ := c.Cookie(a.cookieName)
	c.JSON(http.StatusOK, gin.H{"authenticated": a.sessions.Verify(token)})
}

func (a *AppHandler) Login(c *gin.Context) {
	var body LoginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Неверный запрос"})
		return
	}
	token, err := a.sessions.Login(body.Pin)
	if err != nil {
		if !errors.Is(err, app.ErrInvalidPin) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Не удалось войти"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Неверный PIN"})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookieName, token, a.sessions.TTLSeconds(), "/", "", a.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (a *AppHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cookieName, "", -1, "/", "", a.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// requireAuth gates mutating routes. Any verification failure resolves
// to a plain 401, the request pipeline never sees an error.
func (a *AppHandler) requireAuth(c *gin.Context) {
	token, err := c.Cookie(a.cookieName)
	if err != nil || !a.sessions.Verify(token) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Требуется авторизация"})
		return
	}
	c.Next()
}
