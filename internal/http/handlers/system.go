package handlers

import (
	"net/http"
	"time"

	"smartride-backend/internal/config"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	RespondOK(c, http.StatusOK, "ok", gin.H{
		"status": "up",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func DBCheck(c *gin.Context) {
	db := config.DB
	if db == nil {
		RespondFail(c, http.StatusServiceUnavailable, "database not connected")
		return
	}
	if err := db.PingContext(c.Request.Context()); err != nil {
		RespondFail(c, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	RespondOK(c, http.StatusOK, "database ok", nil)
}
