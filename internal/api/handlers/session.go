package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pocketrush/backend/internal/game"
)

type shotRequest struct {
	Angle float64 `json:"angle"`
	Power float64 `json:"power" binding:"required"`
}

type placeRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GetState returns the full table snapshot.
func GetState(session *game.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, session.Snapshot())
	}
}

// TakeShot launches the cue ball.
func TakeShot(session *game.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "angle and power required"})
			return
		}
		if err := session.Shoot(req.Angle, req.Power); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "shot taken"})
	}
}

// Aim returns the predicted trajectory for a prospective shot without
// committing it.
func Aim(session *game.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shotRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "angle and power required"})
			return
		}
		trail := session.Aim(req.Angle, req.Power)
		c.JSON(http.StatusOK, gin.H{"trail": trail})
	}
}

// PlaceCueBall moves the cue ball inside the baulk zone.
func PlaceCueBall(session *game.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req placeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "x and y required"})
			return
		}
		if err := session.PlaceCueBall(req.X, req.Y); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "cue ball placed"})
	}
}
