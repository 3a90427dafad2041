package util

import (
	"github.com/gin-gonic/gin"
)

// Success writes the standard envelope: {"status", "message", "data"}.
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// Error writes {"status", "message"} plus "errors" when details are given.
func Error(c *gin.Context, status int, message string, details ...string) {
	body := gin.H{
		"status":  status,
		"message": message,
	}
	if len(details) > 0 {
		body["errors"] = details
	}
	c.AbortWithStatusJSON(status, body)
}
