package handlers

import "github.com/gin-gonic/gin"

// fail writes the error envelope every failing endpoint shares.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}
