package handlers

import (
	"github.com/gin-gonic/gin"
)

// jsonError writes the uniform error body the SPA expects.
func jsonError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
