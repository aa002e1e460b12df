package utils

import "github.com/gin-gonic/gin"

// RespondWithError aborts the request with the {"error": message} body every
// endpoint uses.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
