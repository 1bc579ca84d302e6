package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// OK sends a 200 response with the payload as-is.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Result sends a 200 response wrapped under a result key, the shape the
// original explain endpoint promised its frontend.
func Result(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"result": data})
}

// Error sends a failure payload with the given status and aborts the chain.
func Error(c *gin.Context, status int, payload interface{}) {
	c.AbortWithStatusJSON(status, payload)
}

// BadRequest sends a 400 error in the error/detail wire format.
func BadRequest(c *gin.Context, detail string) {
	Error(c, http.StatusBadRequest, gin.H{"error": "INVALID_INPUT", "detail": detail})
}

// NotFound sends a 404 error.
func NotFound(c *gin.Context, detail string) {
	Error(c, http.StatusNotFound, gin.H{"error": "NOT_FOUND", "detail": detail})
}
