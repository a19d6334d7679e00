package response

import (
	"github.com/gin-gonic/gin"

	"subscriptionservice/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"code":    code,
		"message": message,
	})
}

// FromError writes err using its classified status and kind.
func FromError(c *gin.Context, err error) {
	e := apperr.From(err)
	if e.Kind == apperr.KindStorage {
		_ = c.Error(err)
	}
	Error(c, e.Status, string(e.Kind), e.Message)
}
