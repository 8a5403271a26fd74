package response

import (
	"net/http"

	"busgo/pkg/logger"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondServerError logs err against the request and writes a 500.
func RespondServerError(c *gin.Context, message string, err error, errors interface{}) {
	logger.GetDefault().LogHTTPError(c, err, http.StatusInternalServerError)
	RespondJSON(c, "error", http.StatusInternalServerError, message, nil, errors)
}
