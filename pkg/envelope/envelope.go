package envelope

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mbishu2002/newDesk/pkg/apperrors"
)

// Envelope is the uniform response shape for every named operation:
// {success, data?, message?}. No handler returns anything else.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// Fail converts any error into the envelope. Errors never cross the
// handler boundary as anything but {success:false, message}.
func Fail(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), Envelope{Success: false, Message: err.Error()})
}

func FailWith(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}
