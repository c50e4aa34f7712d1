package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeUsernameExists     = 40001
	CodeEmailExists        = 40002
	CodeEmailRequired      = 40003
	CodeEmailInvalid       = 40004
	CodePasswordTooShort   = 40005
	CodeInvalidSortKey     = 40006
	CodeInvalidStatus      = 40007
	CodeInvalidAction      = 40008
	CodeUnauthorized       = 40100
	CodeInvalidCredentials = 40101
	CodeNotFound           = 40400
	CodeSessionNotFound    = 40401
	CodeDocumentNotFound   = 40402
	CodeChemicalNotFound   = 40403
	CodeTaskNotFound       = 40404
	CodeTaskNotComplete    = 40901
	CodeInternalServer     = 50000
	CodeUnavailable        = 50300
)

type APIResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Created(c *gin.Context, data any) {
	c.JSON(201, APIResponse{
		Code:    CodeOK,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:      code,
		Message:   message,
		RequestID: c.GetString("request_id"),
	})
}
