package api

import (
	"errors"
	"net/http"

	"finanzas/app"
	"finanzas/forms"
	"finanzas/gateway"

	"github.com/gin-gonic/gin"
)

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	if message == "" {
		message = "success"
	}
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorWithData 带快照的错误响应，前端仍可据此重绘
func ErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// BadRequest 400 错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

// Unauthorized 401 错误响应
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message)
}

// InternalError 500 错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

// NotFound 404 错误响应
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

// outcomeCode 远程动作结果对应的 HTTP 状态码
// 业务失败 422，校验失败 400，重复提交 409，连接失败 502
func outcomeCode(env *gateway.Envelope, err error) int {
	switch {
	case err == nil && env.OK():
		return http.StatusOK
	case err == nil:
		return http.StatusUnprocessableEntity
	case forms.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, forms.ErrSubmitInFlight), errors.Is(err, app.ErrConfigInFlight):
		return http.StatusConflict
	case errors.Is(err, app.ErrNotFound):
		return http.StatusNotFound
	case gateway.IsConnectionError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// outcomeMessage 响应里的提示文字，与提示区域一致
func outcomeMessage(env *gateway.Envelope, err error) string {
	switch {
	case err == nil && env != nil:
		return env.Message
	case forms.IsValidationError(err):
		return err.Error()
	case errors.Is(err, forms.ErrSubmitInFlight), errors.Is(err, app.ErrConfigInFlight):
		return "Ya hay una operación en curso."
	case errors.Is(err, app.ErrNotFound):
		return "Registro no encontrado."
	case gateway.IsOutcomeUnknown(err):
		return forms.TextInvalidReply
	default:
		return SafeErrorMessage(err, "Error de conexión.")
	}
}
