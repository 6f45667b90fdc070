package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/repository"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/service"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/builder/sse"
	"github.com/prkshverma09/ComputerSpecLogic-sub001/internal/middleware"
)

// Handlers 处理器集合
type Handlers struct {
	Power    *PowerHandler
	Validate *ValidateHandler
	Build    *BuildHandler
	Catalog  *CatalogHandler
	SSE      *SSEHandler
	Health   *HealthHandler
}

// NewHandlers 创建处理器集合
func NewHandlers(svc *service.Services, hub *sse.Hub, health *HealthHandler) *Handlers {
	if health == nil {
		health = NewHealthHandler("dev", nil)
	}
	return &Handlers{
		Power:    NewPowerHandler(),
		Validate: NewValidateHandler(),
		Build:    NewBuildHandler(svc.Build),
		Catalog:  NewCatalogHandler(svc.Catalog, svc.Build),
		SSE:      NewSSEHandler(hub),
		Health:   health,
	}
}

// Response 通用响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = http.StatusInternalServerError
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 参数错误响应
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// NotFound 资源不存在响应
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// InternalError 服务器错误响应
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// ServiceUnavailable 依赖未配置
func ServiceUnavailable(c *gin.Context, message string) {
	Error(c, 50300, message)
}

// respondError maps service errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case service.IsClientError(err):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrStorageNotConfigured):
		ServiceUnavailable(c, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// GetSessionID 从上下文获取装机会话ID
func GetSessionID(c *gin.Context) string {
	return c.GetString(middleware.KeySessionID)
}

// GetUserID 从上下文获取用户ID
func GetUserID(c *gin.Context) string {
	return c.GetString(middleware.KeyUserID)
}
