package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/backend"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/config"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/catalog"
	"github.com/JeongJaeHyung/SYNEX-QUOTATION-sub000/internal/quote/editor"
)

// Handlers is the handler set wired by the router.
type Handlers struct {
	Session  *SessionHandler
	Document *DocumentHandler
	Account  *AccountHandler
}

// NewHandlers builds the handler set around a shared backend client, the
// session registry and the catalog service.
func NewHandlers(be *backend.Client, registry *editor.Registry, catalogSvc *catalog.Service, cfg *config.Config, logger *zap.Logger) *Handlers {
	return &Handlers{
		Session:  NewSessionHandler(be, registry, catalogSvc, cfg, logger),
		Document: NewDocumentHandler(be),
		Account:  NewAccountHandler(be),
	}
}

// Response 통합 응답 구조
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 성공 응답
func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 생성 성공 응답
func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 오류 응답
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 잘못된 요청 응답
func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

// Unauthorized 인증 실패 응답
func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

// Forbidden 접근 거부 응답
func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

// NotFound 리소스 없음 응답
func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

// InternalError 서버 오류 응답
func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// GetUserID 컨텍스트에서 사용자 ID 조회
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetToken 컨텍스트에서 액세스 토큰 조회
func GetToken(c *gin.Context) string {
	token, _ := c.Get("access_token")
	if t, ok := token.(string); ok {
		return t
	}
	return ""
}

// GetPagination 요청에서 페이지네이션 파라미터 조회
func GetPagination(c *gin.Context) (skip, limit int) {
	limit = 20

	if s := c.Query("skip"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			skip = v
		}
	}

	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}

	return skip, limit
}

// respondError maps editor and backend errors onto the response envelope.
func respondError(c *gin.Context, err error) {
	var vErr *editor.ValidationError
	if errors.As(err, &vErr) {
		BadRequest(c, vErr.Field+": "+vErr.Message)
		return
	}
	if errors.Is(err, editor.ErrReadOnly) {
		Forbidden(c, "session is read-only")
		return
	}
	if errors.Is(err, editor.ErrUnknownItem) {
		NotFound(c, "unknown item code")
		return
	}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		Error(c, apiErr.Status*100, apiErr.Message)
		return
	}
	InternalError(c, err.Error())
}
