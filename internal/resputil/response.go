package resputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sitegrid-labs/sitegrid/dao/store"
)

// Response is the envelope of every API reply. The generic parameter
// exists for swagger documentation of the data field.
type Response[T any] struct {
	Code ErrorCode `json:"code"`
	Data T         `json:"data"`
	Msg  string    `json:"msg"`
}

func wrapResponse(c *gin.Context, httpCode int, msg string, data any, code ErrorCode) {
	c.JSON(httpCode, gin.H{
		"code": code,
		"data": data,
		"msg":  msg,
	})
}

func Success(c *gin.Context, data any) {
	wrapResponse(c, http.StatusOK, "", data, OK)
}

func Error(c *gin.Context, msg string, errorCode ErrorCode) {
	wrapResponse(c, http.StatusInternalServerError, msg, nil, errorCode)
}

func HTTPError(c *gin.Context, httpCode int, msg string, errorCode ErrorCode) {
	wrapResponse(c, httpCode, msg, nil, errorCode)
}

// StoreError maps the store's typed failures onto stable response codes,
// so clients never have to parse driver messages.
func StoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		HTTPError(c, http.StatusNotFound, err.Error(), NotFound)
	case errors.Is(err, store.ErrDuplicateEdge):
		HTTPError(c, http.StatusConflict, err.Error(), DuplicateEdge)
	case errors.Is(err, store.ErrCycleDetected):
		HTTPError(c, http.StatusConflict, err.Error(), CycleDetected)
	case errors.Is(err, store.ErrCrossTenantReference):
		HTTPError(c, http.StatusConflict, err.Error(), CrossTenantReference)
	case errors.Is(err, store.ErrCrossProjectReference):
		HTTPError(c, http.StatusConflict, err.Error(), CrossProjectReference)
	case errors.Is(err, store.ErrNegativeLag):
		HTTPError(c, http.StatusBadRequest, err.Error(), NegativeLag)
	case errors.Is(err, store.ErrInvalidAssignee):
		HTTPError(c, http.StatusBadRequest, err.Error(), InvalidAssignee)
	default:
		Error(c, err.Error(), NotSpecified)
	}
}
