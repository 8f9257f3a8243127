// Package response holds the JSON envelopes shared by every HTTP handler.
package response

import (
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func NewErrorResponse(code int, message, details string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message, Details: details}
}

// Error aborts the request with an ErrorResponse body.
func Error(c *gin.Context, code int, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	c.AbortWithStatusJSON(code, NewErrorResponse(code, message, details))
}

type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}
