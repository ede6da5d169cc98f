package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Result is the envelope for successful writes and deletes.
type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// ErrorResponse is the envelope for every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Details string `json:"details,omitempty"`
}

// Success returns 200 with the result envelope.
func Success(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusOK, Result{Success: true, Data: data, Message: message})
}

// Created returns 201 with the result envelope.
func Created(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusCreated, Result{Success: true, Data: data, Message: message})
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status, code int, title, message string) {
	ctx.JSON(status, ErrorResponse{Error: title, Message: message, Code: code})
}

// ErrorWithCause is Error plus the underlying error text, which is only exposed in debug mode.
func ErrorWithCause(ctx *gin.Context, status, code int, title, message string, cause error) {
	resp := ErrorResponse{Error: title, Message: message, Code: code}
	if cause != nil && gin.Mode() == gin.DebugMode {
		resp.Details = cause.Error()
	}
	ctx.JSON(status, resp)
}
