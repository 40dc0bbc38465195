// internal/model/error.go
package model

import (
	"errors"
	"fmt"
)

// アプリケーション固有のエラー
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnprocessable   = errors.New("unprocessable entity")
	ErrInternalServer  = errors.New("internal server error")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("resource conflict") // 重複エラー用
	ErrTooManyRequests = errors.New("too many requests")
)

// AppError はクライアントに返すエラー情報と、根本原因のエラーを保持します。
type AppError struct {
	Code    string
	Message string
	Field   string
	Err     error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{Code: code, Message: message, Field: field, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Detail はレスポンス用の ErrorDetail を返します。
func (e *AppError) Detail() ErrorDetail {
	return ErrorDetail{Code: e.Code, Message: e.Message, Field: e.Field}
}

// ErrorDetail はAPIエラーレスポンスの中身
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse は削除などの結果メッセージ
type MessageResponse struct {
	Message string `json:"message"`
}
