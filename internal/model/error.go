// internal/model/error.go
package model

import "errors"

// アプリケーション固有のエラー
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrInternalServer = errors.New("internal server error")
	ErrAuthRequired   = errors.New("authentication required") // セッションなし
	ErrUnauthorized   = errors.New("unauthorized")            // 他ユーザーのリソース
)

// AppError はユーザーに見せるメッセージと、判定用のセンチネルエラーをまとめたものです。
type AppError struct {
	Code       string
	Message    string
	Field      string
	RedirectTo string // AUTH_REQUIRED のときだけ入る
	Err        error
}

func NewAppError(code, message, field string, err error) *AppError {
	return &AppError{Code: code, Message: message, Field: field, Err: err}
}

// WithRedirect はサインイン画面などへの誘導先を付けて返します。
func (e *AppError) WithRedirect(url string) *AppError {
	e.RedirectTo = url
	return e
}

// Detail はレスポンスに載せる形に変換します。
func (e *AppError) Detail() ErrorDetail {
	return ErrorDetail{Code: e.Code, Message: e.Message, Field: e.Field, RedirectTo: e.RedirectTo}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrorDetail はAPIエラーレスポンスの中身
type ErrorDetail struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Field      string `json:"field,omitempty"`
	RedirectTo string `json:"redirect_to,omitempty"` // AUTH_REQUIRED の場合のみ
}

// APIErrorResponse はAPIエラーレスポンスの構造体
type APIErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
