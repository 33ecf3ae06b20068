// internal/model/session.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ContextKey string

const (
	SessionKey ContextKey = "session"
)

// Session は認証済みユーザーのコンテキストです。リモートの読み書きはすべてこの UserID にスコープされます。
type Session struct {
	UserID    uuid.UUID `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}
