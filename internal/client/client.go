// Package client はターミナルクライアントから API サーバーのフラッシュカードストアを呼び出します。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go_5_kanji_keep/internal/model"

	"github.com/google/uuid"
)

const defaultTimeout = 10 * time.Second

// RemoteError は API のエラーレスポンスです。ステータスに応じた model のセンチネルに Unwrap されます。
type RemoteError struct {
	Status     int
	Code       string
	Message    string
	RedirectTo string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("remote store returned status %d", e.Status)
}

func (e *RemoteError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return model.ErrInvalidInput
	case http.StatusUnauthorized:
		return model.ErrAuthRequired
	case http.StatusForbidden:
		return model.ErrUnauthorized
	case http.StatusNotFound:
		return model.ErrNotFound
	default:
		return model.ErrInternalServer
	}
}

// Client は API サーバーへのリクエストを発行します。トークンが空ならサインインしていない扱いです。
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func New(baseURL, accessToken string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(accessToken),
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentSession はサインイン中のセッションを返します。トークンがない・拒否された場合は nil (エラーなし) です。
func (c *Client) CurrentSession(ctx context.Context) (*model.Session, error) {
	if c.token == "" {
		return nil, nil
	}
	var session model.Session
	err := c.do(ctx, http.MethodGet, nil, &session, "session")
	if err != nil {
		if errors.Is(err, model.ErrAuthRequired) {
			c.logger.Debug("Access token rejected", slog.Any("error", err))
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// Create はフラッシュカードを作成します。
func (c *Client) Create(ctx context.Context, req model.CreateFlashcardRequest) (*model.Flashcard, error) {
	var card model.Flashcard
	if err := c.do(ctx, http.MethodPost, req, &card, "flashcards"); err != nil {
		return nil, err
	}
	return &card, nil
}

// ListByOwner はサインイン中のユーザーのカードを新しい順に返します。
func (c *Client) ListByOwner(ctx context.Context) ([]*model.Flashcard, error) {
	var cards []*model.Flashcard
	if err := c.do(ctx, http.MethodGet, nil, &cards, "flashcards"); err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []*model.Flashcard{}
	}
	return cards, nil
}

// Delete は保存先の ID でカードを削除します。
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, nil, nil, "flashcards", id.String())
}

// SearchKanji はサーバー側のカタログ検索を呼びます。
func (c *Client) SearchKanji(ctx context.Context, query string, studyMode bool) (*model.KanjiListResponse, error) {
	endpoint, err := url.JoinPath(c.baseURL, "kanji")
	if err != nil {
		return nil, err
	}
	q := url.Values{}
	if query != "" {
		q.Set("q", query)
	}
	if studyMode {
		q.Set("study", "true")
	}
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	var resp model.KanjiListResponse
	if err := c.send(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method string, body, out interface{}, path ...string) error {
	endpoint, err := url.JoinPath(c.baseURL, path...)
	if err != nil {
		return err
	}
	return c.send(ctx, method, endpoint, body, out)
}

func (c *Client) send(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Remote request failed", slog.String("method", method), slog.String("url", endpoint), slog.Any("error", err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		remoteErr := decodeError(resp)
		c.logger.Debug("Remote request returned error",
			slog.String("method", method),
			slog.String("url", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("code", remoteErr.Code),
		)
		return remoteErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) *RemoteError {
	remoteErr := &RemoteError{Status: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload model.APIErrorResponse
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error.Message != "" {
		remoteErr.Code = payload.Error.Code
		remoteErr.Message = payload.Error.Message
		remoteErr.RedirectTo = payload.Error.RedirectTo
		return remoteErr
	}
	remoteErr.Message = strings.TrimSpace(string(raw))
	return remoteErr
}
