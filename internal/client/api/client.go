// Package api is the HTTP client for the pdfchat server. It keeps the
// token pair in memory and transparently retries an unauthorized request
// once after refreshing the access token.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
	"time"

	"github.com/avolkov/pdfchat/internal/common"
)

type Client struct {
	baseURL      string
	http         *http.Client
	accessToken  string
	refreshToken string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// IsLoggedIn reports whether the client holds a token pair.
func (c *Client) IsLoggedIn() bool {
	return c.accessToken != ""
}

// Logout drops the in-memory tokens after notifying the server.
func (c *Client) Logout(ctx context.Context) error {
	_, _ = c.do(ctx, http.MethodPost, "/auth/logout", nil, "", true)
	c.accessToken = ""
	c.refreshToken = ""
	return nil
}

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `json:"is_active"`
}

type File struct {
	FileID           string    `json:"file_id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileSize         int64     `json:"file_size"`
	ContentType      string    `json:"content_type"`
	UploadTime       time.Time `json:"upload_time"`
}

type ChatReply struct {
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	FileContext string `json:"file_context"`
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Register creates an account on the server.
func (c *Client) Register(ctx context.Context, username, email string, password []byte, fullName string) error {
	body := map[string]string{
		"username":  username,
		"email":     email,
		"password":  string(password),
		"full_name": fullName,
	}
	_, err := c.do(ctx, http.MethodPost, "/auth/register", body, "", false)
	return err
}

// Login authenticates and stores the returned token pair.
func (c *Client) Login(ctx context.Context, username string, password []byte) error {
	body := map[string]string{"username": username, "password": string(password)}

	data, err := c.do(ctx, http.MethodPost, "/auth/login", body, "", false)
	if err != nil {
		return err
	}

	var pair tokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode login response: %w", err)
	}

	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	return nil
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*User, error) {
	data, err := c.do(ctx, http.MethodGet, "/auth/me", nil, "", true)
	if err != nil {
		return nil, err
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return &u, nil
}

// Upload sends a PDF as a multipart form.
func (c *Client) Upload(ctx context.Context, fileName string, content io.Reader) (*File, error) {

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filepath.Base(fileName)))
	h.Set("Content-Type", "application/pdf")

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	data, err := c.doRaw(ctx, http.MethodPost, "/uploads/pdf", buf.Bytes(), w.FormDataContentType(), true)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &f, nil
}

// List returns the caller's uploads.
func (c *Client) List(ctx context.Context) ([]File, error) {
	data, err := c.do(ctx, http.MethodGet, "/uploads/pdfs", nil, "", true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Files []File `json:"files"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return resp.Files, nil
}

// Chat sends a message, optionally referencing an uploaded file.
func (c *Client) Chat(ctx context.Context, message, fileID string) (*ChatReply, error) {
	body := map[string]string{"message": message}
	if fileID != "" {
		body["file_id"] = fileID
	}

	data, err := c.do(ctx, http.MethodPost, "/chat/message", body, "", true)
	if err != nil {
		return nil, err
	}

	var env apiEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	var reply ChatReply
	if err := json.Unmarshal(env.Data, &reply); err != nil {
		return nil, fmt.Errorf("decode chat reply: %w", err)
	}
	return &reply, nil
}

// do issues a JSON request. Authenticated requests that come back 401 are
// retried once after a token refresh.
func (c *Client) do(ctx context.Context, method, path string, body any, contentType string, authed bool) ([]byte, error) {

	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = b
		contentType = "application/json"
	}

	return c.doRaw(ctx, method, path, payload, contentType, authed)
}

func (c *Client) doRaw(ctx context.Context, method, path string, payload []byte, contentType string, authed bool) ([]byte, error) {

	data, status, err := c.send(ctx, method, path, payload, contentType, authed)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized && authed && c.refreshToken != "" {
		if err := c.refresh(ctx); err != nil {
			return nil, common.ErrUnauthenticated
		}
		data, status, err = c.send(ctx, method, path, payload, contentType, authed)
		if err != nil {
			return nil, err
		}
	}

	if status >= http.StatusBadRequest {
		return nil, &apiError{Status: status, Message: errorMessage(data)}
	}

	return data, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, contentType string, authed bool) ([]byte, int, error) {

	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/v1"+path, rd)
	if err != nil {
		return nil, 0, err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		req.Header.Set(common.AuthHeaderName, common.BearerPrefix+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	return data, resp.StatusCode, nil
}

func (c *Client) refresh(ctx context.Context) error {

	body, err := json.Marshal(map[string]string{"refresh_token": c.refreshToken})
	if err != nil {
		return err
	}

	data, status, err := c.send(ctx, http.MethodPost, "/auth/refresh", body, "application/json", false)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return common.ErrUnauthenticated
	}

	var pair tokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}

	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
	return nil
}

func errorMessage(data []byte) string {
	var e struct {
		Message any `json:"message"`
	}
	if err := json.Unmarshal(data, &e); err == nil && e.Message != nil {
		return fmt.Sprint(e.Message)
	}
	return strings.TrimSpace(string(data))
}
