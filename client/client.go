// Package client タスクボードAPIのGoクライアント。
// ログイン時のセッションクッキーはcookie jarで自動的に保持される。
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"gin-taskboard/dto"
	"gin-taskboard/models"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar, Timeout: 15 * time.Second},
	}, nil
}

// APIError 2xx以外のレスポンス
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

func (c *Client) Register(ctx context.Context, email string, password string) (*dto.RegisterResponse, error) {
	var out dto.RegisterResponse
	body := dto.RegisterInput{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email string, password string) (*dto.UserResponse, error) {
	var out dto.UserResponse
	body := dto.LoginInput{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListTodos(ctx context.Context, filter dto.TodoFilter) ([]models.Todo, error) {
	query := url.Values{}
	if filter.IsCompleted != nil {
		query.Set("isCompleted", strconv.FormatBool(*filter.IsCompleted))
	}
	if filter.Status != nil {
		query.Set("status", *filter.Status)
	}
	if filter.Priority != nil {
		query.Set("priority", *filter.Priority)
	}
	if filter.CategoryID != nil {
		query.Set("categoryId", strconv.FormatUint(uint64(*filter.CategoryID), 10))
	}
	if filter.SortBy != "" {
		query.Set("sortBy", filter.SortBy)
	}
	if filter.SortOrder != "" {
		query.Set("sortOrder", filter.SortOrder)
	}

	path := "/api/todos"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out []models.Todo
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTodo(ctx context.Context, input dto.CreateTodoInput) (*models.Todo, error) {
	var out models.Todo
	if err := c.do(ctx, http.MethodPost, "/api/todos", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTodo 部分更新。patchに含めないキーは据え置き、
// 値をnilにしたキーはサーバー側でクリアされる。
func (c *Client) UpdateTodo(ctx context.Context, todoID uint, patch map[string]interface{}) (*models.Todo, error) {
	var out models.Todo
	path := fmt.Sprintf("/api/todos/%d", todoID)
	if err := c.do(ctx, http.MethodPut, path, patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTodo(ctx context.Context, todoID uint) error {
	path := fmt.Sprintf("/api/todos/%d", todoID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	var out models.Category
	body := dto.CreateCategoryInput{Name: name}
	if err := c.do(ctx, http.MethodPost, "/api/categories", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, categoryID uint) error {
	path := fmt.Sprintf("/api/categories/%d", categoryID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method string, path string, body interface{}, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &APIError{Status: resp.StatusCode, Message: errBody.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
