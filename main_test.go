package main

import (
	"bytes"
	"context"
	"encoding/json"
	"gin-taskboard/client"
	"gin-taskboard/constants"
	"gin-taskboard/dto"
	"gin-taskboard/models"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB) {
	t.Helper()
	t.Setenv("SECRET_KEY", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Category{}, &models.Todo{}))

	server := httptest.NewServer(setupRouter(db))
	t.Cleanup(server.Close)
	return server, db
}

func newLoggedInClient(t *testing.T, server *httptest.Server, email string) *client.Client {
	t.Helper()
	api, err := client.New(server.URL)
	require.NoError(t, err)

	_, err = api.Register(context.Background(), email, "password123")
	require.NoError(t, err)
	_, err = api.Login(context.Background(), email, "password123")
	require.NoError(t, err)
	return api
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(encoded))
	require.NoError(t, err)
	return resp
}

func TestRegisterEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/auth/register", gin.H{"email": "alice@example.com", "password": "password123"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.RegisterResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice@example.com", created.Email)

	// 同じメールでの再登録は409
	dup := postJSON(t, server.URL+"/api/auth/register", gin.H{"email": "alice@example.com", "password": "other"})
	defer dup.Body.Close()
	assert.Equal(t, http.StatusConflict, dup.StatusCode)

	// フィールド不足は400
	missing := postJSON(t, server.URL+"/api/auth/register", gin.H{"email": "bob@example.com"})
	defer missing.Body.Close()
	assert.Equal(t, http.StatusBadRequest, missing.StatusCode)
}

func TestLoginFailureShapeIsUniform(t *testing.T) {
	server, _ := newTestServer(t)

	reg := postJSON(t, server.URL+"/api/auth/register", gin.H{"email": "alice@example.com", "password": "password123"})
	reg.Body.Close()

	wrongPassword := postJSON(t, server.URL+"/api/auth/login", gin.H{"email": "alice@example.com", "password": "nope"})
	defer wrongPassword.Body.Close()
	unknownEmail := postJSON(t, server.URL+"/api/auth/login", gin.H{"email": "ghost@example.com", "password": "password123"})
	defer unknownEmail.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode)

	var a, b map[string]interface{}
	require.NoError(t, json.NewDecoder(wrongPassword.Body).Decode(&a))
	require.NoError(t, json.NewDecoder(unknownEmail.Body).Decode(&b))
	assert.Equal(t, a, b)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	server, _ := newTestServer(t)

	reg := postJSON(t, server.URL+"/api/auth/register", gin.H{"email": "alice@example.com", "password": "password123"})
	reg.Body.Close()

	resp := postJSON(t, server.URL+"/api/auth/login", gin.H{"email": "alice@example.com", "password": "password123"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var session *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "token" {
			session = cookie
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, session.SameSite)
	assert.NotEmpty(t, session.Value)
	// 7日間の有効期限
	assert.Equal(t, int((7 * 24 * time.Hour).Seconds()), session.MaxAge)
}

func TestMeAndLogout(t *testing.T) {
	server, _ := newTestServer(t)
	api := newLoggedInClient(t, server, "alice@example.com")

	me, err := api.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", me.Email)
	assert.Equal(t, constants.RoleUser, me.Role)

	require.NoError(t, api.Logout(context.Background()))

	_, err = api.Me(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestMeAfterUserDeleted(t *testing.T) {
	server, db := newTestServer(t)
	api := newLoggedInClient(t, server, "alice@example.com")

	require.NoError(t, db.Where("email = ?", "alice@example.com").Delete(&models.User{}).Error)

	// ミドルウェアの再検索で弾かれるため401
	_, err := api.Me(context.Background())
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestTodoLifecycle(t *testing.T) {
	server, _ := newTestServer(t)
	api := newLoggedInClient(t, server, "alice@example.com")
	ctx := context.Background()

	category, err := api.CreateCategory(ctx, "work")
	require.NoError(t, err)

	dueDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	todo, err := api.CreateTodo(ctx, dto.CreateTodoInput{
		Title:      "write minutes",
		Priority:   constants.PriorityHigh,
		DueDate:    &dueDate,
		CategoryID: &category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusTodo, todo.Status)
	require.NotNil(t, todo.Category)
	assert.Equal(t, "work", todo.Category.Name)

	// titleだけ更新してもdueDateは残る
	updated, err := api.UpdateTodo(ctx, todo.ID, map[string]interface{}{"title": "minutes"})
	require.NoError(t, err)
	assert.Equal(t, "minutes", updated.Title)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.DueDate.Equal(dueDate))

	// dueDate: null はクリア
	updated, err = api.UpdateTodo(ctx, todo.ID, map[string]interface{}{"dueDate": nil})
	require.NoError(t, err)
	assert.Nil(t, updated.DueDate)

	// ステータス遷移
	updated, err = api.UpdateTodo(ctx, todo.ID, map[string]interface{}{"status": constants.StatusDone})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusDone, updated.Status)

	require.NoError(t, api.DeleteTodo(ctx, todo.ID))

	todos, err := api.ListTodos(ctx, dto.TodoFilter{})
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestTodoFilters(t *testing.T) {
	server, _ := newTestServer(t)
	api := newLoggedInClient(t, server, "alice@example.com")
	other := newLoggedInClient(t, server, "bob@example.com")
	ctx := context.Background()

	_, err := api.CreateTodo(ctx, dto.CreateTodoInput{Title: "match", Priority: constants.PriorityHigh, Status: constants.StatusDone})
	require.NoError(t, err)
	_, err = api.CreateTodo(ctx, dto.CreateTodoInput{Title: "wrong priority", Priority: constants.PriorityLow, Status: constants.StatusDone})
	require.NoError(t, err)
	_, err = other.CreateTodo(ctx, dto.CreateTodoInput{Title: "bobs match", Priority: constants.PriorityHigh, Status: constants.StatusDone})
	require.NoError(t, err)

	priority := constants.PriorityHigh
	status := constants.StatusDone
	todos, err := api.ListTodos(ctx, dto.TodoFilter{Priority: &priority, Status: &status})
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "match", todos[0].Title)
}

func TestTodoFilterValidation(t *testing.T) {
	server, _ := newTestServer(t)
	api := newLoggedInClient(t, server, "alice@example.com")
	ctx := context.Background()

	bad := "URGENT"
	_, err := api.ListTodos(ctx, dto.TodoFilter{Priority: &bad})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	_, err = api.ListTodos(ctx, dto.TodoFilter{SortBy: "password"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
}

func TestCrossUserAccessLooksLikeNotFound(t *testing.T) {
	server, _ := newTestServer(t)
	alice := newLoggedInClient(t, server, "alice@example.com")
	bob := newLoggedInClient(t, server, "bob@example.com")
	ctx := context.Background()

	todo, err := alice.CreateTodo(ctx, dto.CreateTodoInput{Title: "private"})
	require.NoError(t, err)
	category, err := alice.CreateCategory(ctx, "secret")
	require.NoError(t, err)

	var apiErr *client.APIError

	_, err = bob.UpdateTodo(ctx, todo.ID, map[string]interface{}{"title": "hijack"})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	err = bob.DeleteTodo(ctx, todo.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	err = bob.DeleteCategory(ctx, category.ID)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	// 他人のカテゴリをTodoに割り当てるのも404
	_, err = bob.CreateTodo(ctx, dto.CreateTodoInput{Title: "x", CategoryID: &category.ID})
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestCategoryDuplicateAndDelete(t *testing.T) {
	server, _ := newTestServer(t)
	api := newLoggedInClient(t, server, "alice@example.com")
	ctx := context.Background()

	category, err := api.CreateCategory(ctx, "work")
	require.NoError(t, err)

	var apiErr *client.APIError
	_, err = api.CreateCategory(ctx, "work")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)

	todo, err := api.CreateTodo(ctx, dto.CreateTodoInput{Title: "attached", CategoryID: &category.ID})
	require.NoError(t, err)

	require.NoError(t, api.DeleteCategory(ctx, category.ID))

	// Todoは残り、カテゴリ参照だけ外れている
	todos, err := api.ListTodos(ctx, dto.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, todo.ID, todos[0].ID)
	assert.Nil(t, todos[0].CategoryID)
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/todos")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(server.URL + "/api/categories")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminUsersEndpoint(t *testing.T) {
	server, db := newTestServer(t)

	reg := postJSON(t, server.URL+"/api/auth/register", gin.H{"email": "alice@example.com", "password": "password123"})
	reg.Body.Close()
	login := postJSON(t, server.URL+"/api/auth/login", gin.H{"email": "alice@example.com", "password": "password123"})
	login.Body.Close()

	var session *http.Cookie
	for _, cookie := range login.Cookies() {
		if cookie.Name == "token" {
			session = cookie
		}
	}
	require.NotNil(t, session)

	adminReq := func() *http.Request {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/api/admin/users", nil)
		require.NoError(t, err)
		req.AddCookie(session)
		return req
	}

	// 一般ユーザーは403
	resp, err := http.DefaultClient.Do(adminReq())
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// 管理者に昇格すると一覧が返る（ロールはDBの値で判定される）
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "alice@example.com").Update("role", constants.RoleAdmin).Error)

	resp, err = http.DefaultClient.Do(adminReq())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []dto.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.Len(t, users, 1)
	assert.Equal(t, constants.RoleAdmin, users[0].Role)
}
