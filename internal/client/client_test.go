package client_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomnaj/todo-app/internal/auth"
	"github.com/tomnaj/todo-app/internal/client"
	"github.com/tomnaj/todo-app/internal/handlers"
	"github.com/tomnaj/todo-app/internal/repo"
	"github.com/tomnaj/todo-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newServer runs the real API over in-memory repos.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tokens := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	userSvc := service.NewUserService(repo.NewMemUserRepo())
	taskSvc := service.NewTaskService(repo.NewMemTaskRepo(), nil)

	api := r.Group("/api/v1")
	ah := handlers.NewAuthHandler(tokens, userSvc)
	api.POST("/auth/register", ah.Register)
	api.POST("/auth/login", ah.Login)

	protected := api.Group("", auth.RequireAuth(tokens))
	th := handlers.NewTaskHandler(taskSvc)
	protected.POST("/tasks", th.Create)
	protected.GET("/tasks", th.List)
	protected.GET("/tasks/:id", th.GetByID)
	protected.PATCH("/tasks/:id", th.Update)
	protected.DELETE("/tasks/:id", th.Delete)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFlow(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t)
	api := client.New(srv.URL)

	_, err := api.Register(ctx, "a@x.com", "secret1", "Alice")
	require.NoError(t, err)

	// Register does not log in.
	_, err = api.Tasks(ctx)
	assert.ErrorIs(t, err, client.ErrNotLoggedIn)

	u, err := api.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
	assert.True(t, api.Session().Authenticated())

	task, err := api.CreateTask(ctx, "Buy milk", "2 liters", "")
	require.NoError(t, err)
	assert.Equal(t, "TODO", task.Status)

	list, err := api.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	done := "DONE"
	updated, err := api.UpdateTask(ctx, task.ID, client.TaskPatch{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, "DONE", updated.Status)
	assert.Equal(t, "Buy milk", updated.Title)

	require.NoError(t, api.DeleteTask(ctx, task.ID))
	list, err = api.Tasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	api.Logout()
	assert.False(t, api.Session().Authenticated())
	_, err = api.Tasks(ctx)
	assert.ErrorIs(t, err, client.ErrNotLoggedIn)
}

func TestClient_APIErrors(t *testing.T) {
	ctx := context.Background()
	srv := newServer(t)
	api := client.New(srv.URL)

	_, err := api.Login(ctx, "nobody@x.com", "secret1")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.StatusCode)

	_, err = api.Register(ctx, "a@x.com", "secret1", "")
	require.NoError(t, err)
	_, err = api.Register(ctx, "a@x.com", "secret1", "")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.StatusCode)

	_, err = api.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)
	_, err = api.Task(ctx, "no-such-id")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestSessionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	f := client.NewSessionFile(path)

	// Startup with no file: empty session.
	s, err := f.Load()
	require.NoError(t, err)
	assert.False(t, s.Authenticated())

	want := client.Session{
		Token: "tok-123",
		User:  client.User{ID: "u1", Email: "a@x.com", Name: "Alice"},
	}
	require.NoError(t, f.Save(want))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.True(t, got.Authenticated())

	require.NoError(t, f.Clear())
	s, err = f.Load()
	require.NoError(t, err)
	assert.False(t, s.Authenticated())
	// Clearing twice is fine.
	require.NoError(t, f.Clear())
}
