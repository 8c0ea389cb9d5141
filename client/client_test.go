package client_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"taskflow/client"
	"taskflow/internal/config"
	"taskflow/internal/database"
	"taskflow/internal/models"
	"taskflow/internal/router"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func startTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		Auth: config.AuthConfig{
			JWTSecret:  "client-test-secret",
			TokenTTL:   time.Hour,
			BCryptCost: 4,
		},
		CORS: config.CORSConfig{FrontendURL: "*"},
	}

	srv := httptest.NewServer(router.New(cfg, db, nil))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientRegisterAndTasks(t *testing.T) {
	srv := startTestServer(t)
	c := client.New(srv.URL, nil)
	ctx := context.Background()

	user, err := c.Register(ctx, "Ann", "ann@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Email != "ann@example.com" {
		t.Errorf("Unexpected user: %+v", user)
	}
	if !c.Session().Authenticated() {
		t.Fatal("Expected session to hold a token after register")
	}

	task, err := c.CreateTask(ctx, "Buy milk", "2 liters", "")
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.Status != models.StatusPending {
		t.Errorf("Expected default status pending, got %q", task.Status)
	}

	tasks, err := c.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" {
		t.Errorf("Unexpected task list: %+v", tasks)
	}

	status := models.StatusCompleted
	updated, err := c.UpdateTask(ctx, task.ID.String(), client.TaskUpdate{Status: &status})
	if err != nil {
		t.Fatalf("UpdateTask failed: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Errorf("Expected status completed, got %q", updated.Status)
	}

	if err := c.DeleteTask(ctx, task.ID.String()); err != nil {
		t.Fatalf("DeleteTask failed: %v", err)
	}

	tasks, err = c.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Expected empty list after delete, got %d", len(tasks))
	}
}

func TestClientLoginAndLogout(t *testing.T) {
	srv := startTestServer(t)
	ctx := context.Background()

	first := client.New(srv.URL, nil)
	if _, err := first.Register(ctx, "Ann", "ann@example.com", "secret1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	c := client.New(srv.URL, nil)
	user, err := c.Login(ctx, "ann@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Name != "Ann" {
		t.Errorf("Unexpected user: %+v", user)
	}

	if err := c.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if c.Session().Authenticated() {
		t.Error("Expected session to be cleared")
	}

	// Requests without a token are rejected.
	if _, err := c.ListTasks(ctx); err == nil {
		t.Error("Expected unauthenticated list to fail")
	}
}

func TestClientErrorMapping(t *testing.T) {
	srv := startTestServer(t)
	ctx := context.Background()

	c := client.New(srv.URL, nil)
	_, err := c.Login(ctx, "nobody@example.com", "wrong")

	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("Unexpected message: %q", apiErr.Message)
	}
}

func TestClientSessionPersistsAcrossInstances(t *testing.T) {
	srv := startTestServer(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	first := client.New(srv.URL, client.NewSession(path))
	if _, err := first.Register(ctx, "Ann", "ann@example.com", "secret1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := first.CreateTask(ctx, "Buy milk", "", ""); err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}

	// A fresh client restoring the same session file stays logged in.
	session := client.NewSession(path)
	if err := session.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	second := client.New(srv.URL, session)

	tasks, err := second.ListTasks(ctx)
	if err != nil {
		t.Fatalf("ListTasks with restored session failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("Expected 1 task, got %d", len(tasks))
	}
}

func TestClientUpdateProfile(t *testing.T) {
	srv := startTestServer(t)
	ctx := context.Background()

	c := client.New(srv.URL, nil)
	if _, err := c.Register(ctx, "Ann", "ann@example.com", "secret1"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	user, err := c.UpdateProfile(ctx, "Anna", "anna@example.com")
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if user.Name != "Anna" || user.Email != "anna@example.com" {
		t.Errorf("Unexpected user: %+v", user)
	}
	if got := c.Session().User(); got == nil || got.Email != "anna@example.com" {
		t.Errorf("Expected session user to be refreshed, got %+v", got)
	}
}
