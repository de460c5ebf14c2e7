package todos

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/GoTodoAPI/GoTodoAPI/internal/auth"
	"github.com/GoTodoAPI/GoTodoAPI/internal/config"
	todoctl "github.com/GoTodoAPI/GoTodoAPI/internal/db/controller/todo"
	"github.com/GoTodoAPI/GoTodoAPI/internal/db/models"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
	ts  *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory db: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Todo{}); err != nil {
		t.Fatalf("failed to migrate models: %v", err)
	}

	// an in-memory sqlite database exists per connection; keep the pool
	// at one so every request sees the same data
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := &config.Config{
		Auth: config.Auth{
			TokenSecret: "test-secret",
			TokenTTL:    20,
		},
	}

	app := fiber.New()
	ts := auth.NewTokenService(cfg.Auth.TokenSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute)

	var s Service
	s.Init(app, cfg, db, ts)

	return &testEnv{app: app, db: db, ts: ts}
}

// newUser creates an active user and returns it with a valid bearer token.
func (e *testEnv) newUser(t *testing.T, username string, role models.Role) (*models.User, string) {
	t.Helper()

	user, err := auth.NewCredentials(e.db).Register(&models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
	}, "p@ss1234", role == models.RoleAdmin)
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}

	token, err := e.ts.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		t.Fatalf("failed to issue token for %s: %v", username, err)
	}

	return user, token
}

func (e *testEnv) request(t *testing.T, method, path, token, body string) (int, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test returned error: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	return resp.StatusCode, string(respBody)
}

func (e *testEnv) createTodo(t *testing.T, token, title string) *models.Todo {
	t.Helper()

	body := fmt.Sprintf(`{"title":%q,"description":"something to do","priority":3}`, title)

	status, respBody := e.request(t, fiber.MethodPost, Path, token, body)
	if status != fiber.StatusCreated {
		t.Fatalf("create status = %d, want 201 (body: %s)", status, respBody)
	}

	todo := new(models.Todo)
	if err := json.Unmarshal([]byte(respBody), todo); err != nil {
		t.Fatalf("failed to decode created todo: %v", err)
	}

	return todo
}

func TestTodosRequireAuthentication(t *testing.T) {
	env := newTestEnv(t)

	requests := []struct {
		method string
		path   string
	}{
		{fiber.MethodGet, Path},
		{fiber.MethodPost, Path},
		{fiber.MethodGet, Path + "/1"},
		{fiber.MethodPut, Path + "/1"},
		{fiber.MethodDelete, Path + "/1"},
	}

	for _, r := range requests {
		status, body := env.request(t, r.method, r.path, "", "")
		if status != fiber.StatusUnauthorized {
			t.Errorf("%s %s without token: status = %d, want 401", r.method, r.path, status)
		}
		if !strings.Contains(body, "could not validate credentials") {
			t.Errorf("%s %s: body = %q, want generic credential message", r.method, r.path, body)
		}
	}
}

func TestTodosRejectExpiredAndGarbageTokens(t *testing.T) {
	env := newTestEnv(t)

	expiredService := auth.NewTokenService("test-secret", -time.Minute)
	user, _ := env.newUser(t, "alice", models.RoleUser)

	expired, err := expiredService.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		t.Fatalf("failed to issue expired token: %v", err)
	}

	for _, token := range []string{expired, "garbage", "a.b.c"} {
		status, _ := env.request(t, fiber.MethodGet, Path, token, "")
		if status != fiber.StatusUnauthorized {
			t.Errorf("token %q: status = %d, want 401", token, status)
		}
	}
}

func TestCreateForcesOwnerToCaller(t *testing.T) {
	env := newTestEnv(t)

	alice, aliceToken := env.newUser(t, "alice", models.RoleUser)
	_, _ = env.newUser(t, "bob", models.RoleUser)

	// a smuggled owner_id must be ignored
	body := `{"title":"spoofed","description":"not yours","priority":1,"owner_id":999}`

	status, respBody := env.request(t, fiber.MethodPost, Path, aliceToken, body)
	if status != fiber.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", status, respBody)
	}

	todo := new(models.Todo)
	if err := json.Unmarshal([]byte(respBody), todo); err != nil {
		t.Fatalf("failed to decode created todo: %v", err)
	}

	if todo.OwnerID != alice.ID {
		t.Errorf("owner_id = %d, want caller id %d", todo.OwnerID, alice.ID)
	}
}

func TestCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser(t, "alice", models.RoleUser)

	bodies := []struct {
		name string
		body string
	}{
		{"missing title", `{"description":"something to do","priority":3}`},
		{"short title", `{"title":"ab","description":"something to do","priority":3}`},
		{"priority too high", `{"title":"chores","description":"something to do","priority":6}`},
		{"priority zero", `{"title":"chores","description":"something to do","priority":0}`},
		{"not json", `title=chores`},
	}

	for _, tc := range bodies {
		status, respBody := env.request(t, fiber.MethodPost, Path, token, tc.body)
		if status != fiber.StatusUnprocessableEntity {
			t.Errorf("%s: status = %d, want 422 (body: %s)", tc.name, status, respBody)
		}
	}

	if list, err := todoctl.ListByOwner(env.db, 1); err != nil || len(list) != 0 {
		t.Errorf("invalid requests must not create rows, got %d (err: %v)", len(list), err)
	}
}

func TestListIsOwnerScoped(t *testing.T) {
	env := newTestEnv(t)

	_, aliceToken := env.newUser(t, "alice", models.RoleUser)
	_, bobToken := env.newUser(t, "bob", models.RoleUser)

	env.createTodo(t, aliceToken, "alice one")
	env.createTodo(t, aliceToken, "alice two")
	env.createTodo(t, bobToken, "bob one")

	status, body := env.request(t, fiber.MethodGet, Path, aliceToken, "")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}

	var list []models.Todo
	if err := json.Unmarshal([]byte(body), &list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}

	if len(list) != 2 {
		t.Fatalf("alice sees %d todos, want 2", len(list))
	}

	for _, todo := range list {
		if strings.HasPrefix(todo.Title, "bob") {
			t.Errorf("alice's list contains bob's todo %q", todo.Title)
		}
	}
}

func TestForeignTodoLooksAbsent(t *testing.T) {
	env := newTestEnv(t)

	_, aliceToken := env.newUser(t, "alice", models.RoleUser)
	_, bobToken := env.newUser(t, "bob", models.RoleUser)

	bobsTodo := env.createTodo(t, bobToken, "bob secret")
	foreign := fmt.Sprintf("%s/%d", Path, bobsTodo.ID)
	absent := fmt.Sprintf("%s/%d", Path, bobsTodo.ID+1000)

	update := `{"title":"hijack","description":"should not land","priority":1}`

	pairs := []struct {
		method string
		body   string
	}{
		{fiber.MethodGet, ""},
		{fiber.MethodPut, update},
		{fiber.MethodDelete, ""},
	}

	for _, p := range pairs {
		foreignStatus, foreignBody := env.request(t, p.method, foreign, aliceToken, p.body)
		absentStatus, absentBody := env.request(t, p.method, absent, aliceToken, p.body)

		if foreignStatus != fiber.StatusNotFound {
			t.Errorf("%s foreign todo: status = %d, want 404", p.method, foreignStatus)
		}

		// a foreign todo must be indistinguishable from a missing one
		if foreignStatus != absentStatus || foreignBody != absentBody {
			t.Errorf("%s: foreign (%d, %q) differs from absent (%d, %q)",
				p.method, foreignStatus, foreignBody, absentStatus, absentBody)
		}
	}

	// bob's todo is untouched
	got, err := todoctl.Get(env.db, bobsTodo.ID)
	if err != nil {
		t.Fatalf("bob's todo vanished: %v", err)
	}
	if got.Title != "bob secret" {
		t.Errorf("bob's todo title = %q, want unchanged", got.Title)
	}
}

func TestOwnerRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser(t, "alice", models.RoleUser)

	created := env.createTodo(t, token, "write tests")
	path := fmt.Sprintf("%s/%d", Path, created.ID)

	status, body := env.request(t, fiber.MethodGet, path, token, "")
	if status != fiber.StatusOK {
		t.Fatalf("get status = %d, want 200", status)
	}

	got := new(models.Todo)
	if err := json.Unmarshal([]byte(body), got); err != nil {
		t.Fatalf("failed to decode todo: %v", err)
	}
	if got.Title != "write tests" || got.Complete {
		t.Errorf("got %+v, want title=write tests complete=false", got)
	}

	update := `{"title":"write tests","description":"something to do","priority":5,"complete":true}`
	status, _ = env.request(t, fiber.MethodPut, path, token, update)
	if status != fiber.StatusNoContent {
		t.Fatalf("update status = %d, want 204", status)
	}

	updated, err := todoctl.Get(env.db, created.ID)
	if err != nil {
		t.Fatalf("failed to reload todo: %v", err)
	}
	if !updated.Complete || updated.Priority != 5 {
		t.Errorf("updated todo = %+v, want complete=true priority=5", updated)
	}

	status, _ = env.request(t, fiber.MethodDelete, path, token, "")
	if status != fiber.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", status)
	}

	status, _ = env.request(t, fiber.MethodGet, path, token, "")
	if status != fiber.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", status)
	}
}

func TestBadTodoIDs(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser(t, "alice", models.RoleUser)

	for _, id := range []string{"abc", "0", "-1"} {
		status, _ := env.request(t, fiber.MethodGet, Path+"/"+id, token, "")
		if status != fiber.StatusUnprocessableEntity {
			t.Errorf("id %q: status = %d, want 422", id, status)
		}
	}
}

func TestConcurrentRequestsOnSameTodo(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.newUser(t, "alice", models.RoleUser)

	created := env.createTodo(t, token, "contended")
	path := fmt.Sprintf("%s/%d", Path, created.ID)
	update := `{"title":"contended","description":"something to do","priority":2,"complete":true}`

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(write bool) {
			defer wg.Done()

			if write {
				status, _ := env.request(t, fiber.MethodPut, path, token, update)
				if status != fiber.StatusNoContent {
					t.Errorf("concurrent update: status = %d, want 204", status)
				}
				return
			}

			status, _ := env.request(t, fiber.MethodGet, path, token, "")
			if status != fiber.StatusOK {
				t.Errorf("concurrent get: status = %d, want 200", status)
			}
		}(i%2 == 0)
	}
	wg.Wait()
}
