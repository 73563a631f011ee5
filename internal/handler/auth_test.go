package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/itemvault/backend/internal/config"
	"github.com/itemvault/backend/internal/model"
	"github.com/itemvault/backend/internal/service"
	"github.com/jackc/pgx/v5"
)

type fakeUserRepo struct {
	users  map[string]*model.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}, nextID: 1}
}

func (f *fakeUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	if u, ok := f.users[username]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	created := *user
	created.ID = f.nextID
	f.nextID++
	f.users[created.Username] = &created
	copied := created
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListUsers(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeUserRepo, *service.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeUserRepo()
	codec, err := service.NewTokenCodec(config.AuthConfig{
		SecretKey:            "test-secret",
		Algorithm:            "HS256",
		AccessTokenExpireMin: "30",
	})
	if err != nil {
		t.Fatalf("NewTokenCodec error: %v", err)
	}

	authService := service.NewAuthService(repo, codec)
	authHandler := NewAuthHandler(authService)
	adminHandler := NewAdminHandler(service.NewAdminService(repo))

	r := gin.New()
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	authed := r.Group("/", AuthMiddleware(authService))
	authed.GET("/me", authHandler.Me)
	admin := authed.Group("/admin", SuperuserMiddleware(authService))
	admin.GET("/users", adminHandler.ListUsers)

	return r, repo, authService
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func registerBob(t *testing.T, r *gin.Engine) {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/register", `{"username":"bob","email":"b@x.com","password":"pw"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func loginBob(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/login", `{"username":"bob","password":"pw"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res model.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("login response decode: %v", err)
	}
	return res.AccessToken
}

func TestRegisterEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/register", `{"username":"bob","email":"b@x.com","password":"pw"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var res model.UserRead
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Username != "bob" || !res.IsActive || res.IsSuperuser {
		t.Fatalf("unexpected body: %+v", res)
	}
	if bytes.Contains(w.Body.Bytes(), []byte("password")) || bytes.Contains(w.Body.Bytes(), []byte("hash")) {
		t.Fatalf("response must not expose credentials: %s", w.Body.String())
	}

	// Duplicate username.
	w = doJSON(r, http.MethodPost, "/register", `{"username":"bob","email":"c@x.com","password":"pw"}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400, got %d", w.Code)
	}
}

func TestRegisterEndpointValidation(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/register", `{"username":"","email":"not-an-email","password":""}`, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestLoginEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t)
	registerBob(t, r)

	w := doJSON(r, http.MethodPost, "/login", `{"username":"bob","password":"pw"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res model.LoginResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.AccessToken == "" || res.TokenType != "bearer" || res.User.Username != "bob" {
		t.Fatalf("unexpected body: %+v", res)
	}

	wrongPw := doJSON(r, http.MethodPost, "/login", `{"username":"bob","password":"wrong"}`, "")
	noUser := doJSON(r, http.MethodPost, "/login", `{"username":"nosuchuser","password":"x"}`, "")
	if wrongPw.Code != http.StatusUnauthorized || noUser.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPw.Code, noUser.Code)
	}
	if wrongPw.Body.String() != noUser.Body.String() {
		t.Fatalf("login failures must be identical: %s vs %s", wrongPw.Body.String(), noUser.Body.String())
	}
}

func TestMeEndpoint(t *testing.T) {
	r, _, _ := newTestRouter(t)
	registerBob(t, r)
	token := loginBob(t, r)

	w := doJSON(r, http.MethodGet, "/me", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res model.UserRead
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Username != "bob" {
		t.Fatalf("unexpected identity: %+v", res)
	}
}

func TestMeEndpointRejectsBadTokens(t *testing.T) {
	r, _, _ := newTestRouter(t)
	registerBob(t, r)

	if w := doJSON(r, http.MethodGet, "/me", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no header: expected 401, got %d", w.Code)
	}
	if w := doJSON(r, http.MethodGet, "/me", "", "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", w.Code)
	}
}

func TestMeEndpointInactiveUser(t *testing.T) {
	r, repo, _ := newTestRouter(t)
	registerBob(t, r)
	token := loginBob(t, r)

	repo.users["bob"].IsActive = false

	w := doJSON(r, http.MethodGet, "/me", "", token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("inactive user: expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAdminUsersSuperuserGate(t *testing.T) {
	r, repo, _ := newTestRouter(t)
	registerBob(t, r)
	token := loginBob(t, r)

	w := doJSON(r, http.MethodGet, "/admin/users", "", token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("regular user: expected 403, got %d", w.Code)
	}

	repo.users["bob"].IsSuperuser = true
	w = doJSON(r, http.MethodGet, "/admin/users", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("superuser: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var res []model.UserRead
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(res) != 1 || res[0].Username != "bob" {
		t.Fatalf("unexpected user list: %+v", res)
	}
}
