package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/internal/repository/repotest"
	"blog-api/internal/service"
)

const testSigninMax = 3

type testAPI struct {
	router   *gin.Engine
	users    *repotest.Users
	posts    *repotest.Posts
	comments *repotest.Comments
	tokens   *service.JWTService
}

func newTestAPI(t *testing.T, staticDir string) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	users := repotest.NewUsers()
	posts := repotest.NewPosts()
	comments := repotest.NewComments()
	tokens := service.NewJWTService("test-secret", time.Hour, time.Hour)

	authSvc := service.NewAuthService(logger, users, tokens, service.NewMemoryLoginThrottle(time.Minute, testSigninMax))
	userSvc := service.NewUserService(logger, users)
	postSvc := service.NewPostService(logger, posts)
	commentSvc := service.NewCommentService(logger, comments, posts)

	router := NewRouter(logger,
		RouterConfig{
			StaticDir: staticDir,
			Session:   SessionMiddleware(tokens, userSvc),
		},
		NewAuthHandler(logger, authSvc, false),
		NewUserHandler(logger, userSvc),
		NewPostHandler(logger, postSvc),
		NewCommentHandler(logger, commentSvc),
	)

	return &testAPI{router: router, users: users, posts: posts, comments: comments, tokens: tokens}
}

// do ejecuta un request; token vacio significa sin cookie de sesion.
func (a *testAPI) do(t *testing.T, method, target string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) seedUser(t *testing.T, username, email, password string, admin bool) domain.User {
	t.Helper()
	hash, err := service.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return a.users.Seed(domain.User{
		Username: username,
		Email:    email,
		Password: hash,
		IsAdmin:  admin,
	})
}

func (a *testAPI) tokenFor(t *testing.T, user domain.User) string {
	t.Helper()
	token, err := a.tokens.IssueForUser(user.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
}

type errorBody struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	var body errorBody
	decodeBody(t, rec, &body)
	if body.StatusCode != status {
		t.Fatalf("expected statusCode %d in body, got %d", status, body.StatusCode)
	}
	if message != "" && body.Message != message {
		t.Fatalf("expected message %q, got %q", message, body.Message)
	}
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", SessionCookieName)
	return nil
}
