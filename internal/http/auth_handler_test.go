package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/internal/repository/repotest"
	"blog-api/internal/service"
)

func TestSignup_Success(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "ada",
		"email":    "Ada@Example.com",
		"password": "secret1",
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		User domain.User `json:"user"`
	}
	decodeBody(t, rec, &body)
	if body.User.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", body.User.Email)
	}
	if body.User.Password == "" || body.User.Password == "secret1" {
		t.Fatalf("expected stored hash in response, got %q", body.User.Password)
	}

	cookie := sessionCookieFrom(t, rec)
	if !cookie.HttpOnly || cookie.SameSite != http.SameSiteStrictMode || cookie.Path != "/" {
		t.Fatalf("unexpected cookie attributes: %+v", cookie)
	}
	claims, err := api.tokens.Parse(cookie.Value)
	if err != nil {
		t.Fatalf("parse cookie token: %v", err)
	}
	if claims.UserID != body.User.ID {
		t.Fatalf("expected token for %s, got %s", body.User.ID, claims.UserID)
	}
}

func TestSignup_Validation(t *testing.T) {
	api := newTestAPI(t, "")

	rec := api.do(t, http.MethodPost, "/api/auth/signup", map[string]string{"email": "a@x.com"}, "")
	expectError(t, rec, http.StatusBadRequest, service.MsgAllFieldsRequired)

	rec = api.do(t, http.MethodPost, "/api/auth/signup", "{not json", "")
	expectError(t, rec, http.StatusBadRequest, service.MsgAllFieldsRequired)
}

func TestSignup_Duplicate(t *testing.T) {
	api := newTestAPI(t, "")
	api.seedUser(t, "ada", "ada@x.com", "secret1", false)

	rec := api.do(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "other",
		"email":    "ada@x.com",
		"password": "secret1",
	}, "")
	expectError(t, rec, http.StatusConflict, service.MsgUserExists)
}

func TestSignin(t *testing.T) {
	api := newTestAPI(t, "")
	user := api.seedUser(t, "ada", "ada@x.com", "secret1", false)

	rec := api.do(t, http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    "ada@x.com",
		"password": "wrong",
	}, "")
	expectError(t, rec, http.StatusUnauthorized, service.MsgInvalidCredentials)

	rec = api.do(t, http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    "nobody@x.com",
		"password": "secret1",
	}, "")
	expectError(t, rec, http.StatusUnauthorized, service.MsgInvalidCredentials)

	rec = api.do(t, http.MethodPost, "/api/auth/signin", map[string]string{
		"email":    "ada@x.com",
		"password": "secret1",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"password"`) {
		t.Fatalf("signin response leaks password: %s", rec.Body.String())
	}
	var got domain.PublicUser
	decodeBody(t, rec, &got)
	if got.ID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, got.ID)
	}
	sessionCookieFrom(t, rec)
}

func TestGoogle_CreatesOnce(t *testing.T) {
	api := newTestAPI(t, "")

	for i := 0; i < 2; i++ {
		rec := api.do(t, http.MethodPost, "/api/auth/google", map[string]string{"email": "grace@x.com"}, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("call %d: expected 200, got %d: %s", i, rec.Code, rec.Body.String())
		}
		claims, err := api.tokens.Parse(sessionCookieFrom(t, rec).Value)
		if err != nil {
			t.Fatalf("parse token: %v", err)
		}
		if claims.Email != "grace@x.com" || claims.UserID != "" {
			t.Fatalf("expected email-only claims, got %+v", claims)
		}
	}
	if api.users.Len() != 1 {
		t.Fatalf("expected exactly one user, got %d", api.users.Len())
	}

	rec := api.do(t, http.MethodPost, "/api/auth/google", map[string]string{}, "")
	expectError(t, rec, http.StatusBadRequest, service.MsgEmailRequired)
}

func TestSignout_ClearsCookie(t *testing.T) {
	api := newTestAPI(t, "")

	for _, target := range []string{"/api/auth/signout", "/api/user/signout"} {
		rec := api.do(t, http.MethodPost, target, nil, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", target, rec.Code)
		}
		cookie := sessionCookieFrom(t, rec)
		if cookie.Value != "" || cookie.MaxAge >= 0 {
			t.Fatalf("%s: expected cleared cookie, got %+v", target, cookie)
		}
		if !cookie.HttpOnly || cookie.SameSite != http.SameSiteStrictMode || cookie.Path != "/" || cookie.Secure {
			t.Fatalf("%s: cleared cookie must keep attributes, got %+v", target, cookie)
		}
		if !strings.Contains(rec.Body.String(), "Signout successfully") {
			t.Fatalf("%s: unexpected body %s", target, rec.Body.String())
		}
	}
}

func TestSignout_SecureCookieMatchesSignin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	users := repotest.NewUsers()
	tokens := service.NewJWTService("test-secret", time.Hour, time.Hour)
	h := NewAuthHandler(logger, service.NewAuthService(logger, users, tokens, nil), true)

	r := gin.New()
	r.Use(errorMiddleware(logger))
	r.POST("/signin", h.Signin)
	r.POST("/signout", h.Signout)

	hash, err := service.HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	users.Seed(domain.User{Username: "ada", Email: "ada@x.com", Password: hash})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/signin", strings.NewReader(`{"email":"ada@x.com","password":"secret1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("signin: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	set := sessionCookieFrom(t, rec)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/signout", nil))
	cleared := sessionCookieFrom(t, rec)

	if !set.Secure || !cleared.Secure {
		t.Fatalf("expected Secure on both cookies, set=%+v cleared=%+v", set, cleared)
	}
	if cleared.Path != set.Path || cleared.HttpOnly != set.HttpOnly || cleared.SameSite != set.SameSite {
		t.Fatalf("cleared cookie attributes differ: set=%+v cleared=%+v", set, cleared)
	}
	if cleared.MaxAge >= 0 {
		t.Fatalf("expected expired cookie, got %+v", cleared)
	}
}

func TestSignin_CorrectPasswordNotThrottled(t *testing.T) {
	api := newTestAPI(t, "")
	api.seedUser(t, "ada", "ada@x.com", "secret1", false)
	creds := map[string]string{"email": "ada@x.com", "password": "secret1"}

	for i := 0; i < testSigninMax+1; i++ {
		rec := api.do(t, http.MethodPost, "/api/auth/signin", creds, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("signin #%d: expected 200, got %d: %s", i+1, rec.Code, rec.Body.String())
		}
		sessionCookieFrom(t, rec)
	}

	wrong := map[string]string{"email": "ada@x.com", "password": "wrong"}
	for i := 0; i < testSigninMax; i++ {
		rec := api.do(t, http.MethodPost, "/api/auth/signin", wrong, "")
		expectError(t, rec, http.StatusUnauthorized, service.MsgInvalidCredentials)
	}
	rec := api.do(t, http.MethodPost, "/api/auth/signin", wrong, "")
	expectError(t, rec, http.StatusTooManyRequests, service.MsgTooManyAttempts)
}
