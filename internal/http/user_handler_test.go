package http

import (
	"net/http"
	"strings"
	"testing"

	"blog-api/internal/domain"
	"blog-api/internal/service"
)

func TestGetUser(t *testing.T) {
	api := newTestAPI(t, "")
	user := api.seedUser(t, "ada", "ada@x.com", "secret1", false)

	rec := api.do(t, http.MethodGet, "/api/user/"+user.ID, nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), `"password"`) {
		t.Fatalf("response leaks password: %s", rec.Body.String())
	}

	rec = api.do(t, http.MethodGet, "/api/user/missing", nil, "")
	expectError(t, rec, http.StatusNotFound, service.MsgUserNotFound)
}

func TestUpdateUser(t *testing.T) {
	api := newTestAPI(t, "")
	ada := api.seedUser(t, "ada", "ada@x.com", "secret1", false)
	bob := api.seedUser(t, "bob", "bob@x.com", "secret1", false)
	token := api.tokenFor(t, ada)

	rec := api.do(t, http.MethodPut, "/api/user/update/"+ada.ID, map[string]string{"username": "adalovelace"}, "")
	expectError(t, rec, http.StatusUnauthorized, msgUnauthorized)

	rec = api.do(t, http.MethodPut, "/api/user/update/"+bob.ID, map[string]string{"username": "bobbybobby"}, token)
	expectError(t, rec, http.StatusForbidden, service.MsgForbiddenUserUpdate)

	rec = api.do(t, http.MethodPut, "/api/user/update/"+ada.ID, map[string]string{"username": "Ada Lovelace"}, token)
	expectError(t, rec, http.StatusBadRequest, "")

	rec = api.do(t, http.MethodPut, "/api/user/update/"+ada.ID, map[string]string{"password": "123"}, token)
	expectError(t, rec, http.StatusBadRequest, service.MsgPasswordTooShort)

	rec = api.do(t, http.MethodPut, "/api/user/update/"+ada.ID, map[string]string{"username": "adalovelace"}, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got domain.PublicUser
	decodeBody(t, rec, &got)
	if got.Username != "adalovelace" {
		t.Fatalf("expected updated username, got %q", got.Username)
	}
}

func TestDeleteUser(t *testing.T) {
	api := newTestAPI(t, "")
	ada := api.seedUser(t, "ada", "ada@x.com", "secret1", false)
	bob := api.seedUser(t, "bob", "bob@x.com", "secret1", false)
	admin := api.seedUser(t, "root", "root@x.com", "secret1", true)

	rec := api.do(t, http.MethodDelete, "/api/user/delete/"+bob.ID, nil, api.tokenFor(t, ada))
	expectError(t, rec, http.StatusForbidden, service.MsgForbiddenUserDelete)

	rec = api.do(t, http.MethodDelete, "/api/user/delete/"+bob.ID, nil, api.tokenFor(t, admin))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin delete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodDelete, "/api/user/delete/"+ada.ID, nil, api.tokenFor(t, ada))
	if rec.Code != http.StatusOK {
		t.Fatalf("self delete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if api.users.Len() != 1 {
		t.Fatalf("expected only admin left, got %d users", api.users.Len())
	}
}

func TestGetUsers(t *testing.T) {
	api := newTestAPI(t, "")
	ada := api.seedUser(t, "ada", "ada@x.com", "secret1", false)
	admin := api.seedUser(t, "root", "root@x.com", "secret1", true)

	rec := api.do(t, http.MethodGet, "/api/user/getusers", nil, api.tokenFor(t, ada))
	expectError(t, rec, http.StatusForbidden, service.MsgForbiddenUserList)

	rec = api.do(t, http.MethodGet, "/api/user/getusers?limit=1&sort=asc", nil, api.tokenFor(t, admin))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var list service.UserList
	decodeBody(t, rec, &list)
	if list.TotalUsers != 2 || list.LastMonthUsers != 2 {
		t.Fatalf("unexpected totals: %+v", list)
	}
	if len(list.Users) != 1 {
		t.Fatalf("expected 1 user in page, got %d", len(list.Users))
	}
	if strings.Contains(rec.Body.String(), `"password"`) {
		t.Fatalf("list leaks password: %s", rec.Body.String())
	}
}

func TestSession_EmailToken(t *testing.T) {
	api := newTestAPI(t, "")
	admin := api.seedUser(t, "root", "root@x.com", "secret1", true)

	token, err := api.tokens.IssueForEmail(admin.Email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec := api.do(t, http.MethodGet, "/api/user/getusers", nil, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with email token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestSession_Rejects(t *testing.T) {
	api := newTestAPI(t, "")
	ada := api.seedUser(t, "ada", "ada@x.com", "secret1", false)

	other := service.NewJWTService("other-secret", 0, 0)
	forged, err := other.IssueForUser(ada.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	ghost, err := api.tokens.IssueForUser("ghost")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	for name, token := range map[string]string{
		"garbage": "not-a-jwt",
		"forged":  forged,
		"ghost":   ghost,
	} {
		rec := api.do(t, http.MethodGet, "/api/user/getusers", nil, token)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", name, rec.Code)
		}
	}
}
