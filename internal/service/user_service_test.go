package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"blog-api/internal/domain"
	"blog-api/internal/repository/repotest"
)

func strPtr(s string) *string { return &s }

func TestUserServiceUpdate_OnlySelf(t *testing.T) {
	users := repotest.NewUsers()
	target := users.Seed(domain.User{Username: "adalovelace", Email: "ada@x.com"})
	svc := NewUserService(zap.NewNop(), users)

	_, err := svc.Update(context.Background(), domain.Actor{ID: "someone-else", IsAdmin: true}, target.ID, UpdateUserInput{
		ProfilePicture: strPtr("https://img/x.png"),
	})
	expectStatus(t, err, http.StatusForbidden, MsgForbiddenUserUpdate)
}

func TestUserServiceUpdate_Validation(t *testing.T) {
	users := repotest.NewUsers()
	target := users.Seed(domain.User{Username: "adalovelace", Email: "ada@x.com"})
	svc := NewUserService(zap.NewNop(), users)
	actor := domain.Actor{ID: target.ID}

	cases := []struct {
		input UpdateUserInput
		msg   string
	}{
		{UpdateUserInput{Password: strPtr("12345")}, MsgPasswordTooShort},
		{UpdateUserInput{Username: strPtr("short")}, MsgUsernameLength},
		{UpdateUserInput{Username: strPtr("has spaces in")}, MsgUsernameSpaces},
		{UpdateUserInput{Username: strPtr("UpperCase1")}, MsgUsernameLowercase},
		{UpdateUserInput{Username: strPtr("dots.are.bad")}, MsgUsernameCharset},
	}
	for _, tc := range cases {
		_, err := svc.Update(context.Background(), actor, target.ID, tc.input)
		expectStatus(t, err, http.StatusBadRequest, tc.msg)
	}
}

func TestUserServiceUpdate_Success(t *testing.T) {
	users := repotest.NewUsers()
	target := users.Seed(domain.User{Username: "adalovelace", Email: "ada@x.com", Password: "old"})
	svc := NewUserService(zap.NewNop(), users)

	updated, err := svc.Update(context.Background(), domain.Actor{ID: target.ID}, target.ID, UpdateUserInput{
		Username: strPtr("countess1815"),
		Password: strPtr("newsecret"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Username != "countess1815" {
		t.Fatalf("expected username updated, got %s", updated.Username)
	}
	if !CheckPassword(updated.Password, "newsecret") {
		t.Fatalf("expected password rehashed")
	}
}

func TestUserServiceUpdate_DuplicateUsername(t *testing.T) {
	users := repotest.NewUsers()
	users.Seed(domain.User{Username: "takenname", Email: "other@x.com"})
	target := users.Seed(domain.User{Username: "adalovelace", Email: "ada@x.com"})
	svc := NewUserService(zap.NewNop(), users)

	_, err := svc.Update(context.Background(), domain.Actor{ID: target.ID}, target.ID, UpdateUserInput{Username: strPtr("takenname")})
	expectStatus(t, err, http.StatusConflict, MsgUsernameOrEmailUsed)
}

func TestUserServiceDelete(t *testing.T) {
	users := repotest.NewUsers()
	target := users.Seed(domain.User{Username: "adalovelace", Email: "ada@x.com"})
	svc := NewUserService(zap.NewNop(), users)

	err := svc.Delete(context.Background(), domain.Actor{ID: "stranger"}, target.ID)
	expectStatus(t, err, http.StatusForbidden, MsgForbiddenUserDelete)

	if err := svc.Delete(context.Background(), domain.Actor{ID: "admin", IsAdmin: true}, target.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	err = svc.Delete(context.Background(), domain.Actor{ID: "admin", IsAdmin: true}, target.ID)
	expectStatus(t, err, http.StatusNotFound, MsgUserNotFound)
}

func TestUserServiceList(t *testing.T) {
	users := repotest.NewUsers()
	now := time.Now().UTC()
	users.Seed(domain.User{Username: "old", Email: "old@x.com", Password: "h", CreatedAt: now.AddDate(0, -2, 0)})
	users.Seed(domain.User{Username: "new1", Email: "new1@x.com", Password: "h", CreatedAt: now.Add(-time.Hour)})
	users.Seed(domain.User{Username: "new2", Email: "new2@x.com", Password: "h", CreatedAt: now})
	svc := NewUserService(zap.NewNop(), users)

	_, err := svc.List(context.Background(), domain.Actor{ID: "u"}, domain.NewPage(0, 0, domain.SortDesc))
	expectStatus(t, err, http.StatusForbidden, MsgForbiddenUserList)

	list, err := svc.List(context.Background(), domain.Actor{ID: "a", IsAdmin: true}, domain.NewPage(0, 2, domain.SortDesc))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list.TotalUsers != 3 || list.LastMonthUsers != 2 {
		t.Fatalf("unexpected counts: %+v", list)
	}
	if len(list.Users) != 2 || list.Users[0].Username != "new2" {
		t.Fatalf("unexpected page: %+v", list.Users)
	}
}

func TestUserServiceResolveActor(t *testing.T) {
	users := repotest.NewUsers()
	admin := users.Seed(domain.User{Username: "rootadmin", Email: "root@x.com", IsAdmin: true})
	svc := NewUserService(zap.NewNop(), users)

	byID, err := svc.ResolveActor(context.Background(), Claims{UserID: admin.ID})
	if err != nil || byID.ID != admin.ID || !byID.IsAdmin {
		t.Fatalf("resolve by id: %+v (%v)", byID, err)
	}
	byEmail, err := svc.ResolveActor(context.Background(), Claims{Email: "ROOT@x.com"})
	if err != nil || byEmail.ID != admin.ID {
		t.Fatalf("resolve by email: %+v (%v)", byEmail, err)
	}
	if _, err := svc.ResolveActor(context.Background(), Claims{UserID: "ghost"}); err == nil {
		t.Fatalf("expected error for unknown user")
	}
}

func TestUserServiceGet_NotFound(t *testing.T) {
	svc := NewUserService(zap.NewNop(), repotest.NewUsers())
	_, err := svc.Get(context.Background(), "missing")
	expectStatus(t, err, http.StatusNotFound, MsgUserNotFound)
}
