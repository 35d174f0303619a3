package http

import (
	"net/http"
	"testing"

	"blog-api/internal/domain"
	"blog-api/internal/service"
)

func TestCommentLifecycle(t *testing.T) {
	api := newTestAPI(t, "")
	ada := api.seedUser(t, "ada", "ada@x.com", "secret1", false)
	bob := api.seedUser(t, "bob", "bob@x.com", "secret1", false)
	post := api.posts.Seed(domain.Post{Title: "T", Content: "c", Slug: "t"})
	adaToken := api.tokenFor(t, ada)
	bobToken := api.tokenFor(t, bob)

	rec := api.do(t, http.MethodPost, "/api/comment/create",
		map[string]string{"content": "nice", "postId": post.ID, "userId": bob.ID}, adaToken)
	expectError(t, rec, http.StatusForbidden, service.MsgForbiddenCommentCreate)

	rec = api.do(t, http.MethodPost, "/api/comment/create",
		map[string]string{"content": "nice", "postId": post.ID, "userId": ada.ID}, adaToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var comment domain.Comment
	decodeBody(t, rec, &comment)

	rec = api.do(t, http.MethodGet, "/api/comment/getPostComments/"+post.ID, nil, "")
	var listed []domain.Comment
	decodeBody(t, rec, &listed)
	if len(listed) != 1 || listed[0].ID != comment.ID {
		t.Fatalf("unexpected comments: %+v", listed)
	}

	rec = api.do(t, http.MethodPut, "/api/comment/likeComment/"+comment.ID, nil, bobToken)
	decodeBody(t, rec, &comment)
	if comment.NumberOfLikes != 1 || len(comment.Likes) != 1 || comment.Likes[0] != bob.ID {
		t.Fatalf("expected one like by bob, got %+v", comment)
	}
	rec = api.do(t, http.MethodPut, "/api/comment/likeComment/"+comment.ID, nil, bobToken)
	decodeBody(t, rec, &comment)
	if comment.NumberOfLikes != 0 {
		t.Fatalf("second like should toggle off, got %+v", comment)
	}

	rec = api.do(t, http.MethodPut, "/api/comment/editComment/"+comment.ID,
		map[string]string{"content": "hijack"}, bobToken)
	expectError(t, rec, http.StatusForbidden, service.MsgForbiddenCommentEdit)

	rec = api.do(t, http.MethodPut, "/api/comment/editComment/"+comment.ID,
		map[string]string{"content": "very nice"}, adaToken)
	decodeBody(t, rec, &comment)
	if comment.Content != "very nice" {
		t.Fatalf("edit: unexpected comment %+v", comment)
	}

	rec = api.do(t, http.MethodDelete, "/api/comment/deleteComment/"+comment.ID, nil, bobToken)
	expectError(t, rec, http.StatusForbidden, service.MsgForbiddenCommentDelete)

	rec = api.do(t, http.MethodDelete, "/api/comment/deleteComment/"+comment.ID, nil, adaToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = api.do(t, http.MethodPut, "/api/comment/likeComment/"+comment.ID, nil, bobToken)
	expectError(t, rec, http.StatusNotFound, service.MsgCommentNotFound)
}

func TestGetComments_AdminOnly(t *testing.T) {
	api := newTestAPI(t, "")
	ada := api.seedUser(t, "ada", "ada@x.com", "secret1", false)
	admin := api.seedUser(t, "root", "root@x.com", "secret1", true)
	api.comments.Seed(domain.Comment{Content: "a", PostID: "p1", UserID: ada.ID})
	api.comments.Seed(domain.Comment{Content: "b", PostID: "p1", UserID: ada.ID})

	rec := api.do(t, http.MethodGet, "/api/comment/getcomments", nil, api.tokenFor(t, ada))
	expectError(t, rec, http.StatusForbidden, service.MsgForbiddenCommentList)

	rec = api.do(t, http.MethodGet, "/api/comment/getcomments?limit=1", nil, api.tokenFor(t, admin))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var list service.CommentList
	decodeBody(t, rec, &list)
	if list.TotalComments != 2 || len(list.Comments) != 1 {
		t.Fatalf("unexpected list: %+v", list)
	}
}
