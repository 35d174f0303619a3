// Package repotest tiene implementaciones en memoria de los repositorios
// para tests de servicios y handlers.
package repotest

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

type sequence struct {
	mu sync.Mutex
	n  int
}

func (s *sequence) next(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return prefix + strconv.Itoa(s.n)
}

// Users es un UserRepository en memoria con indices unicos de email y username.
type Users struct {
	mu      sync.Mutex
	seq     sequence
	byID    map[string]domain.User
	Creates int
	// Err, si no es nil, lo devuelven todas las operaciones.
	Err error
}

func NewUsers() *Users {
	return &Users{byID: make(map[string]domain.User)}
}

// Seed guarda u tal cual, asignando id si falta.
func (r *Users) Seed(u domain.User) domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		u.ID = r.seq.next("user-")
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
		u.UpdatedAt = u.CreatedAt
	}
	r.byID[u.ID] = u
	return u
}

func (r *Users) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *Users) Create(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return domain.User{}, r.Err
	}
	for _, u := range r.byID {
		if u.Email == user.Email || u.Username == user.Username {
			return domain.User{}, repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	user.ID = r.seq.next("user-")
	user.CreatedAt = now
	user.UpdatedAt = now
	r.byID[user.ID] = user
	r.Creates++
	return user, nil
}

func (r *Users) GetByID(_ context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return domain.User{}, r.Err
	}
	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return domain.User{}, r.Err
	}
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, repository.ErrNotFound
}

func (r *Users) Update(_ context.Context, id string, upd domain.UserUpdate) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return domain.User{}, r.Err
	}
	u, ok := r.byID[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	for otherID, other := range r.byID {
		if otherID == id {
			continue
		}
		if (upd.Email != nil && other.Email == *upd.Email) || (upd.Username != nil && other.Username == *upd.Username) {
			return domain.User{}, repository.ErrDuplicate
		}
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.PasswordHash != nil {
		u.Password = *upd.PasswordHash
	}
	if upd.ProfilePicture != nil {
		u.ProfilePicture = *upd.ProfilePicture
	}
	u.UpdatedAt = time.Now().UTC()
	r.byID[id] = u
	return u, nil
}

func (r *Users) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Users) List(_ context.Context, page domain.Page) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	users := make([]domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		return less(users[i].CreatedAt, users[j].CreatedAt, users[i].ID, users[j].ID, page.Order)
	})
	return paginate(users, page), nil
}

func (r *Users) Count(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for _, u := range r.byID {
		if !u.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

// Posts es un PostRepository en memoria con title y slug unicos.
type Posts struct {
	mu   sync.Mutex
	seq  sequence
	byID map[string]domain.Post
	Err  error
}

func NewPosts() *Posts {
	return &Posts{byID: make(map[string]domain.Post)}
}

func (r *Posts) Seed(p domain.Post) domain.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = r.seq.next("post-")
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	r.byID[p.ID] = p
	return p
}

func (r *Posts) Create(_ context.Context, post domain.Post) (domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return domain.Post{}, r.Err
	}
	for _, p := range r.byID {
		if p.Title == post.Title || p.Slug == post.Slug {
			return domain.Post{}, repository.ErrDuplicate
		}
	}
	now := time.Now().UTC()
	post.ID = r.seq.next("post-")
	post.CreatedAt = now
	post.UpdatedAt = now
	r.byID[post.ID] = post
	return post, nil
}

func (r *Posts) GetByID(_ context.Context, id string) (domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return domain.Post{}, r.Err
	}
	p, ok := r.byID[id]
	if !ok {
		return domain.Post{}, repository.ErrNotFound
	}
	return p, nil
}

func (r *Posts) Update(_ context.Context, id string, upd domain.PostUpdate) (domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return domain.Post{}, r.Err
	}
	p, ok := r.byID[id]
	if !ok {
		return domain.Post{}, repository.ErrNotFound
	}
	for otherID, other := range r.byID {
		if otherID == id {
			continue
		}
		if (upd.Title != nil && other.Title == *upd.Title) || (upd.Slug != nil && other.Slug == *upd.Slug) {
			return domain.Post{}, repository.ErrDuplicate
		}
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Title, upd.Title)
	set(&p.Content, upd.Content)
	set(&p.Category, upd.Category)
	set(&p.Image, upd.Image)
	set(&p.Slug, upd.Slug)
	p.UpdatedAt = time.Now().UTC()
	r.byID[id] = p
	return p, nil
}

func (r *Posts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Posts) List(_ context.Context, filter domain.PostFilter, page domain.Page) ([]domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	posts := r.match(filter, time.Time{})
	sort.Slice(posts, func(i, j int) bool {
		return less(posts[i].UpdatedAt, posts[j].UpdatedAt, posts[i].ID, posts[j].ID, page.Order)
	})
	return paginate(posts, page), nil
}

func (r *Posts) Count(_ context.Context, filter domain.PostFilter, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return int64(len(r.match(filter, since))), nil
}

func (r *Posts) match(f domain.PostFilter, since time.Time) []domain.Post {
	term := strings.ToLower(f.SearchTerm)
	var out []domain.Post
	for _, p := range r.byID {
		switch {
		case f.UserID != "" && p.UserID != f.UserID,
			f.Category != "" && p.Category != f.Category,
			f.Slug != "" && p.Slug != f.Slug,
			f.PostID != "" && p.ID != f.PostID,
			term != "" && !strings.Contains(strings.ToLower(p.Title), term) && !strings.Contains(strings.ToLower(p.Content), term),
			p.CreatedAt.Before(since):
			continue
		}
		out = append(out, p)
	}
	return out
}

// Comments es un CommentRepository en memoria.
type Comments struct {
	mu   sync.Mutex
	seq  sequence
	byID map[string]domain.Comment
	Err  error
}

func NewComments() *Comments {
	return &Comments{byID: make(map[string]domain.Comment)}
}

func (r *Comments) Seed(c domain.Comment) domain.Comment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = r.seq.next("comment-")
	}
	if c.Likes == nil {
		c.Likes = []string{}
	}
	c.NumberOfLikes = len(c.Likes)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
		c.UpdatedAt = c.CreatedAt
	}
	r.byID[c.ID] = c
	return copyComment(c)
}

func (r *Comments) Create(_ context.Context, comment domain.Comment) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return domain.Comment{}, r.Err
	}
	now := time.Now().UTC()
	comment.ID = r.seq.next("comment-")
	if comment.Likes == nil {
		comment.Likes = []string{}
	}
	comment.NumberOfLikes = len(comment.Likes)
	comment.CreatedAt = now
	comment.UpdatedAt = now
	r.byID[comment.ID] = copyComment(comment)
	return comment, nil
}

func (r *Comments) GetByID(_ context.Context, id string) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return domain.Comment{}, r.Err
	}
	c, ok := r.byID[id]
	if !ok {
		return domain.Comment{}, repository.ErrNotFound
	}
	return copyComment(c), nil
}

func (r *Comments) ListByPost(_ context.Context, postID string) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := []domain.Comment{}
	for _, c := range r.byID {
		if c.PostID == postID {
			out = append(out, copyComment(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return less(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID, domain.SortDesc)
	})
	return out, nil
}

func (r *Comments) Save(_ context.Context, comment domain.Comment) (domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return domain.Comment{}, r.Err
	}
	stored, ok := r.byID[comment.ID]
	if !ok {
		return domain.Comment{}, repository.ErrNotFound
	}
	stored.Content = comment.Content
	stored.Likes = append([]string{}, comment.Likes...)
	stored.NumberOfLikes = len(stored.Likes)
	stored.UpdatedAt = time.Now().UTC()
	r.byID[comment.ID] = stored
	return copyComment(stored), nil
}

func (r *Comments) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *Comments) List(_ context.Context, page domain.Page) ([]domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]domain.Comment, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, copyComment(c))
	}
	sort.Slice(out, func(i, j int) bool {
		return less(out[i].CreatedAt, out[j].CreatedAt, out[i].ID, out[j].ID, page.Order)
	})
	return paginate(out, page), nil
}

func (r *Comments) Count(_ context.Context, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	var n int64
	for _, c := range r.byID {
		if !c.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func copyComment(c domain.Comment) domain.Comment {
	c.Likes = append([]string{}, c.Likes...)
	return c
}

// less ordena por tiempo y desempata por id para que el orden sea estable.
func less(a, b time.Time, idA, idB string, order domain.SortOrder) bool {
	if a.Equal(b) {
		if order == domain.SortAsc {
			return idA < idB
		}
		return idA > idB
	}
	if order == domain.SortAsc {
		return a.Before(b)
	}
	return a.After(b)
}

func paginate[T any](items []T, page domain.Page) []T {
	if page.StartIndex >= len(items) {
		return []T{}
	}
	end := len(items)
	if page.Limit > 0 && page.StartIndex+page.Limit < end {
		end = page.StartIndex + page.Limit
	}
	return items[page.StartIndex:end]
}

var (
	_ repository.UserRepository    = (*Users)(nil)
	_ repository.PostRepository    = (*Posts)(nil)
	_ repository.CommentRepository = (*Comments)(nil)
)
