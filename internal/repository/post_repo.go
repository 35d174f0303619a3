package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-api/internal/domain"
)

// PostRepository define el contrato de persistencia para posts.
type PostRepository interface {
	Create(ctx context.Context, post domain.Post) (domain.Post, error)
	GetByID(ctx context.Context, id string) (domain.Post, error)
	Update(ctx context.Context, id string, upd domain.PostUpdate) (domain.Post, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter domain.PostFilter, page domain.Page) ([]domain.Post, error)
	Count(ctx context.Context, filter domain.PostFilter, since time.Time) (int64, error)
}

// PgPostRepository implementa PostRepository usando pgxpool.
type PgPostRepository struct {
	pool *pgxpool.Pool
}

func NewPgPostRepository(pool *pgxpool.Pool) *PgPostRepository {
	return &PgPostRepository{pool: pool}
}

const pgPostColumns = `id, user_id, title, content, image, category, slug, created_at, updated_at`

func (r *PgPostRepository) Create(ctx context.Context, post domain.Post) (domain.Post, error) {
	const query = `
		INSERT INTO posts (id, user_id, title, content, image, category, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	now := time.Now().UTC()
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.CreatedAt = now
	post.UpdatedAt = now
	_, err := r.pool.Exec(ctx, query,
		post.ID,
		post.UserID,
		post.Title,
		post.Content,
		post.Image,
		post.Category,
		post.Slug,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return domain.Post{}, mapPgError(err)
	}
	return post, nil
}

func (r *PgPostRepository) GetByID(ctx context.Context, id string) (domain.Post, error) {
	query := `SELECT ` + pgPostColumns + ` FROM posts WHERE id = $1`
	return scanPgPost(r.pool.QueryRow(ctx, query, id))
}

func (r *PgPostRepository) Update(ctx context.Context, id string, upd domain.PostUpdate) (domain.Post, error) {
	sets := []string{"updated_at = $1"}
	args := []any{time.Now().UTC()}
	add := func(column string, value *string) {
		if value == nil {
			return
		}
		args = append(args, *value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	add("title", upd.Title)
	add("content", upd.Content)
	add("category", upd.Category)
	add("image", upd.Image)
	add("slug", upd.Slug)

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), pgPostColumns)
	return scanPgPost(r.pool.QueryRow(ctx, query, args...))
}

func (r *PgPostRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgPostRepository) List(ctx context.Context, filter domain.PostFilter, page domain.Page) ([]domain.Post, error) {
	where, args := pgPostWhere(filter, time.Time{})
	args = append(args, page.StartIndex, page.Limit)
	query := fmt.Sprintf(`SELECT %s FROM posts%s ORDER BY updated_at %s OFFSET $%d LIMIT $%d`,
		pgPostColumns, where, sqlDirection(page.Order), len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPgPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *PgPostRepository) Count(ctx context.Context, filter domain.PostFilter, since time.Time) (int64, error) {
	where, args := pgPostWhere(filter, since)
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM posts`+where, args...).Scan(&n)
	return n, err
}

// pgPostWhere arma la clausula WHERE (con espacio inicial) y sus argumentos.
func pgPostWhere(filter domain.PostFilter, since time.Time) (string, []any) {
	var conds []string
	var args []any
	eq := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conds = append(conds, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	eq("user_id", filter.UserID)
	eq("category", filter.Category)
	eq("slug", filter.Slug)
	eq("id", filter.PostID)
	if filter.SearchTerm != "" {
		args = append(args, "%"+escapeLike(filter.SearchTerm)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", n, n))
	}
	if !since.IsZero() {
		args = append(args, since)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func scanPgPost(row pgx.Row) (domain.Post, error) {
	var p domain.Post
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Title,
		&p.Content,
		&p.Image,
		&p.Category,
		&p.Slug,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.Post{}, mapPgError(err)
	}
	return p, nil
}
