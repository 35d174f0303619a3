package domain

import "time"

const (
	DefaultPostCategory = "uncategorized"
	DefaultPostImage    = "https://www.hostinger.com/tutorials/wp-content/uploads/sites/2/2021/09/how-to-write-a-blog-post.png"
)

type Post struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Category  string    `json:"category"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostUpdate contiene los campos opcionales de una edicion de post.
type PostUpdate struct {
	Title    *string
	Content  *string
	Category *string
	Image    *string
	Slug     *string
}

// PostFilter describe la consulta de GET /api/post/getposts.
type PostFilter struct {
	UserID     string
	Category   string
	Slug       string
	PostID     string
	SearchTerm string
}
