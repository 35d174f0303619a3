package domain

import "time"

type Comment struct {
	ID            string    `json:"_id"`
	Content       string    `json:"content"`
	PostID        string    `json:"postId"`
	UserID        string    `json:"userId"`
	Likes         []string  `json:"likes"`
	NumberOfLikes int       `json:"numberOfLikes"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ToggleLike agrega o quita userID de los likes y mantiene el contador
// alineado con la lista.
func (c *Comment) ToggleLike(userID string) {
	likes := make([]string, 0, len(c.Likes)+1)
	removed := false
	for _, id := range c.Likes {
		if id == userID {
			removed = true
			continue
		}
		likes = append(likes, id)
	}
	if !removed {
		likes = append(likes, userID)
	}
	c.Likes = likes
	c.NumberOfLikes = len(likes)
}
