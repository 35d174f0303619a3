package domain

import "time"

// DefaultProfilePicture se asigna a usuarios creados sin foto propia.
const DefaultProfilePicture = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_1280.png"

// User es el registro completo tal como lo guarda el store, incluido el hash.
type User struct {
	ID             string    `json:"_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"password"`
	ProfilePicture string    `json:"profilePicture"`
	IsAdmin        bool      `json:"isAdmin"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// PublicUser es la vista de User que se puede devolver al cliente.
// No tiene campo de password.
type PublicUser struct {
	ID             string    `json:"_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture"`
	IsAdmin        bool      `json:"isAdmin"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Public proyecta el usuario a su vista publica.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		ProfilePicture: u.ProfilePicture,
		IsAdmin:        u.IsAdmin,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// PublicUsers proyecta una lista de usuarios.
func PublicUsers(users []User) []PublicUser {
	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out
}

// UserUpdate contiene los campos opcionales de una actualizacion de perfil.
// Un puntero nil significa "sin cambios".
type UserUpdate struct {
	Username       *string
	Email          *string
	PasswordHash   *string
	ProfilePicture *string
}

// Actor es el usuario autenticado que origina una operacion.
type Actor struct {
	ID      string
	IsAdmin bool
}
