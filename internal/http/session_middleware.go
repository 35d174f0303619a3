package http

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
	"blog-api/internal/service"
)

const (
	actorKey        = "auth_actor"
	msgUnauthorized = "Unauthorized"
)

// ActorResolver obtiene el usuario de una sesion a partir de sus claims.
type ActorResolver interface {
	ResolveActor(ctx context.Context, claims service.Claims) (domain.Actor, error)
}

// SessionMiddleware valida la cookie de sesion y guarda el actor en el contexto.
// Acepta tokens {id} y {email}.
func SessionMiddleware(tokens *service.JWTService, resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			abortWithError(c, domain.Authentication(msgUnauthorized))
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			abortWithError(c, domain.Authentication(msgUnauthorized))
			return
		}

		actor, err := resolver.ResolveActor(c.Request.Context(), claims)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				abortWithError(c, domain.Authentication(msgUnauthorized))
				return
			}
			abortWithError(c, err)
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// GetActor obtiene el actor autenticado desde el contexto.
func GetActor(c *gin.Context) (domain.Actor, bool) {
	val, ok := c.Get(actorKey)
	if !ok {
		return domain.Actor{}, false
	}
	actor, ok := val.(domain.Actor)
	return actor, ok
}

// mustActor se usa en handlers montados detras de SessionMiddleware.
func mustActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := GetActor(c)
	if !ok {
		abortWithError(c, domain.Authentication(msgUnauthorized))
	}
	return actor, ok
}
