package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookieName es la cookie que transporta el JWT de sesion.
const SessionCookieName = "access_token"

// sessionCookie arma la cookie con los atributos comunes; set y clear deben
// usar exactamente los mismos para que el navegador la reemplace.
func sessionCookie(value string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func setSessionCookie(c *gin.Context, token string, secure bool) {
	http.SetCookie(c.Writer, sessionCookie(token, secure))
}

func clearSessionCookie(c *gin.Context, secure bool) {
	cookie := sessionCookie("", secure)
	cookie.MaxAge = -1
	cookie.Expires = time.Unix(0, 0)
	http.SetCookie(c.Writer, cookie)
}
