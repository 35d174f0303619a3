package http

import (
	"context"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blog-api/internal/domain"
)

const msgRouteNotFound = "Not found"

// RouterConfig agrupa lo que el router necesita ademas de los handlers.
type RouterConfig struct {
	// StaticDir es la carpeta del cliente compilado. Vacio desactiva el fallback SPA.
	StaticDir string
	// Session protege las rutas autenticadas.
	Session gin.HandlerFunc
	// HealthCheck verifica el store para GET /healthz.
	HealthCheck func(ctx context.Context) error
}

// NewRouter configura el router de Gin con middlewares y rutas de la API.
func NewRouter(
	logger *zap.Logger,
	cfg RouterConfig,
	authH *AuthHandler,
	userH *UserHandler,
	postH *PostHandler,
	commentH *CommentHandler,
) *gin.Engine {
	r := gin.New()

	// El middleware de errores va antes que recovery para ver el error que deja el panic.
	r.Use(
		zapLoggerMiddleware(logger),
		errorMiddleware(logger),
		gin.CustomRecovery(recoveryHandler(logger)),
		securityHeadersMiddleware(),
	)

	r.GET("/healthz", healthHandler(cfg.HealthCheck))

	session := cfg.Session

	users := r.Group("/api/user")
	users.PUT("/update/:userId", session, userH.UpdateUser)
	users.DELETE("/delete/:userId", session, userH.DeleteUser)
	users.POST("/signout", authH.Signout)
	users.GET("/getusers", session, userH.GetUsers)
	users.GET("/:userId", userH.GetUser)

	auth := r.Group("/api/auth")
	auth.POST("/signup", authH.Signup)
	auth.POST("/signin", authH.Signin)
	auth.POST("/google", authH.Google)
	auth.POST("/signout", authH.Signout)

	posts := r.Group("/api/post")
	posts.POST("/create", session, postH.CreatePost)
	posts.GET("/getposts", postH.GetPosts)
	posts.DELETE("/deletepost/:postId/:userId", session, postH.DeletePost)
	posts.PUT("/updatepost/:postId/:userId", session, postH.UpdatePost)

	comments := r.Group("/api/comment")
	comments.POST("/create", session, commentH.CreateComment)
	comments.GET("/getPostComments/:postId", commentH.GetPostComments)
	comments.PUT("/likeComment/:commentId", session, commentH.LikeComment)
	comments.PUT("/editComment/:commentId", session, commentH.EditComment)
	comments.DELETE("/deleteComment/:commentId", session, commentH.DeleteComment)
	comments.GET("/getcomments", session, commentH.GetComments)

	r.NoRoute(spaFallback(cfg.StaticDir))

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// securityHeadersMiddleware aplica el mismo set de cabeceras que helmet por defecto.
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Content-Security-Policy", "default-src 'self';base-uri 'self';font-src 'self' https: data:;form-action 'self';frame-ancestors 'self';img-src 'self' data: https:;object-src 'none';script-src 'self';script-src-attr 'none';style-src 'self' https: 'unsafe-inline';upgrade-insecure-requests")
		h.Set("Cross-Origin-Opener-Policy", "same-origin")
		h.Set("Cross-Origin-Resource-Policy", "same-origin")
		h.Set("Origin-Agent-Cluster", "?1")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Set("X-Download-Options", "noopen")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-Permitted-Cross-Domain-Policies", "none")
		h.Set("X-XSS-Protection", "0")
		c.Next()
	}
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// spaFallback sirve archivos del cliente y, si no existen, index.html.
// Las rutas /api y los metodos distintos de GET/HEAD responden 404 JSON.
func spaFallback(staticDir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		reqPath := c.Request.URL.Path
		if staticDir == "" || (method != http.MethodGet && method != http.MethodHead) ||
			reqPath == "/api" || strings.HasPrefix(reqPath, "/api/") {
			abortWithError(c, domain.NotFound(msgRouteNotFound))
			return
		}

		// path.Clean sobre una ruta absoluta elimina cualquier "..".
		clean := path.Clean("/" + reqPath)
		candidate := filepath.Join(staticDir, filepath.FromSlash(clean))
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			c.File(candidate)
			return
		}

		index := filepath.Join(staticDir, "index.html")
		if _, err := os.Stat(index); err != nil {
			abortWithError(c, domain.NotFound(msgRouteNotFound))
			return
		}
		c.File(index)
	}
}
