package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"blog-api/internal/domain"
)

const internalErrorMessage = "Internal Server Error"

// errorMiddleware es el unico lugar que escribe respuestas de error. Los
// handlers registran el error con c.Error y retornan sin escribir.
func errorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		status := domain.StatusOf(err)
		message := internalErrorMessage
		var de *domain.Error
		if errors.As(err, &de) {
			message = de.Message
		}

		fields := []zap.Field{
			zap.Error(err),
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", fields...)
		} else {
			logger.Debug("request rejected", fields...)
		}

		c.JSON(status, gin.H{
			"message":    message,
			"statusCode": status,
		})
	}
}

// recoveryHandler convierte un panic en un error que responde el middleware
// de errores con el formato comun.
func recoveryHandler(logger *zap.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.Stack("stack"),
		)
		abortWithError(c, fmt.Errorf("panic: %v", recovered))
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
