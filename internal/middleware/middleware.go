package middleware

import (
	"net/http"
	"strings"
	"sync"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gridpoint/console/internal/auth/handler"
	"github.com/gridpoint/console/internal/repositories/sql/token"
	"github.com/gridpoint/console/pkg/infra"
	"github.com/rs/zerolog/log"
)

var (
	middlewareOnce sync.Once
	middleware     Middleware
)

// openPaths are served without a session token.
var openPaths = []string{"/login", "/register", "/health", "/agent"}

type Middleware interface {
	GetMiddleWares() []gin.HandlerFunc
}

type MiddlewareHandler struct {
	tokenRepo token.Repository
}

func NewMiddleware() Middleware {
	middlewareOnce.Do(func() {
		connection, _ := infra.SQL.GetConnection()
		sqlConn := connection.(*infra.SQLConnection)
		tokenRepo, err := token.NewRepository(sqlConn)
		if err != nil {
			log.Error().Msgf("Error in creating token repository: %v", err)
		}

		middleware = &MiddlewareHandler{
			tokenRepo: tokenRepo,
		}
	})
	return middleware
}

func (m *MiddlewareHandler) GetMiddleWares() []gin.HandlerFunc {
	var middlewares []gin.HandlerFunc
	middlewares = append(middlewares, m.Cors()...)
	middlewares = append(middlewares, m.AuthMiddleware())

	return middlewares
}

func (m *MiddlewareHandler) Cors() []gin.HandlerFunc {
	var middlewares []gin.HandlerFunc
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true

	middlewares = append(middlewares, cors.New(corsConfig))
	return middlewares
}

// AuthMiddleware checks for a valid session token except on open routes.
func (m *MiddlewareHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, path := range openPaths {
			if c.Request.URL.Path == path {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortUnauthorized(c, "Authorization token must be Bearer <token>")
			return
		}

		valid, err := m.tokenRepo.IsTokenValid(tokenString)
		if err != nil || !valid {
			abortUnauthorized(c, "Invalid token")
			return
		}

		claims := &handler.Claims{}
		jwtToken, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return handler.JwtKey(), nil
		})
		if err != nil || !jwtToken.Valid {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, reason string) {
	log.Error().
		Str("reason", reason).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Msg("unauthorized request blocked by auth middleware")
	c.JSON(http.StatusUnauthorized, gin.H{"error": reason})
	c.Abort()
}
