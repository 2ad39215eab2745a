package controller

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gridpoint/console/internal/auth/handler"
	"github.com/gridpoint/console/pkg/api"
	"github.com/rs/zerolog/log"
)

type Auth interface {
	Register(ctx *gin.Context)
	Login(ctx *gin.Context)
	Logout(ctx *gin.Context)
	GetAllUsers(ctx *gin.Context)
	UpdateUserAccessAndRole(ctx *gin.Context)
}

var (
	auth Auth
	once sync.Once
)

type AuthController struct {
	Authenticator handler.Authenticator
}

func NewController() Auth {
	if auth == nil {
		once.Do(func() {
			auth = &AuthController{
				Authenticator: handler.NewAuthenticator(1),
			}
		})
	}
	return auth
}

func (a *AuthController) Register(ctx *gin.Context) {
	var request handler.User
	if err := ctx.BindJSON(&request); err != nil {
		log.Error().Err(err).Msg("Error in binding request body")
		_ = ctx.Error(api.NewBadRequestError(err.Error()))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Authenticator.Register(&request); err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User Registered Successfully"})
}

func (a *AuthController) Login(ctx *gin.Context) {
	var request handler.Login
	if err := ctx.BindJSON(&request); err != nil {
		log.Error().Err(err).Msg("Error in binding request body")
		_ = ctx.Error(api.NewBadRequestError(err.Error()))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := a.Authenticator.Login(&request)
	if err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, token)
}

func (a *AuthController) Logout(ctx *gin.Context) {
	token := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
	if err := a.Authenticator.Logout(token); err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User Logged out successfully"})
}

func (a *AuthController) GetAllUsers(ctx *gin.Context) {
	if err := requireAdmin(ctx); err != nil {
		return
	}
	users, err := a.Authenticator.GetAllUsers()
	if err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, users)
}

func (a *AuthController) UpdateUserAccessAndRole(ctx *gin.Context) {
	var request handler.UpdateUserAccessAndRole
	if err := ctx.BindJSON(&request); err != nil {
		log.Error().Err(err).Msg("Error in binding request body")
		_ = ctx.Error(api.NewBadRequestError(err.Error()))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := requireAdmin(ctx); err != nil {
		return
	}
	if request.Role != "admin" && request.Role != "user" {
		err := errors.New("invalid role")
		_ = ctx.Error(err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := a.Authenticator.UpdateUserAccessAndRole(request.Email, request.IsActive, request.Role); err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "User info updated successfully"})
}

// requireAdmin relies on the auth middleware having stored the caller's
// claims in the request context.
func requireAdmin(ctx *gin.Context) error {
	if ctx.GetString("role") == "admin" {
		return nil
	}
	err := errors.New("not authorized to process request")
	_ = ctx.Error(err)
	ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	return err
}
