package handler

import (
	"sync"
	"time"

	"github.com/gridpoint/console/internal/configs"
)

var (
	authOnce      sync.Once
	authenticator Authenticator

	jwtKey   []byte
	tokenTTL = 24 * time.Hour
)

// Init wires the signing secret and token lifetime from configuration.
// Must run before the first NewAuthenticator call.
func Init(config configs.Configs) {
	jwtKey = []byte(config.JwtSecret)
	if config.TokenTTLHours > 0 {
		tokenTTL = time.Duration(config.TokenTTLHours) * time.Hour
	}
}

// JwtKey returns the session token signing secret.
func JwtKey() []byte {
	return jwtKey
}

type Authenticator interface {
	Register(user *User) error
	Login(user *Login) (*LoginResponse, error)
	Logout(token string) error
	GetAllUsers() ([]UserListingResponse, error)
	UpdateUserAccessAndRole(email string, isActive bool, role string) error
}
