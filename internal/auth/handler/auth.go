package handler

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gridpoint/console/internal/repositories/sql/auth"
	"github.com/gridpoint/console/internal/repositories/sql/token"
	"github.com/gridpoint/console/pkg/infra"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	authRepo  auth.Repository
	tokenRepo token.Repository
}

func InitAuthHandler() Authenticator {
	if authenticator == nil {
		authOnce.Do(func() {
			connection, _ := infra.SQL.GetConnection()
			sqlConn := connection.(*infra.SQLConnection)
			authRepo, err := auth.NewRepository(sqlConn)
			if err != nil {
				log.Error().Msg("Error in creating auth repository")
			}
			tokenRepo, err := token.NewRepository(sqlConn)
			if err != nil {
				log.Error().Msg("Error in creating token repository")
			}
			authenticator = &AuthHandler{
				authRepo:  authRepo,
				tokenRepo: tokenRepo,
			}
		})
	}
	return authenticator
}

// validatePassword enforces the registration password rules.
func (a *AuthHandler) validatePassword(password string) error {
	var failedRules []string

	if len(password) < 8 {
		failedRules = append(failedRules, "At least 8 characters")
	}
	if matched, _ := regexp.MatchString(`[A-Z]`, password); !matched {
		failedRules = append(failedRules, "One uppercase letter (A-Z)")
	}
	if matched, _ := regexp.MatchString(`[a-z]`, password); !matched {
		failedRules = append(failedRules, "One lowercase letter (a-z)")
	}
	if matched, _ := regexp.MatchString(`\d`, password); !matched {
		failedRules = append(failedRules, "One number (0-9)")
	}
	if matched, _ := regexp.MatchString(`[!@#$%^&*()_+\-=[\]{};':"\\|,.<>/?]`, password); !matched {
		failedRules = append(failedRules, "One special character (!@#$%^&*...)")
	}
	if strings.Contains(password, " ") {
		failedRules = append(failedRules, "No spaces allowed")
	}

	if len(failedRules) > 0 {
		return fmt.Errorf("password validation failed: %s", strings.Join(failedRules, ", "))
	}
	return nil
}

func (a *AuthHandler) Register(user *User) error {
	if err := a.validatePassword(user.Password); err != nil {
		log.Error().Msgf("Password validation failed: %v", err)
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Msgf("Failed to hash password: %v", err)
		return err
	}

	authUser := auth.User{
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		PasswordHash: string(hashedPassword),
		Role:         "user",
	}

	_, err = a.authRepo.CreateUser(&authUser)
	if err != nil {
		log.Error().Msgf("Failed to register user: %v", err)
		return err
	}

	log.Info().Msgf("User %s registered successfully", user.Email)
	return nil
}

func (a *AuthHandler) Login(user *Login) (*LoginResponse, error) {
	authUser, err := a.authRepo.GetUserByEmail(user.Email)
	if err != nil {
		log.Error().Msgf("User not found with email: %s", user.Email)
		return nil, fmt.Errorf("invalid email or password")
	}

	err = bcrypt.CompareHashAndPassword([]byte(authUser.PasswordHash), []byte(user.Password))
	if err != nil {
		log.Error().Msg("Password mismatch")
		return nil, fmt.Errorf("invalid email or password")
	}
	if !authUser.IsActive {
		log.Error().Msgf("User %s is not active", authUser.Email)
		return nil, fmt.Errorf("user is not active, contact an admin to activate the account")
	}

	expirationTime := time.Now().Add(tokenTTL)
	claims := &Claims{
		Email: authUser.Email,
		Role:  authUser.Role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expirationTime.Unix(),
		},
	}
	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := jwtToken.SignedString(jwtKey)
	if err != nil {
		log.Error().Msgf("Failed to generate JWT token: %v", err)
		return nil, fmt.Errorf("failed to generate token")
	}
	if err := a.tokenRepo.SaveToken(authUser.Email, tokenString, expirationTime); err != nil {
		log.Error().Msgf("Failed to save token: %v", err)
		return nil, fmt.Errorf("failed to save token")
	}

	log.Info().Msgf("User %s logged in successfully", authUser.Email)
	return &LoginResponse{
		Email: authUser.Email,
		Role:  authUser.Role,
		Token: tokenString,
	}, nil
}

func (a *AuthHandler) Logout(token string) error {
	err := a.tokenRepo.InvalidateToken(token)
	if err != nil {
		log.Error().Msgf("Failed to invalidate token: %v", err)
	}
	return err
}

func (a *AuthHandler) GetAllUsers() ([]UserListingResponse, error) {
	users, err := a.authRepo.GetAllUsers()
	if err != nil {
		log.Error().Msg("Error retrieving users")
		return nil, err
	}
	userListingResponse := make([]UserListingResponse, len(users))
	for i, user := range users {
		userListingResponse[i] = UserListingResponse{
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Email:     user.Email,
			IsActive:  user.IsActive,
			Role:      user.Role,
		}
	}
	return userListingResponse, nil
}

func (a *AuthHandler) UpdateUserAccessAndRole(email string, isActive bool, role string) error {
	err := a.authRepo.UpdateUserAccessAndRole(email, isActive, role)
	if err != nil {
		log.Error().Msg("Error toggling user access")
		return err
	}
	return nil
}
