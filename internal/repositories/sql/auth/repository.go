package auth

import (
	"errors"

	"github.com/gridpoint/console/pkg/infra"
	"gorm.io/gorm"
)

type Repository interface {
	GetAllUsers() ([]User, error)
	GetUserByEmail(email string) (*User, error)
	CreateUser(user *User) (uint, error)
	UpdateUserAccessAndRole(email string, isActive bool, role string) error
}

type Auth struct {
	db     *gorm.DB
	dbName string
}

func NewRepository(connection *infra.SQLConnection) (Repository, error) {
	if connection == nil {
		return nil, errors.New("connection cannot be nil")
	}

	session, err := connection.GetConn()
	if err != nil {
		return nil, err
	}
	meta, err := connection.GetMeta()
	if err != nil {
		return nil, err
	}
	dbName := meta["db_name"].(string)

	return &Auth{
		db:     session.(*gorm.DB),
		dbName: dbName,
	}, nil
}

// GetAllUsers retrieves all registered users.
func (auth *Auth) GetAllUsers() ([]User, error) {
	var users []User
	result := auth.db.Find(&users)
	return users, result.Error
}

// GetUserByEmail retrieves a user by email address.
func (auth *Auth) GetUserByEmail(email string) (*User, error) {
	var user User
	result := auth.db.Where("email = ?", email).First(&user)
	return &user, result.Error
}

// CreateUser adds a new user.
func (auth *Auth) CreateUser(user *User) (uint, error) {
	result := auth.db.Create(user)
	if result.Error != nil {
		return 0, result.Error
	}
	return user.ID, nil
}

// UpdateUserAccessAndRole toggles a user's active flag and, if it changed,
// their role.
func (auth *Auth) UpdateUserAccessAndRole(email string, isActive bool, role string) error {
	var user User
	request := auth.db.Where("email = ?", email).First(&user)
	if request.Error != nil {
		return request.Error
	}
	var result *gorm.DB
	if user.Role != role {
		result = auth.db.Model(&User{}).Where("email = ?", email).Update("is_active", isActive).Update("role", role)
	} else {
		result = auth.db.Model(&User{}).Where("email = ?", email).Update("is_active", isActive)
	}
	return result.Error
}
