package metadata

import (
	"errors"

	"github.com/gridpoint/console/pkg/infra"
	"gorm.io/gorm"
)

type Repository interface {
	GetAll(userEmail string) ([]Metadata, error)
	GetByName(userEmail, name string) (*Metadata, error)
	Create(meta *Metadata) (uint, error)
	Update(meta *Metadata) error
	Delete(userEmail, name string) error
}

type Records struct {
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

	return &Records{
		db:     session.(*gorm.DB),
		dbName: dbName,
	}, nil
}

// GetAll retrieves every metadata record owned by a user.
func (r *Records) GetAll(userEmail string) ([]Metadata, error) {
	var records []Metadata
	result := r.db.Where("user_email = ?", userEmail).Order("id").Find(&records)
	return records, result.Error
}

// GetByName retrieves one metadata record by its owner and name.
func (r *Records) GetByName(userEmail, name string) (*Metadata, error) {
	var record Metadata
	result := r.db.Where("user_email = ? AND name = ?", userEmail, name).First(&record)
	return &record, result.Error
}

// Create adds a new metadata record.
func (r *Records) Create(meta *Metadata) (uint, error) {
	result := r.db.Create(meta)
	if result.Error != nil {
		return 0, result.Error
	}
	return meta.ID, nil
}

// Update replaces an existing metadata record.
func (r *Records) Update(meta *Metadata) error {
	result := r.db.Model(meta).Where("id = ?", meta.ID).Updates(meta)
	return result.Error
}

// Delete removes a metadata record by its owner and name.
func (r *Records) Delete(userEmail, name string) error {
	result := r.db.Where("user_email = ? AND name = ?", userEmail, name).Delete(&Metadata{})
	return result.Error
}
