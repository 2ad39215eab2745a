package metadata

import (
	"time"

	"gorm.io/gorm"
)

const (
	tableName = "type_metadata"
	createdAt = "CreatedAt"
	updatedAt = "UpdatedAt"
)

// Metadata is one reusable type-metadata record. Cache documents embed a
// copy of a record when it is attached; this table is the user's library
// of records, including those proposed by database introspection.
type Metadata struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	UserEmail string `gorm:"not null;uniqueIndex:idx_metadata_owner_name"`
	Name      string `gorm:"not null;uniqueIndex:idx_metadata_owner_name"`
	Document  string `gorm:"type:json;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Metadata) TableName() string {
	return tableName
}

func (Metadata) BeforeCreate(tx *gorm.DB) (err error) {
	tx.Statement.SetColumn(createdAt, time.Now())
	return
}

func (Metadata) BeforeUpdate(tx *gorm.DB) (err error) {
	tx.Statement.SetColumn(updatedAt, time.Now())
	return
}
