package cache

import (
	"time"

	"gorm.io/gorm"
)

const (
	tableName = "caches"
	createdAt = "CreatedAt"
	updatedAt = "UpdatedAt"
)

// Cache is one cache configuration document attached to a cluster. The
// position column preserves the cluster's cache order, which determines
// declaration order in generated output.
type Cache struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	UserEmail string `gorm:"not null"`
	ClusterID uint   `gorm:"not null;uniqueIndex:idx_caches_cluster_name"`
	Name      string `gorm:"not null;uniqueIndex:idx_caches_cluster_name"`
	Position  int    `gorm:"not null;default:0"`
	Document  string `gorm:"type:json;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cache) TableName() string {
	return tableName
}

func (Cache) BeforeCreate(tx *gorm.DB) (err error) {
	tx.Statement.SetColumn(createdAt, time.Now())
	return
}

func (Cache) BeforeUpdate(tx *gorm.DB) (err error) {
	tx.Statement.SetColumn(updatedAt, time.Now())
	return
}
