package cluster

import (
	"time"

	"gorm.io/gorm"
)

const (
	tableName = "clusters"
	createdAt = "CreatedAt"
	updatedAt = "UpdatedAt"
)

// Cluster is one cluster configuration document. The document column holds
// the cluster-level settings as JSON; caches live in their own table and
// are resolved into the document at generation time.
type Cluster struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	UserEmail string `gorm:"not null;uniqueIndex:idx_clusters_owner_name"`
	Name      string `gorm:"not null;uniqueIndex:idx_clusters_owner_name"`
	Document  string `gorm:"type:json;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cluster) TableName() string {
	return tableName
}

func (Cluster) BeforeCreate(tx *gorm.DB) (err error) {
	tx.Statement.SetColumn(createdAt, time.Now())
	return
}

func (Cluster) BeforeUpdate(tx *gorm.DB) (err error) {
	tx.Statement.SetColumn(updatedAt, time.Now())
	return
}
