package cache

import (
	"errors"

	"github.com/gridpoint/console/pkg/infra"
	"gorm.io/gorm"
)

type Repository interface {
	GetByCluster(clusterID uint) ([]Cache, error)
	GetByName(clusterID uint, name string) (*Cache, error)
	Create(cache *Cache) (uint, error)
	Update(cache *Cache) error
	Delete(clusterID uint, name string) error
	DeleteByCluster(clusterID uint) error
}

type Caches struct {
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

	return &Caches{
		db:     session.(*gorm.DB),
		dbName: dbName,
	}, nil
}

// GetByCluster retrieves a cluster's caches in declaration order.
func (c *Caches) GetByCluster(clusterID uint) ([]Cache, error) {
	var caches []Cache
	result := c.db.Where("cluster_id = ?", clusterID).Order("position, id").Find(&caches)
	return caches, result.Error
}

// GetByName retrieves one cache of a cluster by name.
func (c *Caches) GetByName(clusterID uint, name string) (*Cache, error) {
	var cache Cache
	result := c.db.Where("cluster_id = ? AND name = ?", clusterID, name).First(&cache)
	return &cache, result.Error
}

// Create adds a new cache document.
func (c *Caches) Create(cache *Cache) (uint, error) {
	result := c.db.Create(cache)
	if result.Error != nil {
		return 0, result.Error
	}
	return cache.ID, nil
}

// Update replaces the stored document of an existing cache.
func (c *Caches) Update(cache *Cache) error {
	result := c.db.Model(cache).Where("id = ?", cache.ID).Updates(cache)
	return result.Error
}

// Delete removes one cache of a cluster by name.
func (c *Caches) Delete(clusterID uint, name string) error {
	result := c.db.Where("cluster_id = ? AND name = ?", clusterID, name).Delete(&Cache{})
	return result.Error
}

// DeleteByCluster removes every cache attached to a cluster.
func (c *Caches) DeleteByCluster(clusterID uint) error {
	result := c.db.Where("cluster_id = ?", clusterID).Delete(&Cache{})
	return result.Error
}
