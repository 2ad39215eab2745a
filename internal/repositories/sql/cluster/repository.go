package cluster

import (
	"errors"

	"github.com/gridpoint/console/pkg/infra"
	"gorm.io/gorm"
)

type Repository interface {
	GetAll(userEmail string) ([]Cluster, error)
	GetByName(userEmail, name string) (*Cluster, error)
	Create(cluster *Cluster) (uint, error)
	Update(cluster *Cluster) error
	Delete(userEmail, name string) error
}

type Clusters struct {
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

	return &Clusters{
		db:     session.(*gorm.DB),
		dbName: dbName,
	}, nil
}

// GetAll retrieves every cluster owned by a user, oldest first.
func (c *Clusters) GetAll(userEmail string) ([]Cluster, error) {
	var clusters []Cluster
	result := c.db.Where("user_email = ?", userEmail).Order("id").Find(&clusters)
	return clusters, result.Error
}

// GetByName retrieves one cluster by its owner and name.
func (c *Clusters) GetByName(userEmail, name string) (*Cluster, error) {
	var cluster Cluster
	result := c.db.Where("user_email = ? AND name = ?", userEmail, name).First(&cluster)
	return &cluster, result.Error
}

// Create adds a new cluster document.
func (c *Clusters) Create(cluster *Cluster) (uint, error) {
	result := c.db.Create(cluster)
	if result.Error != nil {
		return 0, result.Error
	}
	return cluster.ID, nil
}

// Update replaces the stored document of an existing cluster.
func (c *Clusters) Update(cluster *Cluster) error {
	result := c.db.Model(cluster).Where("id = ?", cluster.ID).Updates(cluster)
	return result.Error
}

// Delete removes a cluster by its owner and name.
func (c *Clusters) Delete(userEmail, name string) error {
	result := c.db.Where("user_email = ? AND name = ?", userEmail, name).Delete(&Cluster{})
	return result.Error
}
