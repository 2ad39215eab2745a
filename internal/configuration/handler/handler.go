package handler

import (
	"sync"

	"github.com/gridpoint/console/internal/configs"
	"github.com/gridpoint/console/internal/repositories/sql/cache"
	"github.com/gridpoint/console/internal/repositories/sql/cluster"
	"github.com/gridpoint/console/internal/repositories/sql/metadata"
	"github.com/gridpoint/console/pkg/infra"
	"github.com/rs/zerolog/log"
)

var (
	managerOnce sync.Once
	manager     Manager

	dockerImageTag  string
	downloadMaxSize = 10 << 20
)

// Init wires generation defaults from configuration. Must run before
// the first InitManager call.
func Init(config configs.Configs) {
	dockerImageTag = config.DockerImageTag
	if config.DownloadMaxSize > 0 {
		downloadMaxSize = config.DownloadMaxSize
	}
}

// Manager is the configuration-document service behind the HTTP surface.
type Manager interface {
	SaveCluster(userEmail string, request *ClusterRequest) error
	ListClusters(userEmail string) ([]ClusterSummary, error)
	GetCluster(userEmail, name string) (*ClusterResponse, error)
	DeleteCluster(userEmail, name string) error

	SaveCache(userEmail string, request *CacheRequest) error
	ListCaches(userEmail, clusterName string) ([]CacheResponse, error)
	DeleteCache(userEmail, clusterName, cacheName string) error

	SaveMetadata(userEmail string, request *MetadataRequest) error
	ListMetadata(userEmail string) ([]MetadataResponse, error)
	DeleteMetadata(userEmail, name string) error

	Generate(userEmail string, request *GenerateRequest) (*GenerateResponse, error)
	Download(userEmail, clusterName string) ([]byte, string, error)
}

type ConfigurationHandler struct {
	clusterRepo  cluster.Repository
	cacheRepo    cache.Repository
	metadataRepo metadata.Repository
}

func InitManager() Manager {
	if manager == nil {
		managerOnce.Do(func() {
			connection, _ := infra.SQL.GetConnection()
			sqlConn := connection.(*infra.SQLConnection)
			clusterRepo, err := cluster.NewRepository(sqlConn)
			if err != nil {
				log.Error().Msg("Error in creating cluster repository")
			}
			cacheRepo, err := cache.NewRepository(sqlConn)
			if err != nil {
				log.Error().Msg("Error in creating cache repository")
			}
			metadataRepo, err := metadata.NewRepository(sqlConn)
			if err != nil {
				log.Error().Msg("Error in creating metadata repository")
			}
			manager = &ConfigurationHandler{
				clusterRepo:  clusterRepo,
				cacheRepo:    cacheRepo,
				metadataRepo: metadataRepo,
			}
		})
	}
	return manager
}
