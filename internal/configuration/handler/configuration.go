package handler

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gridpoint/console/internal/generator"
	"github.com/gridpoint/console/internal/repositories/sql/cache"
	"github.com/gridpoint/console/internal/repositories/sql/cluster"
	"github.com/gridpoint/console/internal/repositories/sql/metadata"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SaveCluster creates the cluster document or replaces an existing one of
// the same name. Caches embedded in the request document are discarded;
// they are owned by the cache endpoints.
func (h *ConfigurationHandler) SaveCluster(userEmail string, request *ClusterRequest) error {
	if request.Name == "" {
		return errors.New("cluster name is required")
	}
	request.Document.Name = request.Name
	request.Document.Caches = nil

	doc, err := json.Marshal(&request.Document)
	if err != nil {
		return fmt.Errorf("failed to encode cluster document: %w", err)
	}

	existing, err := h.clusterRepo.GetByName(userEmail, request.Name)
	if err == nil {
		existing.Document = string(doc)
		return h.clusterRepo.Update(existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	_, err = h.clusterRepo.Create(&cluster.Cluster{
		UserEmail: userEmail,
		Name:      request.Name,
		Document:  string(doc),
	})
	return err
}

func (h *ConfigurationHandler) ListClusters(userEmail string) ([]ClusterSummary, error) {
	rows, err := h.clusterRepo.GetAll(userEmail)
	if err != nil {
		log.Error().Msgf("Error retrieving clusters for %s", userEmail)
		return nil, err
	}
	summaries := make([]ClusterSummary, len(rows))
	for i, row := range rows {
		caches, err := h.cacheRepo.GetByCluster(row.ID)
		if err != nil {
			return nil, err
		}
		summaries[i] = ClusterSummary{Name: row.Name, CacheCount: len(caches)}
	}
	return summaries, nil
}

func (h *ConfigurationHandler) GetCluster(userEmail, name string) (*ClusterResponse, error) {
	row, err := h.clusterRepo.GetByName(userEmail, name)
	if err != nil {
		return nil, err
	}
	var doc generator.ClusterConfig
	if err := json.Unmarshal([]byte(row.Document), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode cluster document %q: %w", name, err)
	}
	caches, err := h.cacheRepo.GetByCluster(row.ID)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(caches))
	for i, c := range caches {
		names[i] = c.Name
	}
	return &ClusterResponse{Name: row.Name, Document: doc, Caches: names}, nil
}

// DeleteCluster removes the cluster and every cache attached to it.
func (h *ConfigurationHandler) DeleteCluster(userEmail, name string) error {
	row, err := h.clusterRepo.GetByName(userEmail, name)
	if err != nil {
		return err
	}
	if err := h.cacheRepo.DeleteByCluster(row.ID); err != nil {
		return err
	}
	return h.clusterRepo.Delete(userEmail, name)
}

func (h *ConfigurationHandler) SaveCache(userEmail string, request *CacheRequest) error {
	if request.Document.Name == "" {
		return errors.New("cache name is required")
	}
	clusterRow, err := h.clusterRepo.GetByName(userEmail, request.ClusterName)
	if err != nil {
		return err
	}

	doc, err := json.Marshal(&request.Document)
	if err != nil {
		return fmt.Errorf("failed to encode cache document: %w", err)
	}

	existing, err := h.cacheRepo.GetByName(clusterRow.ID, request.Document.Name)
	if err == nil {
		existing.Document = string(doc)
		existing.Position = request.Position
		return h.cacheRepo.Update(existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	_, err = h.cacheRepo.Create(&cache.Cache{
		UserEmail: userEmail,
		ClusterID: clusterRow.ID,
		Name:      request.Document.Name,
		Position:  request.Position,
		Document:  string(doc),
	})
	return err
}

func (h *ConfigurationHandler) ListCaches(userEmail, clusterName string) ([]CacheResponse, error) {
	clusterRow, err := h.clusterRepo.GetByName(userEmail, clusterName)
	if err != nil {
		return nil, err
	}
	rows, err := h.cacheRepo.GetByCluster(clusterRow.ID)
	if err != nil {
		return nil, err
	}
	responses := make([]CacheResponse, len(rows))
	for i, row := range rows {
		var doc generator.CacheConfig
		if err := json.Unmarshal([]byte(row.Document), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode cache document %q: %w", row.Name, err)
		}
		responses[i] = CacheResponse{ClusterName: clusterName, Document: doc, Position: row.Position}
	}
	return responses, nil
}

func (h *ConfigurationHandler) DeleteCache(userEmail, clusterName, cacheName string) error {
	clusterRow, err := h.clusterRepo.GetByName(userEmail, clusterName)
	if err != nil {
		return err
	}
	return h.cacheRepo.Delete(clusterRow.ID, cacheName)
}

func (h *ConfigurationHandler) SaveMetadata(userEmail string, request *MetadataRequest) error {
	if request.Document.Name == "" {
		return errors.New("metadata name is required")
	}
	doc, err := json.Marshal(&request.Document)
	if err != nil {
		return fmt.Errorf("failed to encode metadata document: %w", err)
	}

	existing, err := h.metadataRepo.GetByName(userEmail, request.Document.Name)
	if err == nil {
		existing.Document = string(doc)
		return h.metadataRepo.Update(existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	_, err = h.metadataRepo.Create(&metadata.Metadata{
		UserEmail: userEmail,
		Name:      request.Document.Name,
		Document:  string(doc),
	})
	return err
}

func (h *ConfigurationHandler) ListMetadata(userEmail string) ([]MetadataResponse, error) {
	rows, err := h.metadataRepo.GetAll(userEmail)
	if err != nil {
		return nil, err
	}
	responses := make([]MetadataResponse, len(rows))
	for i, row := range rows {
		var doc generator.CacheTypeMetadata
		if err := json.Unmarshal([]byte(row.Document), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode metadata document %q: %w", row.Name, err)
		}
		responses[i] = MetadataResponse{Name: row.Name, Document: doc}
	}
	return responses, nil
}

func (h *ConfigurationHandler) DeleteMetadata(userEmail, name string) error {
	return h.metadataRepo.Delete(userEmail, name)
}

// resolveCluster reads a cluster document back in full: cluster settings
// plus its caches in declaration order, ready for generation.
func (h *ConfigurationHandler) resolveCluster(userEmail, clusterName string) (*generator.ClusterConfig, error) {
	row, err := h.clusterRepo.GetByName(userEmail, clusterName)
	if err != nil {
		return nil, err
	}
	var doc generator.ClusterConfig
	if err := json.Unmarshal([]byte(row.Document), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode cluster document %q: %w", clusterName, err)
	}

	cacheRows, err := h.cacheRepo.GetByCluster(row.ID)
	if err != nil {
		return nil, err
	}
	doc.Caches = make([]generator.CacheConfig, len(cacheRows))
	for i, cacheRow := range cacheRows {
		if err := json.Unmarshal([]byte(cacheRow.Document), &doc.Caches[i]); err != nil {
			return nil, fmt.Errorf("failed to decode cache document %q: %w", cacheRow.Name, err)
		}
	}
	return &doc, nil
}
