package handler

import "github.com/gridpoint/console/internal/generator"

// ClusterRequest carries one cluster document. Caches are managed through
// their own endpoints; any caches present in the document are ignored on
// save and resolved from the cache table on read.
type ClusterRequest struct {
	Name     string                  `json:"name"`
	Document generator.ClusterConfig `json:"document"`
}

type ClusterResponse struct {
	Name     string                  `json:"name"`
	Document generator.ClusterConfig `json:"document"`
	Caches   []string                `json:"caches"`
}

type ClusterSummary struct {
	Name       string `json:"name"`
	CacheCount int    `json:"cache_count"`
}

type CacheRequest struct {
	ClusterName string                `json:"cluster_name"`
	Document    generator.CacheConfig `json:"document"`
	Position    int                   `json:"position"`
}

type CacheResponse struct {
	ClusterName string                `json:"cluster_name"`
	Document    generator.CacheConfig `json:"document"`
	Position    int                   `json:"position"`
}

type MetadataRequest struct {
	Document generator.CacheTypeMetadata `json:"document"`
}

type MetadataResponse struct {
	Name     string                      `json:"name"`
	Document generator.CacheTypeMetadata `json:"document"`
}

// GenerateRequest selects the cluster, format and variant to render.
type GenerateRequest struct {
	ClusterName     string `json:"cluster_name"`
	Format          string `json:"format"`
	ClientMode      bool   `json:"client_mode"`
	GenerateAsClass bool   `json:"generate_as_class"`
	OSTag           string `json:"os_tag"`
}

type GenerateResponse struct {
	ClusterName      string                    `json:"cluster_name"`
	Format           string                    `json:"format"`
	Content          string                    `json:"content"`
	SecretProperties string                    `json:"secret_properties,omitempty"`
	DataSources      []generator.DataSourceRef `json:"data_sources,omitempty"`
}
