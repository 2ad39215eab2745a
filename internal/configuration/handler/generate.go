package handler

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/gridpoint/console/internal/generator"
	"github.com/gridpoint/console/pkg/metric"
	"github.com/rs/zerolog/log"
)

// Generate resolves the cluster graph and runs the engine for one format.
func (h *ConfigurationHandler) Generate(userEmail string, request *GenerateRequest) (*GenerateResponse, error) {
	clusterDoc, err := h.resolveCluster(userEmail, request.ClusterName)
	if err != nil {
		return nil, err
	}

	tags := metric.BuildTag(
		metric.NewTag(metric.TagFormat, request.Format),
		metric.NewTag(metric.TagCluster, request.ClusterName),
	)
	start := time.Now()
	artifact, err := generator.Generate(clusterDoc, generator.Format(request.Format), generator.Options{
		ClientMode:      request.ClientMode,
		GenerateAsClass: request.GenerateAsClass,
		OSTag:           request.OSTag,
	})
	metric.Timing(metric.GenerationLatency, time.Since(start), tags)
	if err != nil {
		metric.Incr(metric.GenerationErrors, tags)
		log.Error().Err(err).
			Str("cluster", request.ClusterName).
			Str("format", request.Format).
			Msg("generation failed")
		return nil, err
	}
	metric.Incr(metric.GenerationCount, tags)

	response := &GenerateResponse{
		ClusterName: request.ClusterName,
		Format:      request.Format,
		Content:     artifact.Content,
		DataSources: artifact.DataSources,
	}
	if len(artifact.DataSources) > 0 {
		response.SecretProperties = generator.SecretProperties(artifact.DataSources)
	}
	return response, nil
}

// Download renders every format for one cluster and packages the artifacts
// as a zip archive. The secrets skeleton is included when any generated
// artifact references a shared datasource.
func (h *ConfigurationHandler) Download(userEmail, clusterName string) ([]byte, string, error) {
	clusterDoc, err := h.resolveCluster(userEmail, clusterName)
	if err != nil {
		return nil, "", err
	}

	server, err := generator.Generate(clusterDoc, generator.FormatDeclarative, generator.Options{})
	if err != nil {
		return nil, "", err
	}
	client, err := generator.Generate(clusterDoc, generator.FormatDeclarative, generator.Options{ClientMode: true})
	if err != nil {
		return nil, "", err
	}
	factory, err := generator.Generate(clusterDoc, generator.FormatSourceCode, generator.Options{GenerateAsClass: true})
	if err != nil {
		return nil, "", err
	}
	docker, err := generator.Generate(clusterDoc, generator.FormatContainerScript, generator.Options{OSTag: dockerImageTag})
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	files := []struct {
		name    string
		content string
	}{
		{clusterName + "-server.xml", server.Content},
		{clusterName + "-client.xml", client.Content},
		{"ConfigurationFactory.java", factory.Content},
		{"Dockerfile", docker.Content},
	}
	if len(server.DataSources) > 0 {
		files = append(files, struct {
			name    string
			content string
		}{"secret.properties", generator.SecretProperties(server.DataSources)})
	}

	for _, file := range files {
		writer, err := archive.Create(file.name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to add %s to archive: %w", file.name, err)
		}
		if _, err := writer.Write([]byte(file.content)); err != nil {
			return nil, "", fmt.Errorf("failed to write %s to archive: %w", file.name, err)
		}
	}
	if err := archive.Close(); err != nil {
		return nil, "", err
	}
	if buf.Len() > downloadMaxSize {
		return nil, "", fmt.Errorf("archive of %q exceeds the configured download limit (%d bytes)", clusterName, downloadMaxSize)
	}

	return buf.Bytes(), clusterName + "-configuration.zip", nil
}
