package generator

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/dockerfile.tmpl
var dockerTemplates embed.FS

var dockerTemplate = template.Must(
	template.New("dockerfile.tmpl").ParseFS(dockerTemplates, "templates/dockerfile.tmpl"))

const defaultOSTag = "debian:8"

// generateDocker renders the container build script for one cluster from the
// embedded template. The configuration itself ships as the declarative
// document referenced by the start command.
func generateDocker(cluster *ClusterConfig, opts Options) (string, error) {
	osTag := opts.OSTag
	if osTag == "" {
		osTag = defaultOSTag
	}

	bindings := map[string]interface{}{
		"OSTag":      osTag,
		"ConfigFile": configFileName(cluster.Name),
	}

	var buf bytes.Buffer
	if err := dockerTemplate.Execute(&buf, bindings); err != nil {
		return "", fmt.Errorf("error in template rendering: %w", err)
	}
	return buf.String(), nil
}

func configFileName(clusterName string) string {
	sanitized := nonWordRe.ReplaceAllString(clusterName, "")
	if sanitized == "" {
		sanitized = "cluster"
	}
	return sanitized + "-server.xml"
}
