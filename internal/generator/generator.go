// Package generator turns a cluster configuration document into deployable
// artifacts: a declarative Spring XML document, a Java source file, or a
// container build script. Each Generate call walks the configuration once
// into a neutral bean tree and hands the tree to the requested backend, so
// every format observes identical validation and de-duplication behavior.
package generator

import "strings"

// Format selects the artifact backend.
type Format string

const (
	FormatDeclarative     Format = "declarative"
	FormatSourceCode      Format = "source-code"
	FormatContainerScript Format = "container-script"
)

// Options are the per-request generation knobs.
type Options struct {
	// ClientMode emits the client-mode variant of the configuration.
	ClientMode bool
	// GenerateAsClass wraps source-code output in a factory class.
	GenerateAsClass bool
	// OSTag overrides the base image of container-script output.
	OSTag string
}

// Artifact is one generated output plus the shared datasources it expects
// the deployer to provision credentials for.
type Artifact struct {
	Content     string
	DataSources []DataSourceRef
}

// Generate renders one cluster into the requested format. An unknown kind
// anywhere in the configuration fails the whole call, for every format,
// with no partial output.
func Generate(cluster *ClusterConfig, format Format, opts Options) (*Artifact, error) {
	root, ctx, err := buildClusterTree(cluster, opts)
	if err != nil {
		return nil, err
	}

	var content string
	switch format {
	case FormatDeclarative:
		content, err = generateSpringXML(root, ctx)
	case FormatSourceCode:
		content, err = generateJava(root, ctx, opts)
	case FormatContainerScript:
		content, err = generateDocker(cluster, opts)
	default:
		return nil, &MalformedFieldError{Phase: PhaseCluster, Field: "format", Reason: "unsupported format " + string(format)}
	}
	if err != nil {
		return nil, err
	}

	return &Artifact{Content: content, DataSources: ctx.dataSources}, nil
}

// SecretProperties renders the companion secrets file skeleton for the
// datasources referenced by a generated artifact. Connection URLs are
// emitted as dialect-specific templates for the deployer to fill in.
func SecretProperties(dataSources []DataSourceRef) string {
	var sb strings.Builder
	for i, ds := range dataSources {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("# Datasource " + ds.ID + ".\n")
		sb.WriteString(ds.ID + ".jdbc.url=" + dataSourceURLHints[ds.Dialect] + "\n")
		sb.WriteString(ds.ID + ".jdbc.username=YOUR_USER_NAME\n")
		sb.WriteString(ds.ID + ".jdbc.password=YOUR_PASSWORD\n")
	}
	return sb.String()
}
