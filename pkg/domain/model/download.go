package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DownloadRequest describes one code binding download. It is built once and passed
// unchanged through every stage of the pipeline.
type DownloadRequest struct {
	RegistryName   string // Schema registry name
	SchemaName     string // Schema name, e.g. aws.events@EC2InstanceStateChangeNotification
	Language       string // API value of the binding language, e.g. Java8
	SchemaVersion  string // Schema version
	DestinationDir string // Directory the archive is extracted into
	CoreFileName   string // Base name of the primary generated source file
}

// NewDownloadRequest builds a request for the given language and derives the core file name
func NewDownloadRequest(registry, schema, version string, lang *Language, dest string) *DownloadRequest {
	return &DownloadRequest{
		RegistryName:   registry,
		SchemaName:     schema,
		Language:       lang.APIValue,
		SchemaVersion:  version,
		DestinationDir: dest,
		CoreFileName:   CoreFileName(schema, lang.Extension),
	}
}

// Validate checks that all fields required by the pipeline are set
func (r *DownloadRequest) Validate() error {
	if r == nil {
		return goerr.Wrap(ErrInvalidRequest, "download request is nil")
	}

	fields := []struct {
		name  string
		value string
	}{
		{"registry_name", r.RegistryName},
		{"schema_name", r.SchemaName},
		{"language", r.Language},
		{"schema_version", r.SchemaVersion},
		{"destination_dir", r.DestinationDir},
		{"core_file_name", r.CoreFileName},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return goerr.Wrap(ErrInvalidRequest, "required field is empty", goerr.V("field", f.name))
		}
	}

	return nil
}

// ArchiveFileName is the name used for the scratch copy of the downloaded archive
func (r *DownloadRequest) ArchiveFileName(suffix string) string {
	return r.SchemaName + "." + r.SchemaVersion + "." + r.Language + "." + suffix + ".zip"
}

// CoreFileName returns the last '@' delimited segment of schemaName joined with ext
func CoreFileName(schemaName, ext string) string {
	parts := strings.Split(schemaName, "@")
	return parts[len(parts)-1] + ext
}

// ArchiveEntry is a read-only view of one entry in a code binding archive
type ArchiveEntry struct {
	Path  string // Slash separated path inside the archive
	IsDir bool
	Name  string // Base file name
}
