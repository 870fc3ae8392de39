package tempdir

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// Disposer tracks folders that must be removed when the process is done with them
type Disposer struct {
	mu      sync.Mutex
	folders []string
}

// NewDisposer creates an empty Disposer
func NewDisposer() *Disposer {
	return &Disposer{}
}

// AddFolder registers a folder for removal on Dispose
func (d *Disposer) AddFolder(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.folders = append(d.folders, path)
}

// Folders returns the currently registered folders
func (d *Disposer) Folders() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.folders))
	copy(out, d.folders)
	return out
}

// Dispose removes all registered folders. It keeps going on failure and
// returns every removal error joined together.
func (d *Disposer) Dispose(ctx context.Context) error {
	d.mu.Lock()
	folders := d.folders
	d.folders = nil
	d.mu.Unlock()

	logger := ctxlog.From(ctx)
	var errs []error
	for _, folder := range folders {
		if err := os.RemoveAll(folder); err != nil {
			logger.Warn("Failed to clean up temporary directory",
				"temp_dir", folder,
				"error", err,
			)
			errs = append(errs, goerr.Wrap(err, "failed to remove temporary directory", goerr.V("temp_dir", folder)))
			continue
		}
		logger.Debug("Cleaned up temporary directory", "temp_dir", folder)
	}

	return errors.Join(errs...)
}

// Provider creates private scratch folders and hands their cleanup to a Disposer
type Provider struct {
	baseDir  string
	prefix   string
	disposer *Disposer
}

// NewProvider creates a Provider. An empty baseDir means os.TempDir().
func NewProvider(baseDir, prefix string, disposer *Disposer) *Provider {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Provider{
		baseDir:  baseDir,
		prefix:   prefix,
		disposer: disposer,
	}
}

// Create makes a new uniquely named folder and registers it with the Disposer
func (p *Provider) Create(ctx context.Context) (string, error) {
	logger := ctxlog.From(ctx)

	if err := os.MkdirAll(p.baseDir, 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create temporary base directory", goerr.V("base_dir", p.baseDir))
	}

	tempDir, err := os.MkdirTemp(p.baseDir, p.prefix+"-*")
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temporary directory", goerr.V("base_dir", p.baseDir))
	}
	p.disposer.AddFolder(tempDir)

	if err := os.Chmod(tempDir, 0700); err != nil {
		return "", goerr.Wrap(err, "failed to set directory permissions", goerr.V("temp_dir", tempDir))
	}

	logger.Debug("Created temporary directory", "temp_dir", filepath.Clean(tempDir))
	return tempDir, nil
}
