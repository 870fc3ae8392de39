package usecase

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/codebind/pkg/domain/interfaces"
	"github.com/m-mizutani/codebind/pkg/domain/model"
)

const msgCollision = "Unable to place schema code in workspace because there is already a file %s in the folder hierarchy"

type codeExtractor struct {
	tempFolders interfaces.TempFolderProvider
}

// NewCodeExtractor creates a CodeExtractor that stages archives in folders from tempFolders
func NewCodeExtractor(tempFolders interfaces.TempFolderProvider) interfaces.CodeExtractor {
	return &codeExtractor{tempFolders: tempFolders}
}

// Extract places the archive contents under req.DestinationDir. Nothing is written
// to the destination unless every entry can be placed without overwriting an
// existing file.
func (x *codeExtractor) Extract(ctx context.Context, archive []byte, req *model.DownloadRequest) (string, error) {
	logger := ctxlog.From(ctx)

	zipPath, err := x.stageArchive(ctx, archive, req)
	if err != nil {
		return "", err
	}

	zipReader, err := zip.OpenReader(zipPath)
	if errors.Is(err, zip.ErrInsecurePath) {
		zipReader.Close()
		return "", goerr.Wrap(model.ErrUnsafeArchivePath, "archive contains insecure paths", goerr.V("zip_path", zipPath))
	}
	if err != nil {
		return "", goerr.Wrap(err, "failed to open code binding archive", goerr.V("zip_path", zipPath))
	}
	defer zipReader.Close()

	entries := listEntries(&zipReader.Reader)
	destDir := filepath.Clean(req.DestinationDir)

	if err := validateNoFileCollisions(entries, destDir); err != nil {
		return "", err
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create destination directory", goerr.V("dest_dir", destDir))
	}

	for _, file := range zipReader.File {
		if err := extractFile(file, destDir); err != nil {
			return "", goerr.Wrap(err, "failed to extract file", goerr.V("file", file.Name))
		}
	}

	logger.Info("Extracted code binding archive",
		"dest_dir", destDir,
		"entry_count", len(entries),
		"schema", req.SchemaName,
	)

	corePath := findCoreFile(entries, req.CoreFileName)
	if corePath == "" {
		logger.Warn("Core file not found in archive", "core_file", req.CoreFileName)
		return "", nil
	}

	return filepath.Join(destDir, filepath.FromSlash(corePath)), nil
}

// stageArchive writes the archive to a uniquely named file in a disposable folder
func (x *codeExtractor) stageArchive(ctx context.Context, archive []byte, req *model.DownloadRequest) (string, error) {
	tempDir, err := x.tempFolders.Create(ctx)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create temporary folder for archive")
	}

	zipPath := filepath.Join(tempDir, req.ArchiveFileName(uuid.NewString()))
	if err := os.WriteFile(zipPath, archive, 0600); err != nil {
		return "", goerr.Wrap(err, "failed to write code binding archive", goerr.V("zip_path", zipPath))
	}

	ctxlog.From(ctx).Debug("Staged code binding archive", "zip_path", zipPath, "size_bytes", len(archive))
	return zipPath, nil
}

func listEntries(r *zip.Reader) []model.ArchiveEntry {
	entries := make([]model.ArchiveEntry, 0, len(r.File))
	for _, file := range r.File {
		isDir := file.FileInfo().IsDir()
		entries = append(entries, model.ArchiveEntry{
			Path:  file.Name,
			IsDir: isDir,
			Name:  path.Base(strings.TrimSuffix(file.Name, "/")),
		})
	}
	return entries
}

// destinationPath resolves an entry path under destDir and rejects paths that escape it
func destinationPath(destDir, entryPath string) (string, error) {
	prefix := destDir
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}

	destPath := filepath.Join(destDir, filepath.FromSlash(entryPath))
	if destPath != destDir && !strings.HasPrefix(destPath, prefix) {
		return "", goerr.Wrap(model.ErrUnsafeArchivePath, "invalid file path detected",
			goerr.V("entry", entryPath),
			goerr.V("dest", destPath),
		)
	}
	return destPath, nil
}

// validateNoFileCollisions fails if extracting entries would overwrite anything in
// destDir or if two entries claim the same path. Existing directories are merged
// into, so directory entries only collide with a non-directory at the same path.
func validateNoFileCollisions(entries []model.ArchiveEntry, destDir string) error {
	// destination path -> whether the archive places a directory there
	planned := map[string]bool{}

	for _, entry := range entries {
		destPath, err := destinationPath(destDir, entry.Path)
		if err != nil {
			return err
		}

		// A file sitting where a parent directory must be created also blocks extraction
		for parent := filepath.Dir(destPath); parent != destDir && strings.HasPrefix(parent, destDir); parent = filepath.Dir(parent) {
			blocker := model.ArchiveEntry{Path: entry.Path, Name: filepath.Base(parent)}
			if isDir, ok := planned[parent]; ok {
				if !isDir {
					return collisionError(blocker, parent)
				}
				continue
			}
			planned[parent] = true

			info, err := os.Lstat(parent)
			if err != nil {
				continue
			}
			if !info.IsDir() {
				return collisionError(blocker, parent)
			}
		}

		if isDir, ok := planned[destPath]; ok {
			if isDir && entry.IsDir {
				continue
			}
			return collisionError(entry, destPath)
		}
		planned[destPath] = entry.IsDir

		info, err := os.Lstat(destPath)
		switch {
		case err == nil:
			if entry.IsDir && info.IsDir() {
				continue
			}
			return collisionError(entry, destPath)
		case !errors.Is(err, fs.ErrNotExist):
			return goerr.Wrap(err, "failed to check destination path", goerr.V("path", destPath))
		}
	}

	return nil
}

func collisionError(entry model.ArchiveEntry, destPath string) error {
	return goerr.Wrap(
		model.NewUserError(model.ErrFileCollision, fmt.Sprintf(msgCollision, entry.Name), nil),
		"destination file already exists",
		goerr.V("entry", entry.Path),
		goerr.V("path", destPath),
	)
}

// findCoreFile returns the archive path of the first file named coreFileName
func findCoreFile(entries []model.ArchiveEntry, coreFileName string) string {
	for _, entry := range entries {
		if !entry.IsDir && entry.Name == coreFileName {
			return entry.Path
		}
	}
	return ""
}

// extractFile extracts a single file from ZIP to the destination directory
func extractFile(file *zip.File, destDir string) error {
	destPath, err := destinationPath(destDir, file.Name)
	if err != nil {
		return err
	}

	if file.FileInfo().IsDir() {
		return os.MkdirAll(destPath, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return goerr.Wrap(err, "failed to create parent directories", goerr.V("dir", filepath.Dir(destPath)))
	}

	rc, err := file.Open()
	if err != nil {
		return goerr.Wrap(err, "failed to open file in zip", goerr.V("file", file.Name))
	}
	defer rc.Close()

	mode := file.FileInfo().Mode().Perm()
	if mode == 0 {
		mode = 0644
	}

	// O_EXCL keeps a file created after the collision check from being overwritten
	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return goerr.Wrap(err, "failed to create destination file", goerr.V("path", destPath))
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, rc); err != nil {
		return goerr.Wrap(err, "failed to copy file content", goerr.V("path", destPath))
	}

	return nil
}
