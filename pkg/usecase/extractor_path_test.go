package usecase_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/codebind/pkg/domain/model"
	"github.com/m-mizutani/codebind/pkg/usecase"
)

func TestDestinationPath(t *testing.T) {
	root := string(filepath.Separator)

	testCases := []struct {
		name     string
		destDir  string
		entry    string
		expected string
		unsafe   bool
	}{
		{
			name:     "nested entry",
			destDir:  filepath.Join(root, "work"),
			entry:    "src/Widget.java",
			expected: filepath.Join(root, "work", "src", "Widget.java"),
		},
		{
			name:     "filesystem root destination",
			destDir:  root,
			entry:    "src/Widget.java",
			expected: filepath.Join(root, "src", "Widget.java"),
		},
		{
			name:    "sibling with shared prefix",
			destDir: filepath.Join(root, "work"),
			entry:   "../work2/Widget.java",
			unsafe:  true,
		},
		{
			name:    "parent traversal",
			destDir: filepath.Join(root, "work"),
			entry:   "../../etc/passwd",
			unsafe:  true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := usecase.DestinationPath(tc.destDir, tc.entry)
			if tc.unsafe {
				gt.True(t, errors.Is(err, model.ErrUnsafeArchivePath))
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, got, tc.expected)
		})
	}
}
