package usecase_test

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/codebind/pkg/domain/model"
)

// MockSchemaClient is a mock implementation of SchemaRegistryClient
type MockSchemaClient struct {
	getCodeBindingSourceFunc func(ctx context.Context, language, registry, schema, version string) ([]byte, error)
	putCodeBindingFunc       func(ctx context.Context, language, registry, schema, version string) (model.GenerationStatus, error)
	describeCodeBindingFunc  func(ctx context.Context, language, registry, schema, version string) (model.GenerationStatus, error)

	getCalls      []MockCall
	putCalls      []MockCall
	describeCalls []MockCall
}

type MockCall struct {
	Language string
	Registry string
	Schema   string
	Version  string
}

func (m *MockSchemaClient) GetCodeBindingSource(ctx context.Context, language, registry, schema, version string) ([]byte, error) {
	m.getCalls = append(m.getCalls, MockCall{language, registry, schema, version})
	if m.getCodeBindingSourceFunc != nil {
		return m.getCodeBindingSourceFunc(ctx, language, registry, schema, version)
	}
	return nil, errors.New("mock not configured")
}

func (m *MockSchemaClient) PutCodeBinding(ctx context.Context, language, registry, schema, version string) (model.GenerationStatus, error) {
	m.putCalls = append(m.putCalls, MockCall{language, registry, schema, version})
	if m.putCodeBindingFunc != nil {
		return m.putCodeBindingFunc(ctx, language, registry, schema, version)
	}
	return "", errors.New("mock not configured")
}

func (m *MockSchemaClient) DescribeCodeBinding(ctx context.Context, language, registry, schema, version string) (model.GenerationStatus, error) {
	m.describeCalls = append(m.describeCalls, MockCall{language, registry, schema, version})
	if m.describeCodeBindingFunc != nil {
		return m.describeCodeBindingFunc(ctx, language, registry, schema, version)
	}
	return "", errors.New("mock not configured")
}

// statusSequence returns a describe func that replays statuses in order
func statusSequence(statuses ...model.GenerationStatus) func(ctx context.Context, language, registry, schema, version string) (model.GenerationStatus, error) {
	i := 0
	return func(ctx context.Context, language, registry, schema, version string) (model.GenerationStatus, error) {
		s := statuses[i]
		if i < len(statuses)-1 {
			i++
		}
		return s, nil
	}
}

// MockNotifier records notifications
type MockNotifier struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (m *MockNotifier) Info(ctx context.Context, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, msg)
}

func (m *MockNotifier) Error(ctx context.Context, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func newTestRequest(dest string) *model.DownloadRequest {
	return &model.DownloadRequest{
		RegistryName:   "aws.events",
		SchemaName:     "aws.events@Widget",
		Language:       "Java8",
		SchemaVersion:  "1",
		DestinationDir: dest,
		CoreFileName:   "Widget.java",
	}
}

// createTestZip builds an archive; names ending in "/" become directory entries
func createTestZip(t *testing.T, files map[string]string) []byte {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		writer, err := zipWriter.Create(name)
		gt.NoError(t, err)

		if content := files[name]; content != "" {
			_, err = writer.Write([]byte(content))
			gt.NoError(t, err)
		}
	}

	gt.NoError(t, zipWriter.Close())
	return buf.Bytes()
}

type zipEntry struct {
	name    string
	content string
}

// createOrderedTestZip keeps the given entry order and allows repeated names
func createOrderedTestZip(t *testing.T, entries ...zipEntry) []byte {
	var buf bytes.Buffer
	zipWriter := zip.NewWriter(&buf)

	for _, entry := range entries {
		writer, err := zipWriter.Create(entry.name)
		gt.NoError(t, err)
		_, err = writer.Write([]byte(entry.content))
		gt.NoError(t, err)
	}

	gt.NoError(t, zipWriter.Close())
	return buf.Bytes()
}
