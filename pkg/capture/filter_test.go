/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: filter_test.go
Description: Tests for the capture request filter and the append-only recorder.
*/

package capture_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/kleascm/gqlsniff/pkg/capture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterMatch(t *testing.T) {
	f := capture.NewFilter("Example.com")
	body := []byte(`{"query":"{ a }"}`)

	tests := []struct {
		name        string
		host        string
		contentType string
		body        []byte
		want        bool
	}{
		{"exact host", "example.com", "application/json", body, true},
		{"subdomain", "api.example.com", "application/json; charset=utf-8", body, true},
		{"port ignored", "api.example.com:8443", "application/json", body, true},
		{"host case", "API.EXAMPLE.COM", "Application/JSON", body, true},
		{"other host", "example.org", "application/json", body, false},
		{"form body", "example.com", "application/x-www-form-urlencoded", body, false},
		{"no content type", "example.com", "", body, false},
		{"empty body", "example.com", "application/json", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Match(tt.host, tt.contentType, tt.body))
		})
	}
}

func TestFilterMatchRequest(t *testing.T) {
	f := capture.NewFilter("example.com")
	body := []byte(`{}`)

	assert.True(t, f.MatchRequest("https://gql.example.com/graphql", "application/json", body))
	assert.False(t, f.MatchRequest("https://cdn.other.net/graphql", "application/json", body))
	assert.False(t, f.MatchRequest("://bad url", "application/json", body))

	assert.True(t, f.MatchURL("https://example.com:443/api"))
	assert.False(t, f.MatchURL("https://example.net/api"))
}

func TestRecorderAppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.json")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))

	rec, err := capture.NewRecorder(path)
	require.NoError(t, err)

	require.NoError(t, rec.Record([]byte(`{"query":"{ a }"}`)))
	require.NoError(t, rec.Record(nil))
	require.NoError(t, rec.Record([]byte(`{"query":"{ b }"}`)))
	assert.Equal(t, int64(2), rec.Count())
	require.NoError(t, rec.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"query\":\"{ a }\"}\n{\"query\":\"{ b }\"}\n", string(data))

	assert.Error(t, rec.Record([]byte(`{}`)))
	assert.NoError(t, rec.Close())
}

func TestRecorderConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.json")
	rec, err := capture.NewRecorder(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, rec.Record([]byte(`{"query":"{ x }"}`)))
		}()
	}
	wg.Wait()
	require.NoError(t, rec.Close())

	records, skipped := readAll(t, mustRead(t, path))
	assert.Len(t, records, 20)
	assert.Empty(t, skipped)
}

func mustRead(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
