/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: browser_internal_test.go
Description: Tests for the browser capture event handling, exercised without launching
a browser.
*/

package capture

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/chromedp/cdproto/network"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(s string) *network.PostDataEntry {
	return &network.PostDataEntry{Bytes: base64.StdEncoding.EncodeToString([]byte(s))}
}

func TestPostDataJoinsEntries(t *testing.T) {
	req := &network.Request{
		HasPostData:     true,
		PostDataEntries: []*network.PostDataEntry{encode(`{"query":`), nil, encode(`"{ a }"}`)},
	}
	assert.Equal(t, `{"query":"{ a }"}`, string(postData(req)))
}

func TestHeaderValueIgnoresCase(t *testing.T) {
	headers := network.Headers{"content-type": "application/json", "X-Count": 3}
	assert.Equal(t, "application/json", headerValue(headers, "Content-Type"))
	assert.Equal(t, "3", headerValue(headers, "x-count"))
	assert.Empty(t, headerValue(headers, "Accept"))
}

func TestHandleRequestRecordsMatches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queries.json")
	rec, err := NewRecorder(path)
	require.NoError(t, err)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s := NewBrowserSession(nil, NewFilter("example.com"), rec, logger)
	require.NotEmpty(t, s.ID)

	json := network.Headers{"Content-Type": "application/json"}
	s.handleRequest(&network.Request{
		URL: "https://api.example.com/graphql", Headers: json, HasPostData: true,
		PostDataEntries: []*network.PostDataEntry{encode(`{"query":"{ a }"}`)},
	})
	s.handleRequest(&network.Request{
		URL: "https://tracker.other.io/collect", Headers: json, HasPostData: true,
		PostDataEntries: []*network.PostDataEntry{encode(`{"event":"x"}`)},
	})
	s.handleRequest(&network.Request{
		URL: "https://api.example.com/upload", Headers: network.Headers{"Content-Type": "text/plain"}, HasPostData: true,
		PostDataEntries: []*network.PostDataEntry{encode(`hello`)},
	})
	s.handleRequest(&network.Request{URL: "https://api.example.com/graphql", Headers: json})
	s.handleRequest(nil)
	require.NoError(t, rec.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"query\":\"{ a }\"}\n", string(data))
	assert.Equal(t, int64(1), rec.Count())

	var saved int
	for _, entry := range hook.AllEntries() {
		if entry.Message == "JSON request saved" {
			saved++
			assert.Equal(t, s.ID, entry.Data["session_id"])
		}
	}
	assert.Equal(t, 1, saved)
}
