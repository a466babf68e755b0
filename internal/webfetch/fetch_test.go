package webfetch

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puchtools/puchcal/internal/fault"
)

func articleHTML() string {
	para := strings.Repeat("The role covers backend services written in Go, including calendar integrations and messaging workers. ", 10)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<title>Senior Go Developer at Acme Corp</title>
<script>trackVisitor();</script>
</head>
<body>
<nav><a href="/jobs">All jobs</a></nav>
<article>
<h1>Senior Go Developer</h1>
<p>%s</p>
<p>%s</p>
<p>%s</p>
</article>
</body>
</html>`, para, para, para)
}

func newPageServer(t *testing.T, contentType, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFetch_SimplifiesHTML(t *testing.T) {
	srv := newPageServer(t, "text/html; charset=utf-8", articleHTML())

	page, err := NewClient().Fetch(context.Background(), srv.URL, false)
	require.NoError(t, err)

	assert.Contains(t, page.Content, "backend services written in Go")
	assert.NotContains(t, page.Content, "<script")
	assert.NotContains(t, page.Content, "trackVisitor")
	assert.Empty(t, page.Prefix)
}

func TestClientFetch_Raw(t *testing.T) {
	srv := newPageServer(t, "text/html; charset=utf-8", articleHTML())

	page, err := NewClient().Fetch(context.Background(), srv.URL, true)
	require.NoError(t, err)

	assert.Contains(t, page.Content, "<script>")
	assert.Empty(t, page.Prefix)
}

func TestClientFetch_NonHTML(t *testing.T) {
	srv := newPageServer(t, "text/plain", "plain body")

	page, err := NewClient().Fetch(context.Background(), srv.URL, false)
	require.NoError(t, err)

	assert.Equal(t, "plain body", page.Content)
	assert.Contains(t, page.Prefix, "cannot be simplified to markdown")
}

func TestClientFetch_RemoteStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient().Fetch(context.Background(), srv.URL, false)
	require.Error(t, err)
	assert.True(t, fault.IsKind(err, fault.KindRemote))
	assert.Contains(t, err.Error(), "404")
}

func TestClientFetch_InvalidURL(t *testing.T) {
	for _, target := range []string{"", "not a url", "ftp://example.com/posting", "/relative/path"} {
		_, err := NewClient().Fetch(context.Background(), target, false)
		require.Error(t, err, "target %q", target)
		assert.True(t, fault.IsKind(err, fault.KindValidation), "target %q", target)
	}
}

func TestSlice(t *testing.T) {
	content := "0123456789abcdefghij"

	t.Run("fits entirely", func(t *testing.T) {
		assert.Equal(t, content, Slice(content, 0, 100))
	})

	t.Run("start beyond end", func(t *testing.T) {
		assert.Equal(t, "<error>No more content available.</error>", Slice(content, 25, 100))
	})

	t.Run("empty content", func(t *testing.T) {
		assert.Equal(t, "<error>No more content available.</error>", Slice("", 0, 100))
	})

	t.Run("truncated with continuation marker", func(t *testing.T) {
		got := Slice(content, 0, 10)
		assert.True(t, strings.HasPrefix(got, "0123456789"))
		assert.Contains(t, got, "start_index of 10")
	})

	t.Run("final window has no marker", func(t *testing.T) {
		assert.Equal(t, "abcdefghij", Slice(content, 10, 10))
	})
}
