package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><head><title>Hi</title></head><body>hello</body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, 200, result.StatusCode)
	assert.Contains(t, result.HTML, "hello")
	assert.Equal(t, "text/html", result.ContentType)
}

func TestURL_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result, "body and status should still be returned")
	assert.Equal(t, 404, result.StatusCode)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "404")
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-url", nil)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "invalid URL", fetchErr.Message)
}

func TestExtractMainText_PrefersArticle(t *testing.T) {
	html := `<html><body>
		<nav>Home About Contact</nav>
		<article><p>The actual story   text.</p></article>
		<footer>Copyright</footer>
	</body></html>`

	text, err := ExtractMainText(html, NewsPageSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "The actual story text.")
	assert.NotContains(t, text, "Home About Contact")
	assert.NotContains(t, text, "Copyright")
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	text, err := ExtractMainText("<html><body><p>plain page</p></body></html>", NewsPageSelectors())
	require.NoError(t, err)
	assert.Equal(t, "plain page", text)
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Quarterly Report",
		ExtractTitle("<html><head><title> Quarterly Report </title></head><body/></html>"))
	assert.Equal(t, "", ExtractTitle("<html><body/></html>"))
}

func TestCleanWhitespace(t *testing.T) {
	in := "line  one\t\tdone\n\n\n\n\nline two"
	assert.Equal(t, "line one done\n\nline two", cleanWhitespace(in))
}
