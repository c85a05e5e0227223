package stages

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mangalrohit/podcastgen/internal/types"
)

const articleHTML = `<html><head><title>Quarterly Report</title></head><body>
<main><article><p>The company reported strong quarterly results today, with revenue
growing across all segments and new product lines gaining traction among enterprise
customers throughout the covered period.</p></article></main></body></html>`

func TestRunExtract_BuildsDocumentsFromHTML(t *testing.T) {
	in := types.ExtractInput{
		Pages: []types.ScrapedPage{
			{URL: "https://example.org/report", Topic: "company news", StatusCode: 200, HTML: articleHTML},
		},
	}

	out, err := runExtract(context.Background(), in, Deps{})
	require.NoError(t, err)
	require.Len(t, out.Documents, 1)

	doc := out.Documents[0]
	assert.Equal(t, "Quarterly Report", doc.Title)
	assert.Contains(t, doc.Text, "strong quarterly results")
	assert.GreaterOrEqual(t, doc.WordCount, minDocumentWords)
}

func TestRunExtract_PrefersProvidedText(t *testing.T) {
	text := strings.Repeat("word ", 30)
	in := types.ExtractInput{
		Pages: []types.ScrapedPage{
			{URL: "https://example.org/a", Topic: "company news", StatusCode: 200, Text: text},
		},
	}

	out, err := runExtract(context.Background(), in, Deps{})
	require.NoError(t, err)
	require.Len(t, out.Documents, 1)
	assert.Equal(t, 30, out.Documents[0].WordCount)
}

func TestRunExtract_SkipsFailedAndThinPages(t *testing.T) {
	in := types.ExtractInput{
		Pages: []types.ScrapedPage{
			{URL: "https://example.org/err", Topic: "company news", Error: "connection refused"},
			{URL: "https://example.org/404", Topic: "company news", StatusCode: 404, HTML: articleHTML},
			{URL: "https://example.org/thin", Topic: "company news", StatusCode: 200, Text: "too short"},
			{URL: "https://example.org/ok", Topic: "company news", StatusCode: 200, HTML: articleHTML},
		},
	}

	out, err := runExtract(context.Background(), in, Deps{})
	require.NoError(t, err)
	require.Len(t, out.Documents, 1)
	assert.Equal(t, "https://example.org/ok", out.Documents[0].URL)
}

func TestRunExtract_NoUsableDocumentsRejected(t *testing.T) {
	in := types.ExtractInput{
		Pages: []types.ScrapedPage{
			{URL: "https://example.org/err", Topic: "company news", Error: "timeout"},
		},
	}

	_, err := runExtract(context.Background(), in, Deps{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable documents")
}
