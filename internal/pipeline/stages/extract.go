package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/mangalrohit/podcastgen/internal/fetch"
	"github.com/mangalrohit/podcastgen/internal/types"
)

// minDocumentWords drops pages whose extracted text is too thin to summarize.
const minDocumentWords = 20

// runExtract turns scraped pages into cleaned documents. Pages that failed
// to fetch or yield almost no text are silently skipped.
func runExtract(_ context.Context, in types.ExtractInput, _ Deps) (*types.ExtractOutput, error) {
	out := &types.ExtractOutput{Config: in.Config}

	for _, page := range in.Pages {
		if page.Error != "" || page.StatusCode < 200 || page.StatusCode >= 300 {
			continue
		}

		text := page.Text
		if text == "" && page.HTML != "" {
			extracted, err := fetch.ExtractMainText(page.HTML, fetch.NewsPageSelectors())
			if err != nil {
				continue
			}
			text = extracted
		}

		words := len(strings.Fields(text))
		if words < minDocumentWords {
			continue
		}

		title := fetch.ExtractTitle(page.HTML)
		out.Documents = append(out.Documents, types.Document{
			URL:       page.URL,
			Topic:     page.Topic,
			Title:     title,
			Text:      text,
			WordCount: words,
		})
	}

	if len(out.Documents) == 0 {
		return nil, fmt.Errorf("no usable documents extracted from %d pages", len(in.Pages))
	}
	return out, nil
}
