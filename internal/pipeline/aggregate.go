package pipeline

import (
	"strings"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/extract"
)

// ContentPlaceholder stands in when no content source yielded text: the user
// typed nothing and every attachment failed to extract.
const ContentPlaceholder = "File capture"

// narrativeDelimiter separates joined document narratives.
const narrativeDelimiter = "\n\n"

// ContentSource says which precedence tier produced the final content.
type ContentSource string

const (
	SourceUser        ContentSource = "user"
	SourceDocument    ContentSource = "document"
	SourceImage       ContentSource = "image"
	SourcePlaceholder ContentSource = "placeholder"
)

// Aggregation is the merged text of one capture. DocumentNarratives is
// always retained, even when not chosen as the final content, because
// classification needs the full document text as auxiliary context.
type Aggregation struct {
	FinalContent       string
	DocumentNarratives string
	Source             ContentSource
}

// Aggregate merges user text and extraction narratives under the fixed
// precedence: user text, joined document narratives, first image narrative,
// placeholder. Pure function: same inputs, same output.
func Aggregate(userText string, results []extract.Result) Aggregation {
	var docNarratives []string
	firstImageNarrative := ""

	for _, res := range results {
		if !res.Succeeded() || res.Narrative == "" {
			continue
		}
		switch res.Kind {
		case constants.KindDocument:
			docNarratives = append(docNarratives, res.Narrative)
		case constants.KindImage:
			if firstImageNarrative == "" {
				firstImageNarrative = res.Narrative
			}
		}
	}

	agg := Aggregation{
		DocumentNarratives: strings.Join(docNarratives, narrativeDelimiter),
	}

	switch {
	case strings.TrimSpace(userText) != "":
		agg.FinalContent = userText
		agg.Source = SourceUser
	case agg.DocumentNarratives != "":
		agg.FinalContent = agg.DocumentNarratives
		agg.Source = SourceDocument
	case firstImageNarrative != "":
		agg.FinalContent = firstImageNarrative
		agg.Source = SourceImage
	default:
		agg.FinalContent = ContentPlaceholder
		agg.Source = SourcePlaceholder
	}

	return agg
}
