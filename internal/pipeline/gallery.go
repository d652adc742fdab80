package pipeline

import (
	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/capture"
	"github.com/joseph-ayodele/journal-capture/internal/compose"
	"github.com/joseph-ayodele/journal-capture/internal/extract"
)

// Gallery builds the entry gallery from successful extractions, in input
// order. The first successful image is the poster; when no image succeeded,
// the first successful document joins the gallery as its poster element so
// the entry still has a representative thumbnail. results[i] must be the
// outcome for attachments[i].
func Gallery(attachments []*capture.Attachment, results []extract.Result) []compose.EntryImage {
	var gallery []compose.EntryImage
	posterSet := false

	for i, res := range results {
		if i >= len(attachments) || !res.Succeeded() || res.Kind != constants.KindImage {
			continue
		}
		img := compose.EntryImage{
			URL:           attachments[i].URL,
			ExtractedData: res.StructuredData,
			Order:         attachments[i].InputIndex,
		}
		if !posterSet {
			img.IsPoster = true
			posterSet = true
		}
		gallery = append(gallery, img)
	}

	if !posterSet {
		for i, res := range results {
			if i >= len(attachments) || !res.Succeeded() || res.Kind != constants.KindDocument {
				continue
			}
			gallery = append(gallery, compose.EntryImage{
				URL:           attachments[i].URL,
				ExtractedData: res.StructuredData,
				IsPoster:      true,
				Order:         attachments[i].InputIndex,
			})
			break
		}
	}

	return gallery
}
