package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/capture"
	"github.com/joseph-ayodele/journal-capture/internal/extract"
)

// Orchestrator fans every attachment out to the matching extractor and
// collects the results. Concurrency is bounded by the attachment limit
// itself; no pool is needed.
type Orchestrator struct {
	Images    extract.ImageExtractor
	Documents extract.DocumentExtractor
	Log       *slog.Logger
}

func NewOrchestrator(images extract.ImageExtractor, documents extract.DocumentExtractor, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{Images: images, Documents: documents, Log: log}
}

// Run extracts all attachments concurrently and returns one result per
// attachment, ordered by input position regardless of completion order.
// Extractor failures are isolated: each converts to a failed result for
// that attachment only, and neither an error nor a panic escapes this
// method. Document parsing runs attacker-supplied bytes in-process, so a
// panicking parser must not take the submission down with it.
func (o *Orchestrator) Run(ctx context.Context, attachments []*capture.Attachment, userText string) []extract.Result {
	results := make([]extract.Result, len(attachments))

	g, ctx := errgroup.WithContext(ctx)
	for i, att := range attachments {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					o.Log.Error("orchestrator.extract.panic",
						"attachment_id", att.ID,
						"input_index", att.InputIndex,
						"kind", att.Kind,
						"file_name", att.FileName,
						"panic", r,
					)
					results[i] = extract.Failed(att, fmt.Errorf("extractor panic: %v", r))
				}
			}()
			var (
				res extract.Result
				err error
			)
			switch att.Kind {
			case constants.KindImage:
				res, err = o.Images.ExtractImage(ctx, att, userText)
			default:
				res, err = o.Documents.ExtractDocument(ctx, att)
			}
			if err != nil {
				o.Log.Warn("orchestrator.extract.failed",
					"attachment_id", att.ID,
					"input_index", att.InputIndex,
					"kind", att.Kind,
					"file_name", att.FileName,
					"error", err,
				)
				res = extract.Failed(att, err)
			}
			results[i] = res
			return nil
		})
	}
	// Workers only ever return nil; failures are folded into results.
	_ = g.Wait()

	return results
}

// FirstSuggestedType returns the entry type suggested by the first
// successful extraction, in input order, or "" when none suggested one.
func FirstSuggestedType(results []extract.Result) constants.EntryType {
	for _, res := range results {
		if res.Succeeded() && res.SuggestedEntryType != "" {
			return res.SuggestedEntryType
		}
	}
	return ""
}

// CollectTags gathers suggested tags from successful results, deduplicated
// in input order.
func CollectTags(results []extract.Result) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, res := range results {
		if !res.Succeeded() {
			continue
		}
		for _, tag := range res.SuggestedTags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}
