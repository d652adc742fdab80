package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/journal-capture/internal/capture"
	"github.com/joseph-ayodele/journal-capture/internal/classify"
	"github.com/joseph-ayodele/journal-capture/internal/common"
	"github.com/joseph-ayodele/journal-capture/internal/compose"
)

// Request is one user submission: the running text, the tri-state type
// choice from the input UI, and the opaque capture metadata.
type Request struct {
	UserText   string
	TypeChoice classify.TypeChoice
	Metadata   compose.Metadata
}

// Processor coordinates extraction, aggregation, resolution and assembly.
type Processor struct {
	Orchestrator *Orchestrator
	Resolver     *classify.Resolver
	Logger       *slog.Logger
}

func NewProcessor(orch *Orchestrator, resolver *classify.Resolver, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{Orchestrator: orch, Resolver: resolver, Logger: logger}
}

// Run executes the capture pipeline once for the registry's attachments.
// Empty submissions are rejected before any extraction is attempted; every
// later failure degrades into a less-enriched draft instead of an error.
func (p *Processor) Run(ctx context.Context, reg *capture.Registry, req Request) (*compose.Draft, error) {
	attachments := reg.List()

	if strings.TrimSpace(req.UserText) == "" && len(attachments) == 0 {
		p.Logger.Warn("processor.rejected.empty_submission")
		return nil, common.NewAppError("EMPTY_SUBMISSION",
			"a capture needs text or at least one attachment", common.ErrEmptySubmission)
	}

	results := p.Orchestrator.Run(ctx, attachments, req.UserText)

	succeeded := 0
	for _, res := range results {
		if res.Succeeded() {
			succeeded++
		}
	}
	p.Logger.Info("processor.extract.settled",
		"attachments", len(attachments),
		"succeeded", succeeded,
		"failed", len(attachments)-succeeded,
	)

	agg := Aggregate(req.UserText, results)
	p.Logger.Info("processor.aggregate.ok",
		"source", string(agg.Source),
		"content_len", len(agg.FinalContent),
		"document_context_len", len(agg.DocumentNarratives),
	)

	resolution := p.Resolver.Resolve(ctx, req.TypeChoice, FirstSuggestedType(results), agg.FinalContent, agg.DocumentNarratives)

	draft, err := compose.Assemble(
		agg.FinalContent,
		resolution,
		Gallery(attachments, results),
		CollectTags(results),
		req.Metadata,
	)
	if err != nil {
		p.Logger.Error("processor.assemble.failed", "error", err)
		return nil, err
	}

	p.Logger.Info("processor.draft.ok",
		"entry_type", string(draft.EntryType),
		"category", string(draft.Category),
		"images", len(draft.Images),
		"tags", len(draft.Tags),
	)
	return draft, nil
}
