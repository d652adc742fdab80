package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/capture"
	"github.com/joseph-ayodele/journal-capture/internal/classify"
	"github.com/joseph-ayodele/journal-capture/internal/common"
	"github.com/joseph-ayodele/journal-capture/internal/extract"
)

type mockClassifier struct {
	entryType constants.EntryType
	category  constants.Category
	err       error
}

func (m *mockClassifier) Classify(ctx context.Context, content, documentContext string) (constants.EntryType, constants.Category, error) {
	if m.err != nil {
		return "", "", m.err
	}
	return m.entryType, m.category, nil
}

func newTestProcessor(images extract.ImageExtractor, docs extract.DocumentExtractor, cls classify.Classifier) *Processor {
	return NewProcessor(
		NewOrchestrator(images, docs, nil),
		classify.NewResolver(cls, nil),
		nil,
	)
}

func TestRunRejectsEmptySubmission(t *testing.T) {
	proc := newTestProcessor(
		&mockImageExtractor{fn: func(ctx context.Context, att *capture.Attachment, _ string) (extract.Result, error) {
			t.Fatal("extractor must not run for an empty submission")
			return extract.Result{}, nil
		}},
		&mockDocExtractor{fn: func(ctx context.Context, att *capture.Attachment) (extract.Result, error) {
			return extract.Result{}, nil
		}},
		&mockClassifier{entryType: constants.EntryNote, category: constants.Life},
	)

	_, err := proc.Run(context.Background(), capture.NewRegistry(nil), Request{UserText: "  "})
	if !errors.Is(err, common.ErrEmptySubmission) {
		t.Fatalf("err = %v, want ErrEmptySubmission", err)
	}
}

// Mirrors the two-image scenario: cat.png fails, receipt.jpg succeeds with a
// narrative and a suggested type; no user text, no override.
func TestRunFailedImagePlusSuccessfulImage(t *testing.T) {
	reg := registryWith(t, "cat.png", "receipt.jpg")

	images := &mockImageExtractor{fn: func(ctx context.Context, att *capture.Attachment, _ string) (extract.Result, error) {
		if att.InputIndex == 0 {
			return extract.Result{}, errors.New("vision timeout")
		}
		res := successImage(att, "Receipt from Store X, $12.50")
		res.SuggestedEntryType = constants.EntryNote
		res.StructuredData = map[string]any{"total": "12.50"}
		return res, nil
	}}
	docs := &mockDocExtractor{fn: func(ctx context.Context, att *capture.Attachment) (extract.Result, error) {
		return extract.Result{}, errors.New("unexpected document call")
	}}
	cls := &mockClassifier{entryType: constants.EntryLog, category: constants.Finance}

	draft, err := newTestProcessor(images, docs, cls).Run(context.Background(), reg, Request{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if draft.Content != "Receipt from Store X, $12.50" {
		t.Errorf("Content = %q", draft.Content)
	}
	// Attachment suggestion wins absent an explicit override.
	if draft.EntryType != constants.EntryNote {
		t.Errorf("EntryType = %s, want note", draft.EntryType)
	}
	if draft.TypeProvenance != classify.FromAttachment {
		t.Errorf("TypeProvenance = %s, want attachment", draft.TypeProvenance)
	}
	// Category still comes from the classification call.
	if draft.Category != constants.Finance {
		t.Errorf("Category = %s, want Finance", draft.Category)
	}

	if len(draft.Images) != 1 {
		t.Fatalf("Images = %d, want 1 (only the surviving image)", len(draft.Images))
	}
	img := draft.Images[0]
	if img.Order != 1 || !img.IsPoster {
		t.Errorf("image = %+v, want order 1 poster", img)
	}
	if img.ExtractedData["total"] != "12.50" {
		t.Errorf("ExtractedData = %v", img.ExtractedData)
	}
}

func TestRunExplicitOverrideOutranksSuggestion(t *testing.T) {
	reg := registryWith(t, "todo.pdf")

	docs := &mockDocExtractor{fn: func(ctx context.Context, att *capture.Attachment) (extract.Result, error) {
		return extract.Result{
			InputIndex:         att.InputIndex,
			Kind:               att.Kind,
			Status:             extract.StatusSuccess,
			Narrative:          "buy milk",
			DetectedFileType:   "task_list",
			SuggestedEntryType: constants.EntryNote,
		}, nil
	}}
	images := &mockImageExtractor{fn: func(ctx context.Context, att *capture.Attachment, _ string) (extract.Result, error) {
		return extract.Result{}, errors.New("unexpected image call")
	}}
	cls := &mockClassifier{entryType: constants.EntryIdea, category: constants.Home}

	req := Request{
		UserText:   "errands for tomorrow",
		TypeChoice: classify.TypeChoice{Source: classify.ChoiceUser, Type: constants.EntryAction},
	}
	draft, err := newTestProcessor(images, docs, cls).Run(context.Background(), reg, req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if draft.EntryType != constants.EntryAction {
		t.Errorf("EntryType = %s, want action", draft.EntryType)
	}
	if draft.TypeProvenance != classify.FromUser {
		t.Errorf("TypeProvenance = %s, want user", draft.TypeProvenance)
	}
	if draft.Content != "errands for tomorrow" {
		t.Errorf("Content = %q", draft.Content)
	}
}

func TestRunAllFailedFallsBackToPlaceholder(t *testing.T) {
	reg := registryWith(t, "a.jpg")

	images := &mockImageExtractor{fn: func(ctx context.Context, att *capture.Attachment, _ string) (extract.Result, error) {
		return extract.Result{}, errors.New("down")
	}}
	docs := &mockDocExtractor{fn: func(ctx context.Context, att *capture.Attachment) (extract.Result, error) {
		return extract.Result{}, errors.New("down")
	}}
	cls := &mockClassifier{err: errors.New("classifier down")}

	draft, err := newTestProcessor(images, docs, cls).Run(context.Background(), reg, Request{})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if draft.Content != ContentPlaceholder {
		t.Errorf("Content = %q, want placeholder", draft.Content)
	}
	// Fail-open defaults when classification is unreachable.
	if draft.EntryType != constants.DefaultEntryType || draft.Category != constants.DefaultCategory {
		t.Errorf("resolved %s/%s, want defaults", draft.EntryType, draft.Category)
	}
	if len(draft.Images) != 0 {
		t.Errorf("Images = %d, want 0", len(draft.Images))
	}
}

func TestRunPassesMetadataThrough(t *testing.T) {
	reg := capture.NewRegistry(nil)
	images := &mockImageExtractor{fn: func(ctx context.Context, att *capture.Attachment, _ string) (extract.Result, error) {
		return extract.Result{}, nil
	}}
	docs := &mockDocExtractor{fn: func(ctx context.Context, att *capture.Attachment) (extract.Result, error) {
		return extract.Result{}, nil
	}}
	cls := &mockClassifier{entryType: constants.EntryNote, category: constants.Life}

	meta := map[string]any{"device_class": "phone", "time_of_day": "morning"}
	draft, err := newTestProcessor(images, docs, cls).Run(context.Background(), reg, Request{
		UserText: "hello",
		Metadata: meta,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if draft.Metadata["device_class"] != "phone" || draft.Metadata["time_of_day"] != "morning" {
		t.Errorf("Metadata = %v", draft.Metadata)
	}
}
