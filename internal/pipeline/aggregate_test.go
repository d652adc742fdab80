package pipeline

import (
	"testing"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/extract"
)

func docResult(index int, narrative string) extract.Result {
	return extract.Result{
		InputIndex: index,
		Kind:       constants.KindDocument,
		Status:     extract.StatusSuccess,
		Narrative:  narrative,
	}
}

func imgResult(index int, narrative string) extract.Result {
	return extract.Result{
		InputIndex: index,
		Kind:       constants.KindImage,
		Status:     extract.StatusSuccess,
		Narrative:  narrative,
	}
}

func failedResult(index int, kind constants.AttachmentKind) extract.Result {
	return extract.Result{InputIndex: index, Kind: kind, Status: extract.StatusFailed}
}

func TestAggregatePrecedence(t *testing.T) {
	tests := []struct {
		name        string
		userText    string
		results     []extract.Result
		wantContent string
		wantSource  ContentSource
	}{
		{
			name:        "user text wins over everything",
			userText:    "my own words",
			results:     []extract.Result{docResult(0, "doc text"), imgResult(1, "img text")},
			wantContent: "my own words",
			wantSource:  SourceUser,
		},
		{
			name:        "whitespace-only user text does not count",
			userText:    "   \n\t",
			results:     []extract.Result{docResult(0, "doc text")},
			wantContent: "doc text",
			wantSource:  SourceDocument,
		},
		{
			name:        "documents join with the delimiter",
			userText:    "",
			results:     []extract.Result{docResult(0, "first"), docResult(1, "second")},
			wantContent: "first\n\nsecond",
			wantSource:  SourceDocument,
		},
		{
			name:        "first image narrative when no text and no documents",
			userText:    "",
			results:     []extract.Result{imgResult(0, "cat on a sofa"), imgResult(1, "later image")},
			wantContent: "cat on a sofa",
			wantSource:  SourceImage,
		},
		{
			name:        "failed image skipped, next success used",
			userText:    "",
			results:     []extract.Result{failedResult(0, constants.KindImage), imgResult(1, "Receipt from Store X, $12.50")},
			wantContent: "Receipt from Store X, $12.50",
			wantSource:  SourceImage,
		},
		{
			name:        "placeholder when everything is empty",
			userText:    "",
			results:     []extract.Result{failedResult(0, constants.KindImage), failedResult(1, constants.KindDocument)},
			wantContent: ContentPlaceholder,
			wantSource:  SourcePlaceholder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := Aggregate(tt.userText, tt.results)
			if agg.FinalContent != tt.wantContent {
				t.Errorf("FinalContent = %q, want %q", agg.FinalContent, tt.wantContent)
			}
			if agg.Source != tt.wantSource {
				t.Errorf("Source = %s, want %s", agg.Source, tt.wantSource)
			}
		})
	}
}

func TestAggregateRetainsDocumentNarratives(t *testing.T) {
	results := []extract.Result{docResult(0, "ledger text"), imgResult(1, "photo text")}

	agg := Aggregate("typed text", results)
	if agg.FinalContent != "typed text" {
		t.Fatalf("FinalContent = %q", agg.FinalContent)
	}
	// Document text is kept for the classification stage even when user text won.
	if agg.DocumentNarratives != "ledger text" {
		t.Errorf("DocumentNarratives = %q, want %q", agg.DocumentNarratives, "ledger text")
	}
}

func TestAggregateIsPure(t *testing.T) {
	results := []extract.Result{docResult(0, "alpha"), docResult(1, "beta")}
	first := Aggregate("", results)
	for i := 0; i < 10; i++ {
		if got := Aggregate("", results); got != first {
			t.Fatalf("call %d differs: %+v vs %+v", i, got, first)
		}
	}
}
