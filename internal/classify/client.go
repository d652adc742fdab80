package classify

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/common"
	"github.com/joseph-ayodele/journal-capture/internal/extract"
)

// Classifier determines an entry type and category from content. The
// document context is the joined document narratives, passed as auxiliary
// signal distinct from the user's own words.
type Classifier interface {
	Classify(ctx context.Context, content, documentContext string) (constants.EntryType, constants.Category, error)
}

// Client calls the external content classification service.
type Client struct {
	cfg  common.ServiceConfig
	tax  Taxonomy
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg common.ServiceConfig, tax Taxonomy, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if len(tax.EntryTypes) == 0 || len(tax.Categories) == 0 {
		tax = DefaultTaxonomy()
	}
	return &Client{
		cfg:  cfg,
		tax:  tax,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

func responseSchema(tax Taxonomy) map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"entry_type": map[string]any{"type": "string", "enum": tax.EntryTypes},
			"category":   map[string]any{"type": "string", "enum": tax.Categories},
		},
		"required": []string{"entry_type", "category"},
	}
}

type classifyResponse struct {
	EntryType string `json:"entry_type"`
	Category  string `json:"category"`
}

func (c *Client) Classify(ctx context.Context, content, documentContext string) (constants.EntryType, constants.Category, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("classify.start",
		"req_id", rid,
		"content_len", len(content),
		"document_context_len", len(documentContext),
	)

	body := map[string]any{
		"content":     content,
		"entry_types": c.tax.EntryTypes,
		"categories":  c.tax.Categories,
	}
	if documentContext != "" {
		body["document_context"] = documentContext
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	raw, _, err := extract.SendJSON(ctx, c.http, c.cfg.URL, body, c.cfg.APIKey, c.log)
	if err != nil {
		c.log.Error("classify.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return "", "", err
	}

	schema := responseSchema(c.tax)
	if err := extract.ValidateJSONAgainstSchema(schema, raw); err != nil {
		cleaned, dropped, sErr := extract.DropUnknownFields(schema, raw)
		if sErr != nil || extract.ValidateJSONAgainstSchema(schema, cleaned) != nil {
			c.log.Error("classify.schema_validation_failed",
				"req_id", rid, "error", err,
				"elapsed_ms", time.Since(start).Milliseconds(),
			)
			return "", "", err
		}
		c.log.Warn("classify.lenient_sanitize_applied", "req_id", rid, "dropped", dropped)
		raw = cleaned
	}

	var resp classifyResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		c.log.Error("classify.decode_error", "req_id", rid, "error", err)
		return "", "", err
	}

	// Schema already pinned both values to the taxonomy; canonicalization
	// only folds casing/synonyms for the built-in vocabulary.
	entryType, ok := constants.CanonicalEntryType(resp.EntryType)
	if !ok && resp.EntryType != "" {
		entryType = constants.EntryType(resp.EntryType)
	}
	category, ok := constants.CanonicalCategory(resp.Category)
	if !ok && resp.Category != "" {
		category = constants.Category(resp.Category)
	}

	c.log.Info("classify.ok",
		"req_id", rid,
		"entry_type", string(entryType),
		"category", string(category),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return entryType, category, nil
}
