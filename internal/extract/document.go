package extract

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/capture"
	"github.com/joseph-ayodele/journal-capture/internal/common"
)

// DocumentClient calls the external document extraction service after a
// local text-prep pass. It implements DocumentExtractor.
type DocumentClient struct {
	cfg  common.ServiceConfig
	http *http.Client
	log  *slog.Logger
}

func NewDocumentClient(cfg common.ServiceConfig, logger *slog.Logger) *DocumentClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

type documentResponse struct {
	ExtractedText    string   `json:"extracted_text"`
	DetectedFileType string   `json:"detected_file_type"`
	SuggestedTags    []string `json:"suggested_tags"`
}

func (c *DocumentClient) ExtractDocument(ctx context.Context, att *capture.Attachment) (Result, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("extract.document.start",
		"req_id", rid,
		"attachment_id", att.ID,
		"input_index", att.InputIndex,
		"format", att.Format,
		"size", att.Size,
	)

	// Local prep first; failure is logged, not fatal — the service still
	// gets the raw bytes.
	prep, prepErr := PrepareText(att)
	if prepErr != nil {
		c.log.Warn("extract.document.prep_failed",
			"req_id", rid, "attachment_id", att.ID, "format", att.Format, "error", prepErr)
	} else if prep.Text != "" {
		c.log.Info("extract.document.prep_ok",
			"req_id", rid, "attachment_id", att.ID, "method", prep.Method,
			"pages", prep.Pages, "text_len", len(prep.Text))
	}

	body := map[string]any{
		"document_base64": base64.StdEncoding.EncodeToString(att.Data),
		"mime_type":       att.MIMEType,
		"file_name":       att.FileName,
	}
	if prep.Text != "" {
		body["prepared_text"] = prep.Text
		body["prepared_method"] = prep.Method
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	raw, _, err := SendJSON(ctx, c.http, c.cfg.URL, body, c.cfg.APIKey, c.log)
	if err != nil {
		c.log.Error("extract.document.http_error",
			"req_id", rid, "attachment_id", att.ID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{}, err
	}

	var resp documentResponse
	dropped, err := decodeValidated(DocumentResponseSchema(), raw, &resp)
	if err != nil {
		c.log.Error("extract.document.schema_validation_failed",
			"req_id", rid, "attachment_id", att.ID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{}, err
	}
	if len(dropped) > 0 {
		c.log.Warn("extract.document.lenient_sanitize_applied", "req_id", rid, "dropped", dropped)
	}

	suggested := constants.SuggestionForDetectedType(resp.DetectedFileType)

	c.log.Info("extract.document.ok",
		"req_id", rid,
		"attachment_id", att.ID,
		"text_len", len(resp.ExtractedText),
		"detected_file_type", resp.DetectedFileType,
		"suggested_entry_type", string(suggested),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return Result{
		InputIndex:         att.InputIndex,
		Kind:               att.Kind,
		Status:             StatusSuccess,
		Narrative:          resp.ExtractedText,
		SuggestedEntryType: suggested,
		SuggestedTags:      resp.SuggestedTags,
		DetectedFileType:   resp.DetectedFileType,
	}, nil
}
