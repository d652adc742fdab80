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

// ImageClient calls the external image extraction service. It implements
// ImageExtractor.
type ImageClient struct {
	cfg  common.ServiceConfig
	http *http.Client
	log  *slog.Logger
}

func NewImageClient(cfg common.ServiceConfig, logger *slog.Logger) *ImageClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImageClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

type imageResponse struct {
	Narrative          string         `json:"narrative"`
	StructuredData     map[string]any `json:"structured_data"`
	SuggestedEntryType string         `json:"suggested_entry_type"`
	SuggestedTags      []string       `json:"suggested_tags"`
}

func (c *ImageClient) ExtractImage(ctx context.Context, att *capture.Attachment, userText string) (Result, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.log.Info("extract.image.start",
		"req_id", rid,
		"attachment_id", att.ID,
		"input_index", att.InputIndex,
		"format", att.Format,
		"size", att.Size,
		"user_text_len", len(userText),
	)

	body := map[string]any{
		"image_base64":      base64.StdEncoding.EncodeToString(att.Data),
		"mime_type":         att.MIMEType,
		"user_text_context": userText,
	}

	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	raw, _, err := SendJSON(ctx, c.http, c.cfg.URL, body, c.cfg.APIKey, c.log)
	if err != nil {
		c.log.Error("extract.image.http_error",
			"req_id", rid, "attachment_id", att.ID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{}, err
	}

	var resp imageResponse
	dropped, err := decodeValidated(ImageResponseSchema(), raw, &resp)
	if err != nil {
		c.log.Error("extract.image.schema_validation_failed",
			"req_id", rid, "attachment_id", att.ID, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{}, err
	}
	if len(dropped) > 0 {
		c.log.Warn("extract.image.lenient_sanitize_applied", "req_id", rid, "dropped", dropped)
	}

	suggested := constants.EntryType("")
	if t, ok := constants.CanonicalEntryType(resp.SuggestedEntryType); ok {
		suggested = t
	}

	c.log.Info("extract.image.ok",
		"req_id", rid,
		"attachment_id", att.ID,
		"narrative_len", len(resp.Narrative),
		"suggested_entry_type", string(suggested),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	return Result{
		InputIndex:         att.InputIndex,
		Kind:               att.Kind,
		Status:             StatusSuccess,
		Narrative:          resp.Narrative,
		StructuredData:     resp.StructuredData,
		SuggestedEntryType: suggested,
		SuggestedTags:      resp.SuggestedTags,
	}, nil
}
