package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/joseph-ayodele/journal-capture/constants"
	"github.com/joseph-ayodele/journal-capture/internal/capture"
	"github.com/joseph-ayodele/journal-capture/internal/classify"
	"github.com/joseph-ayodele/journal-capture/internal/common"
	"github.com/joseph-ayodele/journal-capture/internal/compose"
	"github.com/joseph-ayodele/journal-capture/internal/pipeline"
)

const maxCaptureBodySize = 64 << 20 // 64MB across all parts

// Deps wires the capture handler to the pipeline.
type Deps struct {
	Processor *pipeline.Processor
	Token     string // empty disables auth
	Logger    *slog.Logger
}

// NewHandler builds the capture API router.
func NewHandler(deps Deps) http.Handler {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Get("/healthz", handleHealth)
	r.Route("/v1", func(r chi.Router) {
		if deps.Token != "" {
			r.Use(BearerAuth(deps.Token))
		}
		r.Post("/capture", handleCapture(deps))
	})
	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCapture runs one submission through the pipeline. Multipart form:
// "text", "entry_type", "entry_type_source", "metadata" (JSON object), and
// any number of file parts named "attachments".
func handleCapture(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxCaptureBodySize)
		if err := r.ParseMultipartForm(maxCaptureBodySize); err != nil {
			httpError(w, http.StatusBadRequest, "BAD_REQUEST", "could not parse multipart form")
			return
		}

		choice, err := parseTypeChoice(r.FormValue("entry_type"), r.FormValue("entry_type_source"))
		if err != nil {
			httpError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
			return
		}
		req := pipeline.Request{
			UserText:   r.FormValue("text"),
			TypeChoice: choice,
		}

		if meta := r.FormValue("metadata"); meta != "" {
			var m compose.Metadata
			if err := json.Unmarshal([]byte(meta), &m); err != nil {
				httpError(w, http.StatusBadRequest, "BAD_REQUEST", "metadata must be a JSON object")
				return
			}
			req.Metadata = m
		}

		reg := capture.NewRegistry(deps.Logger)
		if r.MultipartForm != nil {
			for _, fh := range r.MultipartForm.File["attachments"] {
				f, err := fh.Open()
				if err != nil {
					httpError(w, http.StatusBadRequest, "BAD_REQUEST", "could not read attachment "+fh.Filename)
					return
				}
				data, err := io.ReadAll(f)
				_ = f.Close()
				if err != nil {
					httpError(w, http.StatusBadRequest, "BAD_REQUEST", "could not read attachment "+fh.Filename)
					return
				}
				if _, err := reg.Register(fh.Filename, fh.Header.Get("Content-Type"), data); err != nil {
					// Input errors reject the submission before orchestration.
					httpError(w, common.HTTPStatus(err), common.ErrorCode(err), err.Error())
					return
				}
			}
		}

		draft, err := deps.Processor.Run(r.Context(), reg, req)
		if err != nil {
			if errors.Is(err, common.ErrInvariantViolation) {
				deps.Logger.Error("capture.invariant_violation", "error", err)
			}
			httpError(w, common.HTTPStatus(err), common.ErrorCode(err), err.Error())
			return
		}

		writeJSON(w, http.StatusOK, draft)
	}
}

// parseTypeChoice maps the form fields onto the tri-state type choice. A
// provided entry_type defaults to an explicit user pick; the UI sends
// source=attachment when it pre-filled the field from a suggestion. An
// unrecognized entry_type is rejected rather than folded into the default.
func parseTypeChoice(rawType, rawSource string) (classify.TypeChoice, error) {
	rawType = strings.TrimSpace(rawType)
	if rawType == "" {
		return classify.TypeChoice{Source: classify.ChoiceNone}, nil
	}
	t, ok := constants.CanonicalEntryType(rawType)
	if !ok {
		return classify.TypeChoice{}, fmt.Errorf("unknown entry type %q", rawType)
	}
	source := classify.ChoiceUser
	if strings.EqualFold(strings.TrimSpace(rawSource), string(classify.ChoiceAttachment)) {
		source = classify.ChoiceAttachment
	}
	return classify.TypeChoice{Source: source, Type: t}, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}
