package handler

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/SharangSharma09/Draftly/internal/action"
	"github.com/SharangSharma09/Draftly/internal/adapter"
	"github.com/SharangSharma09/Draftly/internal/history"
	"github.com/SharangSharma09/Draftly/internal/metrics"
	"github.com/SharangSharma09/Draftly/internal/orchestrator"
	"github.com/SharangSharma09/Draftly/internal/registry"
	"github.com/SharangSharma09/Draftly/internal/selection"
)

// DefaultMaxTextLength bounds the text field, in characters.
const DefaultMaxTextLength = 10000

//go:embed schema/transform.json
var transformSchemaJSON []byte

var transformSchema = mustCompileSchema("transform.json", transformSchemaJSON)

func mustCompileSchema(name string, data []byte) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		panic(fmt.Sprintf("handler: add schema %s: %v", name, err))
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("handler: compile schema %s: %v", name, err))
	}
	return schema
}

// Transformer runs a single transform request.
type Transformer interface {
	Transform(ctx context.Context, req orchestrator.Request) (string, error)
}

// TransformOptions configures the transform endpoint.
type TransformOptions struct {
	MaxTextLength int
	// History records successful results when non-nil.
	History *history.Recorder
}

type transformRequest struct {
	Text        string           `json:"text"`
	Action      action.Action    `json:"action"`
	Model       registry.Model   `json:"model"`
	EmojiOption string           `json:"emojiOption"`
	Selection   *selection.Range `json:"selection,omitempty"`
}

type transformResponse struct {
	Transformed string            `json:"transformed"`
	Model       registry.Model    `json:"model"`
	Provider    registry.Provider `json:"provider"`
	ElapsedMs   int64             `json:"elapsed_ms"`
	Selection   *selection.Range  `json:"selection,omitempty"`
}

// Transform serves POST /api/transform.
func Transform(t Transformer, opts TransformOptions) http.HandlerFunc {
	maxLen := opts.MaxTextLength
	if maxLen <= 0 {
		maxLen = DefaultMaxTextLength
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "invalid_request", "could not read request body")
			return
		}

		var raw any
		if err := json.Unmarshal(body, &raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}

		if details, ok := missingParams(raw); !ok {
			writeErrorDetails(w, http.StatusBadRequest, "missing_parameters", "Missing required parameters", details)
			return
		}

		if err := transformSchema.Validate(raw); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", schemaMessage(err))
			return
		}

		var req transformRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return
		}

		if n := utf8.RuneCountInString(req.Text); n > maxLen {
			writeError(w, http.StatusBadRequest, "text_too_long", fmt.Sprintf("text too long: %d characters (max %d)", n, maxLen))
			return
		}

		if !registry.Known(req.Model) && !registry.IsPlaceholder(req.Model) {
			writeError(w, http.StatusBadRequest, string(adapter.KindInvalidModel), fmt.Sprintf("unknown model: %s", req.Model))
			return
		}

		emojiOpt, err := action.ParseEmojiOption(req.EmojiOption)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}

		scoped := req.Selection != nil && !req.Selection.Empty()
		parts := selection.Parts{Selected: req.Text}
		if scoped {
			parts, err = selection.Split(req.Text, *req.Selection)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_selection", err.Error())
				return
			}
			// A blank selection transforms to "", which must not erase it.
			if strings.TrimSpace(parts.Selected) == "" {
				writeJSON(w, transformResponse{
					Transformed: req.Text,
					Model:       req.Model,
					Provider:    registry.ResolveProvider(req.Model),
					Selection:   req.Selection,
				})
				return
			}
		}

		metrics.InputChars.Observe(float64(utf8.RuneCountInString(parts.Selected)))

		start := time.Now()
		out, err := t.Transform(r.Context(), orchestrator.Request{
			Text:   parts.Selected,
			Action: req.Action,
			Model:  req.Model,
			Emoji:  emojiOpt,
		})
		elapsed := time.Since(start)

		if err != nil {
			code := statusFor(err)
			writeError(w, code, string(adapter.KindOf(err)), err.Error())
			return
		}

		resp := transformResponse{
			Transformed: parts.Join(out),
			Model:       req.Model,
			Provider:    registry.ResolveProvider(req.Model),
			ElapsedMs:   elapsed.Milliseconds(),
		}
		if scoped {
			replaced := parts.Replaced(out)
			resp.Selection = &replaced
		}

		if opts.History != nil && out != "" {
			if _, err := opts.History.Record(r.Context(), req.Action, resp.Transformed); err != nil {
				slog.Warn("history record failed", "error", err)
			}
		}

		writeJSON(w, resp)
	}
}

// missingParams reports per-field presence of text, action and model.
func missingParams(raw any) (map[string]string, bool) {
	obj, _ := raw.(map[string]any)
	details := make(map[string]string, 3)
	ok := true
	for _, field := range []string{"text", "action", "model"} {
		s, isString := obj[field].(string)
		if obj[field] == nil || (isString && s == "") {
			details[field] = "missing"
			ok = false
			continue
		}
		details[field] = "ok"
	}
	return details, ok
}

func schemaMessage(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	leaf := ve
	for len(leaf.Causes) > 0 {
		leaf = leaf.Causes[0]
	}
	if leaf.InstanceLocation == "" {
		return leaf.Message
	}
	return fmt.Sprintf("%s: %s", leaf.InstanceLocation, leaf.Message)
}

// statusFor maps a transform failure to an HTTP status.
func statusFor(err error) int {
	var e *adapter.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case adapter.KindInvalidModel:
		return http.StatusBadRequest
	case adapter.KindMissingCredential:
		return http.StatusUnauthorized
	case adapter.KindProviderError:
		if e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden {
			return http.StatusUnauthorized
		}
	}
	return http.StatusInternalServerError
}
