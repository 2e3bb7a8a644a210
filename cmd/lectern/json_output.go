package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"lectern/internal/classifier"
	"lectern/internal/services"
	"lectern/internal/services/llm"
	"lectern/internal/transcript"
)

// errReported marks a failure whose JSON error object was already written.
var errReported = errors.New("error already reported")

type errorPayload struct {
	Error  string `json:"error"`
	Stage  string `json:"stage,omitempty"`
	Kind   string `json:"kind,omitempty"`
	Status int    `json:"status,omitempty"`
}

// execute runs the command tree under ctx and renders any failure as a single
// JSON error object on stdout.
func execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err == nil || errors.Is(err, errReported) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	_ = writeJSONTo(cmd.OutOrStdout(), failurePayload("", err))
	return err
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	return writeJSONTo(cmd.OutOrStdout(), v)
}

func writeJSONTo(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// reportFailure writes the error object for err with its stage and kind and
// returns errReported so execute stays quiet.
func reportFailure(cmd *cobra.Command, stage string, err error) error {
	payload := failurePayload(stage, err)
	if werr := writeJSON(cmd, payload); werr != nil {
		return werr
	}
	return errReported
}

func failurePayload(stage string, err error) errorPayload {
	payload := errorPayload{Error: errorMessage(err), Stage: stage}
	if kind := services.KindOf(err); kind != services.KindUnknown {
		payload.Kind = string(kind)
	}
	if code, ok := services.StatusCode(err); ok {
		payload.Status = code
	}
	return payload
}

// errorMessage picks the most user-facing text in err's chain.
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	var terr *transcript.Error
	if errors.As(err, &terr) {
		return terr.Error()
	}
	var statusErr *llm.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	if services.KindOf(err) == services.KindInputShape {
		return classifier.InputMessage(err)
	}
	return err.Error()
}
