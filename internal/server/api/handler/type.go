package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/quill-input/quill"
	"github.com/quill-input/quill/apitypes"
	"github.com/quill-input/quill/internal/server/api"
)

// Type returns a handler that types text on the host keyboard. The payload
// is either a JSON TypeRequest or the literal text to type.
func Type(kb quill.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		text := req.Payload
		if strings.HasPrefix(strings.TrimSpace(req.Payload), "{") {
			var tr apitypes.TypeRequest
			if err := json.Unmarshal([]byte(req.Payload), &tr); err != nil {
				return api.ErrBadRequest(fmt.Sprintf("invalid request: %v", err))
			}
			text = tr.Text
		}
		if text == "" {
			return api.ErrBadRequest("empty text")
		}
		if err := kb.Text(text); err != nil {
			return api.ErrInternal(fmt.Sprintf("type text: %v", err))
		}
		out, err := json.Marshal(apitypes.TypeResponse{Typed: utf8.RuneCountInString(text)})
		if err != nil {
			return api.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(out)
		return nil
	}
}
