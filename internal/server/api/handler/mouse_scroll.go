package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/quill-input/quill"
	"github.com/quill-input/quill/apitypes"
	"github.com/quill-input/quill/input"
	"github.com/quill-input/quill/internal/server/api"
)

// MouseScroll returns a handler that scrolls the wheel. Positive amounts
// scroll down (vertical) or right (horizontal).
func MouseScroll(m quill.Mouse) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		var sr apitypes.MouseScrollRequest
		if err := json.Unmarshal([]byte(req.Payload), &sr); err != nil {
			return api.ErrBadRequest(fmt.Sprintf("invalid request: %v", err))
		}
		axis, err := input.ParseAxis(sr.Axis)
		if err != nil {
			return api.ErrBadRequest(err.Error())
		}
		if sr.Amount == 0 {
			return api.ErrBadRequest("zero scroll amount")
		}

		if err := m.Scroll(axis, sr.Amount); err != nil {
			return api.ErrInternal(fmt.Sprintf("scroll: %v", err))
		}
		out, err := json.Marshal(apitypes.MouseScrollResponse{Steps: sr.Amount})
		if err != nil {
			return api.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(out)
		return nil
	}
}
