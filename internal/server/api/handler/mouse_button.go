package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quill-input/quill"
	"github.com/quill-input/quill/apitypes"
	"github.com/quill-input/quill/input"
	"github.com/quill-input/quill/internal/server/api"
)

// MouseButton returns a handler that presses, releases or clicks a mouse
// button. The payload is either a JSON MouseButtonRequest or the bare
// button name; the direction defaults to click.
func MouseButton(m quill.Mouse) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		name := req.Payload
		direction := ""
		if strings.HasPrefix(strings.TrimSpace(req.Payload), "{") {
			var br apitypes.MouseButtonRequest
			if err := json.Unmarshal([]byte(req.Payload), &br); err != nil {
				return api.ErrBadRequest(fmt.Sprintf("invalid request: %v", err))
			}
			name = br.Button
			direction = br.Direction
		}

		btn, err := input.ParseButton(name)
		if err != nil {
			return api.ErrBadRequest(err.Error())
		}
		dir, err := input.ParseDirection(direction)
		if err != nil {
			return api.ErrBadRequest(err.Error())
		}

		if err := m.Button(btn, dir); err != nil {
			return api.ErrInternal(fmt.Sprintf("button %s: %v", btn, err))
		}
		out, err := json.Marshal(apitypes.MouseButtonResponse{Button: btn.String(), Direction: dir.String()})
		if err != nil {
			return api.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(out)
		return nil
	}
}
