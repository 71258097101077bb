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
	"github.com/quill-input/quill/key"
)

// Key returns a handler that presses, releases or clicks one key. The
// {action} route parameter selects the direction; the payload is either a
// JSON KeyRequest or the bare key name.
func Key(kb quill.Keyboard) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		action, ok := req.Params["action"]
		if !ok {
			return api.ErrBadRequest("missing action parameter")
		}
		dir, err := input.ParseDirection(action)
		if err != nil {
			return api.ErrBadRequest(err.Error())
		}

		name := req.Payload
		if strings.HasPrefix(strings.TrimSpace(req.Payload), "{") {
			var kr apitypes.KeyRequest
			if err := json.Unmarshal([]byte(req.Payload), &kr); err != nil {
				return api.ErrBadRequest(fmt.Sprintf("invalid request: %v", err))
			}
			name = kr.Key
		}
		k, err := key.Parse(name)
		if err != nil {
			return api.ErrBadRequest(err.Error())
		}

		if err := kb.Key(k, dir); err != nil {
			return api.ErrInternal(fmt.Sprintf("key %s: %v", name, err))
		}
		out, err := json.Marshal(apitypes.KeyResponse{Key: name, Direction: dir.String()})
		if err != nil {
			return api.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(out)
		return nil
	}
}
