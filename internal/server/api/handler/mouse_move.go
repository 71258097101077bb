package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quill-input/quill"
	"github.com/quill-input/quill/apitypes"
	"github.com/quill-input/quill/internal/server/api"
	"github.com/quill-input/quill/keymap"
)

// MouseMove returns a handler that moves the pointer. Relative by default,
// absolute when the request says so.
func MouseMove(m quill.Mouse) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		var mr apitypes.MouseMoveRequest
		if err := json.Unmarshal([]byte(req.Payload), &mr); err != nil {
			return api.ErrBadRequest(fmt.Sprintf("invalid request: %v", err))
		}

		var err error
		if mr.Absolute {
			err = m.MoveAbs(mr.X, mr.Y)
		} else {
			err = m.MoveRel(mr.X, mr.Y)
		}
		if err != nil {
			return api.ErrInternal(fmt.Sprintf("move pointer: %v", err))
		}

		// Not every backend can read the pointer back; echo the request then.
		x, y, err := m.Location()
		if errors.Is(err, keymap.ErrUnsupported) {
			x, y = mr.X, mr.Y
		} else if err != nil {
			return api.ErrInternal(fmt.Sprintf("query pointer: %v", err))
		}

		out, err := json.Marshal(apitypes.MouseMoveResponse{X: x, Y: y})
		if err != nil {
			return api.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(out)
		return nil
	}
}
