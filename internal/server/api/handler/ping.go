package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/quill-input/quill/apitypes"
	"github.com/quill-input/quill/internal/server/api"
)

// Version is the server version reported by ping, overridden at build time.
var Version = "dev"

// Ping returns a handler that reports server identity and version.
func Ping() api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		out, err := json.Marshal(apitypes.PingResponse{Server: "quill", Version: Version})
		if err != nil {
			return api.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(out)
		return nil
	}
}
