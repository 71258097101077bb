package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/quill-input/quill"
	"github.com/quill-input/quill/apitypes"
	"github.com/quill-input/quill/internal/server/api"
)

// Status returns a handler that reports the backend name and the bound and
// held counts of its keycode ledger.
func Status(inj quill.Injector) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		st := inj.Status()
		out, err := json.Marshal(apitypes.StatusResponse{
			Backend: st.Backend,
			Bound:   st.Bound,
			Held:    st.Held,
		})
		if err != nil {
			return api.ErrInternal(fmt.Sprintf("failed to marshal response: %v", err))
		}
		res.JSON = string(out)
		return nil
	}
}
