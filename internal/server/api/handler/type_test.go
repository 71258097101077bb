package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quill-input/quill/apiclient"
	"github.com/quill-input/quill/internal/server/api"
	"github.com/quill-input/quill/internal/server/api/handler"
	handlerTest "github.com/quill-input/quill/internal/testing"
)

func TestType(t *testing.T) {
	tests := []struct {
		name             string
		payload          any
		expectedResponse string
		expectedTyped    []string
	}{
		{
			name:             "plain text",
			payload:          "hello",
			expectedResponse: `{"typed":5}`,
			expectedTyped:    []string{"hello"},
		},
		{
			name:             "json request",
			payload:          `{"text":"héllo"}`,
			expectedResponse: `{"typed":5}`,
			expectedTyped:    []string{"héllo"},
		},
		{
			name:             "empty text",
			payload:          nil,
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"empty text"}`,
		},
		{
			name:             "malformed json",
			payload:          `{"text":`,
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"invalid request: unexpected end of JSON input"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inj := &fakeInjector{}
			addr, done := handlerTest.StartAPIServer(t, func(r *api.Router, apiSrv *api.Server) {
				r.Register("type", handler.Type(inj))
			})
			defer done()
			c := apiclient.NewTransport(addr)
			line, err := c.Do("type", tt.payload, nil)
			assert.NoError(t, err)
			assert.JSONEq(t, tt.expectedResponse, line)
			assert.Equal(t, tt.expectedTyped, inj.typed)
		})
	}
}
