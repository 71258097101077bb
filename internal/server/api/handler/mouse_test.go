package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quill-input/quill/apiclient"
	"github.com/quill-input/quill/internal/server/api"
	"github.com/quill-input/quill/internal/server/api/handler"
	handlerTest "github.com/quill-input/quill/internal/testing"
)

func startMouseServer(t *testing.T, inj *fakeInjector) (string, func()) {
	t.Helper()
	return handlerTest.StartAPIServer(t, func(r *api.Router, apiSrv *api.Server) {
		r.Register("mouse/move", handler.MouseMove(inj))
		r.Register("mouse/button", handler.MouseButton(inj))
		r.Register("mouse/scroll", handler.MouseScroll(inj))
	})
}

func TestMouseMove(t *testing.T) {
	tests := []struct {
		name             string
		inj              *fakeInjector
		payload          any
		expectedResponse string
		expectedMoves    []string
	}{
		{
			name:             "relative move",
			inj:              &fakeInjector{x: 100, y: 100},
			payload:          `{"x":10,"y":-5}`,
			expectedResponse: `{"x":110,"y":95}`,
			expectedMoves:    []string{"rel:10,-5"},
		},
		{
			name:             "absolute move",
			inj:              &fakeInjector{},
			payload:          `{"x":640,"y":480,"absolute":true}`,
			expectedResponse: `{"x":640,"y":480}`,
			expectedMoves:    []string{"abs:640,480"},
		},
		{
			name:             "no location support echoes request",
			inj:              &fakeInjector{noLoc: true},
			payload:          `{"x":3,"y":4}`,
			expectedResponse: `{"x":3,"y":4}`,
			expectedMoves:    []string{"rel:3,4"},
		},
		{
			name:             "malformed payload",
			inj:              &fakeInjector{},
			payload:          "sideways",
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"invalid request: invalid character 's' looking for beginning of value"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, done := startMouseServer(t, tt.inj)
			defer done()
			c := apiclient.NewTransport(addr)
			line, err := c.Do("mouse/move", tt.payload, nil)
			assert.NoError(t, err)
			assert.JSONEq(t, tt.expectedResponse, line)
			assert.Equal(t, tt.expectedMoves, tt.inj.moves)
		})
	}
}

func TestMouseButton(t *testing.T) {
	tests := []struct {
		name             string
		payload          any
		expectedResponse string
		expectedButtons  []string
	}{
		{
			name:             "plain name defaults to click",
			payload:          "right",
			expectedResponse: `{"button":"right","direction":"click"}`,
			expectedButtons:  []string{"right:click"},
		},
		{
			name:             "json press",
			payload:          `{"button":"left","direction":"press"}`,
			expectedResponse: `{"button":"left","direction":"press"}`,
			expectedButtons:  []string{"left:press"},
		},
		{
			name:             "empty payload means left click",
			payload:          nil,
			expectedResponse: `{"button":"left","direction":"click"}`,
			expectedButtons:  []string{"left:click"},
		},
		{
			name:             "unknown button",
			payload:          "thumb2",
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"unknown button \"thumb2\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inj := &fakeInjector{}
			addr, done := startMouseServer(t, inj)
			defer done()
			c := apiclient.NewTransport(addr)
			line, err := c.Do("mouse/button", tt.payload, nil)
			assert.NoError(t, err)
			assert.JSONEq(t, tt.expectedResponse, line)
			assert.Equal(t, tt.expectedButtons, inj.buttons)
		})
	}
}

func TestMouseScroll(t *testing.T) {
	tests := []struct {
		name             string
		payload          any
		expectedResponse string
		expectedScrolls  []string
	}{
		{
			name:             "vertical default",
			payload:          `{"amount":3}`,
			expectedResponse: `{"steps":3}`,
			expectedScrolls:  []string{"0:3"},
		},
		{
			name:             "horizontal negative",
			payload:          `{"axis":"horizontal","amount":-2}`,
			expectedResponse: `{"steps":-2}`,
			expectedScrolls:  []string{"1:-2"},
		},
		{
			name:             "zero amount",
			payload:          `{"amount":0}`,
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"zero scroll amount"}`,
		},
		{
			name:             "unknown axis",
			payload:          `{"axis":"diagonal","amount":1}`,
			expectedResponse: `{"status":400,"title":"Bad Request","detail":"unknown axis \"diagonal\""}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inj := &fakeInjector{}
			addr, done := startMouseServer(t, inj)
			defer done()
			c := apiclient.NewTransport(addr)
			line, err := c.Do("mouse/scroll", tt.payload, nil)
			assert.NoError(t, err)
			assert.JSONEq(t, tt.expectedResponse, line)
			assert.Equal(t, tt.expectedScrolls, inj.scrolls)
		})
	}
}
