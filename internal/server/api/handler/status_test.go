package handler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-input/quill/apiclient"
	"github.com/quill-input/quill/internal/server/api"
	"github.com/quill-input/quill/internal/server/api/handler"
	handlerTest "github.com/quill-input/quill/internal/testing"
)

func TestStatus(t *testing.T) {
	inj := &fakeInjector{}
	addr, done := handlerTest.StartAPIServer(t, func(r *api.Router, apiSrv *api.Server) {
		r.Register("status", handler.Status(inj))
	})
	defer done()

	c := apiclient.New(addr)
	st, err := c.Status()
	require.NoError(t, err)
	assert.Equal(t, "fake", st.Backend)
	assert.Equal(t, 3, st.Bound)
	assert.Equal(t, 1, st.Held)
}

func TestPing(t *testing.T) {
	addr, done := handlerTest.StartAPIServer(t, func(r *api.Router, apiSrv *api.Server) {
		r.Register("ping", handler.Ping())
	})
	defer done()

	c := apiclient.New(addr)
	resp, err := c.Ping()
	require.NoError(t, err)
	assert.Equal(t, "quill", resp.Server)
	assert.Equal(t, handler.Version, resp.Version)
}

func TestUnknownPath(t *testing.T) {
	addr, done := handlerTest.StartAPIServer(t, func(r *api.Router, apiSrv *api.Server) {
		r.Register("ping", handler.Ping())
	})
	defer done()

	c := apiclient.NewTransport(addr)
	line, err := c.Do("frobnicate", nil, nil)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"status":404,"title":"Not Found","detail":"unknown path: frobnicate"}`, line)
}

func TestAuthenticatedRoundtrip(t *testing.T) {
	cfg := api.ServerConfig{Password: "hunter2"}
	addr, done := handlerTest.StartAPIServerWithConfig(t, cfg, func(r *api.Router, apiSrv *api.Server) {
		r.Register("ping", handler.Ping())
	})
	defer done()

	c := apiclient.NewWithPassword(addr, "hunter2")
	resp, err := c.Ping()
	require.NoError(t, err)
	assert.Equal(t, "quill", resp.Server)

	// No handshake at all is rejected before routing.
	plain := apiclient.NewTransport(addr)
	line, err := plain.Do("ping", nil, nil)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"status":401,"title":"Unauthorized","detail":"password required"}`, line)

	// A wrong password fails the handshake.
	wrong := apiclient.NewWithPassword(addr, "hunter3")
	_, err = wrong.Ping()
	assert.Error(t, err)
}
