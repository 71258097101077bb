package apiclient_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-input/quill/apiclient"
	"github.com/quill-input/quill/apitypes"
)

func TestClientPaths(t *testing.T) {
	var gotPath string
	var gotPayload any
	var gotParams map[string]string

	mock := apiclient.NewMockTransport(func(path string, payload any, pathParams map[string]string) (string, error) {
		gotPath = path
		gotPayload = payload
		gotParams = pathParams
		return `{"key":"return","direction":"press"}`, nil
	})
	c := apiclient.WithTransport(mock)

	resp, err := c.Key("return", "press")
	require.NoError(t, err)
	assert.Equal(t, "key/{action}", gotPath)
	assert.Equal(t, map[string]string{"action": "press"}, gotParams)
	assert.Equal(t, apitypes.KeyRequest{Key: "return"}, gotPayload)
	assert.Equal(t, "return", resp.Key)
	assert.Equal(t, "press", resp.Direction)
}

func TestClientParsesApiError(t *testing.T) {
	mock := apiclient.NewMockTransport(func(path string, payload any, pathParams map[string]string) (string, error) {
		return `{"status":400,"title":"Bad Request","detail":"empty key"}`, nil
	})
	c := apiclient.WithTransport(mock)

	_, err := c.Key("", "click")
	require.Error(t, err)
	var apiErr *apitypes.ApiError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "empty key", apiErr.Detail)
}

func TestClientEmptyResponse(t *testing.T) {
	mock := apiclient.NewMockTransport(func(path string, payload any, pathParams map[string]string) (string, error) {
		return "", nil
	})
	c := apiclient.WithTransport(mock)

	_, err := c.Ping()
	assert.EqualError(t, err, "empty response")
}
