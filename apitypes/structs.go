// Package apitypes holds the wire types shared between the Quill API
// server and its clients.
package apitypes

import "fmt"

// ApiError represents an RFC 7807 (problem+json) error response.
type ApiError struct {
	// Status is the HTTP-style status code (e.g., 400, 404, 500)
	Status int `json:"status"`
	// Title is a short, human-readable summary of the problem type
	Title string `json:"title"`
	// Detail is a human-readable explanation specific to this occurrence
	Detail string `json:"detail"`
}

func (e ApiError) Error() string {
	if e.Status == 0 && e.Title == "" {
		return "unknown error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// --

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

type TypeRequest struct {
	Text string `json:"text"`
}

type TypeResponse struct {
	Typed int `json:"typed"`
}

type KeyRequest struct {
	Key       string `json:"key"`
	Direction string `json:"direction,omitempty"`
}

type KeyResponse struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

type MouseMoveRequest struct {
	X        int  `json:"x"`
	Y        int  `json:"y"`
	Absolute bool `json:"absolute,omitempty"`
}

type MouseMoveResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type MouseButtonRequest struct {
	Button    string `json:"button"`
	Direction string `json:"direction,omitempty"`
}

type MouseButtonResponse struct {
	Button    string `json:"button"`
	Direction string `json:"direction"`
}

type MouseScrollRequest struct {
	Axis   string `json:"axis,omitempty"`
	Amount int    `json:"amount"`
}

type MouseScrollResponse struct {
	Steps int `json:"steps"`
}

// StatusResponse summarizes the keycode ledger of the serving backend.
type StatusResponse struct {
	Backend string `json:"backend"`
	Bound   int    `json:"bound"`
	Held    int    `json:"held"`
}
