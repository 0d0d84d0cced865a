/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnexpectedBody = errors.New("unexpected response body")

// CourierID is the service-assigned identifier of a courier.
// The service renders it as a JSON number, it is kept as opaque text here.
type CourierID string

func (id *CourierID) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var value interface{}
	if err := decoder.Decode(&value); err != nil {
		return err
	}

	switch t := value.(type) {
	case json.Number:
		*id = CourierID(t.String())
	case string:
		*id = CourierID(t)
	default:
		return fmt.Errorf("%w: courier id %s", ErrUnexpectedBody, string(data))
	}

	return nil
}

func (id CourierID) String() string {
	return string(id)
}

// CourierRequest is the typed form of a creation payload.
type CourierRequest struct {
	Login     string  `json:"login"`
	Password  string  `json:"password"`
	FirstName string  `json:"firstName"`
	LastName  *string `json:"lastName,omitempty"`
}

// LoginRequest is the body of a courier login.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// CourierResponse is the outcome of a courier API call.
// Success bodies carry ok and possibly id, errors carry message.
type CourierResponse struct {
	StatusCode int        `json:"-"`
	OK         *bool      `json:"ok,omitempty"`
	ID         *CourierID `json:"id,omitempty"`
	Message    *string    `json:"message,omitempty"`
	Code       *int       `json:"code,omitempty"`

	// Body is the whole decoded JSON object, for exact body assertions.
	Body map[string]interface{} `json:"-"`
}

// IsOK reports whether the body carried ok: true.
func (r *CourierResponse) IsOK() bool {
	return r.OK != nil && *r.OK
}

// MessageText returns the error message, or an empty string if there is none.
func (r *CourierResponse) MessageText() string {
	if r.Message == nil {
		return ""
	}

	return *r.Message
}

func decodeCourierResponse(statusCode int, body []byte) (*CourierResponse, error) {
	response := &CourierResponse{
		StatusCode: statusCode,
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return response, nil
	}

	if err := json.Unmarshal(body, response); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnexpectedBody, string(body), err)
	}

	if err := json.Unmarshal(body, &response.Body); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnexpectedBody, string(body), err)
	}

	return response, nil
}
