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
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
)

var ErrUnknownRoute = errors.New("route not described by the OpenAPI document")

//go:embed openapi/courier.yaml
var courierSpec []byte

// ContractValidator checks responses against the courier OpenAPI document.
type ContractValidator struct {
	doc *openapi3.T
}

// NewContractValidator loads and validates the embedded OpenAPI document.
func NewContractValidator(ctx context.Context) (*ContractValidator, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(courierSpec)
	if err != nil {
		return nil, fmt.Errorf("loading courier OpenAPI document: %w", err)
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validating courier OpenAPI document: %w", err)
	}

	return &ContractValidator{
		doc: doc,
	}, nil
}

func (v *ContractValidator) route(method, path string) (*routers.Route, error) {
	pathItem := v.doc.Paths.Find(path)
	if pathItem == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}

	operation := pathItem.GetOperation(method)
	if operation == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrUnknownRoute, method, path)
	}

	return &routers.Route{
		Spec:      v.doc,
		Path:      path,
		PathItem:  pathItem,
		Method:    method,
		Operation: operation,
	}, nil
}

// ValidateResponse checks the status, content type and body of a response
// issued for the given route template.  Undocumented statuses are rejected.
func (v *ContractValidator) ValidateResponse(ctx context.Context, req *http.Request, route string, status int, header http.Header, body []byte) error {
	r, err := v.route(req.Method, route)
	if err != nil {
		return err
	}

	options := &openapi3filter.Options{
		IncludeResponseStatus: true,
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request: req,
			Route:   r,
			Options: options,
		},
		Status:  status,
		Header:  header,
		Body:    io.NopCloser(bytes.NewReader(body)),
		Options: options,
	}

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%s %s status %d: %w", req.Method, route, status, err)
	}

	return nil
}
