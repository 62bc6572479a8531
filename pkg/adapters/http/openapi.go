package http

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

const maxBodyBytes = 64 << 10

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid openapi spec: %w", err)
	}
	return doc, nil
}

// errBadRequest marks request bodies that failed to parse or validate.
var errBadRequest = errors.New("bad request")

// decodeBody reads a JSON body, checks it against the named component schema
// and decodes it into dst.
func (s *Server) decodeBody(r *http.Request, schema string, dst any) error {
	ref, ok := s.spec.Components.Schemas[schema]
	if !ok || ref.Value == nil {
		return fmt.Errorf("schema %q not declared", schema)
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("%w: invalid json: %v", errBadRequest, err)
	}
	if err := ref.Value.VisitJSON(generic); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
