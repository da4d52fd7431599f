// Package docs embeds the OpenAPI document served under /swagger and
// /api/v1/openapi.json.
package docs

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openapiYAML []byte

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	BasePath:         "/api/v1",
	Title:            "EcoFleet API",
	Description:      "Drivers, vehicles, orders and manager assignments for a fleet back end.",
	InfoInstanceName: "swagger",
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

var (
	loadOnce sync.Once
	loaded   *openapi3.T
	rawJSON  []byte
	loadErr  error
)

// Load parses and validates the embedded document. The first successful call
// also registers it with swag so echo-swagger can serve it.
func Load(ctx context.Context) (*openapi3.T, error) {
	loadOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(openapiYAML)
		if err != nil {
			loadErr = fmt.Errorf("parse openapi document: %w", err)
			return
		}
		if err = doc.Validate(ctx); err != nil {
			loadErr = fmt.Errorf("validate openapi document: %w", err)
			return
		}
		data, err := doc.MarshalJSON()
		if err != nil {
			loadErr = fmt.Errorf("marshal openapi document: %w", err)
			return
		}

		loaded, rawJSON = doc, data
		SwaggerInfo.SwaggerTemplate = string(data)
		swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
	})

	return loaded, loadErr
}

// JSON returns the document as JSON. Load must have succeeded first.
func JSON() []byte {
	return rawJSON
}
