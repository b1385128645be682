// Package openapi embeds the OpenAPI description of the ecotrip API.
// It is imported by the HTTP server to serve the document at /openapi.yaml.
package openapi

import _ "embed"

// Document contains the raw bytes of openapi.yaml, embedded at compile time.
// Serving it from the binary means the description and the running code are always in sync.
//
//go:embed openapi.yaml
var Document []byte
