package openapi

import _ "embed"

// Spec 埋め込まれたOpenAPI仕様
//
//go:embed openapi.yaml
var Spec []byte
