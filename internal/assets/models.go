package assets

import _ "embed"

// ModelsData holds the raw JSON catalog of selectable models.
//
//go:embed models.json
var ModelsData []byte

// ModesData holds the raw JSON catalog of built-in system modes, in display order.
//
//go:embed modes.json
var ModesData []byte
