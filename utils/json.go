package utils

import (
	"bytes"
	"encoding/json"

	"github.com/muhammadmuzzammil1998/jsonc"
)

// ParseJson decodes json that may contain comments and trailing garbage
// after the top level value.
func ParseJson(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	return dec.Decode(v)
}

// CleanJson strips comments from data so it can be read with a streaming
// decoder.
func CleanJson(data []byte) []byte {
	return jsonc.ToJSON(data)
}
