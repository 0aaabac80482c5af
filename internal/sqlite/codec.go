package sqlite

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// codec is the JSON configuration used for all structured columns.
var codec = jsoniter.ConfigFastest

// encodeValue converts a value for use in a SQL statement. Primitives pass
// through as literals; anything structured is serialized to JSON text, the
// same form the add path writes.
func encodeValue(v any) (any, error) {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil
	default:
		text, err := codec.MarshalToString(v)
		if err != nil {
			return nil, fmt.Errorf("encode value: %w", err)
		}
		return text, nil
	}
}

// decodeColumn parses a projected column value read from a JSON text column.
// If the stored text is not valid JSON, the raw text passes through
// unchanged.
func decodeColumn(raw string) any {
	var out any
	if err := codec.UnmarshalFromString(raw, &out); err != nil {
		return raw
	}
	return out
}
