package utils

import (
	"encoding/json"
	"fmt"
)

// ToString converts various types to string.
// json.Number keeps its literal form, so large numeric ids are not rewritten in exponent notation.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
