package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

const (
	// VariantIDFilterCode identifies the filter selecting variants by id.
	VariantIDFilterCode = "variant-id-filter"

	argVariantIDs     = "variantIds"
	argCombineWithAnd = "combineWithAnd"
)

// ConfigurableOperation is a filter stored on a collection.
type ConfigurableOperation struct {
	Code      string              `json:"code"`
	Arguments []OperationArgument `json:"arguments"`
}

// OperationArgument is a named argument. Values are JSON-encoded strings.
type OperationArgument struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewVariantIDFilter builds a variant-id filter selecting ids.
func NewVariantIDFilter(ids []string) (ConfigurableOperation, error) {
	value, err := encodeIDs(ids)
	if err != nil {
		return ConfigurableOperation{}, err
	}
	return ConfigurableOperation{
		Code: VariantIDFilterCode,
		Arguments: []OperationArgument{
			{Name: argVariantIDs, Value: value},
			{Name: argCombineWithAnd, Value: "false"},
		},
	}, nil
}

// ParseVariantIDs returns the ids selected by the variant-id filter.
// The bool result is false when there is no such filter.
func ParseVariantIDs(filters []ConfigurableOperation) ([]string, bool, error) {
	for _, f := range filters {
		if f.Code != VariantIDFilterCode {
			continue
		}
		for _, arg := range f.Arguments {
			if arg.Name == argVariantIDs {
				ids, err := decodeIDs(arg.Value)
				return ids, true, err
			}
		}
		return nil, true, nil
	}
	return nil, false, nil
}

// WithVariantID returns filters with id added to the variant-id filter.
// A filter is appended when none exists. The bool result reports whether anything changed.
func WithVariantID(filters []ConfigurableOperation, id string) ([]ConfigurableOperation, bool, error) {
	out := slices.Clone(filters)

	for i, f := range out {
		if f.Code != VariantIDFilterCode {
			continue
		}

		args := slices.Clone(f.Arguments)
		for j, arg := range args {
			if arg.Name != argVariantIDs {
				continue
			}
			ids, err := decodeIDs(arg.Value)
			if err != nil {
				return filters, false, err
			}
			if slices.Contains(ids, id) {
				return filters, false, nil
			}
			value, err := encodeIDs(append(ids, id))
			if err != nil {
				return filters, false, err
			}
			args[j].Value = value
			out[i].Arguments = args
			return out, true, nil
		}

		value, err := encodeIDs([]string{id})
		if err != nil {
			return filters, false, err
		}
		out[i].Arguments = append(args, OperationArgument{Name: argVariantIDs, Value: value})
		return out, true, nil
	}

	filter, err := NewVariantIDFilter([]string{id})
	if err != nil {
		return filters, false, err
	}
	return append(out, filter), true, nil
}

func encodeIDs(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeIDs accepts both string and numeric array elements.
func decodeIDs(value string) ([]string, error) {
	if value == "" {
		return []string{}, nil
	}
	var raw []any
	if err := json.Unmarshal([]byte(value), &raw); err != nil {
		return nil, fmt.Errorf("invalid variantIds argument %q: %w", value, err)
	}
	ids := make([]string, 0, len(raw))
	for _, r := range raw {
		switch v := r.(type) {
		case string:
			ids = append(ids, v)
		case float64:
			ids = append(ids, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			return nil, fmt.Errorf("invalid variant id %v in variantIds argument", r)
		}
	}
	return ids, nil
}
