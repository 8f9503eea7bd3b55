package ingest

import (
	"fmt"
	"time"

	"github.com/kerem-kaynak/formstore/internal/entity"
)

// Record is one opaque key-value record as returned by an external source,
// typically a decoded JSON object.
type Record map[string]interface{}

// Extractor derives a single typed value from a record. The returned value
// must be in the native representation of the mapping's form type.
type Extractor func(Record) (interface{}, error)

// FieldMapping declares one attribute of a source: the field definition it
// resolves to and how to extract its value from a record. A source is fully
// described by its list of mappings, applied uniformly to every record.
type FieldMapping struct {
	Name        string
	Description string
	FormType    entity.FormType
	Extract     Extractor
}

const (
	sourceDateLayout    = "2006/01/02"
	canonicalDateLayout = "2006-01-02"
)

// NormalizeDate converts a source-format YYYY/MM/DD date string to the
// canonical YYYY-MM-DD form stored in date value rows.
func NormalizeDate(value string) (string, error) {
	parsed, err := time.Parse(sourceDateLayout, value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", value, err)
	}
	return parsed.Format(canonicalDateLayout), nil
}

// StringKey extracts a top-level string value, defaulting to "" when the
// key is absent.
func StringKey(key string) Extractor {
	return func(r Record) (interface{}, error) {
		raw, ok := r[key]
		if !ok || raw == nil {
			return "", nil
		}
		value, ok := raw.(string)
		if !ok {
			return nil, fmt.Errorf("key %q holds %T, expected string", key, raw)
		}
		return value, nil
	}
}

// IntKey extracts a top-level integer value, defaulting to 0 when the key
// is absent. JSON numbers decode as float64, so both representations are
// accepted.
func IntKey(key string) Extractor {
	return func(r Record) (interface{}, error) {
		raw, ok := r[key]
		if !ok || raw == nil {
			return int64(0), nil
		}
		switch value := raw.(type) {
		case float64:
			return int64(value), nil
		case int64:
			return value, nil
		case int:
			return int64(value), nil
		default:
			return nil, fmt.Errorf("key %q holds %T, expected number", key, raw)
		}
	}
}

// DateKey extracts a top-level YYYY/MM/DD date string and normalizes it.
// Unlike the string and integer extractors there is no default: an absent
// or malformed date is an extraction failure.
func DateKey(key string) Extractor {
	return func(r Record) (interface{}, error) {
		raw, _ := r[key].(string)
		return NormalizeDate(raw)
	}
}

// NestedStringKey extracts a string from a nested object path, defaulting
// to "" when any step of the path is absent.
func NestedStringKey(keys ...string) Extractor {
	return func(r Record) (interface{}, error) {
		current := map[string]interface{}(r)
		for i, key := range keys {
			raw, ok := current[key]
			if !ok || raw == nil {
				return "", nil
			}
			if i == len(keys)-1 {
				value, ok := raw.(string)
				if !ok {
					return nil, fmt.Errorf("key %q holds %T, expected string", key, raw)
				}
				return value, nil
			}
			current, ok = raw.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("key %q holds %T, expected object", key, raw)
			}
		}
		return "", nil
	}
}

// PriceOfType extracts a float from a list of tagged price entries, e.g.
// {"prices": [{"type": "printPrice", "price": 3.99}]}. A record without a
// matching entry is an extraction failure.
func PriceOfType(key, priceType string) Extractor {
	return func(r Record) (interface{}, error) {
		raw, ok := r[key].([]interface{})
		if !ok {
			return nil, fmt.Errorf("key %q is missing or not a list", key)
		}
		for _, item := range raw {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if entry["type"] != priceType {
				continue
			}
			price, ok := entry["price"].(float64)
			if !ok {
				return 0.0, nil
			}
			return price, nil
		}
		return nil, fmt.Errorf("no %q entry in %q", priceType, key)
	}
}
