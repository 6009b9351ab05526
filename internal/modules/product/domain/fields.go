package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

var ErrNotAnObject = errors.New("product must be a JSON object")

// Fields is a set of product fields supplied by a caller. Integral JSON
// numbers become int64, other numbers float64, nested objects bson.M.
// A supplied _id is dropped.
type Fields bson.M

func (f *Fields) UnmarshalJSON(data []byte) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw map[string]interface{}
	if err := decoder.Decode(&raw); err != nil {
		return err
	}

	if raw == nil {
		return ErrNotAnObject
	}

	fields := make(Fields, len(raw))
	for key, value := range raw {
		if key == IDField {
			continue
		}

		fields[key] = normalizeValue(value)
	}

	if err := fields.validate(); err != nil {
		return err
	}

	*f = fields
	return nil
}

func (f Fields) validate() error {
	if name, found := f[NameField]; found {
		if _, ok := name.(string); !ok {
			return fmt.Errorf("invalid %s - must be a string", NameField)
		}
	}

	return nil
}

func normalizeValue(value interface{}) interface{} {
	switch v := value.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}

		if f, err := v.Float64(); err == nil {
			return f
		}

		return v.String()

	case map[string]interface{}:
		doc := make(bson.M, len(v))
		for key, nested := range v {
			doc[key] = normalizeValue(nested)
		}
		return doc

	case []interface{}:
		arr := make(bson.A, 0, len(v))
		for _, nested := range v {
			arr = append(arr, normalizeValue(nested))
		}
		return arr

	default:
		return v
	}
}
