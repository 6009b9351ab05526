package domain

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ListFilter holds the raw list query parameters. Empty values impose
// no constraint.
type ListFilter struct {
	Name     string
	Price    string
	Quantity string
}

// Document builds the store filter. Name is matched as a case-insensitive
// pattern; price and quantity are compared exactly after parseLeadingInt.
func (f ListFilter) Document() bson.D {
	filter := bson.D{}

	if f.Name != "" {
		filter = append(filter, bson.E{Key: NameField, Value: primitive.Regex{Pattern: f.Name, Options: "i"}})
	}

	if f.Price != "" {
		filter = append(filter, bson.E{Key: PriceField, Value: parseLeadingInt(f.Price)})
	}

	if f.Quantity != "" {
		filter = append(filter, bson.E{Key: QuantityField, Value: parseLeadingInt(f.Quantity)})
	}

	return filter
}

// parseLeadingInt reads the integer prefix of s, ignoring leading
// whitespace and anything after the digits. Without a prefix the result
// is NaN, which no stored number equals.
func parseLeadingInt(s string) interface{} {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}

	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == digitsStart {
		return math.NaN()
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		f, _ := strconv.ParseFloat(s[:end], 64)
		return f
	}

	return n
}

// ParseSort decodes a JSON object such as {"price":-1,"name":1} into a
// sort document, keeping the key order. An empty string means no sort.
func ParseSort(raw string) (bson.D, error) {
	if raw == "" {
		return nil, nil
	}

	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()

	token, err := decoder.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid sort: %w", err)
	}

	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("invalid sort: expected a JSON object")
	}

	sort := bson.D{}
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid sort: %w", err)
		}

		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("invalid sort: expected a field name")
		}

		var value interface{}
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid sort: %w", err)
		}

		sort = append(sort, bson.E{Key: key, Value: sortDirection(value)})
	}

	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("invalid sort: %w", err)
	}

	if _, err := decoder.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid sort: unexpected data after object")
	}

	return sort, nil
}

func sortDirection(value interface{}) interface{} {
	if direction, ok := value.(string); ok {
		switch strings.ToLower(direction) {
		case "asc", "ascending":
			return int64(1)
		case "desc", "descending":
			return int64(-1)
		}
	}

	return normalizeValue(value)
}
