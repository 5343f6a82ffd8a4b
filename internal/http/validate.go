package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// floor may arrive as a JSON integer or as an integer-valued string.
const meterRequestSchema = `{
	"type": "object",
	"required": ["zone", "floor"],
	"properties": {
		"zone":  {"type": "string"},
		"floor": {
			"oneOf": [
				{"type": "integer"},
				{"type": "string", "pattern": "^\\s*-?[0-9]+\\s*$"}
			]
		}
	}
}`

var meterRequestLoader = gojsonschema.NewStringLoader(meterRequestSchema)

type MeterRequest struct {
	Zone  string
	Floor int
}

// ValidationError carries the individual schema violations.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("request validation failed: %v", e.Details)
}

// ParseMeterRequest validates body against the request schema and coerces
// floor to an int.
func ParseMeterRequest(body []byte) (MeterRequest, error) {
	result, err := gojsonschema.Validate(meterRequestLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return MeterRequest{}, &ValidationError{Details: []string{"body: " + err.Error()}}
	}
	if !result.Valid() {
		details := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			details[i] = desc.String()
		}
		return MeterRequest{}, &ValidationError{Details: details}
	}

	var raw struct {
		Zone  string          `json:"zone"`
		Floor json.RawMessage `json:"floor"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return MeterRequest{}, &ValidationError{Details: []string{"body: " + err.Error()}}
	}

	floor, err := coerceFloor(raw.Floor)
	if err != nil {
		return MeterRequest{}, &ValidationError{Details: []string{"floor: " + err.Error()}}
	}
	return MeterRequest{Zone: raw.Zone, Floor: floor}, nil
}

func coerceFloor(raw json.RawMessage) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}
	switch v := v.(type) {
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	case json.Number:
		return wholeNumber(v.String())
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

// wholeNumber parses a JSON number holding an integral value, so 3 and 3.0
// both give 3. Values that do not fit an int are rejected, never truncated.
func wholeNumber(text string) (int, error) {
	n, err := strconv.Atoi(text)
	if err == nil || errors.Is(err, strconv.ErrRange) {
		return n, err
	}
	var r big.Rat
	if _, ok := r.SetString(text); !ok || !r.IsInt() {
		return 0, fmt.Errorf("%q is not an integer", text)
	}
	num := r.Num()
	if !num.IsInt64() || int64(int(num.Int64())) != num.Int64() {
		return 0, fmt.Errorf("%q: %w", text, strconv.ErrRange)
	}
	return int(num.Int64()), nil
}
