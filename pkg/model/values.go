// pkg/model/values.go
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IsMissing determines if a cell value should be treated as missing
func IsMissing(value interface{}) bool {
	if value == nil {
		return true
	}
	if strVal, ok := value.(string); ok {
		switch strings.TrimSpace(strVal) {
		case "", "NA", "N/A", "null", "NULL":
			return true
		}
	}
	return false
}

// ToString converts a cell value to its string representation
func ToString(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		// Use Sprint as a fallback
		return fmt.Sprintf("%v", val)
	}
}

// ToFloat attempts to convert a cell value to float64
func ToFloat(v interface{}) (float64, error) {
	if v == nil {
		return 0, errors.New("nil value")
	}

	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	case string:
		cleaned := strings.TrimSpace(val)
		if cleaned == "" {
			return 0, errors.New("empty string")
		}
		return strconv.ParseFloat(cleaned, 64)
	case []byte:
		cleaned := strings.TrimSpace(string(val))
		if cleaned == "" {
			return 0, errors.New("empty byte array")
		}
		return strconv.ParseFloat(cleaned, 64)
	default:
		return 0, fmt.Errorf("cannot convert %T to float", v)
	}
}

// ToTime attempts to convert a cell value to time.Time
func ToTime(v interface{}) (time.Time, error) {
	if v == nil {
		return time.Time{}, errors.New("nil value")
	}

	switch val := v.(type) {
	case time.Time:
		return val, nil
	case string:
		cleaned := strings.TrimSpace(val)
		if cleaned == "" {
			return time.Time{}, errors.New("empty string")
		}
		for _, format := range []string{time.RFC3339, "2006-01-02", "2006/01/02", "01/02/2006"} {
			if t, err := time.Parse(format, cleaned); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("cannot parse time from '%s'", cleaned)
	default:
		return time.Time{}, fmt.Errorf("cannot convert %T to time", v)
	}
}
