package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
)

// Percentage is a two-decimal percentage value. It marshals to a fixed
// two-decimal JSON string ("91.50") so clients never see float noise.
type Percentage float64

// String renders the percentage with two decimals.
func (p Percentage) String() string {
	return strconv.FormatFloat(float64(p), 'f', 2, 64)
}

// MarshalJSON implements json.Marshaler.
func (p Percentage) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted and bare numeric forms.
func (p *Percentage) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*p = 0
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("parse percentage %q: %w", raw, err)
	}
	*p = Percentage(v)
	return nil
}

// Value implements driver.Valuer.
func (p Percentage) Value() (driver.Value, error) {
	return float64(p), nil
}

// Scan implements sql.Scanner for numeric, string and byte columns.
func (p *Percentage) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = 0
		return nil
	case float64:
		*p = Percentage(v)
		return nil
	case int64:
		*p = Percentage(v)
		return nil
	case []byte:
		f, err := strconv.ParseFloat(string(v), 64)
		if err != nil {
			return fmt.Errorf("scan percentage %q: %w", v, err)
		}
		*p = Percentage(f)
		return nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("scan percentage %q: %w", v, err)
		}
		*p = Percentage(f)
		return nil
	default:
		return fmt.Errorf("unsupported percentage source %T", src)
	}
}
