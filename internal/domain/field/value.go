package field

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vendra/vendra/internal/domain"
)

// ParsedValue is the strongly typed form of a raw field value. The raw string
// is kept only as the storage encoding; parsing happens once at the write
// boundary.
type ParsedValue struct {
	Type   Type
	Text   string
	Number float64
	Bool   bool
	Time   time.Time
}

// dateLayouts are accepted encodings for date values, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// Parse validates raw against the declared type and returns the typed value.
// text, textarea, select and multiselect accept any string.
func Parse(t Type, raw string) (ParsedValue, error) {
	pv := ParsedValue{Type: t, Text: raw}
	switch t {
	case TypeNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return pv, fmt.Errorf("%w: %q is not a number", domain.ErrValidation, raw)
		}
		pv.Number = n
	case TypeBoolean:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1":
			pv.Bool = true
		case "false", "0":
			pv.Bool = false
		default:
			return pv, fmt.Errorf("%w: %q is not a boolean", domain.ErrValidation, raw)
		}
	case TypeDate:
		var parsed bool
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
				pv.Time = ts
				parsed = true
				break
			}
		}
		if !parsed {
			return pv, fmt.Errorf("%w: %q is not a date", domain.ErrValidation, raw)
		}
	case TypeText, TypeTextarea, TypeSelect, TypeMultiSelect:
		// Free-form; stored as given.
	default:
		return pv, fmt.Errorf("%w: unknown field type %q", domain.ErrValidation, t)
	}
	return pv, nil
}

// Encode returns the storage encoding of the value.
func (pv ParsedValue) Encode() string {
	switch pv.Type {
	case TypeNumber:
		return strconv.FormatFloat(pv.Number, 'f', -1, 64)
	case TypeBoolean:
		return strconv.FormatBool(pv.Bool)
	case TypeDate:
		return pv.Time.Format(time.RFC3339)
	default:
		return pv.Text
	}
}
