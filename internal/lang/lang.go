// Package lang maps Lingvo Live numeric language codes to language identifiers.
package lang

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Lang identifies a language supported by the Lingvo Live API.
// Code is the Windows LCID the API expects in query parameters.
type Lang struct {
	Name string
	Code int
}

var (
	UK = Lang{Name: "UK", Code: 1058}
	RU = Lang{Name: "RU", Code: 1049}
	EN = Lang{Name: "EN", Code: 1033}
	CH = Lang{Name: "CH", Code: 1028}
	DE = Lang{Name: "DE", Code: 1031}
	EL = Lang{Name: "EL", Code: 1032}
	ES = Lang{Name: "ES", Code: 1034}
	FR = Lang{Name: "FR", Code: 1036}
	IT = Lang{Name: "IT", Code: 1040}
	LA = Lang{Name: "LA", Code: 1142}
	KK = Lang{Name: "KK", Code: 1087}
)

var known = []Lang{UK, RU, EN, CH, DE, EL, ES, FR, IT, LA, KK}

// All returns every known language in declaration order.
func All() []Lang {
	out := make([]Lang, len(known))
	copy(out, known)
	return out
}

// ByCode returns the language with the given code.
func ByCode(code int) (Lang, bool) {
	for _, l := range known {
		if l.Code == code {
			return l, true
		}
	}
	return Lang{}, false
}

// ByCodeOr returns the language with the given code, or def if the code is unknown.
func ByCodeOr(code int, def Lang) Lang {
	if l, ok := ByCode(code); ok {
		return l
	}
	return def
}

// Parse accepts either a symbolic name ("en", "EN") or a numeric code ("1033").
func Parse(s string) (Lang, error) {
	s = strings.TrimSpace(s)
	if code, err := strconv.Atoi(s); err == nil {
		if l, ok := ByCode(code); ok {
			return l, nil
		}
		return Lang{}, fmt.Errorf("unknown language code: %d", code)
	}
	for _, l := range known {
		if strings.EqualFold(l.Name, s) {
			return l, nil
		}
	}
	return Lang{}, fmt.Errorf("unknown language: %q", s)
}

// IsZero reports whether l is the zero value.
func (l Lang) IsZero() bool {
	return l.Code == 0
}

// String returns the numeric code, which is the form the API takes in query strings.
func (l Lang) String() string {
	return strconv.Itoa(l.Code)
}

// MarshalJSON encodes the language as its code string, e.g. "1033".
func (l Lang) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts the code as a JSON string or number.
func (l *Lang) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode language: %w", err)
		}
		if code, err = strconv.Atoi(s); err != nil {
			return fmt.Errorf("decode language %q: %w", s, err)
		}
	}
	found, ok := ByCode(code)
	if !ok {
		return fmt.Errorf("unknown language code: %d", code)
	}
	*l = found
	return nil
}
