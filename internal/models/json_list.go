package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringList stores a list of strings as a JSON column. Legacy rows sometimes
// hold a bare string instead of an array, so Scan accepts both shapes.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		s = StringList{}
	}
	return json.Marshal(s)
}

func (s *StringList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		*s = StringList{}
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(raw, (*[]string)(s))
	}

	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		// bare unquoted string
		single = trimmed
	}
	if single = strings.TrimSpace(single); single == "" {
		*s = StringList{}
		return nil
	}
	*s = StringList{single}
	return nil
}
