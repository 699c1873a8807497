package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Entity is implemented by every persisted model so generic components can
// read the assigned primary key.
type Entity interface {
	GetID() uint
}

// StringList stores an ordered list of strings as a JSON text column, which
// keeps the schema portable between postgres and the sqlite test driver.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}
