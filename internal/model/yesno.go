package model

import (
	"database/sql/driver"
	"fmt"
)

// Legacy flag values stored in string columns.
const (
	YesValue = "Yes"
	NoValue  = "No"
)

// YesNo is a boolean persisted as "Yes"/"No" and rendered as JSON true/false.
type YesNo bool

func (y YesNo) Value() (driver.Value, error) {
	if y {
		return YesValue, nil
	}
	return NoValue, nil
}

func (y *YesNo) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*y = false
	case string:
		*y = v == YesValue
	case []byte:
		*y = string(v) == YesValue
	case bool:
		*y = YesNo(v)
	default:
		return fmt.Errorf("cannot scan %T into YesNo", value)
	}
	return nil
}
