package schedule

import (
	"encoding/json"
	"strconv"
)

// Value is a task endpoint: either a number or an opaque string token.
// The input format tolerates non-numeric axis values (dates, weekday
// names, milestones), so unparseable fields are preserved verbatim.
type Value struct {
	num     float64
	token   string
	numeric bool
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{num: f, numeric: true}
}

// Token returns a string-token Value.
func Token(s string) Value {
	return Value{token: s}
}

// ParseValue converts a field to a numeric Value when it parses as a
// floating-point number, and keeps it as a token otherwise.
func ParseValue(field string) Value {
	if f, err := strconv.ParseFloat(field, 64); err == nil {
		return Number(f)
	}

	return Token(field)
}

// IsNumber reports whether the value is numeric.
func (v Value) IsNumber() bool { return v.numeric }

// Float returns the numeric value; zero for tokens.
func (v Value) Float() float64 { return v.num }

// String returns the token, or the formatted number for numeric values.
func (v Value) String() string {
	if v.numeric {
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}

	return v.token
}

// Equal reports whether two values are the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.numeric != o.numeric {
		return false
	}

	if v.numeric {
		return v.num == o.num
	}

	return v.token == o.token
}

// MarshalYAML emits the number or the raw token.
func (v Value) MarshalYAML() (interface{}, error) {
	if v.numeric {
		return v.num, nil
	}

	return v.token, nil
}

// UnmarshalYAML accepts either form.
func (v *Value) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var f float64
	if err := unmarshal(&f); err == nil {
		*v = Number(f)
		return nil
	}

	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	*v = Token(s)

	return nil
}

// MarshalJSON emits the number or the raw token.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return json.Marshal(v.num)
	}

	return json.Marshal(v.token)
}

// UnmarshalJSON accepts either form.
func (v *Value) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*v = Number(f)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	*v = Token(s)

	return nil
}
