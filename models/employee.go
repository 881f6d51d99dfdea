package models

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Employee is the canonical record every view renders. It is rebuilt on each
// fetch and is identified only by its position in the fetched sequence.
type Employee struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	City        string `json:"city"`
	Salary      Salary `json:"salary"`
	Role        string `json:"role,omitempty"`
}

// Title returns the designation, falling back to role and then to fallback.
func (e Employee) Title(fallback string) string {
	if e.Designation != "" {
		return e.Designation
	}
	if e.Role != "" {
		return e.Role
	}
	return fallback
}

// Initial is the first letter of the name, or "E" for nameless records.
func (e Employee) Initial() string {
	for _, r := range e.Name {
		return strings.ToUpper(string(r))
	}
	return "E"
}

// Salary holds the salary as text. Upstream rows send either a JSON string or
// a JSON number; both decode into the same representation.
type Salary string

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

func (s *Salary) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = SalaryFromValue(v)
	return nil
}

// SalaryFromValue converts a decoded JSON value into a Salary. null and
// non-scalar values give an empty salary.
func SalaryFromValue(v interface{}) Salary {
	switch val := v.(type) {
	case string:
		return Salary(val)
	case float64:
		return Salary(strconv.FormatFloat(val, 'f', -1, 64))
	case json.Number:
		return Salary(val.String())
	case bool:
		return Salary(strconv.FormatBool(val))
	default:
		return ""
	}
}

// Float parses the leading number of the salary the way a lenient float
// parser would; anything unparseable is 0.
func (s Salary) Float() float64 {
	m := leadingFloat.FindString(strings.TrimSpace(string(s)))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

func (s Salary) String() string {
	return string(s)
}
