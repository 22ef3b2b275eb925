package category

import (
	"encoding/json"
	"fmt"
)

// Category is the closed set of spending categories shared by
// transactions and budgets.
type Category string

const (
	Food      Category = "Food"
	Transport Category = "Transport"
	Bills     Category = "Bills"
	Shopping  Category = "Shopping"
	Other     Category = "Other"
)

var all = []Category{Food, Transport, Bills, Shopping, Other}

// All returns the categories in display order.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	return out
}

func (c Category) IsValid() bool {
	for _, known := range all {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// InvalidError reports a value outside the enumeration.
type InvalidError struct {
	Value string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid category %q: must be one of %v", e.Value, all)
}

func Parse(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", &InvalidError{Value: s}
	}
	return c, nil
}

// UnmarshalJSON rejects unknown categories. The empty string is let
// through so that a missing category is reported by validation.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category must be a string: %w", err)
	}
	if s == "" {
		*c = ""
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
