package datetime

import (
	"fmt"
	"time"
)

// Month identifies a budget period as "YYYY-MM".
type Month string

func ParseMonth(s string) (Month, error) {
	if _, err := time.Parse(MonthLayout, s); err != nil {
		return "", fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return Month(s), nil
}

func (m Month) IsValid() bool {
	_, err := time.Parse(MonthLayout, string(m))
	return err == nil
}

// Bounds returns the first day of the month and the first day of the
// following month.
func (m Month) Bounds() (Date, Date, error) {
	t, err := time.Parse(MonthLayout, string(m))
	if err != nil {
		return Date{}, Date{}, fmt.Errorf("invalid month %q: expected YYYY-MM", m)
	}
	return DateOf(t), DateOf(t.AddDate(0, 1, 0)), nil
}

func (m Month) String() string {
	return string(m)
}
