package core

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-day layout used by stores and payloads.
const DateLayout = "2006-01-02"

type (
	Date struct {
		time.Time
	}

	// Month identifies a calendar month, e.g. 2026-02.
	Month struct {
		Year  int
		Month time.Month
	}

	Profile struct {
		UserID        string
		MonthlyIncome decimal.Decimal // never negative, see NewProfile
	}

	Expense struct {
		UserID   string
		Date     Date
		Category string
		Amount   decimal.Decimal
	}

	SavingsGoal struct {
		UserID        string
		Name          string
		TargetAmount  decimal.Decimal
		CurrentAmount decimal.Decimal
		CreatedAt     time.Time
	}

	// RiskAlert is the record kept for a month that scored High risk.
	RiskAlert struct {
		ID       string
		UserID   string
		Month    string
		Level    string
		Score    int
		Reasons  []string
		RaisedAt time.Time
	}
)

var (
	ErrInvalidMonth = errors.New("invalid month")
	ErrInvalidDate  = errors.New("invalid date")
)

var monthPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts a calendar day (2026-02-14) or a full RFC 3339 timestamp.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return Date{Time: t}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, d := t.Date()
		return NewDate(y, int(m), d), nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// ParseMonth parses a YYYY-MM string.
func ParseMonth(s string) (Month, error) {
	if !monthPattern.MatchString(s) {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	year, _ := strconv.Atoi(s[:4])
	month, _ := strconv.Atoi(s[5:])
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}

// Start returns the first day of the month.
func (m Month) Start() Date {
	return NewDate(m.Year, int(m.Month), 1)
}

// End returns the first day of the following month (exclusive bound).
func (m Month) End() Date {
	// time.Date normalizes month 13 into January of the next year.
	return NewDate(m.Year, int(m.Month)+1, 1)
}

// Range returns the half-open interval [Start, End).
func (m Month) Range() (start, end Date) {
	return m.Start(), m.End()
}

// Contains reports whether d falls in [Start, End).
func (m Month) Contains(d Date) bool {
	return !d.Before(m.Start().Time) && d.Before(m.End().Time)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// NewProfile builds a profile, treating a negative income as no income.
func NewProfile(userID string, monthlyIncome decimal.Decimal) Profile {
	if monthlyIncome.IsNegative() {
		monthlyIncome = decimal.Zero
	}
	return Profile{UserID: userID, MonthlyIncome: monthlyIncome}
}
