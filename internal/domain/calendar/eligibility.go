package calendar

import "time"

// DayRule is anything that grants clock-in permission on a set of weekdays.
type DayRule interface {
	AllowedDays() WeekdaySet
}

// IsEligible reports whether any rule allows the weekday of date.
// No rules means never eligible.
func IsEligible[R DayRule](date time.Time, rules []R) bool {
	day := WeekdayOf(date)
	for _, rule := range rules {
		if rule.AllowedDays().Contains(day) {
			return true
		}
	}
	return false
}

// Allowing returns the rules that allow the weekday of date, in input order.
func Allowing[R DayRule](date time.Time, rules []R) []R {
	day := WeekdayOf(date)
	var out []R
	for _, rule := range rules {
		if rule.AllowedDays().Contains(day) {
			out = append(out, rule)
		}
	}
	return out
}
