package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Weekday numbers days Monday-first: 0=Monday ... 6=Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [...]string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// WeekdayOf returns the Monday-first weekday of t in t's own location.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// WeekdaySet is an unordered set of weekdays.
type WeekdaySet map[Weekday]struct{}

// NewWeekdaySet builds a set from days, ignoring duplicates.
func NewWeekdaySet(days ...Weekday) WeekdaySet {
	set := make(WeekdaySet, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}
	return set
}

// ParseWeekdays converts raw integers into a set, rejecting anything outside 0..6.
func ParseWeekdays(raw []int) (WeekdaySet, error) {
	set := make(WeekdaySet, len(raw))
	for _, v := range raw {
		d := Weekday(v)
		if !d.Valid() {
			return nil, fmt.Errorf("invalid day: %d, must be integer between 0-6", v)
		}
		set[d] = struct{}{}
	}
	return set, nil
}

func (s WeekdaySet) Contains(d Weekday) bool {
	_, ok := s[d]
	return ok
}

// Slice returns the days in ascending order.
func (s WeekdaySet) Slice() []Weekday {
	days := make([]Weekday, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// Ints returns the days as ascending integers, the storage representation.
func (s WeekdaySet) Ints() []int {
	days := s.Slice()
	out := make([]int, len(days))
	for i, d := range days {
		out[i] = int(d)
	}
	return out
}

// String renders the set as "Monday, Tuesday".
func (s WeekdaySet) String() string {
	days := s.Slice()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}
