// Package deadline derives legally significant transaction dates from a
// contract execution date. Pure computation, no I/O; deadline sets are
// recomputed on demand and never persisted.
package deadline

import (
	"bytes"
	"fmt"
	"time"
)

// ContractType selects the deadline schedule.
type ContractType string

const (
	Purchase ContractType = "purchase"
)

// Deadline is one named date in a set.
type Deadline struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

// DeadlineSet holds named deadlines in schedule order. Order is part of the
// contract: dashboards render sets in this order, not sorted by date.
type DeadlineSet []Deadline

// Standard Virginia purchase agreement timelines (offsets in days from the
// contract execution date).
var purchaseOffsets = []struct {
	name string
	days int
}{
	{"inspection_period", 10},
	{"title_commitment", 15},
	{"financing_contingency", 21},
	{"appraisal_contingency", 21},
	{"settlement_date", 30},
}

// Compute returns the deadline set for a contract executed on contractDate.
// Unknown contract types yield an empty set, not an error, so new types can
// be added without breaking existing callers.
func Compute(contractDate time.Time, contractType ContractType) DeadlineSet {
	d := midnightUTC(contractDate)
	var set DeadlineSet
	if contractType == Purchase {
		for _, o := range purchaseOffsets {
			set = append(set, Deadline{Name: o.name, Date: d.AddDate(0, 0, o.days)})
		}
	}
	return set
}

// Date returns the date for name, or the zero time if absent.
func (s DeadlineSet) Date(name string) time.Time {
	for _, d := range s {
		if d.Name == name {
			return d.Date
		}
	}
	return time.Time{}
}

// MarshalJSON renders the set as an object keyed by deadline name,
// preserving schedule order.
func (s DeadlineSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		fmt.Fprintf(&buf, "%q:%q", d.Name, d.Date.Format("2006-01-02"))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Upcoming is a deadline falling inside a monitoring window.
type Upcoming struct {
	Name      string    `json:"type"`
	Date      time.Time `json:"date"`
	DaysUntil int       `json:"days_until"`
}

// Approaching filters deadlines whose distance from asOf lies in
// [0, windowDays] inclusive. Result order follows the set's order.
func Approaching(set DeadlineSet, asOf time.Time, windowDays int) []Upcoming {
	today := midnightUTC(asOf)
	var out []Upcoming
	for _, d := range set {
		days := int(d.Date.Sub(today).Hours() / 24)
		if days >= 0 && days <= windowDays {
			out = append(out, Upcoming{Name: d.Name, Date: d.Date, DaysUntil: days})
		}
	}
	return out
}

func midnightUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
