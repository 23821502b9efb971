package valuation

import (
	"fmt"
	"strconv"
	"strings"
)

// RangeKind selects which months of a series are shown.
type RangeKind string

const (
	RangeLast12 RangeKind = "12m"
	RangeAll    RangeKind = "all"
	RangeYear   RangeKind = "year"
)

// Range is a caller-side window over a series.
type Range struct {
	Kind RangeKind
	Year int
}

// ParseRange accepts "12m", "all" or a four digit year such as "2024".
func ParseRange(s string) (Range, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch v {
	case "12m", "last12", "":
		return Range{Kind: RangeLast12}, nil
	case "all":
		return Range{Kind: RangeAll}, nil
	}
	if len(v) == 4 {
		if y, err := strconv.Atoi(v); err == nil && y > 0 {
			return Range{Kind: RangeYear, Year: y}, nil
		}
	}
	return Range{}, fmt.Errorf("invalid range %q: expected 12m, all or a year", s)
}

func (r Range) String() string {
	if r.Kind == RangeYear {
		return strconv.Itoa(r.Year)
	}
	return string(r.Kind)
}

// Filter returns a new series holding only the months inside r. The last
// twelve months are counted back from the latest month of the series, not
// from today. Aggregates are shared, not recomputed, and AvailableYears is
// kept whole so callers can still offer every year.
func (s *Series) Filter(r Range) *Series {
	out := &Series{
		Currency:       s.Currency,
		GroupBy:        s.GroupBy,
		Months:         []MonthAggregate{},
		AvailableYears: s.AvailableYears,
	}

	switch r.Kind {
	case RangeAll:
		out.Months = append(out.Months, s.Months...)
	case RangeYear:
		for _, ma := range s.Months {
			if ma.Month.Year() == r.Year {
				out.Months = append(out.Months, ma)
			}
		}
	default:
		latest, ok := s.Latest()
		if !ok {
			break
		}
		from := latest.Month.AddMonths(-11)
		for _, ma := range s.Months {
			if ma.Month >= from {
				out.Months = append(out.Months, ma)
			}
		}
	}
	return out
}
