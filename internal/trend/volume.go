package trend

import (
	"math"
	"strconv"
	"strings"
)

// Volume parses approx_traffic by dropping every non-digit character.
// "1,000+" is 1000; a value with no digits is 0. Overflow saturates.
func Volume(approxTraffic string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, approxTraffic)
	if digits == "" {
		return 0
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return math.MaxInt64
	}
	return n
}

// GrowthRate is the figure shown in the list badge. Only the first "+" and
// the first "," are removed, so "1,000,000+" does not parse and yields 0.
func GrowthRate(approxTraffic string) int64 {
	s := strings.Replace(approxTraffic, "+", "", 1)
	s = strings.Replace(s, ",", "", 1)
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Volume returns the parsed approx_traffic of the record.
func (r Record) Volume() int64 {
	return Volume(r.ApproxTraffic)
}
