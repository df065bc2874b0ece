package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseISO8601Duration converts a YouTube contentDetails duration (PT#H#M#S,
// optionally with a P#D day component) into total seconds.
func ParseISO8601Duration(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}
	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	rest := s[1:]

	var days, hours, minutes, seconds int64
	inTime := false
	num := strings.Builder{}
	take := func() (int64, error) {
		if num.Len() == 0 {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		v, err := strconv.ParseInt(num.String(), 10, 64)
		num.Reset()
		return v, err
	}

	for _, r := range rest {
		switch {
		case r >= '0' && r <= '9':
			num.WriteRune(r)
		case r == 'T':
			inTime = true
		case r == 'D' && !inTime:
			v, err := take()
			if err != nil {
				return 0, err
			}
			days = v
		case r == 'H' && inTime:
			v, err := take()
			if err != nil {
				return 0, err
			}
			hours = v
		case r == 'M' && inTime:
			v, err := take()
			if err != nil {
				return 0, err
			}
			minutes = v
		case r == 'S' && inTime:
			v, err := take()
			if err != nil {
				return 0, err
			}
			seconds = v
		default:
			return 0, fmt.Errorf("invalid duration %q", s)
		}
	}
	if num.Len() != 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return days*86400 + hours*3600 + minutes*60 + seconds, nil
}
