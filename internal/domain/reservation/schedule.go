package reservation

import (
	"time"

	"care-app-go/internal/domain/apperr"
)

const dateLayout = "2006-01-02"

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// parseClock reads a strict "HH:MM" value into minutes after midnight.
func parseClock(value string) (int, bool) {
	if len(value) != 5 || value[2] != ':' {
		return 0, false
	}
	digits := [4]byte{value[0], value[1], value[3], value[4]}
	for _, d := range digits {
		if d < '0' || d > '9' {
			return 0, false
		}
	}
	hour := int(digits[0]-'0')*10 + int(digits[1]-'0')
	minute := int(digits[2]-'0')*10 + int(digits[3]-'0')
	if hour > 23 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

// DateOnly drops the clock part of t as seen in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

type schedule struct {
	date      time.Time
	startTime string
	endTime   *string
}

func validateSchedule(v *apperr.Validator, s schedule, today time.Time, checkDate bool) {
	if checkDate {
		v.Check(!DateOnly(s.date).Before(today), "reserved_date", "must be today or later")
	}

	start, ok := parseClock(s.startTime)
	v.Check(ok, "start_time", "must be HH:MM")
	if s.endTime == nil {
		return
	}
	end, endOK := parseClock(*s.endTime)
	v.Check(endOK, "end_time", "must be HH:MM")
	if ok && endOK {
		v.Check(end > start, "end_time", "must be later than start time")
	}
}
