package model

// Interval is the bucket granularity of the read-path aggregation.
type Interval string

const (
	IntervalMillisecond Interval = "millisecond"
	IntervalSecond      Interval = "second"
	IntervalMinute      Interval = "minute"
	IntervalHour        Interval = "hour"
)

// ParseInterval validates an interval name, defaulting to minute when empty.
func ParseInterval(value string) (Interval, *FieldError) {
	if value == "" {
		return IntervalMinute, nil
	}
	switch Interval(value) {
	case IntervalMillisecond, IntervalSecond, IntervalMinute, IntervalHour:
		return Interval(value), nil
	}
	return "", InvalidValue("interval", "interval must be one of millisecond, second, minute, hour")
}
