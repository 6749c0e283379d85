package subset

import (
	"time"

	"github.com/pkg/errors"
)

// Timestamp is a UTC scan timestamp in YYYYDDDHHMM form, where DDD is the
// one-based day of the year. This is the form interchanged on the wire as a
// 64-bit integer, one per scan.
type Timestamp int64

// TimestampFromTime converts a time to its YYYYDDDHHMM representation.
func TimestampFromTime(t time.Time) Timestamp {
	utc := t.UTC()
	return Timestamp(int64(utc.Year())*1e7 +
		int64(utc.YearDay())*1e4 +
		int64(utc.Hour())*100 +
		int64(utc.Minute()))
}

// Time converts the timestamp back to a time value in UTC.
func (t Timestamp) Time() time.Time {
	year := int(t / 1e7)
	day := int(t/1e4) % 1000
	hour := int(t/100) % 100
	minute := int(t % 100)
	return time.Date(year, 1, 1, hour, minute, 0, 0, time.UTC).AddDate(0, 0, day-1)
}

// EnsureValid ensures that the timestamp's fields are within range.
func (t Timestamp) EnsureValid() error {
	year := t / 1e7
	day := (t / 1e4) % 1000
	hour := (t / 100) % 100
	minute := t % 100
	if year < 1900 || year > 9999 {
		return errors.Errorf("invalid year in timestamp %d", t)
	} else if day < 1 || day > 366 {
		return errors.Errorf("invalid day of year in timestamp %d", t)
	} else if hour > 23 {
		return errors.Errorf("invalid hour in timestamp %d", t)
	} else if minute > 59 {
		return errors.Errorf("invalid minute in timestamp %d", t)
	}
	return nil
}
