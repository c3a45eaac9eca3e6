package clock

import (
	"fmt"
	"time"
)

// weekdayNames is indexed by time.Weekday, Sunday first.
//
//nolint:gochecknoglobals // Fixed lookup table.
var weekdayNames = [7]string{"Minggu", "Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu"}

// DisplayHour maps a 0-23 hour to the hour shown on the clock face and its suffix.
// In 12-hour mode 0 becomes 12 and 13-23 become 1-11, with " AM" or " PM".
func DisplayHour(hour int, use24HourFormat bool) (int, string) {
	if use24HourFormat {
		return hour, ""
	}

	suffix := " AM"
	if hour >= 12 {
		suffix = " PM"
	}

	hour %= 12
	if hour == 0 {
		hour = 12
	}

	return hour, suffix
}

// FormatTime renders HH:MM:SS with an optional AM/PM suffix.
func FormatTime(now time.Time, use24HourFormat bool) string {
	hour, suffix := DisplayHour(now.Hour(), use24HourFormat)

	return fmt.Sprintf("%02d:%02d:%02d%s", hour, now.Minute(), now.Second(), suffix)
}

// FormatDate renders "<weekday>, DD-MM-YYYY".
func FormatDate(now time.Time) string {
	year, month, day := now.Date()

	return fmt.Sprintf("%s, %02d-%02d-%d", WeekdayName(now.Weekday()), day, int(month), year)
}

// WeekdayName returns the display name for a weekday.
func WeekdayName(day time.Weekday) string {
	return weekdayNames[int(day)%len(weekdayNames)]
}
