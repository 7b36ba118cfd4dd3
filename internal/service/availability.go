package service

import (
	"fmt"
	"strings"
	"time"
)

// Candidate slots are generated on a fixed 30-minute grid regardless of the
// requested duration, so every doctor's offered times line up on a predictable
// public grid.
const slotGridMinutes = 30

// defaultConsultationMinutes applies both to an unspecified requested duration
// and to a booking stored without one.
const defaultConsultationMinutes = 30

// SlotConfig is a doctor's availability configuration as persisted on the
// profile: working weekdays, a single daily window applied to each of them,
// and full-day leave dates.
type SlotConfig struct {
	WorkDays   []string // weekday names, e.g. "Monday"
	DayStart   string   // "15:04" time of day
	DayEnd     string   // "15:04" time of day, must be after DayStart
	LeaveDates []string // "2006-01-02"
}

// BookedInterval is an existing appointment as seen by the resolver.
// A zero Minutes means the booking was stored without a duration and
// occupies the default 30 minutes.
type BookedInterval struct {
	Start   time.Time
	Minutes int
}

// CheckDayAvailable runs the date-level checks that do not need the day's
// bookings: leave membership and weekday membership. It returns ok=false with
// a display note when the doctor is unavailable for the whole date, so callers
// can skip the booking query entirely.
func CheckDayAvailable(cfg SlotConfig, targetDate string) (ok bool, note string, err error) {
	day, err := time.Parse("2006-01-02", targetDate)
	if err != nil {
		return false, "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", targetDate)
	}
	if len(cfg.WorkDays) == 0 || cfg.DayStart == "" || cfg.DayEnd == "" {
		return false, "", nil
	}
	for _, leave := range cfg.LeaveDates {
		if leave == targetDate {
			return false, "provider on leave for this date", nil
		}
	}
	weekday := day.Weekday().String()
	if !containsFold(cfg.WorkDays, weekday) {
		return false, fmt.Sprintf("provider does not work on %s", weekday), nil
	}
	return true, "", nil
}

// ResolveSlots computes the bookable start times for a doctor on targetDate.
//
// Candidates start at the daily window start and advance on the 30-minute
// grid while candidate+duration still fits inside the window. A candidate is
// dropped when it overlaps an existing booking under the half-open test
// (candStart < bookingEnd && candEnd > bookingStart); touching intervals are
// kept, back-to-back scheduling is allowed.
//
// durationMinutes == 0 means unspecified and defaults to 30; a negative value
// is a caller error. Missing schedule or window yields an empty result, not
// an error. The returned note mirrors CheckDayAvailable for leave days and
// non-working weekdays.
func ResolveSlots(cfg SlotConfig, bookings []BookedInterval, targetDate string, durationMinutes int) ([]time.Time, string, error) {
	if durationMinutes < 0 {
		return nil, "", fmt.Errorf("duration must be a positive number of minutes, got %d", durationMinutes)
	}
	if durationMinutes == 0 {
		durationMinutes = defaultConsultationMinutes
	}

	ok, note, err := CheckDayAvailable(cfg, targetDate)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, note, nil
	}

	day, _ := time.Parse("2006-01-02", targetDate)
	windowStart, err := timeOfDayOn(day, cfg.DayStart)
	if err != nil {
		return nil, "", fmt.Errorf("invalid window start %q: %w", cfg.DayStart, err)
	}
	windowEnd, err := timeOfDayOn(day, cfg.DayEnd)
	if err != nil {
		return nil, "", fmt.Errorf("invalid window end %q: %w", cfg.DayEnd, err)
	}

	duration := time.Duration(durationMinutes) * time.Minute
	var slots []time.Time
	for cand := windowStart; !cand.Add(duration).After(windowEnd); cand = cand.Add(slotGridMinutes * time.Minute) {
		if !overlapsAny(cand, cand.Add(duration), bookings) {
			slots = append(slots, cand)
		}
	}
	return slots, "", nil
}

func overlapsAny(candStart, candEnd time.Time, bookings []BookedInterval) bool {
	for _, b := range bookings {
		minutes := b.Minutes
		if minutes == 0 {
			minutes = defaultConsultationMinutes
		}
		bookingEnd := b.Start.Add(time.Duration(minutes) * time.Minute)
		if candStart.Before(bookingEnd) && candEnd.After(b.Start) {
			return true
		}
	}
	return false
}

// timeOfDayOn anchors an "15:04" time of day onto the given calendar day in UTC.
func timeOfDayOn(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}
