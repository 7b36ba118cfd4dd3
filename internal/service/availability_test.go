package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 2026-03-02 is a Monday.
const (
	monday  = "2026-03-02"
	tuesday = "2026-03-03"
)

func mondayAt(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", monday+" "+hhmm)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func workingConfig() SlotConfig {
	return SlotConfig{
		WorkDays: []string{"Monday", "Wednesday", "Friday"},
		DayStart: "09:00",
		DayEnd:   "17:00",
	}
}

func TestResolveSlots(t *testing.T) {
	tests := []struct {
		name      string
		cfg       SlotConfig
		bookings  []BookedInterval
		date      string
		duration  int
		wantSlots []time.Time
		wantNote  string
		wantErr   bool
	}{
		{
			name: "small window default duration",
			cfg: SlotConfig{
				WorkDays: []string{"Monday"},
				DayStart: "09:00",
				DayEnd:   "10:00",
			},
			date:      monday,
			duration:  30,
			wantSlots: []time.Time{mondayAt("09:00"), mondayAt("09:30")},
		},
		{
			name: "odd duration stays on the 30-minute grid",
			cfg: SlotConfig{
				WorkDays: []string{"Monday"},
				DayStart: "09:00",
				DayEnd:   "10:00",
			},
			date:     monday,
			duration: 45,
			// 09:30+45 would end 10:15, past the window.
			wantSlots: []time.Time{mondayAt("09:00")},
		},
		{
			name:      "unspecified duration defaults to 30",
			cfg:       SlotConfig{WorkDays: []string{"Monday"}, DayStart: "09:00", DayEnd: "10:00"},
			date:      monday,
			duration:  0,
			wantSlots: []time.Time{mondayAt("09:00"), mondayAt("09:30")},
		},
		{
			name:     "back-to-back booking does not block the touching candidate",
			cfg:      SlotConfig{WorkDays: []string{"Monday"}, DayStart: "09:00", DayEnd: "10:30"},
			bookings: []BookedInterval{{Start: mondayAt("09:00"), Minutes: 30}},
			date:     monday,
			duration: 30,
			// 09:00 overlaps the booking, 09:30 starts exactly at its end.
			wantSlots: []time.Time{mondayAt("09:30"), mondayAt("10:00")},
		},
		{
			name:      "booking without duration occupies 30 minutes",
			cfg:       SlotConfig{WorkDays: []string{"Monday"}, DayStart: "09:00", DayEnd: "10:30"},
			bookings:  []BookedInterval{{Start: mondayAt("09:30")}},
			date:      monday,
			duration:  30,
			wantSlots: []time.Time{mondayAt("09:00"), mondayAt("10:00")},
		},
		{
			name:     "long booking shadows every overlapped candidate",
			cfg:      workingConfig(),
			bookings: []BookedInterval{{Start: mondayAt("10:00"), Minutes: 120}},
			date:     monday,
			duration: 60,
			wantSlots: []time.Time{
				mondayAt("09:00"),
				mondayAt("12:00"), mondayAt("12:30"), mondayAt("13:00"), mondayAt("13:30"),
				mondayAt("14:00"), mondayAt("14:30"), mondayAt("15:00"), mondayAt("15:30"),
				mondayAt("16:00"),
			},
		},
		{
			name:     "non-working weekday yields note",
			cfg:      SlotConfig{WorkDays: []string{"Monday"}, DayStart: "09:00", DayEnd: "10:00"},
			date:     tuesday,
			duration: 30,
			wantNote: "provider does not work on Tuesday",
		},
		{
			name: "leave day short-circuits regardless of bookings",
			cfg: SlotConfig{
				WorkDays:   []string{"Monday"},
				DayStart:   "09:00",
				DayEnd:     "17:00",
				LeaveDates: []string{monday},
			},
			bookings: []BookedInterval{{Start: mondayAt("09:00")}},
			date:     monday,
			duration: 30,
			wantNote: "provider on leave for this date",
		},
		{
			name:     "no schedule configured",
			cfg:      SlotConfig{DayStart: "09:00", DayEnd: "17:00"},
			date:     monday,
			duration: 30,
		},
		{
			name:     "no window configured",
			cfg:      SlotConfig{WorkDays: []string{"Monday"}},
			date:     monday,
			duration: 30,
		},
		{
			name:     "malformed date is an error",
			cfg:      workingConfig(),
			date:     "02-03-2026",
			duration: 30,
			wantErr:  true,
		},
		{
			name:     "negative duration is an error",
			cfg:      workingConfig(),
			date:     monday,
			duration: -15,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots, note, err := ResolveSlots(tt.cfg, tt.bookings, tt.date, tt.duration)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantNote, note)
			require.Equal(t, tt.wantSlots, slots)
		})
	}
}

func TestResolveSlotsProperties(t *testing.T) {
	cfg := workingConfig()
	bookings := []BookedInterval{
		{Start: mondayAt("09:30"), Minutes: 45},
		{Start: mondayAt("13:00")},
		{Start: mondayAt("16:00"), Minutes: 60},
	}
	duration := 45

	slots, note, err := ResolveSlots(cfg, bookings, monday, duration)
	require.NoError(t, err)
	require.Empty(t, note)
	require.NotEmpty(t, slots)

	windowEnd := mondayAt("17:00")
	d := time.Duration(duration) * time.Minute
	for i, s := range slots {
		// strictly ascending, no duplicates
		if i > 0 {
			require.True(t, slots[i-1].Before(s))
		}
		// every slot fits inside the window
		require.False(t, s.Add(d).After(windowEnd))
		// no slot overlaps any booking
		for _, b := range bookings {
			minutes := b.Minutes
			if minutes == 0 {
				minutes = 30
			}
			bEnd := b.Start.Add(time.Duration(minutes) * time.Minute)
			overlap := s.Before(bEnd) && s.Add(d).After(b.Start)
			require.False(t, overlap, "slot %v overlaps booking %v", s, b.Start)
		}
	}

	// identical inputs produce identical output
	again, _, err := ResolveSlots(cfg, bookings, monday, duration)
	require.NoError(t, err)
	require.Equal(t, slots, again)
}

func TestCheckDayAvailable(t *testing.T) {
	cfg := workingConfig()

	ok, note, err := CheckDayAvailable(cfg, monday)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, note)

	ok, note, err = CheckDayAvailable(cfg, tuesday)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, "provider does not work on Tuesday", note)

	cfg.LeaveDates = []string{monday}
	ok, note, err = CheckDayAvailable(cfg, monday)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, "provider on leave for this date", note)

	_, _, err = CheckDayAvailable(cfg, "not-a-date")
	require.Error(t, err)
}
