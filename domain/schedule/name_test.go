package schedule_test

import (
	"testing"

	"github.com/artpar/schedclient/domain/schedule"
)

func at(h, m int) schedule.TimeSpec {
	return schedule.TimeSpec{Kind: schedule.TimeHoursMinutes, Hour: h, Minute: m}
}

func TestSynthesize_Daily(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		want     string
	}{
		{"singular omits the digit", 1, "EveryDay_0901"},
		{"plural keeps the digit", 3, "Every3Days_0901"},
		{"two days", 2, "Every2Days_0901"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := schedule.Spec{
				Day:  schedule.DaySpec{Kind: schedule.DayDaily, Interval: tt.interval},
				Time: at(9, 1),
			}
			if got := schedule.Synthesize(spec); got != tt.want {
				t.Errorf("Synthesize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynthesize_Weekly(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		days     schedule.Weekdays
		want     string
	}{
		{"mon wed", 1, schedule.Monday | schedule.Wednesday, "EveryWeek.MonWed_0901"},
		{"tue thu every 2", 2, schedule.Tuesday | schedule.Thursday, "Every2Weeks.TueThu_0901"},
		{"bitmask order low bit first", 1, schedule.Saturday | schedule.Sunday, "EveryWeek.SunSat_0901"},
		{"all seven", 1,
			schedule.Sunday | schedule.Monday | schedule.Tuesday | schedule.Wednesday |
				schedule.Thursday | schedule.Friday | schedule.Saturday,
			"EveryWeek.SunMonTueWedThuFriSat_0901"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := schedule.Spec{
				Day:  schedule.DaySpec{Kind: schedule.DayWeekly, Interval: tt.interval, Weekdays: tt.days},
				Time: at(9, 1),
			}
			if got := schedule.Synthesize(spec); got != tt.want {
				t.Errorf("Synthesize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynthesize_MonthlyFixedDay(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "EveryMonth.1st_0901"},
		{2, "EveryMonth.2nd_0901"},
		{3, "EveryMonth.3rd_0901"},
		{4, "EveryMonth.4th_0901"},
		{10, "EveryMonth.10th_0901"},
		// Last-digit rule: 11/12/13 get the "wrong" suffix and that is the
		// established behavior.
		{11, "EveryMonth.11st_0901"},
		{12, "EveryMonth.12nd_0901"},
		{13, "EveryMonth.13rd_0901"},
		{21, "EveryMonth.21st_0901"},
		{30, "EveryMonth.30th_0901"},
	}
	for _, tt := range tests {
		spec := schedule.Spec{
			Day: schedule.DaySpec{
				Kind: schedule.DayMonthly, Interval: 1,
				MonthlyKind: schedule.MonthlyDay, DayOfMonth: tt.day,
			},
			Time: at(9, 1),
		}
		if got := schedule.Synthesize(spec); got != tt.want {
			t.Errorf("day %d: Synthesize() = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestSynthesize_MonthlyNth(t *testing.T) {
	spec := schedule.Spec{
		Day: schedule.DaySpec{
			Kind: schedule.DayMonthly, Interval: 3,
			MonthlyKind: schedule.MonthlyNth,
			Instance:    schedule.Last, InstanceDay: schedule.FridayDay,
		},
		Time: at(23, 0),
	}
	if got, want := schedule.Synthesize(spec), "Every3Months.LastFriday_2300"; got != want {
		t.Errorf("Synthesize() = %q, want %q", got, want)
	}
}

func TestSynthesize_MonthlySeries(t *testing.T) {
	spec := schedule.Spec{
		Day: schedule.DaySpec{
			Kind: schedule.DayMonthly, Interval: 1,
			MonthlyKind: schedule.MonthlySeries, DaySeries: "1,15,28",
		},
		Time: at(6, 30),
	}
	if got, want := schedule.Synthesize(spec), "EveryMonth.1 15 28_0630"; got != want {
		t.Errorf("Synthesize() = %q, want %q", got, want)
	}
}

func TestSynthesize_EmptyDayComponent(t *testing.T) {
	// Yearly and quarterly day specs have no day component; the separator
	// stays.
	for _, kind := range []schedule.DayKind{schedule.DayYearly, schedule.DayQuarterly} {
		spec := schedule.Spec{
			Day:  schedule.DaySpec{Kind: kind, Interval: 1},
			Time: at(9, 1),
		}
		if got, want := schedule.Synthesize(spec), "_0901"; got != want {
			t.Errorf("kind %d: Synthesize() = %q, want %q", kind, got, want)
		}
	}
}

func TestSynthesize_TimeComponents(t *testing.T) {
	day := schedule.DaySpec{Kind: schedule.DayDaily, Interval: 1}

	tests := []struct {
		name string
		time schedule.TimeSpec
		want string
	}{
		{"hours minutes zero padded", at(9, 1), "EveryDay_0901"},
		{"hours minutes late", at(14, 30), "EveryDay_1430"},
		{"exact times joined", schedule.TimeSpec{
			Kind:  schedule.TimeExactTimes,
			Exact: []schedule.TimeOfDay{{Hour: 9, Minute: 1}, {Hour: 10, Minute: 1}, {Hour: 23, Minute: 59}},
		}, "EveryDay_0901_1001_2359"},
		{"every n minutes", schedule.TimeSpec{Kind: schedule.TimeEvery, EveryMinutes: 10}, "EveryDay_Every_10m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := schedule.Synthesize(schedule.Spec{Day: day, Time: tt.time}); got != tt.want {
				t.Errorf("Synthesize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynthesize_EndToEndScenario(t *testing.T) {
	spec := schedule.Spec{
		Day: schedule.DaySpec{
			Kind: schedule.DayWeekly, Interval: 2,
			Weekdays: schedule.Tuesday | schedule.Thursday,
		},
		Time: at(14, 30),
	}
	if got, want := schedule.Synthesize(spec), "Every2Weeks.TueThu_1430"; got != want {
		t.Errorf("Synthesize() = %q, want %q", got, want)
	}
}
