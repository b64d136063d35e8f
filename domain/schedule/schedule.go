// Package schedule models a schedule's day/time firing specification and
// synthesizes the canonical display name derived from it.
//
// The name grammar is load-bearing: downstream consumers key off the exact
// strings, so the synthesizer reproduces the established rules verbatim,
// including the ones that look like quirks (see Synthesize).
package schedule

// DayKind selects which axis of the calendar a schedule fires on.
type DayKind int

const (
	DayNone      DayKind = 0
	DayDaily     DayKind = 1
	DayWeekly    DayKind = 2
	DayMonthly   DayKind = 3
	DayYearly    DayKind = 4
	DayQuarterly DayKind = 5
	DayCustom    DayKind = 6
)

// TimeKind selects how firing times within a day are expressed.
type TimeKind int

const (
	TimeHoursMinutes TimeKind = 1
	TimeExactTimes   TimeKind = 2
	TimeEvery        TimeKind = 3
)

// MonthlyKind selects the monthly sub-form.
type MonthlyKind int

const (
	MonthlyDay    MonthlyKind = 1 // fixed day of month
	MonthlyNth    MonthlyKind = 2 // Nth weekday of month
	MonthlySeries MonthlyKind = 3 // explicit comma-separated day series
)

// Weekdays is the service's day-of-week bitmask, Sunday=1 through Saturday=64.
type Weekdays int

const (
	Sunday    Weekdays = 1
	Monday    Weekdays = 2
	Tuesday   Weekdays = 4
	Wednesday Weekdays = 8
	Thursday  Weekdays = 16
	Friday    Weekdays = 32
	Saturday  Weekdays = 64
)

// weekdayAbbrevs is indexed by bit position, low bit (Sunday) first.
var weekdayAbbrevs = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Abbrevs returns the 3-letter abbreviations of the set days in bitmask
// iteration order, low bit first.
func (w Weekdays) Abbrevs() []string {
	var out []string
	for bit := 0; bit < 7; bit++ {
		if w&(1<<bit) != 0 {
			out = append(out, weekdayAbbrevs[bit])
		}
	}
	return out
}

// Instance is the week-of-month ordinal for the Nth-weekday monthly form.
type Instance int

const (
	First  Instance = 1
	Second Instance = 2
	Third  Instance = 3
	Fourth Instance = 4
	Last   Instance = 5
)

var instanceNames = map[Instance]string{
	First:  "First",
	Second: "Second",
	Third:  "Third",
	Fourth: "Fourth",
	Last:   "Last",
}

// InstanceDay names the day slot the Nth-weekday form applies to. Beyond the
// seven weekdays the service also understands "any day", "any weekday" and
// "any weekend day".
type InstanceDay int

const (
	WeekendDay   InstanceDay = 0
	SundayDay    InstanceDay = 1
	MondayDay    InstanceDay = 2
	TuesdayDay   InstanceDay = 3
	WednesdayDay InstanceDay = 4
	ThursdayDay  InstanceDay = 5
	FridayDay    InstanceDay = 6
	SaturdayDay  InstanceDay = 7
	AnyDay       InstanceDay = 8
	WeekDay      InstanceDay = 9
)

var instanceDayNames = map[InstanceDay]string{
	WeekendDay:   "WeekendDay",
	SundayDay:    "Sunday",
	MondayDay:    "Monday",
	TuesdayDay:   "Tuesday",
	WednesdayDay: "Wednesday",
	ThursdayDay:  "Thursday",
	FridayDay:    "Friday",
	SaturdayDay:  "Saturday",
	AnyDay:       "Day",
	WeekDay:      "WeekDay",
}

// TimeOfDay is one firing time for the exact-times form.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// DaySpec describes which days a schedule fires.
type DaySpec struct {
	Kind     DayKind
	Interval int // every N days/weeks/months; 1 means every

	// Weekly
	Weekdays Weekdays

	// Monthly
	MonthlyKind MonthlyKind
	DayOfMonth  int
	Instance    Instance
	InstanceDay InstanceDay
	DaySeries   string // comma-separated, verbatim from the service
}

// TimeSpec describes which times of day a schedule fires.
type TimeSpec struct {
	Kind TimeKind

	// HoursMinutes
	Hour   int
	Minute int

	// ExactTimes
	Exact []TimeOfDay

	// Every
	EveryMinutes int
}

// Spec is a schedule's full day/time firing specification.
type Spec struct {
	Day  DaySpec
	Time TimeSpec
}
