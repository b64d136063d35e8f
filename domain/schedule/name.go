package schedule

import (
	"fmt"
	"strings"
)

// Synthesize derives the canonical name "<dayComponent>_<timeComponent>"
// from a firing specification. The function is deterministic and pure.
//
// Two established quirks are reproduced on purpose and must not be "fixed":
// the interval digit is omitted when it equals 1 ("EveryDay", not
// "Every1Day"), and the ordinal suffix for a fixed day of month is chosen
// from the last digit only, so day 11 yields "11st" rather than "11th".
func Synthesize(s Spec) string {
	return dayComponent(s.Day) + "_" + timeComponent(s.Time)
}

func dayComponent(d DaySpec) string {
	switch d.Kind {
	case DayDaily:
		return fmt.Sprintf("Every%s%s", intervalDigits(d.Interval), plural(d.Interval, "Day"))
	case DayWeekly:
		days := strings.Join(d.Weekdays.Abbrevs(), "")
		return fmt.Sprintf("Every%s%s.%s", intervalDigits(d.Interval), plural(d.Interval, "Week"), days)
	case DayMonthly:
		return monthlyComponent(d)
	default:
		// Yearly, quarterly and custom day specs carry no day component.
		return ""
	}
}

func monthlyComponent(d DaySpec) string {
	prefix := fmt.Sprintf("Every%s%s", intervalDigits(d.Interval), plural(d.Interval, "Month"))
	switch d.MonthlyKind {
	case MonthlyDay:
		return fmt.Sprintf("%s.%d%s", prefix, d.DayOfMonth, ordinalSuffix(d.DayOfMonth))
	case MonthlyNth:
		return fmt.Sprintf("%s.%s%s", prefix, instanceNames[d.Instance], instanceDayNames[d.InstanceDay])
	case MonthlySeries:
		return fmt.Sprintf("%s.%s", prefix, strings.ReplaceAll(d.DaySeries, ",", " "))
	}
	return ""
}

// ordinalSuffix looks at the last digit only. 11, 12 and 13 therefore get
// "st", "nd" and "rd"; established names already depend on this.
func ordinalSuffix(day int) string {
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

// intervalDigits renders the interval, omitting it entirely when it is 1.
func intervalDigits(interval int) string {
	if interval == 1 {
		return ""
	}
	return fmt.Sprintf("%d", interval)
}

func plural(interval int, unit string) string {
	if interval == 1 {
		return unit
	}
	return unit + "s"
}

func timeComponent(t TimeSpec) string {
	switch t.Kind {
	case TimeHoursMinutes:
		return fmt.Sprintf("%02d%02d", t.Hour, t.Minute)
	case TimeExactTimes:
		parts := make([]string, len(t.Exact))
		for i, tod := range t.Exact {
			parts[i] = fmt.Sprintf("%02d%02d", tod.Hour, tod.Minute)
		}
		return strings.Join(parts, "_")
	case TimeEvery:
		return fmt.Sprintf("Every_%dm", t.EveryMinutes)
	}
	return ""
}
