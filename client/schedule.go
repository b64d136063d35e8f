package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/artpar/schedclient/core/registry"
	"github.com/artpar/schedclient/domain/schedule"
	"github.com/artpar/schedclient/domain/variant"
	"github.com/artpar/schedclient/ports"
)

// ScheduleSpec reads the day/time firing specification off a schedule
// proxy. Absent fields read as their zero value: old schedules predate some
// of the spec properties.
func (p *Proxy) ScheduleSpec(ctx context.Context) (schedule.Spec, error) {
	var spec schedule.Spec
	switch p.v {
	case variant.Schedule:
	case variant.ScheduleLite:
		// The spec properties live on the full representation.
		full, err := p.Counterpart(ctx)
		if err != nil {
			return spec, err
		}
		return full.ScheduleSpec(ctx)
	default:
		return spec, &ValidationError{Operation: "ScheduleSpec", Key: p.key,
			Reason: "proxy is a " + p.v.String() + ", not a schedule"}
	}

	var err error
	read := func(name string) int {
		if err != nil {
			return 0
		}
		var n int
		n, err = p.propInt(ctx, name)
		return n
	}

	// The interval and detail properties are named per day-spec kind on
	// the automation interface.
	spec.Day.Kind = schedule.DayKind(read("DaySpec_Type"))
	switch spec.Day.Kind {
	case schedule.DayDaily:
		spec.Day.Interval = read("DaySpec_DailyInterval")
	case schedule.DayWeekly:
		spec.Day.Interval = read("DaySpec_WeeklyInterval")
		spec.Day.Weekdays = schedule.Weekdays(read("DaySpec_WeeklyDaysOfWeek"))
	case schedule.DayMonthly:
		spec.Day.Interval = read("DaySpec_MonthlyInterval")
		spec.Day.MonthlyKind = schedule.MonthlyKind(read("DaySpec_MonthlyType"))
		spec.Day.DayOfMonth = read("DaySpec_MonthlyDayOfMonth")
		spec.Day.Instance = schedule.Instance(read("DaySpec_MonthlyInstance"))
		spec.Day.InstanceDay = schedule.InstanceDay(read("DaySpec_MonthlyDayOfWeek"))
	}
	spec.Time.Kind = schedule.TimeKind(read("TimeSpec_Type"))
	switch spec.Time.Kind {
	case schedule.TimeHoursMinutes:
		spec.Time.Hour = read("TimeSpec_Hours")
		spec.Time.Minute = read("TimeSpec_Minutes")
	case schedule.TimeEvery:
		spec.Time.EveryMinutes = read("TimeSpec_Interval")
	}
	if err != nil {
		return spec, err
	}

	if spec.Day.Kind == schedule.DayMonthly && spec.Day.MonthlyKind == schedule.MonthlySeries {
		series, serr := p.propString(ctx, "DaySpec_MonthlyDaySeries")
		if serr != nil {
			return spec, serr
		}
		spec.Day.DaySeries = series
	}

	if spec.Time.Kind == schedule.TimeExactTimes {
		exact, terr := p.exactTimes(ctx)
		if terr != nil {
			return spec, terr
		}
		spec.Time.Exact = exact
	}
	return spec, nil
}

// exactTimes fetches and parses the exact-times collection ("HH:MM" each).
func (p *Proxy) exactTimes(ctx context.Context) ([]schedule.TimeOfDay, error) {
	res, err := p.s.call(ctx, p, registry.OpGetExactTimes, nil)
	if err != nil {
		return nil, err
	}
	raw, _ := res.([]string)
	out := make([]schedule.TimeOfDay, 0, len(raw))
	for _, t := range raw {
		hh, mm, ok := strings.Cut(t, ":")
		if !ok {
			return nil, fmt.Errorf("client: malformed exact time %q", t)
		}
		hour, herr := strconv.Atoi(hh)
		minute, merr := strconv.Atoi(mm)
		if herr != nil || merr != nil {
			return nil, fmt.Errorf("client: malformed exact time %q", t)
		}
		out = append(out, schedule.TimeOfDay{Hour: hour, Minute: minute})
	}
	return out, nil
}

// CanonicalName computes the schedule's derived display name.
func (p *Proxy) CanonicalName(ctx context.Context) (string, error) {
	spec, err := p.ScheduleSpec(ctx)
	if err != nil {
		return "", err
	}
	return schedule.Synthesize(spec), nil
}

// Productionalize renames the schedule to its canonical name (Name and
// Label, then Update) and returns the new name. A schedule already carrying
// its canonical name is left untouched.
func (p *Proxy) Productionalize(ctx context.Context) (string, error) {
	name, err := p.CanonicalName(ctx)
	if err != nil {
		return "", err
	}
	current, err := p.Name(ctx)
	if err != nil {
		return "", err
	}
	if current == name {
		return name, nil
	}
	if err := p.h.SetProperty(ctx, "Name", name); err != nil {
		return "", err
	}
	if err := p.h.SetProperty(ctx, "Label", name); err != nil {
		return "", err
	}
	if err := p.Update(ctx); err != nil {
		return "", err
	}
	p.s.logger.Info().
		Str("old_name", current).
		Str("new_name", name).
		Msg("schedule renamed to canonical form")
	return name, nil
}

// RenameSchedules productionalizes every schedule associated with the plan
// or job at key. Returns old name -> new name for the schedules that
// changed.
func (s *Session) RenameSchedules(ctx context.Context, key string) (map[string]string, error) {
	owner, err := s.Object(ctx, key, false)
	if err != nil {
		return nil, err
	}
	scheds, err := owner.AssociatedSchedules(ctx)
	if err != nil {
		return nil, err
	}
	renamed := make(map[string]string)
	for _, sched := range scheds {
		old, err := sched.Name(ctx)
		if err != nil {
			return nil, err
		}
		name, err := sched.Productionalize(ctx)
		if err != nil {
			return nil, err
		}
		if old != name {
			renamed[old] = name
		}
	}
	return renamed, nil
}

func (p *Proxy) propInt(ctx context.Context, name string) (int, error) {
	v, err := p.h.Property(ctx, name)
	if errors.Is(err, ports.ErrPropertyAbsent) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return toInt(v), nil
}

func (p *Proxy) propString(ctx context.Context, name string) (string, error) {
	v, err := p.h.Property(ctx, name)
	if errors.Is(err, ports.ErrPropertyAbsent) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}
