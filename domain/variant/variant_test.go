package variant_test

import (
	"testing"

	"github.com/artpar/schedclient/domain/variant"
)

func TestFromCode(t *testing.T) {
	tests := []struct {
		name string
		code int
		lite bool
		want variant.Variant
	}{
		{"job full", variant.CodeJob, false, variant.Job},
		{"job lite", variant.CodeJob, true, variant.JobLite},
		{"plan full", variant.CodePlan, false, variant.Plan},
		{"plan lite", variant.CodePlan, true, variant.PlanLite},
		{"folder full", variant.CodeFolder, false, variant.Folder},
		{"folder lite", variant.CodeFolder, true, variant.FolderLite},
		{"schedule lite", variant.CodeSchedule, true, variant.ScheduleLite},
		{"queue has no lite form", variant.CodeQueue, true, variant.Queue},
		{"calendar has no lite form", variant.CodeCalendar, true, variant.Calendar},
		{"scheduler root", variant.CodeJobScheduler, false, variant.JobScheduler},
		{"observed service library code", variant.CodeServiceLibrary, false, variant.ServiceLibrary},
		{"documented service library code", variant.CodeServiceLibDoc, false, variant.ServiceLibrary},
		{"unknown code", variant.CodeUnknown, false, variant.Unsupported},
		{"reference unmodeled", variant.CodeReference, false, variant.Unsupported},
		{"instance unmodeled", variant.CodeInstance, true, variant.Unsupported},
		{"out of table", 99, false, variant.Unsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := variant.FromCode(tt.code, tt.lite); got != tt.want {
				t.Errorf("FromCode(%d, %v) = %v, want %v", tt.code, tt.lite, got, tt.want)
			}
		})
	}
}

func TestCodeRoundTrip(t *testing.T) {
	for _, v := range []variant.Variant{
		variant.Job, variant.JobLite, variant.Plan, variant.PlanLite,
		variant.Folder, variant.FolderLite, variant.Schedule, variant.ScheduleLite,
		variant.Queue, variant.Calendar, variant.UserAccount,
		variant.ServiceLibrary, variant.AlertObject, variant.JobScheduler,
	} {
		code := v.Code()
		if code == variant.CodeUnknown {
			t.Errorf("%v has no code", v)
			continue
		}
		if got := variant.FromCode(code, v.IsLite()); got != v {
			t.Errorf("FromCode(%v.Code(), lite=%v) = %v", v, v.IsLite(), got)
		}
	}
}

func TestOtherPairing(t *testing.T) {
	pairs := map[variant.Variant]variant.Variant{
		variant.Job:      variant.JobLite,
		variant.Plan:     variant.PlanLite,
		variant.Folder:   variant.FolderLite,
		variant.Schedule: variant.ScheduleLite,
	}
	for full, lite := range pairs {
		if full.Other() != lite || lite.Other() != full {
			t.Errorf("%v and %v are not paired", full, lite)
		}
	}
	// Single-density variants pair with themselves.
	for _, v := range []variant.Variant{variant.Queue, variant.Calendar, variant.JobScheduler} {
		if v.Other() != v {
			t.Errorf("%v.Other() = %v, want itself", v, v.Other())
		}
	}
}

func TestSet(t *testing.T) {
	s := variant.NewSet(variant.Plan, variant.Folder)
	if !s.Contains(variant.Plan) || !s.Contains(variant.Folder) {
		t.Error("set missing its own members")
	}
	if s.Contains(variant.Job) {
		t.Error("set contains Job")
	}
	if variant.Any.Contains(variant.Unsupported) != true {
		t.Error("wildcard must permit every variant")
	}
	if got := s.String(); got != "Plan, Folder" {
		t.Errorf("String() = %q", got)
	}
	if got := variant.Any.String(); got != "Any" {
		t.Errorf("Any.String() = %q", got)
	}
}

func TestIsContainer(t *testing.T) {
	for _, v := range []variant.Variant{variant.Folder, variant.FolderLite, variant.Plan, variant.PlanLite, variant.JobScheduler} {
		if !v.IsContainer() {
			t.Errorf("%v should be a container", v)
		}
	}
	for _, v := range []variant.Variant{variant.Job, variant.Schedule, variant.Queue, variant.Unsupported} {
		if v.IsContainer() {
			t.Errorf("%v should not be a container", v)
		}
	}
}
