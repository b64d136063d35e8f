// Package variant defines the closed set of logical object kinds exposed by
// the scheduler's automation interface, the mapping between raw integer type
// codes and variants, and the bitmask enumerations the service consumes as
// plain integers.
package variant

// Variant is one of the closed set of logical remote-object kinds.
// A proxy's variant never changes after construction.
type Variant uint8

const (
	// Unsupported covers object kinds the automation interface reports but
	// this layer does not model (references, instances, generic queues,
	// object lists, resource objects).
	Unsupported Variant = iota
	JobScheduler
	Job
	JobLite
	Plan
	PlanLite
	Folder
	FolderLite
	Schedule
	ScheduleLite
	Queue
	Calendar
	UserAccount
	ServiceLibrary
	AlertObject

	numVariants
)

var names = [numVariants]string{
	Unsupported:    "Unsupported",
	JobScheduler:   "JobScheduler",
	Job:            "Job",
	JobLite:        "JobLite",
	Plan:           "Plan",
	PlanLite:       "PlanLite",
	Folder:         "Folder",
	FolderLite:     "FolderLite",
	Schedule:       "Schedule",
	ScheduleLite:   "ScheduleLite",
	Queue:          "Queue",
	Calendar:       "Calendar",
	UserAccount:    "UserAccount",
	ServiceLibrary: "ServiceLibrary",
	AlertObject:    "AlertObject",
}

// String returns the variant name.
func (v Variant) String() string {
	if v >= numVariants {
		return "Unsupported"
	}
	return names[v]
}

// IsLite reports whether the variant is the partial-attribute density.
func (v Variant) IsLite() bool {
	switch v {
	case JobLite, PlanLite, FolderLite, ScheduleLite:
		return true
	}
	return false
}

// IsContainer reports whether the variant can hold child objects.
// Plans count as folder-equivalent: the service files objects under plans
// exactly as it does under folders.
func (v Variant) IsContainer() bool {
	switch v {
	case Folder, FolderLite, Plan, PlanLite, JobScheduler:
		return true
	}
	return false
}

// Other returns the paired variant of the opposite density. Variants that
// the interface only ever reports at one density pair with themselves.
func (v Variant) Other() Variant {
	switch v {
	case Job:
		return JobLite
	case JobLite:
		return Job
	case Plan:
		return PlanLite
	case PlanLite:
		return Plan
	case Folder:
		return FolderLite
	case FolderLite:
		return Folder
	case Schedule:
		return ScheduleLite
	case ScheduleLite:
		return Schedule
	}
	return v
}

// Raw type codes returned by the automation interface. Code 0 is unknown.
// The table has 16 entries; several codes collapse to Unsupported because
// this layer does not model those kinds.
const (
	CodeUnknown        = 0
	CodeServiceLibrary = 1 // observed value; the documented code is 13
	CodeJob            = 2
	CodePlan           = 3 // ambiguous with CodeFolder on service versions <= 9
	CodeQueue          = 4
	CodeSchedule       = 5
	CodeCalendar       = 6
	CodeUserAccount    = 7
	CodeResource       = 8
	CodeAlertObject    = 9
	CodeReference      = 10
	CodeInstance       = 11
	CodeJobScheduler   = 12
	CodeServiceLibDoc  = 13 // documented ServiceLibrary code, never observed
	CodeFolder         = 14
	CodeGenericQueue   = 15
	CodeObjectList     = 16
)

// FromCode maps a raw type code and a density to a variant. Codes outside
// the table, and kinds this layer does not model, map to Unsupported.
func FromCode(code int, lite bool) Variant {
	switch code {
	case CodeServiceLibrary, CodeServiceLibDoc:
		return ServiceLibrary
	case CodeJob:
		if lite {
			return JobLite
		}
		return Job
	case CodePlan:
		if lite {
			return PlanLite
		}
		return Plan
	case CodeQueue:
		return Queue
	case CodeSchedule:
		if lite {
			return ScheduleLite
		}
		return Schedule
	case CodeCalendar:
		return Calendar
	case CodeUserAccount:
		return UserAccount
	case CodeAlertObject:
		return AlertObject
	case CodeJobScheduler:
		return JobScheduler
	case CodeFolder:
		if lite {
			return FolderLite
		}
		return Folder
	}
	return Unsupported
}

// Code returns the raw type code for a variant, the reverse of FromCode.
// Unsupported maps to CodeUnknown.
func (v Variant) Code() int {
	switch v {
	case ServiceLibrary:
		return CodeServiceLibrary
	case Job, JobLite:
		return CodeJob
	case Plan, PlanLite:
		return CodePlan
	case Queue:
		return CodeQueue
	case Schedule, ScheduleLite:
		return CodeSchedule
	case Calendar:
		return CodeCalendar
	case UserAccount:
		return CodeUserAccount
	case AlertObject:
		return CodeAlertObject
	case JobScheduler:
		return CodeJobScheduler
	case Folder, FolderLite:
		return CodeFolder
	}
	return CodeUnknown
}
