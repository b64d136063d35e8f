// Package registry holds the static capability table: for every operation
// in the automation interface's vocabulary, the set of variants permitted
// to invoke it. The table is fixed at process start; dispatch consults it
// before any remote call so that disallowed combinations never reach the
// service.
package registry

import (
	"sort"

	"github.com/artpar/schedclient/domain/variant"
)

// Operation vocabulary. The set is closed: the automation interface defines
// these names and this layer never invents new ones at runtime.
const (
	OpConnect    = "Connect"
	OpDisconnect = "Disconnect"

	OpDelete      = "Delete"
	OpDeleteEx    = "DeleteEx"
	OpDisable     = "Disable"
	OpEnable      = "Enable"
	OpRefreshData = "RefreshData"
	OpUpdate      = "Update"

	OpGetAssociations = "GetAssociations"
	OpGetAudits       = "GetAudits"
	OpPurgeObject     = "PurgeObject"
	OpRestoreObject   = "RestoreObject"

	OpAddObject    = "AddObject"
	OpCreateObject = "CreateObject"

	OpGetObjectType = "GetObjectType"
	OpGetObject     = "GetObject"
	OpGetObjectLite = "GetObjectLite"
	OpObjectExists  = "ObjectExists"
	OpSearch        = "Search"
	OpMoveObject    = "MoveObject"
	OpCopyObject    = "CopyObject"
	OpExport        = "Export"
	OpImport        = "Import"

	OpGetChildren       = "GetObjectsLite"
	OpGetChildInstances = "GetChildInstances"
	OpGetInstances      = "GetInstances"
	OpFlushInstances    = "FlushInstances"

	OpGetAlerts              = "GetAlerts"
	OpGetAssociatedAlerts    = "GetAssociatedAlertObjects"
	OpGetAssociatedCalendars = "GetAssociatedCalendarsObjectId"
	OpGetAssociatedSchedules = "GetAssociatedSchedules"
	OpGetAssociatedJobs      = "GetAssociatedJobs"
	OpGetBatchStarts         = "GetBatchStarts"
	OpGetCompletionRules     = "GetCompletionRules"
	OpGetCounters            = "GetCounters"
	OpGetDependencies        = "GetDependencies"
	OpGetEventTriggers       = "GetEventTriggers"
	OpGetExclusionList       = "GetExclusionList"
	OpGetJobPolicy           = "GetJobPolicy"
	OpGetSecurityAccounts    = "GetSecurityAccounts"
	OpGetVariables           = "GetVariables"
	OpHasPermission          = "HasPermission"
	OpIsDirty                = "IsDirty"
	OpIsPropertyLocked       = "IsPropertyLocked"
	OpIsPublished            = "IsPublished"
	OpPublish                = "Publish"
	OpUnpublish              = "Unpublish"
	OpResetAverage           = "ResetAverage"
	OpResetCounters          = "ResetCounters"
	OpTakeOwnership          = "TakeOwnership"
	OpTrigger                = "Trigger"
	OpUpdateCounters         = "UpdateCounters"

	OpGetExactDates     = "GetExactDates"
	OpGetScheduledDates = "GetScheduledDates"
	OpGetExactTimes     = "TimeSpec_GetExactTimes"
)

// builtin is the capability table. Allow-sets mirror the behavior observed
// against the service, not its documentation: the documentation lists some
// operations for variants that reject them at runtime, and the wildcard
// entries exist precisely so the service stays the authority for those.
var builtin = map[string]variant.Set{
	OpConnect:    variant.NewSet(variant.JobScheduler),
	OpDisconnect: variant.NewSet(variant.JobScheduler),

	OpDelete:      variant.Any,
	OpDeleteEx:    variant.Any,
	OpDisable:     variant.Any,
	OpEnable:      variant.Any,
	OpRefreshData: variant.Any,

	OpGetAssociations: variant.Any,
	OpGetAudits:       variant.Any,
	OpPurgeObject:     variant.Any,
	OpRestoreObject:   variant.Any,

	OpAddObject: variant.NewSet(variant.Plan, variant.PlanLite,
		variant.Folder, variant.FolderLite, variant.JobScheduler),
	OpCreateObject: variant.NewSet(variant.Plan, variant.PlanLite,
		variant.Folder, variant.FolderLite, variant.JobScheduler),

	OpGetObjectType: variant.NewSet(variant.JobScheduler),
	OpGetObject: variant.NewSet(variant.AlertObject, variant.Calendar,
		variant.Folder, variant.FolderLite, variant.JobScheduler,
		variant.Plan, variant.PlanLite, variant.Queue,
		variant.ScheduleLite, variant.JobLite,
		variant.UserAccount, variant.ServiceLibrary),
	OpGetObjectLite: variant.NewSet(variant.JobScheduler),
	OpObjectExists:  variant.NewSet(variant.JobScheduler),
	OpSearch:        variant.NewSet(variant.JobScheduler),
	OpMoveObject:    variant.NewSet(variant.JobScheduler),
	OpCopyObject: variant.NewSet(variant.AlertObject, variant.Job,
		variant.Schedule),
	OpExport: variant.NewSet(variant.JobScheduler),
	OpImport: variant.NewSet(variant.JobScheduler),

	OpGetChildren: variant.NewSet(variant.Plan, variant.Folder,
		variant.FolderLite, variant.JobScheduler),
	OpGetChildInstances: variant.NewSet(variant.Folder, variant.FolderLite),
	OpGetInstances: variant.NewSet(variant.JobScheduler, variant.PlanLite,
		variant.Job, variant.JobLite),
	OpFlushInstances: variant.NewSet(variant.Plan, variant.PlanLite,
		variant.Queue, variant.Job, variant.JobLite),

	OpGetAlerts: variant.NewSet(variant.JobScheduler, variant.Job,
		variant.Plan, variant.Queue),
	OpGetAssociatedAlerts: variant.NewSet(variant.Job, variant.Plan,
		variant.Queue),
	OpGetAssociatedCalendars: variant.NewSet(variant.Job, variant.Plan,
		variant.Schedule),
	OpGetAssociatedSchedules: variant.NewSet(variant.Job, variant.Plan),
	OpGetAssociatedJobs: variant.NewSet(variant.AlertObject,
		variant.Calendar, variant.Schedule, variant.UserAccount),
	OpGetBatchStarts:     variant.NewSet(variant.Job, variant.Plan),
	OpGetCompletionRules: variant.NewSet(variant.Plan),
	OpGetCounters: variant.NewSet(variant.Plan, variant.PlanLite,
		variant.JobScheduler, variant.Queue, variant.Job, variant.JobLite),
	OpGetDependencies: variant.NewSet(variant.Job, variant.Plan,
		variant.JobScheduler),
	OpGetEventTriggers: variant.NewSet(variant.Job, variant.Plan),
	OpGetExclusionList: variant.NewSet(variant.Job, variant.Plan),
	OpGetJobPolicy:     variant.NewSet(variant.Plan),
	OpGetSecurityAccounts: variant.NewSet(variant.Plan, variant.Folder,
		variant.JobScheduler, variant.AlertObject, variant.Calendar,
		variant.Job, variant.Queue, variant.Schedule,
		variant.ServiceLibrary, variant.UserAccount),
	OpGetVariables: variant.NewSet(variant.Plan, variant.Folder,
		variant.JobScheduler, variant.Job, variant.Queue,
		variant.UserAccount),
	OpHasPermission: variant.NewSet(variant.Plan, variant.Folder,
		variant.AlertObject, variant.Calendar, variant.Job, variant.Queue,
		variant.Schedule, variant.ServiceLibrary, variant.UserAccount),
	OpIsDirty: variant.NewSet(variant.Plan, variant.Folder,
		variant.JobScheduler, variant.AlertObject, variant.Calendar,
		variant.Job, variant.Queue, variant.Schedule,
		variant.ServiceLibrary, variant.UserAccount),
	OpIsPropertyLocked: variant.NewSet(variant.Folder, variant.Job,
		variant.ServiceLibrary),
	OpIsPublished: variant.NewSet(variant.Plan, variant.PlanLite,
		variant.Folder, variant.FolderLite),
	OpPublish: variant.NewSet(variant.Plan, variant.PlanLite,
		variant.Folder, variant.FolderLite),
	OpUnpublish: variant.NewSet(variant.Folder, variant.JobScheduler,
		variant.AlertObject, variant.Calendar, variant.Job, variant.Plan,
		variant.Queue, variant.Schedule, variant.ServiceLibrary,
		variant.UserAccount),
	OpUpdate: variant.NewSet(variant.Folder, variant.JobScheduler,
		variant.AlertObject, variant.Calendar, variant.Job, variant.Plan,
		variant.Queue, variant.Schedule, variant.ServiceLibrary,
		variant.UserAccount),
	OpResetAverage: variant.NewSet(variant.Plan, variant.PlanLite,
		variant.Job, variant.JobLite),
	OpResetCounters: variant.NewSet(variant.Queue, variant.Plan,
		variant.PlanLite, variant.Job, variant.JobLite),
	OpTakeOwnership: variant.NewSet(variant.Folder, variant.FolderLite,
		variant.Plan, variant.PlanLite),
	OpTrigger: variant.NewSet(variant.Plan, variant.PlanLite,
		variant.Job, variant.JobLite),
	OpUpdateCounters: variant.NewSet(variant.JobScheduler, variant.Plan,
		variant.PlanLite, variant.Queue, variant.Job, variant.JobLite),

	OpGetExactDates:     variant.NewSet(variant.Schedule),
	OpGetScheduledDates: variant.NewSet(variant.Schedule),
	OpGetExactTimes:     variant.NewSet(variant.Schedule),
}

// Registry answers capability questions from the static table. Read-only
// after construction; safe for concurrent use.
type Registry struct {
	table map[string]variant.Set
}

// New returns a registry over the built-in capability table.
func New() *Registry {
	return &Registry{table: builtin}
}

// Lookup returns the allow-set for an operation. Unknown operations return
// ok=false: the vocabulary is closed, so an unknown name is a programming
// error on the caller's side, never something to forward to the service.
func (r *Registry) Lookup(op string) (variant.Set, bool) {
	s, ok := r.table[op]
	return s, ok
}

// Allowed reports whether the variant may invoke the operation.
func (r *Registry) Allowed(op string, v variant.Variant) bool {
	s, ok := r.table[op]
	return ok && s.Contains(v)
}

// Operations returns the full vocabulary, sorted, for diagnostics.
func (r *Registry) Operations() []string {
	ops := make([]string, 0, len(r.table))
	for op := range r.table {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	return ops
}
