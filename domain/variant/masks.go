package variant

// Bitmask enumerations the automation interface consumes as plain integers.
// This layer passes them through unchanged; the constants exist so callers
// do not have to hardcode magic numbers.

// InstanceState filters instance listings.
type InstanceState int

const (
	StateNotRun        InstanceState = 1
	StateWaiting       InstanceState = 2
	StatePreprocessing InstanceState = 4
	StateReady         InstanceState = 8
	StateExecuting     InstanceState = 16
	StateOrphaned      InstanceState = 32
	StateActive        InstanceState = 62
	StateAborted       InstanceState = 64
	StateFailed        InstanceState = 128
	StateSucceeded     InstanceState = 256
	StateCompleted     InstanceState = 448
	StateAll           InstanceState = 65535
)

// ObjectFilter restricts search and child enumeration by object kind.
type ObjectFilter int

const (
	FilterJob            ObjectFilter = 1
	FilterPlan           ObjectFilter = 2
	FilterExecutionQueue ObjectFilter = 4
	FilterGenericQueue   ObjectFilter = 8
	FilterQueue          ObjectFilter = 12
	FilterSchedule       ObjectFilter = 16
	FilterCalendar       ObjectFilter = 32
	FilterUserAccount    ObjectFilter = 64
	FilterAlertObject    ObjectFilter = 128
	FilterResource       ObjectFilter = 256
	FilterReference      ObjectFilter = 512
	FilterServiceLibrary ObjectFilter = 1024
	FilterFolder         ObjectFilter = 2048
	FilterObjectList     ObjectFilter = 4096
	FilterAll            ObjectFilter = 65535
)

// Access is the security-access permission mask.
type Access int

const (
	AccessReadProperties Access = 2
	AccessReadVariables  Access = 4
	AccessRead           Access = 6
	AccessWrite          Access = 8
	AccessModify         Access = 14
	AccessDelete         Access = 16
	// Use and Submit share a value in the service's own table.
	AccessUse           Access = 64
	AccessChangePerms   Access = 256
	AccessTakeOwnership Access = 512
	AccessExecutive     Access = 3840
	AccessManage        Access = 61440
	AccessTrigger       Access = 65536
	AccessTriggerQueue  Access = 196608
	AccessTriggerParams Access = 327680
	AccessTriggerCreds  Access = 589824
	AccessInstanceCtrl  Access = 32505856
	AccessFullControl   Access = -1
)
