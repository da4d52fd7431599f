// Package driver implements the Driver aggregate.
//
// State machine:
//
//	            AssignVehicle
//	Available ─────────────────> OnDuty ──┐ AssignVehicle (reassign)
//	    ^  │  <───────────────────  │  <──┘
//	    │  │     UnassignVehicle
//	    │  │ Suspend
//	    │  v
//	Suspended ──┐ Suspend (re-suspend, emits again)
//	    ^  <────┘
//	    └── Reinstate: Suspended -> Available
//
// Suspend and Reinstate raise DriverSuspended and DriverReinstated. Vehicle
// assignment is recorded on the Vehicle side and raises nothing here.
package driver
