// Package schoolbus generates instances of the school bus scheduling
// problem.
//
// An instance schedules the bus routes of a set of schools over a
// discrete time horizon. Each school has a fixed number of routes with
// normally distributed integer lengths. Binary x variables place each
// route's completion slot, binary y variables place each school's start
// slot, and a single non-negative integer z counts the buses in service.
// Every route and every school is assigned exactly one slot, a school
// may only start within a fixed window after its routes complete, and
// the number of routes running in any slot is bounded by z. The
// objective minimizes z, the fleet size.
//
// The construction follows Park, Kim and Lee (arXiv:1803.09040).
package schoolbus
