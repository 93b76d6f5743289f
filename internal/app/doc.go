// Package app contains the scheduling-and-delivery pipeline: the work
// signal handed from the timer goroutine to the main loop, the periodic
// scheduler, the telemetry publisher, and the supervisor state machine that
// serializes all side-effecting work.
//
// Two concurrency domains exist. The scheduler's tick goroutine stands in
// for the hardware timer interrupt and may only set the work signal; the
// supervisor's single loop performs every blocking or side-effecting
// operation. The work signal is the only state shared between the two.
package app
