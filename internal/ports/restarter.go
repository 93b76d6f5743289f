package ports

// Restarter performs a full device restart. Invoked by the supervisor only
// on the fatal link bring-up path, after its diagnostic message and fixed
// delay.
type Restarter interface {
	// Restart reboots the device. On success it does not return.
	Restart() error
}
