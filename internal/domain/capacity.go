package domain

// Capacity returns the number of appointments that may run in parallel.
// One active staff member equals one parallel appointment slot; when no
// staff records exist at all, a configured fallback keeps the salon usable
// with a single practitioner.
func Capacity(activeStaffCount, fallback int) int {
	if activeStaffCount > 0 {
		return activeStaffCount
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultFallbackCapacity
}
