//go:build linux

package instrument

import (
	perf "github.com/hodgesds/perf-utils"
)

// CountInstructions runs f and returns the CPU instructions it retired. The
// count is zero where perf events are not permitted.
func CountInstructions(f func() error) (count uint64, err error) {
	var (
		pv *perf.ProfileValue
	)
	if pv, err = perf.CPUInstructions(f); err != nil {
		return
	}
	count = pv.Value
	return
}
