package parking

import (
	"time"

	"github.com/seu-repo/sigep-parking/internal/domain"
)

// billableUnits rounds an elapsed duration up to whole rate units. A vehicle
// that just entered owes one unit; zero units never happen on a positive stay.
func billableUnits(elapsed time.Duration, unit domain.RateUnit) int64 {
	size := unit.Duration()
	if elapsed <= 0 {
		return 1
	}
	units := int64(elapsed / size)
	if elapsed%size != 0 {
		units++
	}
	if units < 1 {
		units = 1
	}
	return units
}
