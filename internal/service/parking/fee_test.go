package parking

import (
	"testing"
	"time"

	"github.com/seu-repo/sigep-parking/internal/domain"
)

func TestBillableUnits(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		unit    domain.RateUnit
		want    int64
	}{
		{"just entered owes one unit", 0, domain.RateUnitHour, 1},
		{"partial hour rounds up", 20 * time.Minute, domain.RateUnitHour, 1},
		{"exact hour", time.Hour, domain.RateUnitHour, 1},
		{"hour and a minute", 61 * time.Minute, domain.RateUnitHour, 2},
		{"two and a half hours", 150 * time.Minute, domain.RateUnitHour, 3},
		{"minute rate", 90 * time.Second, domain.RateUnitMinute, 2},
		{"day rate partial", 25 * time.Hour, domain.RateUnitDay, 2},
		{"negative elapsed clamps to one", -5 * time.Minute, domain.RateUnitHour, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := billableUnits(tc.elapsed, tc.unit)
			if got != tc.want {
				t.Errorf("billableUnits(%v, %s) = %d, want %d", tc.elapsed, tc.unit, got, tc.want)
			}
		})
	}
}
