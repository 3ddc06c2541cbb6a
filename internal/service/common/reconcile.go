package common

import (
	"context"
	"time"

	"github.com/oshokin/lamp-warden/internal/domain/lamp"
	"github.com/oshokin/lamp-warden/internal/logger"
)

// ReconcileManual compares the observed device state with the last recorded
// one and, on a mismatch, appends a back-dated manual entry so duration and
// rest calculations see a consistent state trail. The device can be switched
// by a human outside this system at any time; the estimate deliberately
// avoids claiming false precision.
//
// Returns true when an entry was appended. Nothing is persisted here.
func ReconcileManual(
	ctx context.Context,
	log *lamp.Log,
	observedIsOn bool,
	now time.Time,
	offset time.Duration,
) bool {
	last, ok := log.Last()
	if !ok || last.IsOn == observedIsOn {
		return false
	}

	estimated := lamp.EstimateManualTime(now, last.Timestamp, true, offset)

	log.Append(lamp.Entry{
		Timestamp: estimated,
		IsOn:      observedIsOn,
		Mode:      lamp.ModeManual,
	})

	logger.InfoKV(
		ctx,
		"Recorded manual state change",
		"observed_on", observedIsOn,
		"estimated_at", time.Unix(estimated, 0).Format(time.RFC3339),
	)

	return true
}
