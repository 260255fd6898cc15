// Package capacity builds the slot -> position -> headcount map consumed by
// the coverage evaluator.
package capacity

import (
	"time"

	"github.com/hostwell/shiftengine/pkg/core/model"
	"github.com/hostwell/shiftengine/pkg/core/timeslot"
)

// UnassignedPosition is the bucket used for shifts without a position id
const UnassignedPosition = "unassigned"

// Build aggregates a shift list into a capacity map at the given bucket
// granularity. Day-off shifts and shifts without a resolvable time range
// contribute nothing. A shift counts toward every bucket it overlaps, even
// partially. Counts are summed, so shift order never changes the result.
func Build(shifts []model.Shift, settings model.ScheduleSettings, bucketMins int) model.CapacityMap {
	bucketMins = timeslot.NormalizeBucket(bucketMins)
	capacity := make(model.CapacityMap)

	for _, shift := range shifts {
		bounds, ok := timeslot.ShiftBounds(shift, settings)
		if !ok {
			continue
		}

		position := shift.PositionID
		if position == "" {
			position = UnassignedPosition
		}

		step := time.Duration(bucketMins) * time.Minute
		// Align to the bucket grid within the start's day, not the epoch,
		// so bucket sizes that do not divide an hour still line up with
		// BucketKey.
		startMins := bounds.Start.Hour()*60 + bounds.Start.Minute()
		aligned := bounds.Start.Add(-time.Duration(startMins%bucketMins) * time.Minute)
		for t := aligned; t.Before(bounds.End); t = t.Add(step) {
			key := timeslot.BucketKey(t, bucketMins)
			counts, exists := capacity[key]
			if !exists {
				counts = make(model.PositionCounts)
				capacity[key] = counts
			}
			counts[position]++
		}
	}

	return capacity
}
