package ports

import "gridclash/internal/domain/sim"

type RoundMetrics interface {
	RecordRounds(n int)
	RecordEvents(events []sim.Event)
	RecordFailure()
}
