package replay

import (
	"context"
	"errors"
	"strings"

	"gridclash/internal/app/ports"
	"gridclash/internal/domain/sim"
)

var ErrInvalidRequest = errors.New("invalid replay request")

type UseCase struct {
	Events ports.EventRepository
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.RunID) == "" || req.Limit < 0 {
		return Response{}, ErrInvalidRequest
	}
	if req.FromRound > 0 && req.ToRound > 0 && req.FromRound > req.ToRound {
		return Response{}, ErrInvalidRequest
	}
	events, err := u.Events.ListByRunID(ctx, req.RunID, req.Limit)
	if err != nil {
		return Response{}, err
	}
	events = filterByRoundWindow(events, req.FromRound, req.ToRound)
	return Response{Events: events, Latest: reconstruct(events)}, nil
}

func filterByRoundWindow(events []sim.Event, from, to int) []sim.Event {
	if from <= 0 && to <= 0 {
		return events
	}
	out := make([]sim.Event, 0, len(events))
	for _, evt := range events {
		if from > 0 && evt.Round < from {
			continue
		}
		if to > 0 && evt.Round > to {
			continue
		}
		out = append(out, evt)
	}
	return out
}

func reconstruct(events []sim.Event) Summary {
	var s Summary
	for _, evt := range events {
		if evt.Type != sim.EventRoundCompleted {
			continue
		}
		s.Round = evt.Round
		s.Pieces = int(num(evt.Payload["pieces"]))
		s.Agents = int(num(evt.Payload["agents"]))
		s.Resources = int(num(evt.Payload["resources"]))
		if st, ok := evt.Payload["status"].(string); ok {
			s.Status = sim.Status(st)
		}
	}
	return s
}

// num reads a payload number whether it came straight from the engine or
// back through JSON.
func num(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
