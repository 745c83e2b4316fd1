package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"gridclash/internal/app/observe"
	"gridclash/internal/app/ports"
	"gridclash/internal/app/replay"
	"gridclash/internal/app/run"
	"gridclash/internal/app/status"
	"gridclash/internal/app/step"
	"gridclash/internal/domain/sim"
	"gridclash/internal/domain/strategy"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	CreateUC  run.CreateUseCase
	PlaceUC   run.PlaceUseCase
	StepUC    step.UseCase
	ObserveUC observe.UseCase
	StatusUC  status.UseCase
	ReplayUC  replay.UseCase
	KPI       kpiSnapshotProvider
	Logger    *slog.Logger
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	runs := s.Group("/api/runs")
	runs.POST("", h.createRun)
	runs.POST("/:id/pieces", h.placePiece)
	runs.POST("/:id/rounds", h.step)
	runs.GET("/:id/status", h.status)
	runs.GET("/:id/surroundings", h.surroundings)
	runs.GET("/:id/replay", h.replay)
	s.OPTIONS("/api/*path", func(context.Context, *app.RequestContext) {})

	s.GET("/ops/kpi", h.kpi)
}

type createRunRequest struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Manual       bool   `json:"manual"`
	Seed         int64  `json:"seed"`
	SimplePolicy string `json:"simple_policy"`
}

type placePieceRequest struct {
	Kind     string   `json:"kind"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Energy   *float64 `json:"energy,omitempty"`
	Capacity *float64 `json:"capacity,omitempty"`
	Strategy string   `json:"strategy,omitempty"`
}

type stepRequest struct {
	Rounds int `json:"rounds"`
}

func (h Handler) createRun(c context.Context, ctx *app.RequestContext) {
	var body createRunRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json", nil)
		return
	}
	resp, err := h.CreateUC.Execute(c, run.CreateRequest{
		Width:        body.Width,
		Height:       body.Height,
		Manual:       body.Manual,
		Seed:         body.Seed,
		SimplePolicy: body.SimplePolicy,
	})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) placePiece(c context.Context, ctx *app.RequestContext) {
	var body placePieceRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json", nil)
		return
	}
	resp, err := h.PlaceUC.Execute(c, run.PlaceRequest{
		RunID:    ctx.Param("id"),
		Kind:     body.Kind,
		X:        body.X,
		Y:        body.Y,
		Energy:   body.Energy,
		Capacity: body.Capacity,
		Strategy: body.Strategy,
	})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) step(c context.Context, ctx *app.RequestContext) {
	var body stepRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json", nil)
		return
	}
	resp, err := h.StepUC.Execute(c, step.Request{RunID: ctx.Param("id"), Rounds: body.Rounds})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{RunID: ctx.Param("id")})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) surroundings(c context.Context, ctx *app.RequestContext) {
	x, errX := strconv.Atoi(strings.TrimSpace(ctx.Query("x")))
	y, errY := strconv.Atoi(strings.TrimSpace(ctx.Query("y")))
	if errX != nil || errY != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_query", "x and y must be integers", nil)
		return
	}
	resp, err := h.ObserveUC.Execute(c, observe.Request{RunID: ctx.Param("id"), X: x, Y: y})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) replay(c context.Context, ctx *app.RequestContext) {
	limit, errLimit := optionalInt(ctx, "limit")
	fromRound, errFrom := optionalInt(ctx, "from_round")
	toRound, errTo := optionalInt(ctx, "to_round")
	if errLimit != nil || errFrom != nil || errTo != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_query", "limit, from_round and to_round must be integers", nil)
		return
	}
	resp, err := h.ReplayUC.Execute(c, replay.Request{
		RunID:     ctx.Param("id"),
		Limit:     limit,
		FromRound: fromRound,
		ToRound:   toRound,
	})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured", nil)
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

// optionalInt parses a query parameter, treating an absent one as 0.
func optionalInt(ctx *app.RequestContext, name string) (int, error) {
	v := strings.TrimSpace(ctx.Query(name))
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (h Handler) writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, sim.ErrInsufficientDimensions):
		writeErrorBody(ctx, consts.StatusBadRequest, "insufficient_dimensions", err.Error(), errorDetails(err))
	case errors.Is(err, sim.ErrOutOfBounds):
		writeErrorBody(ctx, consts.StatusBadRequest, "out_of_bounds", err.Error(), errorDetails(err))
	case errors.Is(err, sim.ErrUnknownKind),
		errors.Is(err, strategy.ErrUnknownStrategy),
		errors.Is(err, run.ErrInvalidRequest),
		errors.Is(err, step.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error(), nil)
	case errors.Is(err, sim.ErrPositionEmpty):
		writeErrorBody(ctx, consts.StatusNotFound, "position_empty", err.Error(), errorDetails(err))
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, sim.ErrPositionNonempty):
		writeErrorBody(ctx, consts.StatusConflict, "position_nonempty", err.Error(), errorDetails(err))
	case errors.Is(err, step.ErrRunOver):
		writeErrorBody(ctx, consts.StatusConflict, "run_over", err.Error(), nil)
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error(), nil)
	default:
		if h.Logger != nil {
			h.Logger.Error("request failed", "path", string(ctx.Path()), "err", err)
		}
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error", nil)
	}
}

func errorDetails(err error) map[string]any {
	var dimErr *sim.DimensionsError
	if errors.As(err, &dimErr) {
		return map[string]any{
			"width":      dimErr.Width,
			"height":     dimErr.Height,
			"min_width":  dimErr.MinWidth,
			"min_height": dimErr.MinHeight,
		}
	}
	var boundsErr *sim.OutOfBoundsError
	if errors.As(err, &boundsErr) {
		return map[string]any{
			"pos":    map[string]int{"x": boundsErr.Pos.X, "y": boundsErr.Pos.Y},
			"width":  boundsErr.Width,
			"height": boundsErr.Height,
		}
	}
	var posErr *sim.PositionError
	if errors.As(err, &posErr) {
		return map[string]any{
			"pos": map[string]int{"x": posErr.Pos.X, "y": posErr.Pos.Y},
		}
	}
	return nil
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string, details map[string]any) {
	body := map[string]any{
		"code":    code,
		"message": message,
	}
	if len(details) > 0 {
		body["details"] = details
	}
	ctx.JSON(status, map[string]any{"error": body})
}
