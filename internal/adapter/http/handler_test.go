package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	metricsinmem "gridclash/internal/adapter/metrics/inmemory"
	"gridclash/internal/adapter/repo/memory"
	"gridclash/internal/app/observe"
	"gridclash/internal/app/ports"
	"gridclash/internal/app/replay"
	"gridclash/internal/app/run"
	"gridclash/internal/app/status"
	"gridclash/internal/app/step"
	"gridclash/internal/domain/grid"
	"gridclash/internal/domain/sim"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route/param"
)

func newTestHandler() Handler {
	store := memory.NewStore()
	games := memory.NewGameStore()
	runs := memory.NewRunRepo(store)
	events := memory.NewEventRepo(store)
	tx := memory.NewTxManager(store)
	kpi := metricsinmem.NewRecorder()
	n := 0
	return Handler{
		CreateUC: run.CreateUseCase{
			Games: games, Runs: runs, Events: events, TxManager: tx,
			Defaults: run.Defaults{Width: 5, Height: 5, MaxWidth: 20, MaxHeight: 20, SimplePolicy: "idle"},
			NewID: func() string {
				n++
				return fmt.Sprintf("run-%d", n)
			},
		},
		PlaceUC:   run.PlaceUseCase{Games: games, Runs: runs, Events: events, TxManager: tx},
		StepUC:    step.UseCase{Games: games, Runs: runs, Events: events, TxManager: tx, Metrics: kpi, MaxRounds: 10},
		ObserveUC: observe.UseCase{Games: games},
		StatusUC:  status.UseCase{Games: games, Runs: runs},
		ReplayUC:  replay.UseCase{Events: events},
		KPI:       kpi,
	}
}

func call(handler app.HandlerFunc, runID, uri, body string) *app.RequestContext {
	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI(uri)
	if body != "" {
		ctx.Request.SetBody([]byte(body))
	}
	if runID != "" {
		ctx.Params = param.Params{{Key: "id", Value: runID}}
	}
	handler(context.Background(), ctx)
	return ctx
}

func decode(t *testing.T, ctx *app.RequestContext, out any) {
	t.Helper()
	if err := json.Unmarshal(ctx.Response.Body(), out); err != nil {
		t.Fatalf("unmarshal response: %v (%s)", err, ctx.Response.Body())
	}
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body map[string]map[string]any
	decode(t, ctx, &body)
	code, _ := body["error"]["code"].(string)
	return code
}

func TestRunLifecycle_OverHTTP(t *testing.T) {
	h := newTestHandler()

	ctx := call(h.createRun, "", "/api/runs", `{"width":3,"height":3,"manual":true,"seed":3}`)
	if got, want := ctx.Response.StatusCode(), consts.StatusCreated; got != want {
		t.Fatalf("create status=%d want %d (%s)", got, want, ctx.Response.Body())
	}
	var created run.CreateResponse
	decode(t, ctx, &created)
	if created.RunID != "run-1" || created.Pieces != 0 {
		t.Fatalf("unexpected create response %+v", created)
	}

	ctx = call(h.placePiece, "run-1", "/api/runs/run-1/pieces", `{"kind":"strategic","x":1,"y":1,"strategy":"aggressive"}`)
	if got := ctx.Response.StatusCode(); got != consts.StatusCreated {
		t.Fatalf("place strategic status=%d (%s)", got, ctx.Response.Body())
	}
	ctx = call(h.placePiece, "run-1", "/api/runs/run-1/pieces", `{"kind":"simple","x":0,"y":1,"energy":10}`)
	if got := ctx.Response.StatusCode(); got != consts.StatusCreated {
		t.Fatalf("place simple status=%d (%s)", got, ctx.Response.Body())
	}

	ctx = call(h.surroundings, "run-1", "/api/runs/run-1/surroundings?x=1&y=1", "")
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("surroundings status=%d (%s)", got, ctx.Response.Body())
	}
	var seen observe.Response
	decode(t, ctx, &seen)
	if seen.Surroundings[1] != grid.PieceSimple || seen.Piece == nil || seen.Piece.Tag != "T1" {
		t.Fatalf("unexpected surroundings %+v", seen)
	}

	ctx = call(h.step, "run-1", "/api/runs/run-1/rounds", `{"rounds":1}`)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("step status=%d (%s)", got, ctx.Response.Body())
	}
	var stepped step.Response
	decode(t, ctx, &stepped)
	if stepped.Status != sim.StatusOver || stepped.Agents != 1 || stepped.Round != 1 {
		t.Fatalf("unexpected step response %+v", stepped)
	}

	ctx = call(h.status, "run-1", "/api/runs/run-1/status", "")
	var st status.Response
	decode(t, ctx, &st)
	if !st.Live || st.Board == nil || st.Board.Cell(0, 1) != "T1" || st.Simple != 0 {
		t.Fatalf("unexpected status %+v", st)
	}

	ctx = call(h.replay, "run-1", "/api/runs/run-1/replay?from_round=1&to_round=1", "")
	var rp replay.Response
	decode(t, ctx, &rp)
	if rp.Latest.Status != sim.StatusOver || rp.Latest.Agents != 1 {
		t.Fatalf("unexpected replay summary %+v", rp.Latest)
	}

	ctx = call(h.step, "run-1", "/api/runs/run-1/rounds", "")
	if got, want := ctx.Response.StatusCode(), consts.StatusConflict; got != want {
		t.Fatalf("step on over run status=%d want %d", got, want)
	}
	if code := errorCode(t, ctx); code != "run_over" {
		t.Fatalf("unexpected error code %q", code)
	}

	ctx = call(h.kpi, "", "/ops/kpi", "")
	var snap metricsinmem.Snapshot
	decode(t, ctx, &snap)
	if snap.RoundsTotal != 1 || snap.Combats != 1 {
		t.Fatalf("unexpected kpi %+v", snap)
	}
}

func TestPlacePiece_ErrorMapping(t *testing.T) {
	h := newTestHandler()
	call(h.createRun, "", "/api/runs", `{"width":3,"height":3,"manual":true}`)
	call(h.placePiece, "run-1", "/api/runs/run-1/pieces", `{"kind":"food","x":0,"y":0}`)

	cases := []struct {
		runID string
		body  string
		code  int
		name  string
	}{
		{"run-1", `{"kind":"food","x":0,"y":0}`, consts.StatusConflict, "position_nonempty"},
		{"run-1", `{"kind":"food","x":5,"y":0}`, consts.StatusBadRequest, "out_of_bounds"},
		{"run-1", `{"kind":"rock"}`, consts.StatusBadRequest, "bad_request"},
		{"run-1", `{"kind":`, consts.StatusBadRequest, "invalid_json"},
		{"run-9", `{"kind":"food"}`, consts.StatusNotFound, "not_found"},
	}
	for _, tc := range cases {
		ctx := call(h.placePiece, tc.runID, "/api/runs/"+tc.runID+"/pieces", tc.body)
		if got := ctx.Response.StatusCode(); got != tc.code {
			t.Fatalf("%s: status=%d want %d (%s)", tc.body, got, tc.code, ctx.Response.Body())
		}
		if got := errorCode(t, ctx); got != tc.name {
			t.Fatalf("%s: code=%q want %q", tc.body, got, tc.name)
		}
	}
}

func TestCreateRun_RejectsSmallGrid(t *testing.T) {
	h := newTestHandler()
	ctx := call(h.createRun, "", "/api/runs", `{"width":2,"height":2}`)
	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
	var body map[string]map[string]any
	decode(t, ctx, &body)
	if body["error"]["code"] != "insufficient_dimensions" {
		t.Fatalf("unexpected error %+v", body)
	}
	details, _ := body["error"]["details"].(map[string]any)
	if details["min_width"] != float64(sim.MinWidth) {
		t.Fatalf("expected details, got %+v", body)
	}
}

func TestCreateRun_RejectsOversizedGrid(t *testing.T) {
	h := newTestHandler()
	for _, body := range []string{`{"width":21,"height":5}`, `{"width":50000,"height":50000}`} {
		ctx := call(h.createRun, "", "/api/runs", body)
		if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
			t.Fatalf("%s: status=%d want %d", body, got, want)
		}
		if code := errorCode(t, ctx); code != "bad_request" {
			t.Fatalf("%s: unexpected code %q", body, code)
		}
	}
}

func TestReplay_RejectsBadQuery(t *testing.T) {
	h := newTestHandler()
	created := call(h.createRun, "", "/api/runs", `{"width":3,"height":3,"manual":true}`)
	if created.Response.StatusCode() != consts.StatusCreated {
		t.Fatalf("create failed: %s", created.Response.Body())
	}
	for _, q := range []string{"limit=abc", "from_round=1x", "to_round=-"} {
		ctx := call(h.replay, "run-1", "/api/runs/run-1/replay?"+q, "")
		if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
			t.Fatalf("%s: status=%d want %d", q, got, want)
		}
		if code := errorCode(t, ctx); code != "invalid_query" {
			t.Fatalf("%s: unexpected code %q", q, code)
		}
	}
	if ctx := call(h.replay, "run-1", "/api/runs/run-1/replay", ""); ctx.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("replay without a query should succeed, got %d", ctx.Response.StatusCode())
	}
}

func TestSurroundings_RejectsBadQuery(t *testing.T) {
	h := newTestHandler()
	ctx := call(h.surroundings, "run-1", "/api/runs/run-1/surroundings?x=a", "")
	if got, want := ctx.Response.StatusCode(), consts.StatusBadRequest; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
	if code := errorCode(t, ctx); code != "invalid_query" {
		t.Fatalf("unexpected code %q", code)
	}
}

func TestWriteError_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
		name string
	}{
		{&sim.PositionError{Err: sim.ErrPositionEmpty}, consts.StatusNotFound, "position_empty"},
		{fmt.Errorf("load: %w", ports.ErrNotFound), consts.StatusNotFound, "not_found"},
		{ports.ErrConflict, consts.StatusConflict, "conflict"},
		{status.ErrInvalidRequest, consts.StatusBadRequest, "bad_request"},
		{errors.New("boom"), consts.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		ctx := &app.RequestContext{}
		Handler{}.writeError(ctx, tc.err)
		if got := ctx.Response.StatusCode(); got != tc.code {
			t.Fatalf("%v: status=%d want %d", tc.err, got, tc.code)
		}
		if got := errorCode(t, ctx); got != tc.name {
			t.Fatalf("%v: code=%q want %q", tc.err, got, tc.name)
		}
	}
}

func TestKPI_NotConfigured(t *testing.T) {
	ctx := call(Handler{}.kpi, "", "/ops/kpi", "")
	if got, want := ctx.Response.StatusCode(), consts.StatusNotFound; got != want {
		t.Fatalf("status=%d want %d", got, want)
	}
}
