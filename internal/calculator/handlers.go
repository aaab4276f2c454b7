package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"calculadora/internal/handlers"
	"calculadora/internal/numeric"
	"calculadora/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// maxRequestBytes bounds a KeysRequest body.
const maxRequestBytes = 16 << 10

// Handler serves the calculator endpoints.
type Handler struct {
	store     *Store
	formatter Formatter
}

// NewHandler returns a Handler backed by store that renders views with f.
func NewHandler(store *Store, f Formatter) *Handler {
	return &Handler{store: store, formatter: f}
}

// ---------------------------------------------------------------------------
// Handlers - sessions
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.session.create")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	sess, err := h.store.Create()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "create", "cannot create session", err, statusFor(err), w)
		return
	}

	sessionsCounter.Add(ctx, 1)
	span.SetAttributes(attribute.String("calculator.session.id", sess.ID))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator session created",
		zap.String("session_id", sess.ID),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, h.sessionResponse(sess))
}

// GetSession handles GET /calculator/sessions/{id}
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.session.get")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session.id", id))

	sess, err := h.store.Get(id)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "get", "session not found", err, statusFor(err), w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, h.sessionResponse(sess))
}

// DeleteSession handles DELETE /calculator/sessions/{id}
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "calculator.session.delete")
	defer span.End()
	logger := observability.LoggerWithTrace(ctx)

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session.id", id))

	if err := h.store.Delete(id); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "delete", "session not found", err, statusFor(err), w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("calculator session deleted",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)
	w.WriteHeader(http.StatusNoContent)
}

// PressKeys handles POST /calculator/sessions/{id}/keys - applies a batch of
// keys to the session. An unknown key rejects the whole batch.
func (h *Handler) PressKeys(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.keys",
		trace.WithAttributes(
			attribute.String("calculator.session.id", id),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	labels, ok := decodeKeys(ctx, span, logger, "keys", w, r)
	if !ok {
		return
	}

	start := time.Now()
	sess, err := h.store.Update(id, func(s State) (State, error) {
		keys, err := ParseKeys(labels)
		if err != nil {
			return s, err
		}
		next, _ := applyKeys(ctx, s, keys, h.formatter)
		return next, nil
	})
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		msg := err.Error()
		if errors.Is(err, ErrSessionNotFound) {
			msg = "session not found"
		}
		observability.RecordError(ctx, span, logger, errorCounter, "keys", msg, err, statusFor(err), w)
		return
	}

	batchHistogram.Record(ctx, elapsed, metric.WithAttributes(attribute.String("operation", "keys")))

	span.SetAttributes(
		attribute.Int("calculator.keys.count", len(labels)),
		attribute.String("calculator.display", sess.State.Display),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator keys applied",
		zap.String("session_id", id),
		zap.Strings("keys", labels),
		zap.String("display", sess.State.Display),
		zap.String("operator", sess.State.Operator.String()),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, h.sessionResponse(sess))
}

// ---------------------------------------------------------------------------
// Handler - stateless replay (demonstrates nested spans)
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate - replays keys on a fresh
// calculator, creating a child span for every key, and returns the display
// after each one.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.evaluate",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	labels, ok := decodeKeys(ctx, span, logger, "evaluate", w, r)
	if !ok {
		return
	}

	keys, err := ParseKeys(labels)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", err.Error(), err, statusFor(err), w)
		return
	}

	start := time.Now()
	state, steps := applyKeys(ctx, NewState(), keys, h.formatter)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	batchHistogram.Record(ctx, elapsed, metric.WithAttributes(attribute.String("operation", "evaluate")))

	span.AddEvent("evaluate.complete", trace.WithAttributes(
		attribute.String("display", state.Display),
		attribute.Int("total_keys", len(keys)),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator evaluation completed",
		zap.Strings("keys", labels),
		zap.String("display", state.Display),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Keys:  labels,
		Steps: steps,
		View:  Render(state, h.formatter),
	})
}

// decodeKeys reads a KeysRequest body of at most maxRequestBytes and returns
// its labels, writing the error response itself when it fails.
func decodeKeys(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, w http.ResponseWriter, r *http.Request) ([]string, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req KeysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, status, w)
		return nil, false
	}

	if len(req.Keys) == 0 {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "no keys provided", errors.New("keys array is empty"), http.StatusBadRequest, w)
		return nil, false
	}

	if len(req.Keys) > MaxKeysPerRequest {
		err := fmt.Errorf("%w: got %d, limit is %d", ErrTooManyKeys, len(req.Keys), MaxKeysPerRequest)
		observability.RecordError(ctx, span, logger, errorCounter, opName, err.Error(), err, statusFor(err), w)
		return nil, false
	}
	return req.Keys, true
}

// applyKeys presses keys on s with one child span per key.
func applyKeys(ctx context.Context, s State, keys []Key, f Formatter) (State, []Step) {
	steps := make([]Step, 0, len(keys))

	for i, k := range keys {
		_, keySpan := tracer.Start(ctx, fmt.Sprintf("calculator.key.%d", i),
			trace.WithAttributes(
				attribute.Int("calculator.key.index", i),
				attribute.String("calculator.key.label", k.Label),
				attribute.String("calculator.key.kind", string(k.Kind)),
				attribute.String("calculator.display.before", s.Display),
			),
		)

		s = s.Press(k)

		keySpan.SetAttributes(attribute.String("calculator.display.after", s.Display))
		keySpan.SetStatus(codes.Ok, "")
		keySpan.End()

		keysCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(k.Kind))))
		if k.Kind == KindEquals {
			if v := numeric.Parse(s.Display); !math.IsNaN(v) && !math.IsInf(v, 0) {
				resultGauge.Record(ctx, v)
			}
		}

		steps = append(steps, Step{
			Key:     k.Label,
			Raw:     s.Display,
			Display: f.Format(s.Display),
		})
	}
	return s, steps
}

func (h *Handler) sessionResponse(sess Session) SessionResponse {
	return SessionResponse{ID: sess.ID, View: Render(sess.State, h.formatter)}
}

// statusFor maps store and key errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTooManySessions):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrUnknownKey), errors.Is(err, ErrTooManyKeys):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
