package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/Neruzzz/utility-helper/internal/functions"
	"github.com/Neruzzz/utility-helper/internal/httpx"
)

var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// Tool define el contrato mínimo que expone cada función.
type Tool interface {
	Name() string                                                  // id exacto que invoca el host (p. ej., "datediff_function")
	Description() string                                           // descripción breve para el modelo
	ParametersSchema() map[string]any                              // JSON schema (object) de las entradas
	Call(ctx context.Context, args map[string]any) (string, error) // ejecución, devuelve las salidas en JSON
}

type Registry struct {
	tools []Tool

	tracer   trace.Tracer
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewRegistry registra todas las funciones respaldadas por svc.
func NewRegistry(svc *functions.Service) *Registry {
	r := &Registry{tracer: otel.Tracer("utility-helper/tools")}

	var err error
	meter := httpx.Meter()
	if r.calls, err = meter.Int64Counter("function.calls",
		metric.WithDescription("Function invocations by name and outcome")); err != nil {
		slog.Warn("function.calls counter unavailable", "err", err)
	}
	if r.duration, err = meter.Float64Histogram("function.duration",
		metric.WithUnit("ms"),
		metric.WithDescription("Function invocation latency")); err != nil {
		slog.Warn("function.duration histogram unavailable", "err", err)
	}

	r.Register(ToolDateDiff{svc: svc})
	r.Register(ToolDatetime{svc: svc})
	r.Register(ToolNextDate{svc: svc})
	r.Register(ToolMathHelper{svc: svc})
	r.Register(ToolMathExpression{svc: svc})
	r.Register(ToolTodayDate{svc: svc})
	return r
}

// Register añade una tool. Si ya existe una con el mismo nombre, la reemplaza.
func (r *Registry) Register(t Tool) {
	for i, old := range r.tools {
		if old.Name() == t.Name() {
			r.tools[i] = t
			return
		}
	}
	r.tools = append(r.tools, t)
}

// AllTools devuelve todas las tools registradas.
func (r *Registry) AllTools() []Tool {
	return r.tools
}

// FindByName busca una tool ya registrada por su nombre.
func (r *Registry) FindByName(name string) Tool {
	for _, t := range r.tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

// Invoke ejecuta una tool por nombre, con traza y métricas.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) (string, error) {
	t := r.FindByName(name)
	if t == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	ctx, span := r.tracer.Start(ctx, "function "+name, trace.WithAttributes(attribute.String("function.name", name)))
	defer span.End()

	start := time.Now()
	out, err := t.Call(ctx, args)
	elapsed := float64(time.Since(start).Microseconds()) / 1000

	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "Function failed", "name", name, "err", err)
	} else {
		slog.InfoContext(ctx, "Function called", "name", name, "ms", elapsed)
	}

	attrs := metric.WithAttributes(attribute.String("function", name), attribute.String("outcome", outcome))
	if r.calls != nil {
		r.calls.Add(ctx, 1, attrs)
	}
	if r.duration != nil {
		r.duration.Record(ctx, elapsed, attrs)
	}
	return out, err
}

// decodeArgs convierte los argumentos del host en el struct de entrada.
func decodeArgs(args map[string]any, in any) error {
	b, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	if err := json.Unmarshal(b, in); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	return nil
}

func encode(out any) (string, error) {
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// requireArgs comprueba que las entradas obligatorias existen y no están vacías.
func requireArgs(args map[string]any, names ...string) error {
	for _, n := range names {
		v, ok := args[n]
		if !ok || v == nil || v == "" {
			return fmt.Errorf("%w: missing %q", ErrInvalidArguments, n)
		}
	}
	return nil
}
