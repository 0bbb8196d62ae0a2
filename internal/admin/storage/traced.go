package storage

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/Hiuth/nexora-admin-sub001/internal/admin/storage")

// Traced wraps a repository so every call records an OpenTelemetry span.
type Traced[T Entity] struct {
	next Repository[T]
	name string
}

// NewTraced decorates repo; name labels the spans ("orders", "warranty", ...).
func NewTraced[T Entity](repo Repository[T], name string) *Traced[T] {
	return &Traced[T]{next: repo, name: name}
}

func (t *Traced[T]) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("storage.collection", t.name))
	return tracer.Start(ctx, "storage."+t.name+"."+op, trace.WithAttributes(attrs...))
}

func finish(span trace.Span, err error) {
	if err != nil && !errors.Is(err, ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// List implements Repository.
func (t *Traced[T]) List(ctx context.Context) ([]T, error) {
	ctx, span := t.start(ctx, "list")
	items, err := t.next.List(ctx)
	span.SetAttributes(attribute.Int("storage.count", len(items)))
	finish(span, err)
	return items, err
}

// Get implements Repository.
func (t *Traced[T]) Get(ctx context.Context, id string) (T, error) {
	ctx, span := t.start(ctx, "get", attribute.String("storage.id", id))
	entity, err := t.next.Get(ctx, id)
	finish(span, err)
	return entity, err
}

// Put implements Repository.
func (t *Traced[T]) Put(ctx context.Context, entity T) error {
	ctx, span := t.start(ctx, "put", attribute.String("storage.id", entity.EntityID()))
	err := t.next.Put(ctx, entity)
	finish(span, err)
	return err
}

// Delete implements Repository.
func (t *Traced[T]) Delete(ctx context.Context, id string) error {
	ctx, span := t.start(ctx, "delete", attribute.String("storage.id", id))
	err := t.next.Delete(ctx, id)
	finish(span, err)
	return err
}
