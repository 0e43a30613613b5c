package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/medwear/storefront/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracingCatalog wraps a catalog repository with tracing spans.
type TracingCatalog struct {
	inner domain.CatalogRepository
}

// NewTracingCatalog creates a tracing decorator around repo.
func NewTracingCatalog(repo domain.CatalogRepository) *TracingCatalog {
	return &TracingCatalog{inner: repo}
}

// All with tracing
func (c *TracingCatalog) All(ctx context.Context) []domain.Product {
	ctx, span := tracer.Start(ctx, "repository.All")
	defer span.End()

	products := c.inner.All(ctx)
	span.SetAttributes(attribute.Int("catalog.size", len(products)))
	return products
}

// FindByID with tracing
func (c *TracingCatalog) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.String("product.id", id),
		),
	)
	defer span.End()

	product, err := c.inner.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.name", product.Name),
		attribute.String("product.category", product.Category),
		attribute.Float64("product.price", product.Price),
	)
	return product, nil
}

// Facets with tracing
func (c *TracingCatalog) Facets(ctx context.Context) domain.Facets {
	_, span := tracer.Start(ctx, "repository.Facets")
	defer span.End()

	return c.inner.Facets(ctx)
}

// Count passes through without a span; it never leaves process memory.
func (c *TracingCatalog) Count(ctx context.Context) int {
	return c.inner.Count(ctx)
}
