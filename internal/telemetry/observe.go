// SPDX-License-Identifier: MIT

package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// MeterName is the instrumentation scope of seomatrix otel metrics.
const MeterName = "seomatrix.seo"

// RecordLookup annotates the current span with the route and outcome and
// counts the lookup on the global meter provider. The provider is resolved
// per call so tests can install their own.
func RecordLookup(ctx context.Context, lang, v1, v2, outcome string) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(RouteAttributes(lang, v1, v2)...)
	span.SetAttributes(attribute.String(OutcomeKey, outcome))

	meter := otel.GetMeterProvider().Meter(MeterName)
	counter, err := meter.Int64Counter("seomatrix_lookup",
		metric.WithDescription("SEO entry lookups by outcome and language"))
	if err != nil {
		return
	}
	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String(OutcomeKey, outcome),
		attribute.String(LangKey, lang),
	))
}
