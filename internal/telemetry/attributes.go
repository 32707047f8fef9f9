// SPDX-License-Identifier: MIT

package telemetry

import (
	"go.opentelemetry.io/otel/attribute"
)

// Attribute keys shared by spans and otel metrics.
const (
	LangKey    = "seo.lang"
	Axis1Key   = "seo.v1"
	Axis2Key   = "seo.v2"
	ModuleKey  = "seo.module"
	OutcomeKey = "seo.outcome"
	ShapeKey   = "seo.shape"
	EntriesKey = "seo.entries"

	ErrorKey     = "error"
	ErrorTypeKey = "error.type"
)

// RouteAttributes describes one matrix route. Empty values are omitted.
func RouteAttributes(lang, v1, v2 string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if lang != "" {
		attrs = append(attrs, attribute.String(LangKey, lang))
	}
	if v1 != "" {
		attrs = append(attrs, attribute.String(Axis1Key, v1))
	}
	if v2 != "" {
		attrs = append(attrs, attribute.String(Axis2Key, v2))
	}
	return attrs
}

// SitemapAttributes describes a generated sitemap.
func SitemapAttributes(shape string, entries int) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String(ShapeKey, shape),
		attribute.Int(EntriesKey, entries),
	}
}

// ErrorAttributes creates error span attributes.
func ErrorAttributes(err error, errorType string) []attribute.KeyValue {
	if err == nil {
		return nil
	}
	return []attribute.KeyValue{
		attribute.Bool(ErrorKey, true),
		attribute.String(ErrorTypeKey, errorType),
	}
}
