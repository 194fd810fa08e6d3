package instrumentation

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Common span attribute keys
//
// SECURITY WARNING: Never put refresh tokens, access tokens or client secrets
// in span attributes. Only record metadata such as strategy names, grant
// types and whether a token was rotated.
const (
	AttrStrategyName  = "refresh.strategy.name"
	AttrStrategyShape = "refresh.strategy.shape"
	AttrErrorKind     = "refresh.error_kind"

	AttrClientID     = "oauth.client_id"     // Client identifier (non-secret)
	AttrGrantType    = "oauth.grant_type"    // OAuth grant type
	AttrTokenType    = "oauth.token_type"    //nolint:gosec // Token type (Bearer, etc.) - NOT the actual token
	AttrTokenRotated = "oauth.token.rotated" //nolint:gosec // Whether the provider issued a new refresh token
)

// RecordError records an error on a span with proper status codes (nil-safe)
func RecordError(span trace.Span, err error) {
	if span != nil && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess marks a span as successful (nil-safe)
func SetSpanSuccess(span trace.Span) {
	if span != nil {
		span.SetStatus(codes.Ok, "")
	}
}

// SetSpanAttributes sets attributes on a span (nil-safe)
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	if span != nil {
		span.SetAttributes(attrs...)
	}
}

// AddStrategyAttributes adds the strategy name and, if known, its shape
func AddStrategyAttributes(span trace.Span, name, shape string) {
	SetSpanAttributes(span, attribute.String(AttrStrategyName, name))
	if shape != "" {
		SetSpanAttributes(span, attribute.String(AttrStrategyShape, shape))
	}
}

// AddTokenAttributes adds metadata about an issued token (nil-safe)
func AddTokenAttributes(span trace.Span, tokenType string, rotated bool) {
	if tokenType != "" {
		SetSpanAttributes(span, attribute.String(AttrTokenType, tokenType))
	}
	SetSpanAttributes(span, attribute.Bool(AttrTokenRotated, rotated))
}
