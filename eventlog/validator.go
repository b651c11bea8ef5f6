// validator.go: per-event semantic checks (C7)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package eventlog

import (
	"sync/atomic"

	"go.uber.org/zap"
)

// requiredTradeFields are the keys a TRADE_CREATED payload must carry to
// be considered valid.
var requiredTradeFields = []string{"trade_id", "symbol", "quantity"}

// Validator applies per-event semantic checks to decoded frames and
// accumulates counters. A Validator is safe for use by a single
// goroutine; the consumer pipeline owns exactly one.
type Validator struct {
	logger *zap.Logger

	eventsProcessed  atomic.Uint64
	tradesValidated  atomic.Uint64
	validationErrors atomic.Uint64
}

// NewValidator returns a Validator that logs rejected events through
// logger. A nil logger is replaced with zap.NewNop(), matching the
// teacher's pattern of never requiring a caller to supply a logger.
func NewValidator(logger *zap.Logger) *Validator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validator{logger: logger}
}

// Validate applies the rules for frame's event type and updates counters.
func (v *Validator) Validate(frame Frame) error {
	v.eventsProcessed.Add(1)

	switch frame.EventType {
	case TradeCreated:
		return v.validateTradeCreated(frame)
	default:
		// Other known event types and unknown types are a no-op besides
		// the events_processed counter.
		return nil
	}
}

func (v *Validator) validateTradeCreated(frame Frame) error {
	if len(frame.Payload) == 0 {
		v.validationErrors.Add(1)
		v.logger.Warn("validation failed: empty payload", zap.Uint64("sequence_num", frame.SequenceNum))
		return ErrValidation("empty payload")
	}

	fields := decodeKeyValues(frame.Payload)
	var missing []string
	for _, key := range requiredTradeFields {
		if fields[key] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		v.validationErrors.Add(1)
		v.logger.Warn("validation failed: missing fields",
			zap.Uint64("sequence_num", frame.SequenceNum),
			zap.Strings("missing", missing),
		)
		return ErrValidation("missing fields: " + joinComma(missing))
	}

	v.tradesValidated.Add(1)
	return nil
}

func joinComma(xs []string) string {
	out := ""
	for i, x := range xs {
		if i > 0 {
			out += ","
		}
		out += x
	}
	return out
}

// EventsProcessed returns the total number of frames Validate has seen.
func (v *Validator) EventsProcessed() uint64 { return v.eventsProcessed.Load() }

// TradesValidated returns the number of TRADE_CREATED frames that passed
// validation.
func (v *Validator) TradesValidated() uint64 { return v.tradesValidated.Load() }

// ValidationErrors returns the number of frames that failed validation.
func (v *Validator) ValidationErrors() uint64 { return v.validationErrors.Load() }

// validationError is the concrete type behind ErrValidation.
type validationError struct{ reason string }

func (e *validationError) Error() string { return "eventlog: validation error: " + e.reason }

// ErrValidation constructs a validation error carrying reason. Validation
// errors are counted and logged; they never stop the consumer pipeline.
func ErrValidation(reason string) error { return &validationError{reason: reason} }
