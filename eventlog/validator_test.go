package eventlog

import "testing"

func TestValidatorAcceptsWellFormedTrade(t *testing.T) {
	v := NewValidator(nil)
	frame := Frame{
		SequenceNum: 1,
		EventType:   TradeCreated,
		Payload:     EncodeTradeCreated(Trade{TradeID: "t1", Symbol: "AAPL", Quantity: "10"}),
	}

	if err := v.Validate(frame); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if v.EventsProcessed() != 1 {
		t.Fatalf("EventsProcessed() = %d, want 1", v.EventsProcessed())
	}
	if v.TradesValidated() != 1 {
		t.Fatalf("TradesValidated() = %d, want 1", v.TradesValidated())
	}
	if v.ValidationErrors() != 0 {
		t.Fatalf("ValidationErrors() = %d, want 0", v.ValidationErrors())
	}
}

func TestValidatorRejectsMissingFields(t *testing.T) {
	v := NewValidator(nil)
	frame := Frame{
		SequenceNum: 2,
		EventType:   TradeCreated,
		Payload:     EncodeTradeCreated(Trade{TradeID: "t2"}), // missing symbol, quantity
	}

	if err := v.Validate(frame); err == nil {
		t.Fatal("expected validation error for missing fields")
	}
	if v.ValidationErrors() != 1 {
		t.Fatalf("ValidationErrors() = %d, want 1", v.ValidationErrors())
	}
	if v.TradesValidated() != 0 {
		t.Fatalf("TradesValidated() = %d, want 0", v.TradesValidated())
	}
}

func TestValidatorRejectsEmptyPayload(t *testing.T) {
	v := NewValidator(nil)
	frame := Frame{SequenceNum: 3, EventType: TradeCreated}

	if err := v.Validate(frame); err == nil {
		t.Fatal("expected validation error for empty payload")
	}
}

func TestValidatorIgnoresUnknownEventTypes(t *testing.T) {
	v := NewValidator(nil)
	frame := Frame{SequenceNum: 4, EventType: EventType(200)}

	if err := v.Validate(frame); err != nil {
		t.Fatalf("Validate on unknown event type: %v", err)
	}
	if v.EventsProcessed() != 1 {
		t.Fatalf("EventsProcessed() = %d, want 1", v.EventsProcessed())
	}
	if v.TradesValidated() != 0 || v.ValidationErrors() != 0 {
		t.Fatalf("unknown event type should not affect trade counters: validated=%d errors=%d",
			v.TradesValidated(), v.ValidationErrors())
	}
}
