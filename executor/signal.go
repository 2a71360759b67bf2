package executor

import (
	"github.com/bytedance/sonic"
	"github.com/shopspring/decimal"
)

// RawSignal is the decoded but not yet validated signal document.
type RawSignal map[string]interface{}

// Signal is a validated trade instruction from the orchestrator.
type Signal struct {
	Symbol string
	Volume decimal.Decimal
	Action string
	TP     decimal.Decimal
	SL     decimal.Decimal
}

// required fields, checked in this order; first missing field wins
var requiredFields = []string{"symbol", "volume", "action", "tp", "sl"}

// ParseSignal decodes the signal document. Validation of the fields
// happens later, inside the open terminal session.
func ParseSignal(data []byte) (RawSignal, *Error) {
	var raw RawSignal
	if err := sonic.Unmarshal(data, &raw); err != nil || raw == nil {
		return nil, &Error{Type: ErrInvalidJSON, Message: "Failed to parse signal data"}
	}
	return raw, nil
}

// Signal checks field presence and coerces the numeric fields.
func (raw RawSignal) Signal() (*Signal, *Error) {
	for _, name := range requiredFields {
		if _, ok := raw[name]; !ok {
			return nil, validationErrf("Missing required field: %s", name)
		}
	}
	s := &Signal{}
	var perr *Error
	if s.Symbol, perr = raw.stringField("symbol"); perr != nil {
		return nil, perr
	}
	if s.Volume, perr = raw.decimalField("volume"); perr != nil {
		return nil, perr
	}
	if s.Action, perr = raw.stringField("action"); perr != nil {
		return nil, perr
	}
	if s.TP, perr = raw.decimalField("tp"); perr != nil {
		return nil, perr
	}
	if s.SL, perr = raw.decimalField("sl"); perr != nil {
		return nil, perr
	}
	return s, nil
}

func (raw RawSignal) stringField(name string) (string, *Error) {
	v, ok := raw[name].(string)
	if !ok {
		return "", validationErrf("Invalid value for field: %s", name)
	}
	return v, nil
}

// decimalField accepts JSON numbers and numeric strings; the orchestrator
// emits both.
func (raw RawSignal) decimalField(name string) (decimal.Decimal, *Error) {
	switch v := raw[name].(type) {
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, validationErrf("Invalid value for field: %s", name)
		}
		return d, nil
	default:
		return decimal.Zero, validationErrf("Invalid value for field: %s", name)
	}
}
