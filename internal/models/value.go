package models

import "time"

type ValueKind int

const (
	KindNull ValueKind = iota
	KindNumber
	KindDate
	KindText
)

// Value is a field value tagged with its kind at normalization time.
type Value struct {
	Kind   ValueKind
	Number float64
	Date   time.Time
	Text   string
}

func NullValue() Value {
	return Value{Kind: KindNull}
}

func NumberValue(n float64) Value {
	return Value{Kind: KindNumber, Number: n}
}

// DateValue treats the zero time as missing.
func DateValue(t time.Time) Value {
	if t.IsZero() {
		return NullValue()
	}
	return Value{Kind: KindDate, Date: t}
}

func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

func (v Value) IsNull() bool {
	return v.Kind == KindNull
}
