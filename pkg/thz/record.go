// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import (
	"fmt"
	"time"
)

// FieldValue is one decoded field of a register payload. Value is nil when
// Err is set; a short payload or a bad enum code fails that field alone, the
// rest of the record still decodes.
type FieldValue struct {
	Name  string
	Value interface{}
	Unit  string
	Err   error
}

func (v FieldValue) String() string {
	if v.Err != nil {
		return fmt.Sprintf("%s: <%v>", v.Name, v.Err)
	}
	if v.Unit != "" {
		return fmt.Sprintf("%s: %v %s", v.Name, v.Value, v.Unit)
	}
	return fmt.Sprintf("%s: %v", v.Name, v.Value)
}

// Record is the decoded form of one register response.
type Record struct {
	Code      string
	Register  string
	Fields    []FieldValue
	Timestamp time.Time
}

// Value returns the decoded value of the named field, or an error if the
// field is absent or failed to decode.
func (r *Record) Value(name string) (interface{}, error) {
	for _, f := range r.Fields {
		if f.Name == name {
			if f.Err != nil {
				return nil, f.Err
			}
			return f.Value, nil
		}
	}
	return nil, newErrorf(ErrUnknownRegister, "no field %q in register %s", name, r.Code)
}

// Decode maps a response payload (code echo plus values) to a Record using
// this firmware's layout. The register is identified by longest matching
// code prefix. Individual field failures land in FieldValue.Err and do not
// abort the record.
func (m *RegisterMap) Decode(data []byte) (*Record, error) {
	if len(data) == 0 {
		return nil, newErrorf(ErrTruncatedPayload, "empty register payload")
	}
	code := m.CodeOf(data)
	return m.DecodeRegister(code, data)
}

// DecodeRegister decodes a payload against an explicitly named register code.
func (m *RegisterMap) DecodeRegister(code string, data []byte) (*Record, error) {
	reg, ok := m.Register(code)
	if !ok {
		return nil, newErrorf(ErrUnknownRegister, "register %s not in %s layout", code, m.version)
	}
	rec := &Record{
		Code:      reg.Code,
		Register:  reg.Name,
		Fields:    make([]FieldValue, 0, len(reg.Fields)),
		Timestamp: time.Now(),
	}
	for _, f := range reg.Fields {
		val, err := decodeField(data, f)
		fv := FieldValue{Name: f.Name, Unit: f.Unit, Err: err}
		if err == nil {
			fv.Value = val
		}
		rec.Fields = append(rec.Fields, fv)
	}
	return rec, nil
}

// DecodeTelegram is Decode applied to a full response telegram.
func (m *RegisterMap) DecodeTelegram(t *Telegram) (*Record, error) {
	rec, err := m.Decode(t.Data())
	if err != nil {
		return nil, err
	}
	rec.Timestamp = t.Timestamp()
	return rec, nil
}
