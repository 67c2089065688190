package calcproto

import (
	"encoding/binary"
	"math"

	"calcd/domain/arith"
)

// RecordSize is the exact on-wire size of a Record. Fields are packed with no padding.
const RecordSize = 2 + 2 + 2 + 4 + 4 + 4 + 4 + 4 + 8 + 8 + 8

const (
	TypeTask     uint16 = 1
	MajorVersion uint16 = 1
	MinorVersion uint16 = 1
)

// field offsets
const (
	offType        = 0
	offMajor       = 2
	offMinor       = 4
	offID          = 6
	offOperator    = 10
	offIntValue1   = 14
	offIntValue2   = 18
	offIntResult   = 22
	offFloatValue1 = 26
	offFloatValue2 = 34
	offFloatResult = 42
)

// floatOrder is the byte order of the float fields. Integer fields are big-endian,
// but floats travel in the host's in-memory layout without a byte swap.
var floatOrder = binary.NativeEndian

// Record is the fixed-size binary message of the calc protocol.
type Record struct {
	Type         uint16
	MajorVersion uint16
	MinorVersion uint16
	ID           uint32
	Operator     arith.Operator
	IntValue1    int32
	IntValue2    int32
	IntResult    int32
	FltValue1    float64
	FltValue2    float64
	FltResult    float64
}

// NewTaskRecord builds a record that carries task to a peer.
func NewTaskRecord(id uint32, task arith.Task) Record {
	return Record{
		Type:         TypeTask,
		MajorVersion: MajorVersion,
		MinorVersion: MinorVersion,
		ID:           id,
		Operator:     task.Operator,
		IntValue1:    task.IntValue1,
		IntValue2:    task.IntValue2,
		FltValue1:    task.FltValue1,
		FltValue2:    task.FltValue2,
	}
}

// Task returns the operator and operands carried by the record.
func (r Record) Task() arith.Task {
	return arith.Task{
		Operator:  r.Operator,
		IntValue1: r.IntValue1,
		IntValue2: r.IntValue2,
		FltValue1: r.FltValue1,
		FltValue2: r.FltValue2,
	}
}

// WithResult returns a copy of r with the result field of res's class filled in.
func (r Record) WithResult(res arith.Result) Record {
	switch res.Class {
	case arith.IntClass:
		r.IntResult = res.Int
	case arith.FloatClass:
		r.FltResult = res.Float
	}
	return r
}

// Matches reports whether the result field of the expected class equals expected.
func (r Record) Matches(expected arith.Result) bool {
	switch expected.Class {
	case arith.IntClass:
		return r.IntResult == expected.Int
	case arith.FloatClass:
		return r.FltResult == expected.Float
	default:
		return false
	}
}

// MarshalBinary encodes r. Type and versions are always written as 1 and the operand triple
// of the class not selected by Operator is zero-filled.
func (r Record) MarshalBinary() ([]byte, error) {
	data := make([]byte, RecordSize)
	r.put(data)
	return data, nil
}

// UnmarshalBinary decodes exactly RecordSize bytes into r.
func (r *Record) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return ErrMalformedRecord
	}
	r.Type = binary.BigEndian.Uint16(data[offType:])
	r.MajorVersion = binary.BigEndian.Uint16(data[offMajor:])
	r.MinorVersion = binary.BigEndian.Uint16(data[offMinor:])
	r.ID = binary.BigEndian.Uint32(data[offID:])
	r.Operator = arith.Operator(binary.BigEndian.Uint32(data[offOperator:]))
	r.IntValue1 = int32(binary.BigEndian.Uint32(data[offIntValue1:]))
	r.IntValue2 = int32(binary.BigEndian.Uint32(data[offIntValue2:]))
	r.IntResult = int32(binary.BigEndian.Uint32(data[offIntResult:]))
	r.FltValue1 = math.Float64frombits(floatOrder.Uint64(data[offFloatValue1:]))
	r.FltValue2 = math.Float64frombits(floatOrder.Uint64(data[offFloatValue2:]))
	r.FltResult = math.Float64frombits(floatOrder.Uint64(data[offFloatResult:]))
	return nil
}

func (r Record) put(data []byte) {
	intValue1, intValue2, intResult := r.IntValue1, r.IntValue2, r.IntResult
	fltValue1, fltValue2, fltResult := r.FltValue1, r.FltValue2, r.FltResult
	switch r.Operator.Class() {
	case arith.IntClass:
		fltValue1, fltValue2, fltResult = 0, 0, 0
	case arith.FloatClass:
		intValue1, intValue2, intResult = 0, 0, 0
	}

	binary.BigEndian.PutUint16(data[offType:], TypeTask)
	binary.BigEndian.PutUint16(data[offMajor:], MajorVersion)
	binary.BigEndian.PutUint16(data[offMinor:], MinorVersion)
	binary.BigEndian.PutUint32(data[offID:], r.ID)
	binary.BigEndian.PutUint32(data[offOperator:], uint32(r.Operator))
	binary.BigEndian.PutUint32(data[offIntValue1:], uint32(intValue1))
	binary.BigEndian.PutUint32(data[offIntValue2:], uint32(intValue2))
	binary.BigEndian.PutUint32(data[offIntResult:], uint32(intResult))
	floatOrder.PutUint64(data[offFloatValue1:], math.Float64bits(fltValue1))
	floatOrder.PutUint64(data[offFloatValue2:], math.Float64bits(fltValue2))
	floatOrder.PutUint64(data[offFloatResult:], math.Float64bits(fltResult))
}

// Decode parses a record, failing with ErrMalformedRecord unless len(data) == RecordSize.
func Decode(data []byte) (Record, error) {
	var r Record
	if err := r.UnmarshalBinary(data); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Encode returns the wire form of r.
func Encode(r Record) []byte {
	data := make([]byte, RecordSize)
	r.put(data)
	return data
}
