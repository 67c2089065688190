package calcproto

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"calcd/domain/arith"
)

func TestRecordSize(t *testing.T) {
	if RecordSize != 50 {
		t.Fatalf("RecordSize = %d, want 50", RecordSize)
	}
}

func TestDecode_RejectsWrongLength(t *testing.T) {
	for _, n := range []int{0, 1, RecordSize - 1, RecordSize + 1, 1024} {
		if _, err := Decode(make([]byte, n)); !errors.Is(err, ErrMalformedRecord) {
			t.Fatalf("len %d: expected ErrMalformedRecord, got %v", n, err)
		}
	}
}

func TestDecode_IntegerFieldsAreBigEndian(t *testing.T) {
	data := make([]byte, RecordSize)
	binary.BigEndian.PutUint16(data[0:], 1)
	binary.BigEndian.PutUint16(data[2:], 1)
	binary.BigEndian.PutUint16(data[4:], 1)
	binary.BigEndian.PutUint32(data[6:], 0xdeadbeef)
	binary.BigEndian.PutUint32(data[10:], 3)
	binary.BigEndian.PutUint32(data[14:], 6)
	binary.BigEndian.PutUint32(data[18:], uint32(int32(-7)))
	binary.BigEndian.PutUint32(data[22:], 42)

	r, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if r.ID != 0xdeadbeef {
		t.Fatalf("ID = %#x", r.ID)
	}
	if r.Operator != arith.IntMultiply || r.IntValue1 != 6 || r.IntValue2 != -7 || r.IntResult != 42 {
		t.Fatalf("unexpected decoded record: %+v", r)
	}
}

func TestEncode_FloatFieldsUseNativeLayout(t *testing.T) {
	r := Record{Operator: arith.FloatDivide, FltValue1: 1.5, FltValue2: 0.25, FltResult: 6}
	data := Encode(r)

	want := make([]byte, 8)
	binary.NativeEndian.PutUint64(want, math.Float64bits(1.5))
	if !bytes.Equal(data[26:34], want) {
		t.Fatalf("float_operand1 bytes = %x, want %x", data[26:34], want)
	}
	binary.NativeEndian.PutUint64(want, math.Float64bits(6))
	if !bytes.Equal(data[42:50], want) {
		t.Fatalf("float_result bytes = %x, want %x", data[42:50], want)
	}
}

func TestEncode_ForcesHeaderAndZeroFillsOtherClass(t *testing.T) {
	r := Record{
		Type:         7,
		MajorVersion: 9,
		MinorVersion: 9,
		ID:           5,
		Operator:     arith.IntAdd,
		IntValue1:    1,
		IntValue2:    2,
		IntResult:    3,
		FltValue1:    4.5,
		FltValue2:    5.5,
		FltResult:    6.5,
	}
	got, err := Decode(Encode(r))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := Record{
		Type:         1,
		MajorVersion: 1,
		MinorVersion: 1,
		ID:           5,
		Operator:     arith.IntAdd,
		IntValue1:    1,
		IntValue2:    2,
		IntResult:    3,
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	r.Operator = arith.FloatAdd
	got, _ = Decode(Encode(r))
	if got.IntValue1 != 0 || got.IntValue2 != 0 || got.IntResult != 0 {
		t.Fatalf("int triple must be zero for a float operator: %+v", got)
	}
	if got.FltValue1 != 4.5 || got.FltResult != 6.5 {
		t.Fatalf("float triple lost: %+v", got)
	}
}

func TestRoundTrip_WellFormedBuffers(t *testing.T) {
	g := arith.NewGenerator(7)
	for i := 0; i < 200; i++ {
		task := g.Generate(arith.AnyClass)
		expected, err := task.Expected()
		if err != nil {
			t.Fatalf("Expected: %v", err)
		}
		wire := Encode(NewTaskRecord(g.Uint32(), task).WithResult(expected))

		decoded, err := Decode(wire)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		if again := Encode(decoded); !bytes.Equal(again, wire) {
			t.Fatalf("encode(decode(x)) != x\n got %x\nwant %x", again, wire)
		}
	}
}

func TestMarshalBinary_MatchesEncode(t *testing.T) {
	r := NewTaskRecord(11, arith.Task{Operator: arith.IntSubtract, IntValue1: 9, IntValue2: 4})
	data, err := r.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	if !bytes.Equal(data, Encode(r)) {
		t.Fatal("MarshalBinary and Encode disagree")
	}
	var back Record
	if err := back.UnmarshalBinary(data); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if back.Task() != r.Task() {
		t.Fatalf("task mismatch: %+v vs %+v", back.Task(), r.Task())
	}
}

func TestRecord_Matches(t *testing.T) {
	r := Record{Operator: arith.IntMultiply, IntResult: 42}
	if !r.Matches(arith.Result{Class: arith.IntClass, Int: 42}) {
		t.Fatal("42 must match 42")
	}
	if r.Matches(arith.Result{Class: arith.IntClass, Int: 41}) {
		t.Fatal("42 must not match 41")
	}
	f := Record{Operator: arith.FloatAdd, FltResult: 0.5}
	if !f.Matches(arith.Result{Class: arith.FloatClass, Float: 0.5}) {
		t.Fatal("float result must match exactly")
	}
	if f.Matches(arith.Result{}) {
		t.Fatal("unknown class never matches")
	}
}
