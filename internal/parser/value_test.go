package parser

import "testing"

func scalarValue(text string) *Value {
	return &Value{Data: ScalarData{Text: text}}
}

func TestIsInteger(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"0", true},
		{"123114", true},
		{"-5", true},
		{"+5", true},
		{"0x1F", true},
		{"0o17", true},
		{"0b1010", true},
		{"", false},
		{"abc", false},
		{"12a", false},
		{"0x", false},
		{"0xG1", false},
		{"0o8", false},
		{"0b2", false},
		{"-0x10", false},
		{"1.5", false},
	}
	for _, tt := range tests {
		if got := IsInteger(tt.s); got != tt.want {
			t.Errorf("IsInteger(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestIsSignedInteger(t *testing.T) {
	if !IsSignedInteger("-5") || !IsSignedInteger("+5") {
		t.Error("explicit signs should classify as signed")
	}
	if IsSignedInteger("5") || IsSignedInteger("abc") {
		t.Error("unsigned or non-numeric input should not classify as signed")
	}
}

func TestAsU64BaseDetection(t *testing.T) {
	tests := []struct {
		s    string
		want uint64
	}{
		{"500", 500},
		{"+500", 500},
		{"0x1F", 31},
		{"0X1f", 31},
		{"0o17", 15},
		{"0b1010", 10},
	}
	for _, tt := range tests {
		got, err := scalarValue(tt.s).AsU64()
		assertNoError(t, err)
		if got != tt.want {
			t.Errorf("AsU64(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestAsU64Invalid(t *testing.T) {
	for _, s := range []string{"", "abc", "-5", "1.5"} {
		_, err := scalarValue(s).AsU64()
		assertError(t, err, InvalidNumber)
	}
}

func TestAsI64Signs(t *testing.T) {
	n, err := scalarValue("-42").AsI64()
	assertNoError(t, err)
	if n != -42 {
		t.Fatalf("AsI64(-42) = %d", n)
	}
	n, err = scalarValue("+42").AsI64()
	assertNoError(t, err)
	if n != 42 {
		t.Fatalf("AsI64(+42) = %d", n)
	}
}

func TestNarrowedCoercionsOverflow(t *testing.T) {
	v := scalarValue("123114")
	if _, err := v.AsU32(); err != nil {
		t.Fatalf("AsU32 within range: %v", err)
	}
	_, err := v.AsU16()
	assertError(t, err, NumberOverflow)
	_, err = v.AsU8()
	assertError(t, err, NumberOverflow)

	neg := scalarValue("-200")
	if _, err := neg.AsI16(); err != nil {
		t.Fatalf("AsI16 within range: %v", err)
	}
	_, err = neg.AsI8()
	assertError(t, err, NumberOverflow)
}

func TestAsU64Overflow(t *testing.T) {
	_, err := scalarValue("18446744073709551616").AsU64()
	assertError(t, err, NumberOverflow)
}

func TestAsBoolInvalid(t *testing.T) {
	_, err := scalarValue("yes").AsBool()
	assertError(t, err, InvalidBool)
}

func TestAsCharSingleRune(t *testing.T) {
	r, err := scalarValue("x").AsChar()
	assertNoError(t, err)
	if r != 'x' {
		t.Fatalf("AsChar = %q", r)
	}
	_, err = scalarValue("xy").AsChar()
	if err == nil {
		t.Fatal("expected error for multi-rune scalar")
	}
}
