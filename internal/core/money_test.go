package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up on the third decimal
		{"250", 25000, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Cents != tc.out {
				t.Errorf("%q: expected %d, got %d (err=%v)", tc.in, tc.out, got.Cents, err)
			}
		} else if err == nil {
			t.Errorf("%q: expected error", tc.in)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 1050}
	b := Money{Cents: 2000}
	if got := a.Add(b).Cents; got != 3050 {
		t.Errorf("Add = %d, want 3050", got)
	}
	if got := a.Sub(b).Cents; got != -950 {
		t.Errorf("Sub = %d, want -950", got)
	}
}

func TestMoneyDecimal(t *testing.T) {
	m := Money{Cents: 12345}
	if got := m.Decimal().String(); got != "123.45" {
		t.Errorf("Decimal = %s, want 123.45", got)
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Errorf("positive amount should validate: %v", err)
	}
	for _, c := range []int64{0, -1} {
		if err := (Money{Cents: c}).Validate(); err == nil {
			t.Errorf("%d cents should not validate", c)
		}
	}
}
