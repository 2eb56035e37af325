package ean

import (
	"strconv"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected bool
	}{
		{name: "standard test code", code: "4006381333931", expected: true},
		{name: "wrong check digit", code: "4006381333930", expected: false},
		{name: "garment sample", code: "3607186681381", expected: true},
		{name: "all zeros", code: "0000000000000", expected: true},
		{name: "too short", code: "400638133393", expected: false},
		{name: "too long", code: "40063813339311", expected: false},
		{name: "non digit", code: "40063813339X1", expected: false},
		{name: "empty", code: "", expected: false},
		{name: "unicode digit", code: "400638133393١", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Validate(tt.code); got != tt.expected {
				t.Errorf("Validate(%q) = %v, expected %v", tt.code, got, tt.expected)
			}
		})
	}
}

func TestValidateExactlyOneCheckDigit(t *testing.T) {
	body := "400638133393"
	valid := 0
	for d := 0; d <= 9; d++ {
		if Validate(body + strconv.Itoa(d)) {
			valid++
			if d != 1 {
				t.Errorf("Expected check digit 1, got %d", d)
			}
		}
	}
	if valid != 1 {
		t.Errorf("Expected exactly one valid check digit, got %d", valid)
	}
}

func TestCheckDigit(t *testing.T) {
	got, err := CheckDigit("360718668138")
	if err != nil {
		t.Fatalf("CheckDigit failed: %v", err)
	}
	if got != 1 {
		t.Errorf("Expected 1, got %d", got)
	}

	if _, err := CheckDigit("12345"); err == nil {
		t.Error("Expected error for short body, got nil")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
		wantErr  bool
	}{
		{name: "valid 13 digits", code: "4006381333931", expected: "400638133393"},
		{name: "12 digit body", code: "400638133393", expected: "400638133393"},
		{name: "separators stripped", code: "4 006381 333931", expected: "400638133393"},
		{name: "bad checksum", code: "4006381333930", wantErr: true},
		{name: "too few digits", code: "12345", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.code)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got nil", tt.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) failed: %v", tt.code, err)
			}
			if got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
