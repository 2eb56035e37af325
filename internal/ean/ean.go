// Package ean implements the EAN-13 check digit arithmetic.
package ean

import (
	"fmt"
	"strings"
)

// Length is the number of digits in a complete EAN-13 code.
const Length = 13

// Validate reports whether code is exactly 13 decimal digits and its last digit
// matches the weighted checksum of the first twelve.
func Validate(code string) bool {
	if len(code) != Length || !allDigits(code) {
		return false
	}
	return int(code[12]-'0') == checksum(code[:12])
}

// CheckDigit computes the check digit for a 12-digit body.
func CheckDigit(body string) (int, error) {
	if len(body) != Length-1 || !allDigits(body) {
		return 0, fmt.Errorf("ean: body must be 12 digits, got %q", body)
	}
	return checksum(body), nil
}

// Normalize strips everything but digits and returns the 12-digit body of the
// code. A 12-digit input is returned as is; a 13-digit input must carry a
// valid check digit.
func Normalize(code string) (string, error) {
	var b strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch len(digits) {
	case Length - 1:
		return digits, nil
	case Length:
		if !Validate(digits) {
			return "", fmt.Errorf("ean: checksum mismatch for %s", digits)
		}
		return digits[:Length-1], nil
	default:
		return "", fmt.Errorf("ean: expected 12 or 13 digits, got %d", len(digits))
	}
}

// checksum weights positions 0..11 alternately by 1 and 3.
func checksum(body string) int {
	sum := 0
	for i := 0; i < len(body); i++ {
		d := int(body[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
