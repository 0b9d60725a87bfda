package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClaimAmountNormalization(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{"150000", 150000},
		{"  150000  ", 150000},
		{"1 000 000", 1000000},
		{"1 000 000 so'm", 1000000},
		{"250000 sum", 250000},
		{"250000 сум", 250000},
		{"1,500,000", 1500000},
		{"1.500.000", 1500000},
		{"100000000", 100000000},
	}
	for _, tc := range cases {
		got, err := ParseClaimAmount(tc.input)
		assert.NoError(t, err, "input: %q", tc.input)
		assert.Equal(t, tc.want, got, "input: %q", tc.input)
	}
}

func TestParseClaimAmountRejectsInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "-5", "0", "100000001", "12q34"} {
		_, err := ParseClaimAmount(input)
		assert.ErrorIs(t, err, ErrValidation, "input: %q", input)
	}
}

func TestParseBonusPercent(t *testing.T) {
	got, err := ParseBonusPercent(" 5 ")
	assert.NoError(t, err)
	assert.Equal(t, 5, got)

	got, err = ParseBonusPercent("100")
	assert.NoError(t, err)
	assert.Equal(t, 100, got)

	for _, input := range []string{"0", "101", "-3", "5%", "abc", ""} {
		_, err := ParseBonusPercent(input)
		assert.ErrorIs(t, err, ErrValidation, "input: %q", input)
	}
}

func TestParseDeductAmount(t *testing.T) {
	got, err := ParseDeductAmount("50 000", 100000)
	assert.NoError(t, err)
	assert.Equal(t, int64(50000), got)

	// Ровно весь баланс вычесть можно.
	got, err = ParseDeductAmount("100000", 100000)
	assert.NoError(t, err)
	assert.Equal(t, int64(100000), got)

	_, err = ParseDeductAmount("100001", 100000)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseDeductAmount("-5", 100000)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ParseDeductAmount("0", 100000)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestValidateName(t *testing.T) {
	name, err := ValidateName("  Aziz  ")
	assert.NoError(t, err)
	assert.Equal(t, "Aziz", name)

	// Длина считается в рунах, не в байтах.
	name, err = ValidateName("Ём")
	assert.NoError(t, err)
	assert.Equal(t, "Ём", name)

	_, err = ValidateName("A")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = ValidateName("   ")
	assert.ErrorIs(t, err, ErrValidation)
}
