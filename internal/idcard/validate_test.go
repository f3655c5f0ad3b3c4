package idcard_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dossier-cli/dossier/internal/apperr"
	"github.com/dossier-cli/dossier/internal/idcard"
)

// withCheck appends the computed check character to a 17-digit body.
func withCheck(body string) string {
	return body + string(idcard.CheckCharacter(body))
}

// bodyWithCheck returns a 17-digit body born on 1990-03-07 whose check
// character is want.
func bodyWithCheck(t *testing.T, want byte) string {
	t.Helper()
	for seq := 0; seq < 1000; seq++ {
		body := fmt.Sprintf("11010119900307%03d", seq)
		if idcard.CheckCharacter(body) == want {
			return body
		}
	}
	t.Fatalf("no sequence yields check character %q", want)
	return ""
}

func TestValidate_KnownGood(t *testing.T) {
	v := idcard.Validate("110101199003070011")
	assert.True(t, v.Valid())
	assert.Equal(t, idcard.ReasonNone, v.Reason())
	assert.NoError(t, v.Err())
}

func TestValidate_ChecksumMismatch(t *testing.T) {
	v := idcard.Validate("110101199003070012")
	assert.False(t, v.Valid())
	assert.Equal(t, idcard.ReasonChecksum, v.Reason())
	assert.ErrorIs(t, v.Err(), idcard.ErrChecksum)
	assert.ErrorIs(t, v.Err(), apperr.ErrInvalidInput)
}

func TestValidate_ImpossibleDate(t *testing.T) {
	for _, raw := range []string{
		"110101199902300011", // February 30
		"110101199913070011", // month 13
		"110101199900070011", // month 0
		"110101199904310011", // April 31
		"110101199903000011", // day 0
		"110101190002290011", // 1900 is not a leap year
	} {
		t.Run(raw, func(t *testing.T) {
			// The trailing character is irrelevant: the date check runs first.
			for _, last := range []string{"0", "5", "X", "x"} {
				v := idcard.Validate(raw[:17] + last)
				assert.Equal(t, idcard.ReasonDate, v.Reason(), "check character %s", last)
				assert.ErrorIs(t, v.Err(), idcard.ErrDate)
			}
		})
	}
}

func TestValidate_TooShort(t *testing.T) {
	v := idcard.Validate("12345")
	assert.Equal(t, idcard.ReasonStructure, v.Reason())
	assert.ErrorIs(t, v.Err(), idcard.ErrStructure)
}

func TestValidate_StructuralFailures(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"seventeen chars", "11010119900307001"},
		{"nineteen chars", "1101011990030700111"},
		{"letter in body", "11010119900307A011"},
		{"X in body", "1101011990030X0011"},
		{"invalid check letter", "11010119900307001Y"},
		{"leading space", " 11010119900307001"},
		{"full-width digit", "11010119900307001１"},
		{"multibyte same rune count", "110101199003070０11"},
		{"minus sign", "-10101199003070011"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, idcard.ReasonStructure, idcard.Validate(tc.raw).Reason())
		})
	}
}

func TestValidate_RandomNonMatchingStrings(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	alphabet := "0123456789Xx-abc 中"
	for i := 0; i < 2000; i++ {
		n := r.IntN(24)
		var b strings.Builder
		for j := 0; j < n; j++ {
			runes := []rune(alphabet)
			b.WriteRune(runes[r.IntN(len(runes))])
		}
		s := b.String()
		if isWellFormed(s) {
			continue
		}
		assert.Equal(t, idcard.ReasonStructure, idcard.Validate(s).Reason(), "input %q", s)
	}
}

// isWellFormed mirrors the structural rule independently of the package.
func isWellFormed(s string) bool {
	if len(s) != 18 {
		return false
	}
	for i := 0; i < 17; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	c := s[17]
	return (c >= '0' && c <= '9') || c == 'X' || c == 'x'
}

func TestValidate_LeapDay(t *testing.T) {
	assert.True(t, idcard.Validate(withCheck("11010120000229001")).Valid())
	assert.True(t, idcard.Validate(withCheck("11010120240229001")).Valid())
	assert.Equal(t, idcard.ReasonDate, idcard.Validate(withCheck("11010120230229001")).Reason())
}

func TestValidate_ChecksumIffMatch(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		year := 1900 + r.IntN(125)
		month := 1 + r.IntN(12)
		day := 1 + r.IntN(28)
		body := fmt.Sprintf("%02d%04d%04d%02d%02d%03d", 11+r.IntN(80), r.IntN(10000), year, month, day, r.IntN(1000))
		want := idcard.CheckCharacter(body)
		for _, c := range []byte("0123456789X") {
			v := idcard.Validate(body + string(c))
			if c == want {
				assert.True(t, v.Valid(), "%s%c", body, c)
			} else {
				assert.Equal(t, idcard.ReasonChecksum, v.Reason(), "%s%c", body, c)
			}
		}
	}
}

func TestValidate_LowercaseX(t *testing.T) {
	body := bodyWithCheck(t, 'X')
	assert.True(t, idcard.Validate(body+"X").Valid())
	assert.True(t, idcard.Validate(body+"x").Valid())
}

func TestCheckCharacter(t *testing.T) {
	assert.Equal(t, byte('1'), idcard.CheckCharacter("11010119900307001"))
	// Trailing characters beyond the 17-digit body are ignored.
	assert.Equal(t, byte('1'), idcard.CheckCharacter("110101199003070011"))
}

func TestValidationResult_ZeroValueIsValid(t *testing.T) {
	var v idcard.ValidationResult
	assert.True(t, v.Valid())
	require.NoError(t, v.Err())
}

func TestReason_String(t *testing.T) {
	assert.Equal(t, "none", idcard.ReasonNone.String())
	assert.Equal(t, "structure", idcard.ReasonStructure.String())
	assert.Equal(t, "date", idcard.ReasonDate.String())
	assert.Equal(t, "checksum", idcard.ReasonChecksum.String())
	assert.Equal(t, "reason(9)", idcard.Reason(9).String())
}

func TestSentinels_Distinct(t *testing.T) {
	assert.False(t, errors.Is(idcard.ErrDate, idcard.ErrChecksum))
	assert.False(t, errors.Is(idcard.ErrStructure, idcard.ErrDate))
	for _, err := range []error{idcard.ErrStructure, idcard.ErrDate, idcard.ErrChecksum} {
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	}
}
