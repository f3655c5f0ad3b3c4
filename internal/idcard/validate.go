package idcard

import (
	"fmt"
	"time"

	"github.com/dossier-cli/dossier/internal/apperr"
)

// Length is the number of characters in a resident identity number.
const Length = 18

// weights are applied positionally to the first 17 digits.
var weights = [Length - 1]int{7, 9, 10, 5, 8, 4, 2, 1, 6, 3, 7, 9, 10, 5, 8, 4, 2}

// checkCodes is indexed by the weighted sum modulo 11.
var checkCodes = [11]byte{'1', '0', 'X', '9', '8', '7', '6', '5', '4', '3', '2'}

// Reason identifies why an identity number was rejected.
type Reason int

const (
	// ReasonNone means the identity number passed every check.
	ReasonNone Reason = iota
	// ReasonStructure means the input is not 17 digits followed by a digit or X.
	ReasonStructure
	// ReasonDate means the embedded YYYYMMDD is not a real calendar date.
	ReasonDate
	// ReasonChecksum means the check character does not match the computed code.
	ReasonChecksum
)

// String returns the lowercase name of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonStructure:
		return "structure"
	case ReasonDate:
		return "date"
	case ReasonChecksum:
		return "checksum"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Rejection sentinels. Each wraps apperr.ErrInvalidInput, so callers can match
// either the specific reason or the generic category with errors.Is.
var (
	ErrStructure = fmt.Errorf("%w: identity number must be 17 digits followed by a digit or X", apperr.ErrInvalidInput)
	ErrDate      = fmt.Errorf("%w: identity number contains an impossible birth date", apperr.ErrInvalidInput)
	ErrChecksum  = fmt.Errorf("%w: identity number check character does not match", apperr.ErrInvalidInput)
)

// ValidationResult is the verdict of Validate. The zero value is Valid.
type ValidationResult struct {
	reason Reason
}

// Valid reports whether the identity number passed every check.
func (v ValidationResult) Valid() bool { return v.reason == ReasonNone }

// Reason returns the rejection reason, or ReasonNone when valid.
func (v ValidationResult) Reason() Reason { return v.reason }

// Err returns the sentinel error for the rejection reason, or nil when valid.
func (v ValidationResult) Err() error {
	switch v.reason {
	case ReasonNone:
		return nil
	case ReasonStructure:
		return ErrStructure
	case ReasonDate:
		return ErrDate
	default:
		return ErrChecksum
	}
}

// Validate checks raw for structure, calendar validity, and checksum, in that
// order, and reports the first failure. Malformed input is an expected
// outcome; Validate never panics.
func Validate(raw string) ValidationResult {
	if !wellFormed(raw) {
		return ValidationResult{reason: ReasonStructure}
	}
	if _, ok := birthDate(raw); !ok {
		return ValidationResult{reason: ReasonDate}
	}
	if upper(raw[Length-1]) != CheckCharacter(raw[:Length-1]) {
		return ValidationResult{reason: ReasonChecksum}
	}
	return ValidationResult{}
}

// CheckCharacter computes the check character for the first 17 digits of an
// identity number. body must hold at least 17 ASCII digits; extra characters
// are ignored.
func CheckCharacter(body string) byte {
	sum := 0
	for i, w := range weights {
		sum += int(body[i]-'0') * w
	}
	return checkCodes[sum%11]
}

// wellFormed reports whether s is exactly 17 ASCII digits followed by an ASCII
// digit or X/x. Indexing bytes keeps multi-byte runes from passing a length check.
func wellFormed(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < Length-1; i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	last := s[Length-1]
	return isDigit(last) || last == 'X' || last == 'x'
}

// birthDate parses characters 6–13 as YYYYMMDD. The date is rebuilt with
// time.Date and rejected unless it reads back the same year, month, and day,
// which catches month 13, February 30 and similar. s must be well formed.
func birthDate(s string) (time.Time, bool) {
	year := atoi(s[6:10])
	month := atoi(s[10:12])
	day := atoi(s[12:14])
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(digits string) int {
	n := 0
	for i := 0; i < len(digits); i++ {
		n = n*10 + int(digits[i]-'0')
	}
	return n
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func upper(b byte) byte {
	if b == 'x' {
		return 'X'
	}
	return b
}
