package idcard

import (
	"fmt"
	"time"
)

// DateLayout is the canonical rendering of a birth date.
const DateLayout = "2006-01-02"

// Gender is encoded by the parity of the sequence digit.
type Gender string

// Gender values.
const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ParsedIdentity holds the attributes encoded in a valid identity number.
// Every field is a pure function of the 18 input characters, except Age,
// which also depends on the reference instant passed to Extract.
type ParsedIdentity struct {
	BirthDate      time.Time
	Gender         Gender
	ProvinceCode   string
	ProvinceName   string
	Age            int
	CheckCharacter string
}

// Extractor derives ParsedIdentity values using a province registry.
type Extractor struct {
	registry *Registry
}

// NewExtractor returns an Extractor that resolves provinces through registry.
// A nil registry falls back to DefaultRegistry.
func NewExtractor(registry *Registry) *Extractor {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Extractor{registry: registry}
}

// Extract derives the demographic attributes of raw relative to now.
//
// raw must already have passed Validate. Calling Extract on a rejected
// identity number is a programming error and panics rather than returning
// fabricated data.
func (e *Extractor) Extract(raw string, now time.Time) ParsedIdentity {
	if err := Validate(raw).Err(); err != nil {
		panic(fmt.Sprintf("idcard.Extract called on rejected identity number: %v", err))
	}
	birth, _ := birthDate(raw)

	gender := Female
	if (raw[Length-2]-'0')%2 == 1 {
		gender = Male
	}

	code := raw[:2]
	return ParsedIdentity{
		BirthDate:      birth,
		Gender:         gender,
		ProvinceCode:   code,
		ProvinceName:   e.registry.Lookup(code),
		Age:            Age(birth, now),
		CheckCharacter: string(upper(raw[Length-1])),
	}
}

// Extract is Extractor.Extract using DefaultRegistry.
func Extract(raw string, now time.Time) ParsedIdentity {
	return NewExtractor(nil).Extract(raw, now)
}

// Age returns the whole years elapsed between birth and now, counting a year
// only once the birthday has occurred. A birth date after now yields 0.
func Age(birth, now time.Time) int {
	ny, nm, nd := now.Date()
	by, bm, bd := birth.Date()
	age := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	return max(age, 0)
}
