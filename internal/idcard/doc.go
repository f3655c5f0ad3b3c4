// Package idcard validates 18-character resident identity numbers and derives
// the demographic attributes they encode: birth date, gender, issuing
// province, age, and the trailing check character.
//
// Validation runs three checks in a fixed order and stops at the first
// failure:
//
//	structure: 17 ASCII digits followed by a digit or X/x
//	calendar : characters 6–13 form a real YYYYMMDD date
//	checksum : weighted modulo-11 code over the first 17 digits
//
// Everything in this package is pure computation with no I/O and no shared
// mutable state. The reference instant for age is always passed in by the
// caller; nothing here reads the wall clock.
package idcard
