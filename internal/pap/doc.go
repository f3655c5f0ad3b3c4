// Package pap implements the Permissible Actions Protocol (PAP) classification
// used to bound how visibly a lookup reaches outside the local machine.
//
// Levels in ascending order of exposure:
//
//	RED  : offline computation (identity numbers, local GeoIP database)
//	AMBER: third-party APIs that never contact the subject directly
//	GREEN: direct resolution through the local network path
//	WHITE: unrestricted
//
// The user sets --pap-limit; a service is refused when its level exceeds it.
package pap
