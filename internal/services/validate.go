package services

import "regexp"

// domainRegexp validates RFC-compliant hostnames.
var domainRegexp = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// mobileRegexp matches 11-digit mainland China mobile numbers.
var mobileRegexp = regexp.MustCompile(`^1[3-9]\d{9}$`)

// IsDomain reports whether s is a valid RFC-compliant hostname.
func IsDomain(s string) bool {
	return domainRegexp.MatchString(s)
}

// IsMobileNumber reports whether s is an 11-digit mainland China mobile number.
func IsMobileNumber(s string) bool {
	return mobileRegexp.MatchString(s)
}
