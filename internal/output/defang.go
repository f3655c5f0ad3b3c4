package output

import (
	"io"
	"regexp"
	"strings"

	"github.com/dossier-cli/dossier/internal/pap"
)

var (
	// schemeRe matches http:// and https:// prefixes anywhere in the text.
	schemeRe = regexp.MustCompile(`(?i)\bhttps?://`)
	// ipv4Re matches dotted-quad IPv4 addresses.
	ipv4Re = regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}\b`)
	// hostRe matches hostnames ending in an alphabetic TLD. Decimal numbers such
	// as coordinates never match.
	hostRe = regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}\b`)
)

// Defang neutralises hostnames, IPv4 addresses, and http(s) schemes in s so
// they cannot be clicked or pasted by accident.
//
//	"https://example.com" → "hxxps://example[.]com"
//	"1.2.3.4"             → "1[.]2[.]3[.]4"
//	"39.9042"             → "39.9042"
func Defang(s string) string {
	s = schemeRe.ReplaceAllStringFunc(s, func(m string) string {
		return strings.Replace(strings.ToLower(m), "http", "hxxp", 1)
	})
	dots := func(m string) string { return strings.ReplaceAll(m, ".", "[.]") }
	s = ipv4Re.ReplaceAllStringFunc(s, dots)
	return hostRe.ReplaceAllStringFunc(s, dots)
}

// ResolveDefang decides whether output is defanged.
//
//   - noDefang always wins and disables defanging.
//   - explicitDefang enables it for every format, JSON included.
//   - An AMBER or RED limit enables it for text and plain; JSON stays raw for
//     downstream tooling.
//
// Callers must reject explicitDefang && noDefang beforehand.
func ResolveDefang(limit pap.Level, format Format, explicitDefang, noDefang bool) bool {
	if noDefang {
		return false
	}
	restricted := limit == pap.AMBER || limit == pap.RED
	return explicitDefang || (restricted && format != FormatJSON)
}

// DefangWriter applies Defang to everything written through it.
// Each Write is transformed independently, so callers should write whole
// lines or whole documents.
type DefangWriter struct {
	Inner io.Writer
}

// Write defangs p and forwards it. It reports len(p) on success so callers do
// not treat the expansion as a short write.
func (d *DefangWriter) Write(p []byte) (int, error) {
	written, err := d.Inner.Write([]byte(Defang(string(p))))
	if err != nil {
		return written, err
	}
	return len(p), nil
}
