// Package apperr defines shared error sentinels for dossier.
// It is a leaf package with no internal imports, so low-level packages such
// as doh and idcard can wrap the sentinels without creating import cycles.
package apperr
