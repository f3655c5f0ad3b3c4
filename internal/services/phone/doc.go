// Package phone looks up mainland China mobile numbers: spam and fraud
// marks reported by security apps (cenguigui.cn) and carrier region (360).
package phone
