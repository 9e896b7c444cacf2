package analyze

import (
	"regexp"
	"strings"

	"github.com/logsweep/logsweep/pkg/core"
)

// sensitivePattern names one keyword family or literal shape that
// suggests the call is printing data that should not be deleted
// blindly (or printed at all).
type sensitivePattern struct {
	name  string
	risk  core.Risk
	regex *regexp.Regexp
}

// Keyword families, ranked. The overall rating is the maximum across
// every matched family; all matched names are recorded.
var keywordPatterns = []*sensitivePattern{
	// High: credential-like material
	{"api-key", core.RiskHigh, regexp.MustCompile(`(?i)api[_\- ]?key`)},
	{"secret-key", core.RiskHigh, regexp.MustCompile(`(?i)(access|auth|secret|private)[_\- ]?key`)},
	{"password", core.RiskHigh, regexp.MustCompile(`(?i)(password|passwd|pwd)`)},
	{"credential", core.RiskHigh, regexp.MustCompile(`(?i)credential`)},
	{"auth-token", core.RiskHigh, regexp.MustCompile(`(?i)(jwt|session|auth|access|bearer)[_\- ]?token`)},
	{"connection-string", core.RiskHigh, regexp.MustCompile(`(?i)connection[_\- ]?string`)},
	{"oauth-secret", core.RiskHigh, regexp.MustCompile(`(?i)oauth[_\- ]?(secret|key|token)`)},

	// Medium: PII and identifiers
	{"user-id", core.RiskMedium, regexp.MustCompile(`(?i)user[_\- ]?id`)},
	{"email", core.RiskMedium, regexp.MustCompile(`(?i)\be[_\-]?mail\b`)},
	{"phone", core.RiskMedium, regexp.MustCompile(`(?i)phone`)},
	{"ssn", core.RiskMedium, regexp.MustCompile(`(?i)(\bssn\b|social[_\- ]?security)`)},
	{"credit-card", core.RiskMedium, regexp.MustCompile(`(?i)(credit[_\- ]?card|card[_\- ]?number)`)},
	{"bank-account", core.RiskMedium, regexp.MustCompile(`(?i)(bank[_\- ]?account|account[_\- ]?number)`)},
	{"session-id", core.RiskMedium, regexp.MustCompile(`(?i)(session|tracking)[_\- ]?id`)},
	{"network-address", core.RiskMedium, regexp.MustCompile(`(?i)\b(ip|mac)[_\- ]?addr(ess)?`)},

	// Low: derived material
	{"hash", core.RiskLow, regexp.MustCompile(`(?i)\bhash\b`)},
	{"signature", core.RiskLow, regexp.MustCompile(`(?i)signature`)},
	{"nonce", core.RiskLow, regexp.MustCompile(`(?i)\b(nonce|salt)\b`)},
}

// Literal shapes that look like actual secret material. Any match
// forces the rating to at least high regardless of keywords.
var literalPatterns = []*sensitivePattern{
	{"jwt-literal", core.RiskHigh, regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`)},
	{"uuid-literal", core.RiskHigh, regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)},
	{"long-key-literal", core.RiskHigh, regexp.MustCompile(`\b[A-Za-z0-9]{32,}\b`)},
	{"base64-literal", core.RiskHigh, regexp.MustCompile(`[A-Za-z0-9+/=]{40,}`)},
}

// DetectSensitivity rates the call's argument text. An empty capture
// (multi-line or unbalanced argument lists) rates as none: absence of
// evidence, not evidence of absence.
func DetectSensitivity(args string) (core.Risk, []string) {
	if strings.TrimSpace(args) == "" {
		return core.RiskNone, nil
	}

	risk := core.RiskNone
	var matches []string

	for _, p := range keywordPatterns {
		if p.regex.MatchString(args) {
			matches = append(matches, p.name)
			risk = risk.Max(p.risk)
		}
	}

	for _, p := range literalPatterns {
		if p.regex.MatchString(args) {
			matches = append(matches, p.name)
			risk = risk.Max(p.risk)
		}
	}

	return risk, matches
}

// MaskSecrets masks the middle of quoted string values for display,
// so reporting an occurrence never re-leaks what it printed.
func MaskSecrets(line string) string {
	masked := line
	for _, quote := range []string{`"`, `'`, "`"} {
		parts := strings.Split(masked, quote)
		for i := 1; i < len(parts); i += 2 {
			if len(parts[i]) > 8 {
				parts[i] = parts[i][:2] + strings.Repeat("*", len(parts[i])-4) + parts[i][len(parts[i])-2:]
			}
		}
		masked = strings.Join(parts, quote)
	}
	return masked
}
