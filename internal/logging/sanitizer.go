package logging

import (
	"regexp"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

// Sanitizer redacts secrets and masks e-mail addresses in log output.
type Sanitizer struct {
	rules    []rule
	redacted string
}

// NewSanitizer creates a sanitizer with default patterns.
func NewSanitizer() *Sanitizer {
	s := &Sanitizer{redacted: "[REDACTED]"}
	for _, p := range secretPatterns {
		s.rules = append(s.rules, rule{re: regexp.MustCompile(p)})
	}
	// Keep the first character of the local part and the whole domain.
	s.rules = append(s.rules, rule{
		re:   regexp.MustCompile(`\b([A-Za-z0-9])[A-Za-z0-9._%+-]*@([A-Za-z0-9.-]+\.[A-Za-z]{2,})\b`),
		repl: "${1}***@${2}",
	})
	return s
}

var secretPatterns = []string{
	// Agent service keys
	`sk-default-[A-Za-z0-9]{16,}`,
	`(?i)x-api-key["'\s:=]+[A-Za-z0-9_-]{12,}`,
	// OpenAI / Anthropic
	`sk-ant-[a-zA-Z0-9-]{40,}`,
	`sk-[A-Za-z0-9]{20,}`,
	// GitHub tokens
	`gh[pousr]_[A-Za-z0-9]{36}`,
	`github_pat_[A-Za-z0-9_]{22,}`,
	// Google
	`AIza[a-zA-Z0-9_-]{35}`,
	// Slack tokens
	`xox[baprs]-[0-9a-zA-Z-]{10,}`,
	// Generic Bearer tokens
	`(?i)bearer\s+[a-zA-Z0-9._-]{20,}`,
	// Generic API keys
	`(?i)api[_-]?key["'\s:=]+[a-zA-Z0-9_-]{20,}`,
	// Generic secrets and tokens
	`(?i)secret["'\s:=]+[a-zA-Z0-9_-]{20,}`,
	`(?i)token["'\s:=]+[a-zA-Z0-9_-]{20,}`,
}

// Sanitize redacts sensitive information from a string.
func (s *Sanitizer) Sanitize(input string) string {
	result := input
	for _, r := range s.rules {
		repl := r.repl
		if repl == "" {
			repl = s.redacted
		}
		result = r.re.ReplaceAllString(result, repl)
	}
	return result
}

// AddPattern adds a custom redaction pattern.
func (s *Sanitizer) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.rules = append(s.rules, rule{re: re})
	return nil
}
