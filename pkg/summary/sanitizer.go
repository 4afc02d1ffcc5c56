package summary

import (
	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer post-processes summary body HTML before it is rendered
type Sanitizer interface {
	Sanitize(html string) string
}

// Trusted passes markup through untouched. This is the default.
type Trusted struct{}

// Sanitize returns html as is
func (Trusted) Sanitize(html string) string { return html }

// PolicySanitizer applies a bluemonday allow-list policy
type PolicySanitizer struct {
	policy *bluemonday.Policy
}

// NewPolicySanitizer makes a sanitizer with the user-generated-content policy,
// dropping scripts, styles, frames and event handlers while keeping text formatting and links
func NewPolicySanitizer() *PolicySanitizer {
	p := bluemonday.UGCPolicy()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return &PolicySanitizer{policy: p}
}

// Sanitize cleans html with the configured policy
func (s *PolicySanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}
