package app

import (
	"regexp"
	"strings"

	"github.com/Francouer/deno-sync/internal/domain"
)

// Specifier is the decomposed form of a registry specifier such as
// "npm:lodash@4.17.21/fp" or "jsr:@std/assert@1.0.0"
type Specifier struct {
	Registry string
	Name     string
	Version  string
	Subpath  string
}

// The embedded version must be one to three dot-separated integer segments;
// specifiers with pre-release or build suffixes fail the match entirely and
// are left untouched by the sync.
var (
	npmSpecifierRegex = regexp.MustCompile(`^npm:([^@]+)@(\d+(?:\.\d+){0,2})(/.*)?$`)
	jsrSpecifierRegex = regexp.MustCompile(`^jsr:(@[^@/]+/[^@/]+)@(\d+(?:\.\d+){0,2})(/.*)?$`)
)

// ParseSpecifier matches a specifier against the recognized registry
// dialects, npm first and then jsr. Anything else is not an error, just
// not a tracked entry.
func ParseSpecifier(value string) (Specifier, bool) {
	if m := npmSpecifierRegex.FindStringSubmatch(value); m != nil {
		return Specifier{Registry: "npm", Name: m[1], Version: m[2], Subpath: m[3]}, true
	}
	if m := jsrSpecifierRegex.FindStringSubmatch(value); m != nil {
		return Specifier{Registry: "jsr", Name: m[1], Version: m[2], Subpath: m[3]}, true
	}
	return Specifier{}, false
}

// WithVersion rebuilds the specifier string around a new embedded version,
// keeping the subpath verbatim
func (s Specifier) WithVersion(version string) string {
	return s.Registry + ":" + s.Name + "@" + version + s.Subpath
}

// LeadingNumericVersion strips the non-numeric prefix of a version range,
// so "^4.17.21" becomes "4.17.21". This is a deliberate approximation of
// "the concrete version the range refers to", not semver range resolution.
func LeadingNumericVersion(versionRange string) string {
	return strings.TrimLeftFunc(versionRange, func(r rune) bool {
		return r < '0' || r > '9'
	})
}

// ApplyPrecision truncates a candidate version to the configured number of
// segments. Auto derives the segment count from the version currently
// embedded in the entry, so an entry pinned to "3" stays a major-only pin.
func ApplyPrecision(candidate, current string, mode domain.PrecisionMode) string {
	if mode == domain.PrecisionFull {
		return candidate
	}

	segments := strings.Split(candidate, ".")
	keep := len(segments)

	switch mode {
	case domain.PrecisionMajor:
		keep = 1
	case domain.PrecisionMinor:
		keep = 2
	default: // auto
		keep = len(strings.Split(current, "."))
	}

	if keep > len(segments) {
		keep = len(segments)
	}

	return strings.Join(segments[:keep], ".")
}
