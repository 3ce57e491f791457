package content

import (
	"fmt"
	"strconv"
	"strings"
)

// SemVer is a dotted major.minor.patch version with an optional
// trailing errata string that is carried opaquely (not validated).
// Versions compare strictly by (major, minor, patch) and
// then by errata so two "equal" numeric versions with different
// errata remain ordered deterministically.
type SemVer struct {
	Major  int
	Minor  int
	Patch  int
	Errata string
}

// ParseSemVer parses a dotted version string. Any component that fails
// to parse as an integer (including a completely non-numeric string)
// is treated as the start of the errata suffix, and parsing stops
// there — this mirrors the permissive, never-failing behavior content
// directory definitions rely on for a free-form version field.
func ParseSemVer(s string) SemVer {
	v := SemVer{Patch: 1}

	parts := strings.SplitN(s, ".", 3)

	if len(parts) > 0 {
		n, err := strconv.Atoi(parts[0])
		if err != nil {
			v.Errata = parts[0]
			return v
		}
		v.Major = n
	}
	if len(parts) > 1 {
		n, err := strconv.Atoi(parts[1])
		if err != nil {
			v.Errata = parts[1]
			return v
		}
		v.Minor = n
	}
	if len(parts) > 2 {
		rest := parts[2]
		digits := 0
		for digits < len(rest) && rest[digits] >= '0' && rest[digits] <= '9' {
			digits++
		}
		if digits == 0 {
			v.Errata = rest
			return v
		}
		n, _ := strconv.Atoi(rest[:digits])
		v.Patch = n
		v.Errata = rest[digits:]
	}

	return v
}

func (v SemVer) String() string {
	return fmt.Sprintf("%d.%d.%d%s", v.Major, v.Minor, v.Patch, v.Errata)
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater
// than other, ordering first by the numeric triple and then by errata.
func (v SemVer) Compare(other SemVer) int {
	if v.Major != other.Major {
		return cmpInt(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return cmpInt(v.Minor, other.Minor)
	}
	if v.Patch != other.Patch {
		return cmpInt(v.Patch, other.Patch)
	}
	return strings.Compare(v.Errata, other.Errata)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
