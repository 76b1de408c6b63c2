// Package version implements Maven-style project versions as used by
// multi-module builds.
//
// A [Version] is one of three shapes, each carrying a snapshot flag:
//
//   - Number: a bare major version such as "3" or "3-SNAPSHOT"
//   - Common: major.minor[.micro] such as "1.2", "1.2.3" or "1.2.3-SNAPSHOT"
//   - Unusual: any other text such as "alpha", "1.2.3.4" or "2.0-rc1"
//
// Parsing tries the shapes in that order. Versions are comparable values:
// == is structural equality and [Compare] gives a total order across shapes,
// so heterogeneous lists can be sorted deterministically.
package version

import (
	"cmp"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// SnapshotSuffix marks a development version.
const SnapshotSuffix = "-SNAPSHOT"

// Kind identifies the shape of a Version.
type Kind int

const (
	// Invalid is the kind of the zero Version.
	Invalid Kind = iota
	// Number is a bare major version.
	Number
	// Common is a major.minor[.micro] version.
	Common
	// Unusual is any text that is not a Number or Common version.
	Unusual
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Common:
		return "common"
	case Unusual:
		return "unusual"
	default:
		return "invalid"
	}
}

var (
	numberPattern = regexp.MustCompile(`^(\d+)(-SNAPSHOT)?$`)
	minorPattern  = regexp.MustCompile(`^(\d+)\.(\d+)(-SNAPSHOT)?$`)
	microPattern  = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(-SNAPSHOT)?$`)
)

// Version is an immutable project version. The zero value is invalid.
type Version struct {
	kind     Kind
	major    int
	minor    int
	micro    int
	text     string
	snapshot bool
}

// NewNumber returns a Number version.
func NewNumber(major int, snapshot bool) Version {
	return Version{kind: Number, major: major, snapshot: snapshot}
}

// NewCommon returns a Common version.
func NewCommon(major, minor, micro int, snapshot bool) Version {
	return Version{kind: Common, major: major, minor: minor, micro: micro, snapshot: snapshot}
}

// NewUnusual returns an Unusual version. A trailing -SNAPSHOT in text is
// stripped and sets the snapshot flag.
func NewUnusual(text string) (Version, error) {
	base, snapshot := strings.CutSuffix(text, SnapshotSuffix)
	if base == "" {
		return Version{}, &ParseError{Version: text, Message: "empty version"}
	}
	return Version{kind: Unusual, text: base, snapshot: snapshot}, nil
}

// Parse parses a version string.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, &ParseError{Version: s, Message: "empty version"}
	}

	if m := numberPattern.FindStringSubmatch(s); m != nil {
		if major, ok := atoi(m[1]); ok {
			return NewNumber(major, m[2] != ""), nil
		}
	}
	if m := minorPattern.FindStringSubmatch(s); m != nil {
		major, ok1 := atoi(m[1])
		minor, ok2 := atoi(m[2])
		if ok1 && ok2 {
			return NewCommon(major, minor, 0, m[3] != ""), nil
		}
	}
	if m := microPattern.FindStringSubmatch(s); m != nil {
		major, ok1 := atoi(m[1])
		minor, ok2 := atoi(m[2])
		micro, ok3 := atoi(m[3])
		if ok1 && ok2 && ok3 {
			return NewCommon(major, minor, micro, m[4] != ""), nil
		}
	}
	return NewUnusual(s)
}

// MustParse parses a version or panics. Use only for constants/tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// atoi parses a numeric component. math.MaxInt is refused so that Next
// cannot overflow; such versions are kept as Unusual text.
func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil && n < math.MaxInt
}

// ParseError represents a version parsing error.
type ParseError struct {
	Version string
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bad version %q: %s", e.Version, e.Message)
}

// Kind returns the shape of v.
func (v Version) Kind() Kind { return v.kind }

// IsZero reports whether v is the zero (invalid) Version.
func (v Version) IsZero() bool { return v.kind == Invalid }

// Major returns the major component of a Number or Common version.
func (v Version) Major() int { return v.major }

// Minor returns the minor component of a Common version.
func (v Version) Minor() int { return v.minor }

// Micro returns the micro component of a Common version.
func (v Version) Micro() int { return v.micro }

// IsSnapshot reports whether v is a development version.
func (v Version) IsSnapshot() bool { return v.snapshot }

// IsRelease reports whether v is a final version.
func (v Version) IsRelease() bool { return !v.snapshot }

// ToRelease returns v without the snapshot flag.
func (v Version) ToRelease() Version {
	v.snapshot = false
	return v
}

// ToSnapshot returns v with the snapshot flag.
func (v Version) ToSnapshot() Version {
	v.snapshot = true
	return v
}

// Next returns the following version of the same shape, keeping the snapshot
// flag. Number bumps major, Common bumps micro, Unusual bumps its trailing
// digit run or gains a "-1" suffix.
func (v Version) Next() Version {
	switch v.kind {
	case Number:
		v.major++
	case Common:
		v.micro++
	case Unusual:
		v.text = nextText(v.text)
	}
	return v
}

func nextText(text string) string {
	i := len(text)
	for i > 0 && text[i-1] >= '0' && text[i-1] <= '9' {
		i--
	}
	if i == len(text) {
		return text + "-1"
	}
	n, _ := new(big.Int).SetString(text[i:], 10)
	return text[:i] + n.Add(n, big.NewInt(1)).String()
}

// PropertyRef reports whether v is a ${key} placeholder and returns the key.
func (v Version) PropertyRef() (string, bool) {
	if v.kind != Unusual || v.snapshot {
		return "", false
	}
	key, ok := strings.CutPrefix(v.text, "${")
	if !ok {
		return "", false
	}
	key, ok = strings.CutSuffix(key, "}")
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

// String renders v in its textual form.
func (v Version) String() string {
	var s string
	switch v.kind {
	case Number:
		s = strconv.Itoa(v.major)
	case Common:
		s = strconv.Itoa(v.major) + "." + strconv.Itoa(v.minor)
		if v.micro != 0 {
			s += "." + strconv.Itoa(v.micro)
		}
	case Unusual:
		s = v.text
	default:
		return ""
	}
	if v.snapshot {
		s += SnapshotSuffix
	}
	return s
}

// Compare returns -1, 0 or 1 ordering a against b.
//
// Number and Common versions compare numerically, treating a Number's missing
// minor and micro as zero; a snapshot sorts before the release it precedes.
// Whenever an Unusual version is involved the rendered text decides: equal
// release states compare lexically, otherwise the release forms are compared
// and a tie puts the snapshot first.
func Compare(a, b Version) int {
	if a.kind != Unusual && b.kind != Unusual {
		return cmp.Or(
			cmp.Compare(a.major, b.major),
			cmp.Compare(a.minor, b.minor),
			cmp.Compare(a.micro, b.micro),
			snapshotFirst(a.snapshot, b.snapshot),
		)
	}
	if a.snapshot == b.snapshot {
		return strings.Compare(a.String(), b.String())
	}
	return cmp.Or(
		strings.Compare(a.ToRelease().String(), b.ToRelease().String()),
		snapshotFirst(a.snapshot, b.snapshot),
	)
}

func snapshotFirst(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return -1
	default:
		return 1
	}
}

// Compare orders v against other.
func (v Version) Compare(other Version) int { return Compare(v, other) }

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool { return Compare(v, other) < 0 }

// Sort sorts versions in ascending order.
func Sort(versions []Version) {
	slices.SortFunc(versions, Compare)
}

// Max returns the highest version, or the zero Version for an empty slice.
func Max(versions []Version) Version {
	if len(versions) == 0 {
		return Version{}
	}
	return slices.MaxFunc(versions, Compare)
}
