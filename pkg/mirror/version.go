package mirror

import "strings"

// qualifierRank orders the well-known qualifiers. The empty qualifier is a
// final release; anything unknown sorts after "sp", lexically.
var qualifierRank = map[string]int{
	"alpha":     0,
	"a":         0,
	"beta":      1,
	"b":         1,
	"milestone": 2,
	"m":         2,
	"rc":        3,
	"cr":        3,
	"snapshot":  4,
	"":          5,
	"ga":        5,
	"final":     5,
	"release":   5,
	"sp":        6,
}

const unknownQualifier = 7

// compareVersions orders versions the way Maven's ComparableVersion does
// for the common cases. Segments are split on '.', '-', '_' and at
// digit/letter boundaries. Numeric segments compare numerically and sort
// after qualifiers. A missing segment counts as 0 against a number and as
// a final release against a qualifier, so "1.0-rc1" < "1.0" = "1.0.0" <
// "1.0-sp1" < "1.0.1".
func compareVersions(a, b string) int {
	as, bs := splitVersion(a), splitVersion(b)
	for i := 0; i < len(as) || i < len(bs); i++ {
		var x, y string
		if i < len(as) {
			x = as[i]
		}
		if i < len(bs) {
			y = bs[i]
		}
		if c := compareSegment(x, y); c != 0 {
			return c
		}
	}
	return 0
}

func splitVersion(v string) []string {
	var segs []string
	for _, field := range strings.FieldsFunc(strings.ToLower(v), func(r rune) bool {
		return r == '.' || r == '-' || r == '_'
	}) {
		start := 0
		for i := 1; i < len(field); i++ {
			if isDigit(field[i]) != isDigit(field[i-1]) {
				segs = append(segs, field[start:i])
				start = i
			}
		}
		segs = append(segs, field[start:])
	}
	return segs
}

// compareSegment compares two segments; "" stands for a missing one.
func compareSegment(a, b string) int {
	an, bn := numeric(a), numeric(b)
	switch {
	case an && bn:
		return compareNumbers(a, b)
	case an && b == "":
		return compareNumbers(a, "0")
	case bn && a == "":
		return compareNumbers("0", b)
	case an:
		return 1
	case bn:
		return -1
	}

	ar, br := rank(a), rank(b)
	if ar != br {
		return ar - br
	}
	if ar == unknownQualifier {
		return strings.Compare(a, b)
	}
	return 0
}

func rank(q string) int {
	if r, ok := qualifierRank[q]; ok {
		return r
	}
	return unknownQualifier
}

// compareNumbers compares digit strings of any length.
func compareNumbers(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	return strings.Compare(a, b)
}

func numeric(s string) bool {
	for i := range len(s) {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSnapshot(v string) bool {
	return strings.HasSuffix(strings.ToUpper(v), "SNAPSHOT")
}
