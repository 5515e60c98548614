package query

import (
	"regexp"
	"strings"
)

// Key identifies the index a group is evaluated against.
type Key uint8

const (
	KeyUCS Key = iota
	KeyJIS208
	KeyJIS212
	KeyJIS213
	KeyGrade
	KeyJLPT
	KeyStrokes
	KeyRadical
	KeyComponent
)

func (k Key) String() string {
	switch k {
	case KeyUCS:
		return "ucs"
	case KeyJIS208:
		return "jis208"
	case KeyJIS212:
		return "jis212"
	case KeyJIS213:
		return "jis213"
	case KeyGrade:
		return "grade"
	case KeyJLPT:
		return "jlpt"
	case KeyStrokes:
		return "strokes"
	case KeyRadical:
		return "radical"
	case KeyComponent:
		return "component"
	default:
		return "unknown"
	}
}

// Op is the comparison of a group.
type Op uint8

const (
	OpEqual Op = iota
	OpLess
	OpGreater
)

func (o Op) String() string {
	switch o {
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	default:
		return "="
	}
}

// Separator is the class of separator that terminated a group.
type Separator uint8

const (
	SepNone Separator = iota
	SepUnion
	SepIntersection
)

func (s Separator) String() string {
	switch s {
	case SepUnion:
		return "union"
	case SepIntersection:
		return "intersection"
	default:
		return "none"
	}
}

const (
	unionSeparators        = " ,;"
	intersectionSeparators = "&+"
	separators             = unionSeparators + intersectionSeparators
)

type keySpec struct {
	prefix string
	key    Key
	op     Op
}

var keySpecs = []keySpec{
	{"ucs=", KeyUCS, OpEqual},
	{"jis208=", KeyJIS208, OpEqual},
	{"jis212=", KeyJIS212, OpEqual},
	{"jis213=", KeyJIS213, OpEqual},
	{"grade=", KeyGrade, OpEqual},
	{"jlpt=", KeyJLPT, OpEqual},
	{"strokes=", KeyStrokes, OpEqual},
	{"strokes<", KeyStrokes, OpLess},
	{"strokes>", KeyStrokes, OpGreater},
	{"radical=", KeyRadical, OpEqual},
	{"component=", KeyComponent, OpEqual},
}

// keyedPattern matches a whole input made of keyed groups, allowing stray
// separators at either end.
var keyedPattern = func() *regexp.Regexp {
	prefixes := make([]string, 0, len(keySpecs))
	for _, ks := range keySpecs {
		prefixes = append(prefixes, regexp.QuoteMeta(ks.prefix))
	}
	sep := "[" + regexp.QuoteMeta(separators) + "]"
	value := "[^" + regexp.QuoteMeta(separators) + "]*"
	group := "(?:" + strings.Join(prefixes, "|") + ")" + value
	return regexp.MustCompile("^" + sep + "*(?:" + group + "(?:" + sep + "+" + group + ")*)?" + sep + "*$")
}()

// Group is one keyed lookup of a query.
type Group struct {
	Key   Key
	Op    Op
	Value string
	// Next is the class of the separator run following the group.
	Next Separator
}

func (g Group) String() string {
	return g.Key.String() + g.Op.String() + g.Value
}

// IsKeyed reports whether input is interpreted as keyed groups.
func IsKeyed(input string) bool {
	return keyedPattern.MatchString(strings.TrimSpace(input))
}

type parseState uint8

const (
	stateGroupStart parseState = iota
	stateEnd
)

// Parse splits input into keyed groups. It reports false when input is not a
// keyed query; such input is looked up character by character.
func Parse(input string) ([]Group, bool) {
	input = strings.TrimSpace(input)
	if !keyedPattern.MatchString(input) {
		return nil, false
	}

	var groups []Group
	rest := strings.TrimLeft(input, separators)
	state := stateGroupStart
	for state != stateEnd {
		if rest == "" {
			state = stateEnd
			continue
		}

		g, tail, ok := parseGroup(rest)
		if !ok {
			state = stateEnd
			continue
		}
		trimmed := strings.TrimLeft(tail, separators)
		g.Next = classify(tail[:len(tail)-len(trimmed)])
		groups = append(groups, g)
		rest = trimmed
	}
	return groups, true
}

func parseGroup(s string) (Group, string, bool) {
	for _, ks := range keySpecs {
		if !strings.HasPrefix(s, ks.prefix) {
			continue
		}
		s = s[len(ks.prefix):]
		end := strings.IndexAny(s, separators)
		if end < 0 {
			end = len(s)
		}
		return Group{Key: ks.key, Op: ks.op, Value: s[:end]}, s[end:], true
	}
	return Group{}, s, false
}

// classify collapses a separator run. Any intersection separator in the run
// makes it an intersection.
func classify(run string) Separator {
	switch {
	case run == "":
		return SepNone
	case strings.ContainsAny(run, intersectionSeparators):
		return SepIntersection
	default:
		return SepUnion
	}
}
