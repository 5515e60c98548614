package store

import "fmt"

// LegacySpace names one of the legacy character-set code spaces.
type LegacySpace uint8

const (
	JIS208 LegacySpace = iota
	JIS212
	JIS213

	numLegacySpaces
)

// LegacySpaces lists the legacy code spaces in persistence order.
var LegacySpaces = []LegacySpace{JIS208, JIS212, JIS213}

func (s LegacySpace) String() string {
	switch s {
	case JIS208:
		return "jis208"
	case JIS212:
		return "jis212"
	case JIS213:
		return "jis213"
	default:
		return fmt.Sprintf("LegacySpace(%d)", uint8(s))
	}
}

func (s LegacySpace) valid() bool { return s < numLegacySpaces }

// Index names one of the numeric secondary indices.
type Index uint8

const (
	ByStrokes Index = iota
	ByRadical
	ByGrade
	ByJLPT
	ByComponent

	numIndices
)

// Indices lists the numeric indices in persistence order.
var Indices = []Index{ByStrokes, ByRadical, ByGrade, ByJLPT, ByComponent}

func (i Index) String() string {
	switch i {
	case ByStrokes:
		return "strokes"
	case ByRadical:
		return "radical"
	case ByGrade:
		return "grade"
	case ByJLPT:
		return "jlpt"
	case ByComponent:
		return "component"
	default:
		return fmt.Sprintf("Index(%d)", uint8(i))
	}
}

func (i Index) valid() bool { return i < numIndices }
