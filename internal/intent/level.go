// Package intent classifies posting recency into ordered buying-intent
// levels and aggregates per-company signals.
package intent

// Level is an ordered intent classification. Higher values take priority
// when aggregating.
type Level int

const (
	LevelNone Level = iota
	LevelLow
	LevelMiddle
	LevelHot
)

func (l Level) String() string {
	switch l {
	case LevelHot:
		return "hot"
	case LevelMiddle:
		return "middle"
	case LevelLow:
		return "low"
	default:
		return "none"
	}
}
