package mastery

import "fmt"

// Level is an ordinal mastery label.
type Level int

const (
	Beginner Level = iota
	Intermediate
	Advanced
	Expert
)

func (l Level) String() string {
	switch l {
	case Beginner:
		return "Beginner"
	case Intermediate:
		return "Intermediate"
	case Advanced:
		return "Advanced"
	case Expert:
		return "Expert"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// CutPoints are the lower accuracy bounds of each level above Beginner.
// They mirror the dashboard rank bands.
type CutPoints struct {
	Intermediate float64 `yaml:"intermediate"`
	Advanced     float64 `yaml:"advanced"`
	Expert       float64 `yaml:"expert"`
}

// DefaultCutPoints: below 0.60 Beginner, below 0.75 Intermediate,
// below 0.90 Advanced, otherwise Expert.
var DefaultCutPoints = CutPoints{Intermediate: 0.60, Advanced: 0.75, Expert: 0.90}

// Validate checks the cut points are increasing and inside [0,1].
func (c CutPoints) Validate() error {
	if c.Intermediate < 0 || c.Expert > 1 {
		return fmt.Errorf("mastery cut points must lie in [0,1], got %+v", c)
	}
	if !(c.Intermediate < c.Advanced && c.Advanced < c.Expert) {
		return fmt.Errorf("mastery cut points must be strictly increasing, got %+v", c)
	}
	return nil
}

// LevelFor maps an accuracy in [0,1] to a level.
func (c CutPoints) LevelFor(accuracy float64) Level {
	switch {
	case accuracy < c.Intermediate:
		return Beginner
	case accuracy < c.Advanced:
		return Intermediate
	case accuracy < c.Expert:
		return Advanced
	default:
		return Expert
	}
}

// Rank labels shown on the summary dashboard.
const (
	RankNoData   = "No Data"
	RankBronze   = "Bronze"
	RankSilver   = "Silver"
	RankGold     = "Gold"
	RankPlatinum = "Platinum"
)

// Rank returns the dashboard rank for an average score in [0,1].
func Rank(avg float64, attempts int) string {
	if attempts == 0 {
		return RankNoData
	}
	switch DefaultCutPoints.LevelFor(avg) {
	case Expert:
		return RankPlatinum
	case Advanced:
		return RankGold
	case Intermediate:
		return RankSilver
	default:
		return RankBronze
	}
}
