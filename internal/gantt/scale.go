package gantt

import (
	"math"
	"strconv"

	"github.com/ihincks/gantt/internal/schedule"
)

// Tick is a labeled position on the x axis.
type Tick struct {
	Value float64
	Label string
}

// Scale maps task endpoints to x-axis positions. A schedule whose
// endpoints are all numeric gets a linear scale; as soon as one endpoint
// is a string token, every endpoint is treated as a category and placed
// at its ordinal in order of first appearance.
type Scale struct {
	Min, Max    float64
	Categorical bool

	// categorical state
	ordinals map[string]float64
	tokens   []string
}

// buildScale inspects every endpoint of s and constructs the scale.
func buildScale(s *schedule.Schedule) *Scale {
	numeric := true

	for _, sec := range s.Sections {
		for _, task := range sec.Tasks {
			if !task.Start.IsNumber() || !task.Finish.IsNumber() {
				numeric = false
			}
		}
	}

	if numeric {
		return buildLinearScale(s)
	}

	return buildCategoricalScale(s)
}

func buildLinearScale(s *schedule.Schedule) *Scale {
	sc := &Scale{Min: math.Inf(1), Max: math.Inf(-1)}

	for _, sec := range s.Sections {
		for _, task := range sec.Tasks {
			sc.Min = math.Min(sc.Min, task.Start.Float())
			sc.Max = math.Max(sc.Max, math.Max(task.Start.Float(), task.Finish.Float()))
		}
	}

	if math.IsInf(sc.Min, 1) {
		sc.Min, sc.Max = 0, 1
	}

	// A single instant still needs a non-degenerate axis.
	if sc.Max == sc.Min {
		sc.Max = sc.Min + 1
	}

	return sc
}

func buildCategoricalScale(s *schedule.Schedule) *Scale {
	sc := &Scale{Categorical: true, ordinals: make(map[string]float64)}

	add := func(v schedule.Value) {
		tok := v.String()
		if _, ok := sc.ordinals[tok]; !ok {
			sc.ordinals[tok] = float64(len(sc.tokens))
			sc.tokens = append(sc.tokens, tok)
		}
	}

	for _, sec := range s.Sections {
		for _, task := range sec.Tasks {
			add(task.Start)
			add(task.Finish)
		}
	}

	// Half-step padding keeps the outermost categories off the frame.
	sc.Min = -0.5
	sc.Max = float64(len(sc.tokens)) - 0.5

	if len(sc.tokens) == 0 {
		sc.Max = 0.5
	}

	return sc
}

// Position returns the axis position of v.
func (sc *Scale) Position(v schedule.Value) float64 {
	if sc.Categorical {
		return sc.ordinals[v.String()]
	}

	return v.Float()
}

// Ticks returns the major ticks. For linear scales interval > 0 fixes
// the tick spacing, otherwise a step is chosen so that roughly eight
// ticks span the axis. Categorical scales place one tick per token.
func (sc *Scale) Ticks(interval float64) []Tick {
	if sc.Categorical {
		ticks := make([]Tick, 0, len(sc.tokens))
		for i, tok := range sc.tokens {
			ticks = append(ticks, Tick{Value: float64(i), Label: tok})
		}

		return ticks
	}

	if interval <= 0 {
		interval = niceStep(sc.Max - sc.Min)
	}

	var ticks []Tick
	for v := math.Floor(sc.Min/interval) * interval; v <= sc.Max+interval/2; v += interval {
		ticks = append(ticks, Tick{
			Value: v,
			Label: strconv.FormatFloat(v, 'g', -1, 64),
		})
	}

	return ticks
}

// niceStep picks a 1/2/5*10^k step giving on the order of eight ticks.
func niceStep(span float64) float64 {
	if span <= 0 {
		return 1
	}

	raw := span / 8
	mag := math.Pow(10, math.Floor(math.Log10(raw)))

	switch {
	case raw/mag < 1.5:
		return mag
	case raw/mag < 3.5:
		return 2 * mag
	case raw/mag < 7.5:
		return 5 * mag
	default:
		return 10 * mag
	}
}
