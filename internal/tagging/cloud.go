package tagging

import (
	"math"
	"strings"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
)

// Distribution selects how usage counts map onto font sizes.
type Distribution int

const (
	Logarithmic Distribution = iota + 1
	Linear
)

// DefaultSteps is the number of font sizes used when none is given.
const DefaultSteps = 4

func (d Distribution) String() string {
	switch d {
	case Logarithmic:
		return "logarithmic"
	case Linear:
		return "linear"
	}
	return "unknown"
}

// ParseDistribution maps a configuration name onto a Distribution.
func ParseDistribution(name string) (Distribution, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "log", "logarithmic":
		return Logarithmic, nil
	case "linear":
		return Linear, nil
	}
	return 0, &UnknownDistributionError{Name: name}
}

// CalculateCloud returns a copy of tags with FontSize set to a bucket in
// 1..steps according to Count.
//
// The range between the smallest and largest count is cut into steps even
// thresholds. Each tag gets the first bucket whose threshold is not below
// its weight, where the weight is the count itself for Linear and
// ln(count) * max / ln(max) for Logarithmic, capped at max. Logarithmic
// clouds reject counts below 1.
func CalculateCloud(tags []model.TagCount, steps int, d Distribution) ([]model.TagCount, error) {
	if d != Logarithmic && d != Linear {
		return nil, &UnknownDistributionError{Name: d.String()}
	}
	if steps <= 0 {
		steps = DefaultSteps
	}
	out := make([]model.TagCount, len(tags))
	copy(out, tags)
	if len(out) == 0 {
		return out, nil
	}

	for _, t := range out {
		if d == Logarithmic && t.Count < 1 {
			return nil, errors.Wrapf(ErrNonPositiveCount, "%s has count %d", FormatTag(t.Tag), t.Count)
		}
	}
	minWeight, maxWeight := float64(out[0].Count), float64(out[0].Count)
	for _, t := range out[1:] {
		minWeight = math.Min(minWeight, float64(t.Count))
		maxWeight = math.Max(maxWeight, float64(t.Count))
	}
	thresholds := cloudThresholds(minWeight, maxWeight, steps)

	for i := range out {
		w := math.Min(tagWeight(float64(out[i].Count), maxWeight, d), maxWeight)
		out[i].FontSize = steps
		for b, threshold := range thresholds {
			if w <= threshold {
				out[i].FontSize = b + 1
				break
			}
		}
	}
	return out, nil
}

func cloudThresholds(minWeight, maxWeight float64, steps int) []float64 {
	delta := (maxWeight - minWeight) / float64(steps)
	thresholds := make([]float64, steps)
	for i := range thresholds {
		thresholds[i] = minWeight + float64(i+1)*delta
	}
	return thresholds
}

// tagWeight falls back to the count when max is 1 or less, where the
// logarithmic formula is undefined.
func tagWeight(count, maxWeight float64, d Distribution) float64 {
	if d == Linear || maxWeight <= 1 {
		return count
	}
	return math.Log(count) * maxWeight / math.Log(maxWeight)
}
