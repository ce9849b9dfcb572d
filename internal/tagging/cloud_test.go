package tagging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/tagkit/internal/errors"
	"github.com/rcliao/tagkit/internal/model"
)

func usage(counts map[string]int, order ...string) []model.TagCount {
	out := make([]model.TagCount, 0, len(order))
	for _, s := range order {
		tag, err := GetTagParts(s, ParseOptions{})
		if err != nil {
			panic(err)
		}
		out = append(out, model.TagCount{Tag: tag, Count: counts[s]})
	}
	return out
}

func fontSizes(tags []model.TagCount) map[string]int {
	sizes := make(map[string]int, len(tags))
	for _, t := range tags {
		sizes[FormatTag(t.Tag)] = t.FontSize
	}
	return sizes
}

var fixtureCounts = map[string]int{
	"bar": 4, "ter": 3, "foo": 2, "spam:egg=ham": 2, "baz": 1, "spam:foo": 1,
}

var fixtureOrder = []string{"bar", "baz", "foo", "spam:egg=ham", "spam:foo", "ter"}

func TestCalculateCloud(t *testing.T) {
	tests := []struct {
		name  string
		steps int
		dist  Distribution
		want  map[string]int
	}{
		{
			"logarithmic default steps", 0, Logarithmic,
			map[string]int{"bar": 4, "ter": 3, "foo": 2, "spam:egg=ham": 2, "baz": 1, "spam:foo": 1},
		},
		{
			"logarithmic ten steps", 10, Logarithmic,
			map[string]int{"bar": 10, "ter": 8, "foo": 4, "spam:egg=ham": 4, "baz": 1, "spam:foo": 1},
		},
		{
			"linear ten steps", 10, Linear,
			map[string]int{"bar": 10, "ter": 7, "foo": 4, "spam:egg=ham": 4, "baz": 1, "spam:foo": 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := usage(fixtureCounts, fixtureOrder...)
			got, err := CalculateCloud(in, tt.steps, tt.dist)
			require.NoError(t, err)
			assert.Equal(t, tt.want, fontSizes(got))
			for _, tc := range in {
				assert.Zero(t, tc.FontSize, "input is not modified")
			}
		})
	}
}

func TestCalculateCloudMinCount(t *testing.T) {
	in := usage(fixtureCounts, "bar", "ter", "foo", "spam:egg=ham")
	got, err := CalculateCloud(in, 4, Logarithmic)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"bar": 4, "ter": 3, "foo": 1, "spam:egg=ham": 1}, fontSizes(got))
}

func TestCalculateCloudEdges(t *testing.T) {
	got, err := CalculateCloud(nil, 4, Logarithmic)
	require.NoError(t, err)
	assert.Empty(t, got)

	single := []model.TagCount{{Tag: model.Tag{Name: "only"}, Count: 1}}
	got, err = CalculateCloud(single, 4, Logarithmic)
	require.NoError(t, err)
	assert.Equal(t, 1, got[0].FontSize)

	same := []model.TagCount{{Tag: model.Tag{Name: "a"}, Count: 7}, {Tag: model.Tag{Name: "b"}, Count: 7}}
	got, err = CalculateCloud(same, 4, Linear)
	require.NoError(t, err)
	assert.Equal(t, 1, got[0].FontSize)
	assert.Equal(t, 1, got[1].FontSize)

	skewed := usage(map[string]int{"a": 2, "b": 1, "c": 1, "d": 1, "e": 1}, "a", "b", "c", "d", "e")
	got, err = CalculateCloud(skewed, 4, Logarithmic)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 4, "b": 1, "c": 1, "d": 1, "e": 1}, fontSizes(got))

	for _, tc := range got {
		assert.GreaterOrEqual(t, tc.FontSize, 1)
		assert.LessOrEqual(t, tc.FontSize, 4)
	}
}

func TestCalculateCloudInvalidDistribution(t *testing.T) {
	_, err := CalculateCloud(usage(fixtureCounts, "bar"), 5, Distribution(7))
	var distErr *UnknownDistributionError
	require.True(t, errors.As(err, &distErr))
	assert.Equal(t, "invalid distribution algorithm specified: unknown", err.Error())
}

func TestParseDistribution(t *testing.T) {
	d, err := ParseDistribution("log")
	require.NoError(t, err)
	assert.Equal(t, Logarithmic, d)

	d, err = ParseDistribution(" Linear ")
	require.NoError(t, err)
	assert.Equal(t, Linear, d)
	assert.Equal(t, "linear", d.String())

	_, err = ParseDistribution("cheese")
	assert.EqualError(t, err, "invalid distribution algorithm specified: cheese")
}

// Equal counts put every tag in the first bucket, including counts whose
// logarithmic weight rounds just above the maximum.
func TestCalculateCloudEqualCounts(t *testing.T) {
	for _, dist := range []Distribution{Logarithmic, Linear} {
		for _, count := range []int{2, 5, 6, 7, 22, 26, 27, 1000} {
			in := []model.TagCount{{Tag: model.Tag{Name: "a"}, Count: count}, {Tag: model.Tag{Name: "b"}, Count: count}}
			got, err := CalculateCloud(in, 4, dist)
			require.NoError(t, err)
			assert.Equal(t, map[string]int{"a": 1, "b": 1}, fontSizes(got), "%s count %d", dist, count)
		}
	}
}

func TestCalculateCloudZeroCount(t *testing.T) {
	in := usage(map[string]int{"bar": 3, "baz": 0}, "bar", "baz")
	_, err := CalculateCloud(in, 4, Logarithmic)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonPositiveCount))
	assert.Contains(t, err.Error(), "baz has count 0")

	got, err := CalculateCloud(in, 4, Linear)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"bar": 4, "baz": 1}, fontSizes(got))
}
