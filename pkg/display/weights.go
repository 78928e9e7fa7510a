// Package display turns true counts into bounded, noisy weights used only
// to size words in the rendered cloud.
package display

import (
	"math/rand/v2"

	"github.com/dtnitsch/headline-cloud/pkg/mapreduce"
)

const (
	MinWeight = 1
	MaxWeight = 100
	// Jitter is the largest random offset added to a normalized weight.
	Jitter = 20
)

// Weights maps each selected keyword to a weight in [MinWeight, MaxWeight].
//
// When every count is equal each word gets an independent uniform weight.
// Otherwise counts are scaled linearly onto [1,100] and moved by a uniform
// offset in [-Jitter, +Jitter], clamped to the range. rng may be nil, in
// which case the global source is used.
func Weights(top []mapreduce.KeywordCount, rng *rand.Rand) map[string]int {
	if len(top) == 0 {
		return map[string]int{}
	}

	intn := rand.IntN
	if rng != nil {
		intn = rng.IntN
	}
	between := func(lo, hi int) int {
		return lo + intn(hi-lo+1)
	}

	maxCount, minCount := top[0].Count, top[0].Count
	for _, kc := range top[1:] {
		maxCount = max(maxCount, kc.Count)
		minCount = min(minCount, kc.Count)
	}

	weights := make(map[string]int, len(top))
	if maxCount == minCount {
		for _, kc := range top {
			weights[kc.Word] = between(MinWeight, MaxWeight)
		}
		return weights
	}

	span := float64(maxCount - minCount)
	for _, kc := range top {
		normalized := MinWeight + int(float64(kc.Count-minCount)/span*float64(MaxWeight-MinWeight))
		lo := max(MinWeight, normalized-Jitter)
		hi := min(MaxWeight, normalized+Jitter)
		weights[kc.Word] = between(lo, hi)
	}
	return weights
}
