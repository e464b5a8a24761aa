// Package poule implements poule sizing, separation validation, and
// snake-seeded athlete assignment.
package poule

import "fmt"

// Default optimal-policy bounds. Seven is the FIE-preferred poule size,
// five the smallest a round robin stays meaningful at.
const (
	DefaultMinSize = 5
	DefaultMaxSize = 7
)

// SizeMethod selects how poule sizes are derived from the athlete count.
type SizeMethod string

// SizeMethod values. The empty method means SizeOptimal.
const (
	SizeFixed    SizeMethod = "fixed"
	SizeVariable SizeMethod = "variable"
	SizeOptimal  SizeMethod = "optimal"
)

// SizePolicy describes how to partition a field of athletes into poules.
type SizePolicy struct {
	Method SizeMethod `json:"method"`

	// FixedSize is the target size for the fixed method.
	FixedSize int `json:"fixed_size,omitempty"`

	// Sizes is the caller-supplied partition for the variable method.
	// The caller's list is authoritative; a sum mismatch against the
	// athlete count is surfaced as a validation warning, not an error.
	Sizes []int `json:"sizes,omitempty"`

	// MinSize and MaxSize bound the optimal method. Zero means the
	// package default.
	MinSize int `json:"min_size,omitempty"`
	MaxSize int `json:"max_size,omitempty"`
}

// ComputeSizes derives the ordered poule sizes for totalAthletes under the
// given policy. For the fixed and optimal methods the returned sizes always
// sum to totalAthletes.
func ComputeSizes(policy SizePolicy, totalAthletes int) ([]int, error) {
	if totalAthletes < 0 {
		return nil, fmt.Errorf("%w: negative athlete count %d", ErrInvalidPolicy, totalAthletes)
	}

	switch policy.Method {
	case SizeFixed:
		return fixedSizes(policy.FixedSize, totalAthletes)
	case SizeVariable:
		sizes := make([]int, len(policy.Sizes))
		copy(sizes, policy.Sizes)
		return sizes, nil
	case SizeOptimal, "":
		return optimalSizes(policy, totalAthletes)
	default:
		return nil, fmt.Errorf("%w: unknown method %q", ErrInvalidPolicy, policy.Method)
	}
}

// fixedSizes fills poules of exactly size, truncating the last one to the
// remainder. The remainder may fall below any minimum; tolerating that is
// the caller's call.
func fixedSizes(size, total int) ([]int, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: fixed size must be positive, got %d", ErrInvalidPolicy, size)
	}
	if total == 0 {
		return []int{}, nil
	}

	count := total / size
	sizes := make([]int, 0, count+1)
	for range count {
		sizes = append(sizes, size)
	}
	if rem := total % size; rem > 0 {
		sizes = append(sizes, rem)
	}
	return sizes, nil
}

// optimalSizes greedily fills poules at maxSize and fixes up an undersized
// remainder by splitting the last full poule's allocation roughly in half
// with it.
func optimalSizes(policy SizePolicy, total int) ([]int, error) {
	minSize := policy.MinSize
	if minSize <= 0 {
		minSize = DefaultMinSize
	}
	maxSize := policy.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if minSize > maxSize {
		return nil, fmt.Errorf("%w: min size %d exceeds max size %d", ErrInvalidPolicy, minSize, maxSize)
	}

	if total == 0 {
		return []int{}, nil
	}
	if total < minSize {
		// A single undersized poule is unavoidable.
		return []int{total}, nil
	}

	sizes := make([]int, 0, total/maxSize+1)
	remaining := total
	for remaining >= maxSize {
		sizes = append(sizes, maxSize)
		remaining -= maxSize
	}

	switch {
	case remaining == 0:
	case remaining >= minSize:
		sizes = append(sizes, remaining)
	default:
		// Pool the shortfall with the previous poule's allocation and
		// split it in half so neither half drops further than necessary.
		pooled := sizes[len(sizes)-1] + remaining
		first := (pooled + 1) / 2
		sizes[len(sizes)-1] = first
		sizes = append(sizes, pooled-first)
	}

	return sizes, nil
}
