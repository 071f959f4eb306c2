package services

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestSample(t *testing.T) {
	candidates := []int{1, 2, 3, 4, 5, 6, 7, 8}

	tests := []struct {
		name    string
		count   int
		wantLen int
		wantErr error
	}{
		{name: "negative count", count: -1, wantErr: ErrInvalidArgument},
		{name: "zero count", count: 0, wantLen: 0},
		{name: "subset", count: 3, wantLen: 3},
		{name: "one short of pool", count: 7, wantLen: 7},
		{name: "exactly pool size", count: 8, wantLen: 8},
		{name: "larger than pool", count: 20, wantLen: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := NewSeededRandProvider(7)()
			got, err := Sample(rng, candidates, tt.count)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Sample() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Sample() error = %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("Sample() len = %d, want %d", len(got), tt.wantLen)
			}

			seen := map[int]bool{}
			for _, v := range got {
				if seen[v] {
					t.Errorf("Sample() returned %d twice", v)
				}
				seen[v] = true
				if !slices.Contains(candidates, v) {
					t.Errorf("Sample() returned %d which is not a candidate", v)
				}
			}
		})
	}
}

func TestSample_SmallPoolKeepsOrder(t *testing.T) {
	candidates := []string{"c", "a", "b"}

	got, err := Sample(NewSeededRandProvider(1)(), candidates, 3)
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if !slices.Equal(got, candidates) {
		t.Errorf("Sample() = %v, want %v unchanged", got, candidates)
	}
}

func TestSample_DoesNotModifyCandidates(t *testing.T) {
	candidates := []int{1, 2, 3, 4, 5, 6}
	original := slices.Clone(candidates)

	if _, err := Sample(NewSeededRandProvider(3)(), candidates, 2); err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if !slices.Equal(candidates, original) {
		t.Errorf("candidates changed to %v", candidates)
	}
}

func TestSample_SeededIsDeterministic(t *testing.T) {
	candidates := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	a, _ := Sample(NewSeededRandProvider(99)(), candidates, 4)
	b, _ := Sample(NewSeededRandProvider(99)(), candidates, 4)
	if !slices.Equal(a, b) {
		t.Errorf("same seed gave %v and %v", a, b)
	}
}

func TestSample_DistributionIsFair(t *testing.T) {
	const (
		n      = 10
		count  = 3
		trials = 20000
	)
	candidates := make([]int, n)
	for i := range candidates {
		candidates[i] = i
	}

	rng := NewSeededRandProvider(2024)()
	hits := make([]int, n)
	for i := 0; i < trials; i++ {
		got, err := Sample(rng, candidates, count)
		if err != nil {
			t.Fatalf("Sample() error = %v", err)
		}
		for _, v := range got {
			hits[v]++
		}
	}

	expected := float64(trials*count) / n
	for v, h := range hits {
		if diff := float64(h) - expected; diff > expected*0.1 || diff < -expected*0.1 {
			t.Errorf("element %d drawn %d times, expected about %.0f", v, h, expected)
		}
	}
}

func TestEntropyRandProvider_ConcurrentUse(t *testing.T) {
	provider := NewEntropyRandProvider()
	candidates := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Sample(provider(), candidates, 5)
			if err != nil || len(got) != 5 {
				t.Errorf("Sample() = %v, %v", got, err)
			}
		}()
	}
	wg.Wait()
}
