package intent

import (
	"math/rand"
	"testing"
	"time"
)

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(testNow, nil, LevelLow)
	if got.BestLevel != LevelNone || got.Count != 0 || got.LatestDate != nil {
		t.Fatalf("empty aggregate = %+v, want none/0/nil", got)
	}
}

func TestAggregateScenario(t *testing.T) {
	// A posting from today, one from 10 days ago, and one with no date
	// under the low fallback policy.
	today := testNow
	old := daysAgo(10)
	postings := []*time.Time{&today, &old, nil}

	got := Aggregate(testNow, postings, LevelLow)
	if got.BestLevel != LevelHot {
		t.Fatalf("BestLevel = %v, want hot", got.BestLevel)
	}
	if got.Count != 3 {
		t.Fatalf("Count = %d, want 3", got.Count)
	}
	if got.LatestDate == nil || !got.LatestDate.Equal(today) {
		t.Fatalf("LatestDate = %v, want today", got.LatestDate)
	}
}

func TestAggregateAllUnknownDates(t *testing.T) {
	got := Aggregate(testNow, []*time.Time{nil, nil}, LevelLow)
	if got.BestLevel != LevelLow {
		t.Fatalf("BestLevel = %v, want fallback low", got.BestLevel)
	}
	if got.LatestDate != nil {
		t.Fatalf("LatestDate = %v, want nil", got.LatestDate)
	}
	if got.Count != 2 {
		t.Fatalf("Count = %d, want 2", got.Count)
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	a := daysAgo(2)
	b := daysAgo(20)
	c := daysAgo(60)
	d := daysAgo(200)
	postings := []*time.Time{&a, &b, nil, &c, &d}

	want := Aggregate(testNow, postings, LevelLow)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]*time.Time, len(postings))
		copy(shuffled, postings)
		rng.Shuffle(len(shuffled), func(x, y int) {
			shuffled[x], shuffled[y] = shuffled[y], shuffled[x]
		})

		got := Aggregate(testNow, shuffled, LevelLow)
		if got.BestLevel != want.BestLevel || got.Count != want.Count {
			t.Fatalf("permuted aggregate differs: %+v vs %+v", got, want)
		}
		if (got.LatestDate == nil) != (want.LatestDate == nil) {
			t.Fatalf("permuted LatestDate nil-ness differs")
		}
		if got.LatestDate != nil && !got.LatestDate.Equal(*want.LatestDate) {
			t.Fatalf("permuted LatestDate differs: %v vs %v", got.LatestDate, want.LatestDate)
		}
	}
}
