package dataset

import (
	"fmt"
	"math/rand"

	"github.com/yungbote/diabetect-backend/internal/types"
)

// Split holds the train/test partition of the dataset as feature matrices
// plus outcome labels, in canonical feature order.
type Split struct {
	XTrain [][]float64
	YTrain []int
	XTest  [][]float64
	YTest  []int
}

// StratifiedSplit partitions records into train/test keeping the outcome
// proportions of the full set in both partitions. The same seed on the same
// data always produces the same partition. Every class must contribute at
// least one row to each side; otherwise stratification is impossible and
// the split fails before any training happens.
func StratifiedSplit(records []types.HealthRecord, testFraction float64, seed int64) (*Split, error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, fmt.Errorf("test fraction must be in (0,1), got %v", testFraction)
	}

	byClass := map[int][]int{}
	for i, r := range records {
		byClass[r.Outcome] = append(byClass[r.Outcome], i)
	}
	for label, idx := range byClass {
		if len(idx) < 2 {
			return nil, fmt.Errorf("cannot stratify: class %d has only %d row(s)", label, len(idx))
		}
	}

	rng := rand.New(rand.NewSource(seed))
	s := &Split{}

	// Iterate classes in a fixed order so the partition is deterministic.
	for _, label := range []int{0, 1} {
		idx, ok := byClass[label]
		if !ok {
			continue
		}
		shuffled := append([]int(nil), idx...)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		nTest := int(float64(len(shuffled))*testFraction + 0.5)
		if nTest < 1 {
			nTest = 1
		}
		if nTest >= len(shuffled) {
			nTest = len(shuffled) - 1
		}

		for i, ri := range shuffled {
			r := records[ri]
			if i < nTest {
				s.XTest = append(s.XTest, r.Features())
				s.YTest = append(s.YTest, r.Outcome)
			} else {
				s.XTrain = append(s.XTrain, r.Features())
				s.YTrain = append(s.YTrain, r.Outcome)
			}
		}
	}

	return s, nil
}
