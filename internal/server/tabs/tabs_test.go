package tabs

import (
	"testing"
	"time"

	"github.com/shinxity/daylist/internal/server/models"
	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseBucket(t *testing.T) {
	assert.Equal(t, BucketToday, ParseBucket("today"))
	assert.Equal(t, BucketPast, ParseBucket("past"))
	assert.Equal(t, BucketFuture, ParseBucket("future"))

	// unrecognized values default to today
	assert.Equal(t, BucketToday, ParseBucket(""))
	assert.Equal(t, BucketToday, ParseBucket("yesterday"))
	assert.Equal(t, BucketToday, ParseBucket("TODAY"))
}

func TestClassify(t *testing.T) {
	today := date(2025, time.March, 15)

	assert.Equal(t, BucketToday, Classify(date(2025, time.March, 15), today))
	assert.Equal(t, BucketPast, Classify(date(2025, time.March, 14), today))
	assert.Equal(t, BucketPast, Classify(date(2024, time.December, 31), today))
	assert.Equal(t, BucketFuture, Classify(date(2025, time.March, 16), today))
	assert.Equal(t, BucketFuture, Classify(date(2026, time.January, 1), today))
}

func TestClassify_IgnoresTimeComponent(t *testing.T) {
	today := time.Date(2025, time.March, 15, 23, 59, 0, 0, time.UTC)
	due := time.Date(2025, time.March, 15, 0, 1, 0, 0, time.UTC)

	assert.Equal(t, BucketToday, Classify(due, today))
}

func TestClassify_ExactlyOneBucket(t *testing.T) {
	today := date(2025, time.June, 1)

	for d := -30; d <= 30; d++ {
		due := today.AddDate(0, 0, d)
		matches := 0
		for _, b := range []Bucket{BucketToday, BucketPast, BucketFuture} {
			if Classify(due, today) == b {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "due date %s must land in exactly one bucket", due)
	}
}

func TestPartition_PreservesOrder(t *testing.T) {
	list := []*models.Task{
		{ID: "a", Completed: false},
		{ID: "b", Completed: true},
		{ID: "c", Completed: false},
		{ID: "d", Completed: true},
		{ID: "e", Completed: false},
	}

	ongoing, complete := Partition(list)

	ids := func(tasks []*models.Task) []string {
		var out []string
		for _, t := range tasks {
			out = append(out, t.ID)
		}
		return out
	}

	assert.Equal(t, []string{"a", "c", "e"}, ids(ongoing))
	assert.Equal(t, []string{"b", "d"}, ids(complete))
}

func TestPartition_Empty(t *testing.T) {
	ongoing, complete := Partition(nil)
	assert.Empty(t, ongoing)
	assert.Empty(t, complete)
}
