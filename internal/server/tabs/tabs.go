// Package tabs classifies tasks into the three display buckets (today, past,
// future) relative to a reference date, and partitions listings into ongoing
// and complete sublists. Everything here is pure.
package tabs

import (
	"time"

	"github.com/shinxity/daylist/internal/server/models"
)

type Bucket string

const (
	BucketToday  Bucket = "today"
	BucketPast   Bucket = "past"
	BucketFuture Bucket = "future"
)

// ParseBucket maps a raw tab parameter to a Bucket. Unrecognized values
// (including the empty string) default to today.
func ParseBucket(s string) Bucket {
	switch Bucket(s) {
	case BucketPast:
		return BucketPast
	case BucketFuture:
		return BucketFuture
	default:
		return BucketToday
	}
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Classify maps a due date to exactly one bucket relative to today. Both
// arguments are compared as calendar dates; time components are ignored.
func Classify(dueDate, today time.Time) Bucket {
	due, ref := Day(dueDate), Day(today)
	switch {
	case due.Equal(ref):
		return BucketToday
	case due.Before(ref):
		return BucketPast
	default:
		return BucketFuture
	}
}

// Partition splits a listing into ongoing (not completed) and complete
// sublists, preserving the input order within each.
func Partition(list []*models.Task) (ongoing, complete []*models.Task) {
	for _, t := range list {
		if t.Completed {
			complete = append(complete, t)
		} else {
			ongoing = append(ongoing, t)
		}
	}
	return ongoing, complete
}
