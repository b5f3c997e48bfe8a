package application

import (
	"context"
	"sync"
)

// batchSize caps the number of concurrently in-flight GitHub calls. Groups
// of this size run in parallel; a group fully settles before the next one
// starts, bounding pressure on the API's secondary rate limits.
const batchSize = 5

// forEachBatch partitions items into consecutive groups of size, preserving
// order, and invokes fn on every item of a group concurrently. It waits for
// the whole group to settle, then returns the group's first error (by item
// order) or moves on to the next group.
//
// This is a pure sequencing primitive: it does not retry and does not
// inspect failures. Operations that must not abort their siblings swallow
// their own errors.
func forEachBatch[T any](ctx context.Context, items []T, size int, fn func(ctx context.Context, item T) error) error {
	if size < 1 {
		size = 1
	}

	for start := 0; start < len(items); start += size {
		group := items[start:min(start+size, len(items))]
		errs := make([]error, len(group))

		var wg sync.WaitGroup
		for i, item := range group {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = fn(ctx, item)
			}()
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				return err
			}
		}
	}

	return nil
}
