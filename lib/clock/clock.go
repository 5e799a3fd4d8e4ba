// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock reads the current time. Reduction batches time each building
// with it and the document cache stamps entries with it.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Real returns the wall clock. It is the default wherever a Clock
// field is left nil.
func Real() Clock { return wallClock{} }

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Since returns the time elapsed on c since start.
func Since(c Clock, start time.Time) time.Duration {
	return c.Now().Sub(start)
}
