// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeStandsStill(t *testing.T) {
	c := Fake(epoch)
	if got := c.Now(); !got.Equal(epoch) {
		t.Errorf("Now() = %v, want %v", got, epoch)
	}
	if got := Since(c, epoch); got != 0 {
		t.Errorf("Since = %v, want 0", got)
	}
}

func TestFakeAdvance(t *testing.T) {
	c := Fake(epoch)
	c.Advance(90 * time.Second)
	if got := Since(c, epoch); got != 90*time.Second {
		t.Errorf("Since after Advance = %v, want 90s", got)
	}

	c.Advance(-time.Hour)
	if got := Since(c, epoch); got != 90*time.Second {
		t.Errorf("negative Advance moved the clock: Since = %v", got)
	}
}

func TestFakeSet(t *testing.T) {
	c := Fake(epoch)
	later := epoch.Add(24 * time.Hour)
	c.Set(later)
	if got := c.Now(); !got.Equal(later) {
		t.Errorf("Now() after Set = %v, want %v", got, later)
	}

	c.Set(epoch)
	if got := c.Now(); !got.Equal(later) {
		t.Errorf("Set to an earlier time moved the clock back to %v", got)
	}
}

func TestFakeConcurrentAdvance(t *testing.T) {
	c := Fake(epoch)
	var group sync.WaitGroup
	for range 16 {
		group.Add(1)
		go func() {
			defer group.Done()
			c.Advance(time.Second)
			_ = c.Now()
		}()
	}
	group.Wait()
	if got := Since(c, epoch); got != 16*time.Second {
		t.Errorf("Since after concurrent advances = %v, want 16s", got)
	}
}

func TestRealMovesForward(t *testing.T) {
	c := Real()
	start := c.Now()
	if Since(c, start) < 0 {
		t.Error("real clock ran backwards")
	}
}
