// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import (
	"strings"
	"sync"
	"testing"
)

// ============================================================
// Statistics tests
// ============================================================

func TestStatistics_RecordExchange(t *testing.T) {
	s := NewStatistics()

	s.RecordExchange(DirectionGet, nil)
	s.RecordExchange(DirectionSet, nil)
	s.RecordExchange(DirectionGet, newErrorf(ErrChecksum, "expected 0x00, got 0x01"))
	s.RecordExchange(DirectionGet, newErrorf(ErrTimeout, "no response"))
	s.RecordExchange(DirectionGet, deviceNAKError(nakUnknownRegister))
	s.RecordRetry()

	c := s.Snapshot()
	if c.Exchanges != 5 {
		t.Errorf("expected 5 exchanges, got %d", c.Exchanges)
	}
	if c.Reads != 1 || c.Writes != 1 {
		t.Errorf("expected 1 read and 1 write, got %d/%d", c.Reads, c.Writes)
	}
	if c.ChecksumErrors != 1 || c.Timeouts != 1 || c.DeviceErrors != 1 {
		t.Errorf("error counters mismatch: checksum %d, timeout %d, device %d",
			c.ChecksumErrors, c.Timeouts, c.DeviceErrors)
	}

	if !strings.Contains(s.String(), "Exchanges:") {
		t.Errorf("summary missing exchange count:\n%s", s.String())
	}
}

func TestStatistics_SnapshotIsDetached(t *testing.T) {
	s := NewStatistics()
	s.RecordExchange(DirectionGet, nil)

	c := s.Snapshot()
	s.RecordExchange(DirectionGet, nil)

	if c.Exchanges != 1 {
		t.Errorf("snapshot changed after the fact: got %d exchanges", c.Exchanges)
	}
	if got := s.Snapshot().Exchanges; got != 2 {
		t.Errorf("expected 2 exchanges, got %d", got)
	}
}

// Exchanges record on session goroutines while observers snapshot from the
// render loop, so the tracker must tolerate both at once.
func TestStatistics_ConcurrentRecordAndSnapshot(t *testing.T) {
	const perWorker = 200

	s := NewStatistics()
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < perWorker; i++ {
			s.RecordExchange(DirectionGet, nil)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < perWorker; i++ {
			s.RecordExchange(DirectionGet, newErrorf(ErrTimeout, "no response"))
			s.RecordRetry()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < perWorker; i++ {
			c := s.Snapshot()
			if c.Exchanges < c.Reads+c.Writes {
				t.Errorf("torn snapshot: %d exchanges, %d successes",
					c.Exchanges, c.Reads+c.Writes)
				return
			}
			_ = s.String()
			s.CalculateRates()
		}
	}()
	wg.Wait()

	c := s.Snapshot()
	if c.Exchanges != 2*perWorker {
		t.Errorf("expected %d exchanges, got %d", 2*perWorker, c.Exchanges)
	}
	if c.Reads != perWorker || c.Timeouts != perWorker || c.Retries != perWorker {
		t.Errorf("counter mismatch: reads %d, timeouts %d, retries %d",
			c.Reads, c.Timeouts, c.Retries)
	}
}
