// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Konstantin Vogel

package thz

import (
	"fmt"
	"sync"
	"time"
)

// Counters holds the exchange counters and derived rates of a session at one
// point in time. It is a plain value: copy it freely.
type Counters struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	Exchanges      uint64
	Reads          uint64
	Writes         uint64
	ChecksumErrors uint64
	FramingErrors  uint64
	Timeouts       uint64
	DeviceErrors   uint64
	Retries        uint64

	// Rates (calculated)
	ExchangeRate float64 // exchanges/sec
	ErrorRate    float64 // errors/sec
}

// Statistics tracks exchange outcomes and error rates for a session. It is
// safe for concurrent use: exchanges record on the session's caller
// goroutines while observers take snapshots from elsewhere.
type Statistics struct {
	mu sync.Mutex
	Counters
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		Counters: Counters{
			StartTime:      now,
			LastUpdateTime: now,
		},
	}
}

// RecordExchange updates counters for one completed exchange attempt.
func (s *Statistics) RecordExchange(direction Direction, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Exchanges++

	if err != nil {
		kind, _ := KindOf(err)
		switch kind {
		case ErrChecksum:
			s.ChecksumErrors++
		case ErrFraming:
			s.FramingErrors++
		case ErrTimeout:
			s.Timeouts++
		case ErrDevice:
			s.DeviceErrors++
		}
		s.LastUpdateTime = time.Now()
		return
	}

	if direction == DirectionSet {
		s.Writes++
	} else {
		s.Reads++
	}
	s.LastUpdateTime = time.Now()
}

// RecordRetry counts a retried exchange attempt.
func (s *Statistics) RecordRetry() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Retries++
}

// CalculateRates calculates exchange and error rates
func (s *Statistics) CalculateRates() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calculateRatesLocked()
}

func (s *Statistics) calculateRatesLocked() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.ExchangeRate = float64(s.Exchanges) / elapsed
		errorCount := s.ChecksumErrors + s.FramingErrors + s.Timeouts + s.DeviceErrors
		s.ErrorRate = float64(errorCount) / elapsed
	}
}

// Snapshot returns a consistent copy of the counters with rates filled in.
func (s *Statistics) Snapshot() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calculateRatesLocked()
	return s.Counters
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	return s.Snapshot().String()
}

// String formats the counters as a multi-line summary.
func (c Counters) String() string {
	var okPercent float64
	if c.Exchanges > 0 {
		okPercent = float64(c.Reads+c.Writes) * 100.0 / float64(c.Exchanges)
	}

	elapsed := time.Since(c.StartTime)

	result := fmt.Sprintf("=== Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Exchanges:       %8d\n", c.Exchanges)
	result += fmt.Sprintf("Successful:      %8d (%.1f%%)\n", c.Reads+c.Writes, okPercent)
	result += fmt.Sprintf("  Reads:            %5d\n", c.Reads)
	result += fmt.Sprintf("  Writes:           %5d\n", c.Writes)

	if c.ChecksumErrors > 0 {
		result += fmt.Sprintf("Checksum Errors: %8d\n", c.ChecksumErrors)
	}
	if c.FramingErrors > 0 {
		result += fmt.Sprintf("Framing Errors:  %8d\n", c.FramingErrors)
	}
	if c.Timeouts > 0 {
		result += fmt.Sprintf("Timeouts:        %8d\n", c.Timeouts)
	}
	if c.DeviceErrors > 0 {
		result += fmt.Sprintf("Device Errors:   %8d\n", c.DeviceErrors)
	}
	if c.Retries > 0 {
		result += fmt.Sprintf("Retries:         %8d\n", c.Retries)
	}

	result += fmt.Sprintf("Exchange Rate:   %8.1f exch/sec\n", c.ExchangeRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", c.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.Counters = Counters{
		StartTime:      now,
		LastUpdateTime: now,
	}
}
