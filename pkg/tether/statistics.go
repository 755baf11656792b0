// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 Voltaic Labs

package tether

import (
	"errors"
	"fmt"
	"time"
)

// Statistics tracks link statistics and error rates
type Statistics struct {
	StartTime      time.Time
	LastUpdateTime time.Time

	// Counters
	TotalFrames    uint64
	ValidFrames    uint64
	CommandFrames  uint64
	CciFrames      uint64
	ResponseFrames uint64
	CRCErrors      uint64
	FramingErrors  uint64
	BytesIn        uint64

	// Rates (calculated)
	FrameRate float64 // frames/sec
	ErrorRate float64 // errors/sec
}

// NewStatistics creates a new statistics tracker
func NewStatistics() *Statistics {
	now := time.Now()
	return &Statistics{
		StartTime:      now,
		LastUpdateTime: now,
	}
}

// CountByte records one raw byte received from the transport.
func (s *Statistics) CountByte() {
	s.BytesIn++
}

// Update updates statistics based on a decoded frame or decode error
func (s *Statistics) Update(frame *Frame, decodeErr error) {
	s.TotalFrames++

	if decodeErr != nil {
		var crcErr *CrcError
		if errors.As(decodeErr, &crcErr) {
			s.CRCErrors++
		} else {
			s.FramingErrors++
		}
		return
	}

	s.ValidFrames++
	switch frame.Kind() {
	case FrameCommand:
		s.CommandFrames++
	case FrameCci:
		s.CciFrames++
	case FrameResponse:
		s.ResponseFrames++
	}

	s.LastUpdateTime = time.Now()
}

// CalculateRates calculates frame and error rates
func (s *Statistics) CalculateRates() {
	elapsed := time.Since(s.StartTime).Seconds()
	if elapsed > 0 {
		s.FrameRate = float64(s.TotalFrames) / elapsed
		s.ErrorRate = float64(s.CRCErrors+s.FramingErrors) / elapsed
	}
}

// String returns a formatted statistics summary
func (s *Statistics) String() string {
	s.CalculateRates()

	var validPercent, crcErrorPercent, framingErrorPercent float64
	if s.TotalFrames > 0 {
		validPercent = float64(s.ValidFrames) * 100.0 / float64(s.TotalFrames)
		crcErrorPercent = float64(s.CRCErrors) * 100.0 / float64(s.TotalFrames)
		framingErrorPercent = float64(s.FramingErrors) * 100.0 / float64(s.TotalFrames)
	}

	elapsed := time.Since(s.StartTime)

	result := fmt.Sprintf("=== Link Statistics (%.0f seconds) ===\n", elapsed.Seconds())
	result += fmt.Sprintf("Total Frames:    %8d\n", s.TotalFrames)
	result += fmt.Sprintf("Valid Frames:    %8d (%.1f%%)\n", s.ValidFrames, validPercent)
	if s.ValidFrames > 0 {
		result += fmt.Sprintf("  Commands:         %5d\n", s.CommandFrames)
		result += fmt.Sprintf("  CCI Writes:       %5d\n", s.CciFrames)
		result += fmt.Sprintf("  Responses:        %5d\n", s.ResponseFrames)
	}
	if s.CRCErrors > 0 {
		result += fmt.Sprintf("CRC Errors:      %8d (%.1f%%)\n", s.CRCErrors, crcErrorPercent)
	}
	if s.FramingErrors > 0 {
		result += fmt.Sprintf("Framing Errors:  %8d (%.1f%%)\n", s.FramingErrors, framingErrorPercent)
	}
	result += fmt.Sprintf("Bytes In:        %8d\n", s.BytesIn)
	result += fmt.Sprintf("Frame Rate:      %8.1f frames/sec\n", s.FrameRate)
	result += fmt.Sprintf("Error Rate:      %8.1f errors/sec\n", s.ErrorRate)
	result += "================================\n"

	return result
}

// Reset resets all statistics counters
func (s *Statistics) Reset() {
	now := time.Now()
	s.StartTime = now
	s.LastUpdateTime = now
	s.TotalFrames = 0
	s.ValidFrames = 0
	s.CommandFrames = 0
	s.CciFrames = 0
	s.ResponseFrames = 0
	s.CRCErrors = 0
	s.FramingErrors = 0
	s.BytesIn = 0
	s.FrameRate = 0
	s.ErrorRate = 0
}
