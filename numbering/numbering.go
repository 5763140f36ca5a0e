// Package numbering issues the human readable identifiers of quotes and
// needs assessment responses.
package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/amirphl/ppp-rental/utils"
)

// Strategy names
const (
	StrategyCount   = "count"
	StrategyCounter = "counter"
)

// FormatSequential renders SEQ/MM.YYYY using the month and year of at in loc.
func FormatSequential(seq int64, at time.Time, loc *time.Location) string {
	local := at.In(loc)
	return fmt.Sprintf("%02d/%02d.%04d", seq, int(local.Month()), local.Year())
}

// FormatGuest renders PREFIX-YYYY-NNNNNN from the last six digits of the
// unix millisecond timestamp of at.
func FormatGuest(prefix string, at time.Time, loc *time.Location) string {
	return fmt.Sprintf("%s-%04d-%06d", prefix, at.In(loc).Year(), at.UnixMilli()%1000000)
}

// Sequencer returns the 1-based position of a new entity within its day.
type Sequencer interface {
	NextSequence(ctx context.Context, at time.Time) (int64, error)
}

// DailyCounter counts the entities of one stream created in [start, end).
type DailyCounter interface {
	CountCreatedBetween(ctx context.Context, start, end time.Time) (int64, error)
}

// CountSequencer is count-of-day + 1. Two concurrent callers can observe the
// same count; the unique index on the number catches that.
type CountSequencer struct {
	counter DailyCounter
	loc     *time.Location
}

func NewCountSequencer(counter DailyCounter, loc *time.Location) *CountSequencer {
	return &CountSequencer{counter: counter, loc: loc}
}

func (s *CountSequencer) NextSequence(ctx context.Context, at time.Time) (int64, error) {
	start, end := utils.DayBounds(at, s.loc)
	n, err := s.counter.CountCreatedBetween(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to count entities of day: %w", err)
	}
	return n + 1, nil
}

// CounterStore atomically increments a named counter and returns the new value.
type CounterStore interface {
	Increment(ctx context.Context, name string) (int64, error)
}

// CounterSequencer keeps one row per stream and day, e.g. "quotes:2026-10-14".
type CounterSequencer struct {
	store  CounterStore
	stream string
	loc    *time.Location
}

func NewCounterSequencer(store CounterStore, stream string, loc *time.Location) *CounterSequencer {
	return &CounterSequencer{store: store, stream: stream, loc: loc}
}

func (s *CounterSequencer) NextSequence(ctx context.Context, at time.Time) (int64, error) {
	name := s.stream + ":" + at.In(s.loc).Format("2006-01-02")
	v, err := s.store.Increment(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", name, err)
	}
	return v, nil
}

// Service numbers one stream.
type Service struct {
	seq Sequencer
	loc *time.Location
}

func NewService(seq Sequencer, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{seq: seq, loc: loc}
}

// Next returns the number of an entity created at at.
func (s *Service) Next(ctx context.Context, at time.Time) (string, error) {
	return s.NextAfter(ctx, at, 0)
}

// NextAfter skips skip positions past the computed sequence. Retries after a
// collision use it to step over numbers that are already taken.
func (s *Service) NextAfter(ctx context.Context, at time.Time, skip int64) (string, error) {
	seq, err := s.seq.NextSequence(ctx, at)
	if err != nil {
		return "", err
	}
	return FormatSequential(seq+skip, at, s.loc), nil
}

func (s *Service) Location() *time.Location { return s.loc }
