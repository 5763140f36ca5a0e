package numbering

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCounter struct {
	created []time.Time
}

func (m *memoryCounter) CountCreatedBetween(_ context.Context, start, end time.Time) (int64, error) {
	var n int64
	for _, c := range m.created {
		if !c.Before(start) && c.Before(end) {
			n++
		}
	}
	return n, nil
}

type memoryStore map[string]int64

func (m memoryStore) Increment(_ context.Context, name string) (int64, error) {
	m[name]++
	return m[name], nil
}

type failingCounter struct{}

func (failingCounter) CountCreatedBetween(context.Context, time.Time, time.Time) (int64, error) {
	return 0, errors.New("db down")
}

func TestFormatSequential(t *testing.T) {
	at := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/10.2026", FormatSequential(1, at, time.UTC))
	assert.Equal(t, "07/10.2026", FormatSequential(7, at, time.UTC))
	assert.Equal(t, "123/10.2026", FormatSequential(123, at, time.UTC))
}

func TestFormatSequentialUsesLocalMonth(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	// 23:30 UTC on 31 October is already November in Warsaw.
	at := time.Date(2026, 10, 31, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "01/11.2026", FormatSequential(1, at, warsaw))
}

func TestFormatGuest(t *testing.T) {
	at := time.UnixMilli(1760435012345).UTC()
	assert.Equal(t, "GUE-2025-012345", FormatGuest("GUE", at, time.UTC))

	at = time.UnixMilli(1791900000007).UTC()
	assert.Regexp(t, `^GUE-\d{4}-000007$`, FormatGuest("GUE", at, time.UTC))
}

func TestServiceSameDayIncreases(t *testing.T) {
	counter := &memoryCounter{}
	svc := NewService(NewCountSequencer(counter, time.UTC), time.UTC)
	ctx := context.Background()

	day := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	var numbers []string
	for i := 0; i < 3; i++ {
		at := day.Add(time.Duration(i) * time.Hour)
		n, err := svc.Next(ctx, at)
		require.NoError(t, err)
		numbers = append(numbers, n)
		counter.created = append(counter.created, at)
	}
	assert.Equal(t, []string{"01/10.2026", "02/10.2026", "03/10.2026"}, numbers)

	next, err := svc.Next(ctx, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "01/10.2026", next)
}

func TestCountSequencerDayWindowInLocation(t *testing.T) {
	warsaw, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	// 22:30 UTC on 13 October is 00:30 on 14 October in Warsaw.
	counter := &memoryCounter{created: []time.Time{time.Date(2026, 10, 13, 22, 30, 0, 0, time.UTC)}}
	seq := NewCountSequencer(counter, warsaw)

	n, err := seq.NextSequence(context.Background(), time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = seq.NextSequence(context.Background(), time.Date(2026, 10, 13, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCounterSequencer(t *testing.T) {
	store := memoryStore{}
	svc := NewService(NewCounterSequencer(store, "quotes", time.UTC), time.UTC)
	ctx := context.Background()
	day := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

	first, err := svc.Next(ctx, day)
	require.NoError(t, err)
	second, err := svc.Next(ctx, day)
	require.NoError(t, err)
	nextDay, err := svc.Next(ctx, day.Add(24*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, "01/10.2026", first)
	assert.Equal(t, "02/10.2026", second)
	assert.Equal(t, "01/10.2026", nextDay)
	assert.Equal(t, int64(2), store["quotes:2026-10-14"])
}

func TestServicePropagatesErrors(t *testing.T) {
	svc := NewService(NewCountSequencer(failingCounter{}, time.UTC), nil)
	_, err := svc.Next(context.Background(), time.Now())
	assert.Error(t, err)
	assert.Equal(t, time.UTC, svc.Location())
}

func TestServiceNextAfterSkipsTakenNumbers(t *testing.T) {
	counter := &memoryCounter{}
	svc := NewService(NewCountSequencer(counter, time.UTC), time.UTC)
	at := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)

	n, err := svc.NextAfter(context.Background(), at, 2)
	require.NoError(t, err)
	assert.Equal(t, "03/10.2026", n)
}
