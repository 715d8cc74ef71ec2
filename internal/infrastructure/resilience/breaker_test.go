package resilience

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFailed = errors.New("failed")

// fakeClock drives a breaker's notion of time from the test
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestBreaker(settings Settings) (*Breaker, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := New("test", settings)
	b.now = clock.Now
	b.deadline = clock.now.Add(b.settings.Interval)
	return b, clock
}

func succeed() error { return nil }

func fail() error { return errFailed }

func TestBreakerStateTransitions(t *testing.T) {
	tests := []struct {
		name          string
		settings      Settings
		requests      []bool // true = success, false = failure
		expectedState State
	}{
		{
			name:          "stays closed on successes",
			settings:      Settings{MaxRequests: 1},
			requests:      []bool{true, true, true},
			expectedState: StateClosed,
		},
		{
			name: "opens after consecutive failures",
			settings: Settings{
				ReadyToTrip: func(counts Counts) bool {
					return counts.ConsecutiveFailures >= 3
				},
			},
			requests:      []bool{false, false, false},
			expectedState: StateOpen,
		},
		{
			name: "a success resets the consecutive run",
			settings: Settings{
				ReadyToTrip: func(counts Counts) bool {
					return counts.ConsecutiveFailures >= 3
				},
			},
			requests:      []bool{false, false, true, false, false},
			expectedState: StateClosed,
		},
		{
			name: "opens on failure ratio",
			settings: Settings{
				ReadyToTrip: func(counts Counts) bool {
					return counts.Requests >= 4 && counts.FailureRatio() > 0.5
				},
			},
			requests:      []bool{false, true, false, false},
			expectedState: StateOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			breaker, _ := newTestBreaker(tt.settings)

			for _, success := range tt.requests {
				_ = breaker.Do(func() error {
					if success {
						return nil
					}
					return errFailed
				})
			}

			assert.Equal(t, tt.expectedState, breaker.State())
		})
	}
}

func TestBreakerDoReturnsError(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{})

	require.NoError(t, breaker.Do(succeed))
	assert.ErrorIs(t, breaker.Do(fail), errFailed)
}

func TestBreakerOpenState(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	for i := 0; i < 2; i++ {
		_ = breaker.Do(fail)
	}
	assert.Equal(t, StateOpen, breaker.State())

	called := false
	err := breaker.Do(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestBreakerHalfOpenState(t *testing.T) {
	breaker, clock := newTestBreaker(Settings{
		MaxRequests: 2,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
	})

	for i := 0; i < 2; i++ {
		_ = breaker.Do(fail)
	}
	assert.Equal(t, StateOpen, breaker.State())

	clock.Advance(9 * time.Second)
	assert.Equal(t, StateOpen, breaker.State())

	clock.Advance(time.Second)
	assert.Equal(t, StateHalfOpen, breaker.State())

	for i := 0; i < 2; i++ {
		require.NoError(t, breaker.Do(succeed))
	}
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	breaker, clock := newTestBreaker(Settings{
		MaxRequests: 3,
		Timeout:     time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	_ = breaker.Do(fail)
	clock.Advance(time.Second)
	require.Equal(t, StateHalfOpen, breaker.State())

	require.NoError(t, breaker.Do(succeed))
	_ = breaker.Do(fail)
	assert.Equal(t, StateOpen, breaker.State())

	// a fresh timeout starts from the reopening
	clock.Advance(999 * time.Millisecond)
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreakerHalfOpenLimitsRequests(t *testing.T) {
	breaker, clock := newTestBreaker(Settings{
		MaxRequests: 1,
		Timeout:     time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	_ = breaker.Do(fail)
	clock.Advance(time.Second)

	// the only admitted request is still in flight when the second arrives
	var inner error
	err := breaker.Do(func() error {
		inner = breaker.Do(succeed)
		return nil
	})
	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrTooManyRequests)
	assert.True(t, IsRejection(inner))
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreakerIntervalClearsCounts(t *testing.T) {
	breaker, clock := newTestBreaker(Settings{
		Interval: time.Minute,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	_ = breaker.Do(fail)
	_ = breaker.Do(fail)
	clock.Advance(time.Minute)
	_ = breaker.Do(fail)
	assert.Equal(t, StateClosed, breaker.State())

	_ = breaker.Do(fail)
	_ = breaker.Do(fail)
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreakerDiscardsStaleOutcome(t *testing.T) {
	breaker, clock := newTestBreaker(Settings{
		Interval: time.Minute,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	// the failure lands after the interval rolled over, so it belongs to
	// a generation that no longer exists
	_ = breaker.Do(func() error {
		clock.Advance(time.Minute)
		return errFailed
	})
	assert.Equal(t, StateClosed, breaker.State())
}

func TestBreakerPanicCountsAsFailure(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	assert.PanicsWithValue(t, "boom", func() {
		_ = breaker.Do(func() error { panic("boom") })
	})
	assert.Equal(t, StateOpen, breaker.State())
}

func TestBreakerCallbacks(t *testing.T) {
	var transitions []string

	breaker, clock := newTestBreaker(Settings{
		Timeout: time.Second,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
		OnStateChange: func(name string, from State, to State) {
			transitions = append(transitions, name+":"+from.String()+"->"+to.String())
		},
	})

	for i := 0; i < 2; i++ {
		_ = breaker.Do(fail)
	}
	clock.Advance(time.Second)
	assert.Equal(t, StateHalfOpen, breaker.State())
	require.NoError(t, breaker.Do(succeed))

	assert.Equal(t, []string{
		"test:closed->open",
		"test:open->half-open",
		"test:half-open->closed",
	}, transitions)
}

func TestBreakerIsSuccessful(t *testing.T) {
	errCaller := errors.New("access denied")
	errTransport := errors.New("connection refused")

	breaker, _ := newTestBreaker(Settings{
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 2
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errCaller)
		},
	})

	// caller errors are returned but never counted as failures
	for i := 0; i < 5; i++ {
		err := breaker.Do(func() error {
			return fmt.Errorf("list: %w", errCaller)
		})
		assert.ErrorIs(t, err, errCaller)
	}
	assert.Equal(t, StateClosed, breaker.State())

	for i := 0; i < 2; i++ {
		_ = breaker.Do(func() error { return errTransport })
	}
	assert.Equal(t, StateOpen, breaker.State())
}

func TestCountsFailureRatio(t *testing.T) {
	assert.Zero(t, Counts{}.FailureRatio())
	assert.InDelta(t, 0.25, Counts{Requests: 4, TotalFailures: 1}.FailureRatio(), 1e-9)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestCall(t *testing.T) {
	breaker, _ := newTestBreaker(Settings{
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 1
		},
	})

	n, err := Call(breaker, func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	n, err = Call(breaker, func() (int, error) {
		return 0, errFailed
	})
	assert.ErrorIs(t, err, errFailed)
	assert.Zero(t, n)

	_, err = Call(breaker, func() (int, error) {
		return 1, nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.True(t, IsRejection(err))
	assert.False(t, IsRejection(errors.New("other")))
}
