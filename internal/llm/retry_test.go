package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

var errDown = &ErrProviderUnavailable{Err: errors.New("down")}

func TestRetry(t *testing.T) {
	invalid := &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}
	ok := MockResponse{Content: json.RawMessage(`{"ok":true}`)}

	tests := []struct {
		name      string
		attempts  int
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt succeeds", 3, []MockResponse{ok}, false, 1},
		{"transient then success", 3, []MockResponse{{Err: errDown}, ok}, false, 2},
		{"all attempts fail", 3, []MockResponse{{Err: errDown}, {Err: errDown}, {Err: errDown}, ok}, true, 3},
		{"max tokens not retried", 3, []MockResponse{{Err: &ErrMaxTokensExceeded{}}, ok}, true, 1},
		{"invalid retried once", 4, []MockResponse{{Err: invalid}, {Err: invalid}, ok}, true, 2},
		{"rate limit honours retry-after", 3, []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond}}, ok}, false, 2},
		{"zero attempts still calls once", 0, []MockResponse{{Err: errDown}, ok}, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, fastRetry(tt.attempts), nil)

			_, err := p.Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, mock.CallCount())
			}
		})
	}
}

func TestRetry_CanceledContextStopsBackoff(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: errDown}, MockResponse{Content: json.RawMessage(`{}`)})
	p := WithRetry(mock, RetryConfig{MaxAttempts: 3, InitialWait: time.Hour, MaxWait: time.Hour, Multiplier: 2}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_BackoffCapped(t *testing.T) {
	r := WithRetry(NewMockProvider(), RetryConfig{MaxAttempts: 5, InitialWait: time.Second, MaxWait: 2 * time.Second, Multiplier: 10}, nil).(*RetryProvider)
	for attempt := range 5 {
		w := r.backoff(attempt, errDown)
		if w < 0 || w > 2400*time.Millisecond {
			t.Fatalf("attempt %d: wait %s outside jittered cap", attempt, w)
		}
	}
}
