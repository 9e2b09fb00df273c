package dnsx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/proars/Test-DNS-Speed/internal/model"
)

// scriptedQuerier returns the scripted outcomes in order and counts
// how many times it was invoked.
type scriptedQuerier struct {
	calls    int
	outcomes []scriptedOutcome
}

type scriptedOutcome struct {
	rtt time.Duration
	err error
}

func (sq *scriptedQuerier) Query(
	ctx context.Context, address, domain string, timeout time.Duration) (time.Duration, error) {
	idx := sq.calls
	sq.calls++
	if idx >= len(sq.outcomes) {
		panic("scriptedQuerier: too many calls")
	}
	return sq.outcomes[idx].rtt, sq.outcomes[idx].err
}

var errTimedOut = errors.New("read udp 127.0.0.1:5353: i/o timeout")

func newTask() model.QueryTask {
	return model.QueryTask{
		Resolver: model.Resolver{Address: "8.8.8.8:53", Label: "Google Public DNS"},
		Domain:   "example.com",
		Ordinal:  0,
	}
}

func TestExecutorImmediateSuccess(t *testing.T) {
	sq := &scriptedQuerier{outcomes: []scriptedOutcome{
		{rtt: 10 * time.Millisecond},
	}}
	exec := &Executor{Querier: sq}
	res := exec.Execute(context.Background(), newTask(), time.Second, 3)
	if !res.Succeeded() {
		t.Fatal("expected success")
	}
	if res.LatencyMs != 10 {
		t.Fatal("unexpected latency", res.LatencyMs)
	}
	if res.Attempts != 1 {
		t.Fatal("unexpected attempts", res.Attempts)
	}
	if sq.calls != 1 {
		t.Fatal("unexpected number of queries", sq.calls)
	}
}

func TestExecutorRetriesTimeoutThenSucceeds(t *testing.T) {
	sq := &scriptedQuerier{outcomes: []scriptedOutcome{
		{err: errTimedOut},
		{err: errTimedOut},
		{rtt: 25 * time.Millisecond},
	}}
	exec := &Executor{Querier: sq}
	res := exec.Execute(context.Background(), newTask(), time.Second, 2)
	if !res.Succeeded() {
		t.Fatal("expected success")
	}
	if res.Attempts != 3 {
		t.Fatal("unexpected attempts", res.Attempts)
	}
}

func TestExecutorExhaustsRetries(t *testing.T) {
	sq := &scriptedQuerier{outcomes: []scriptedOutcome{
		{err: errTimedOut},
		{err: errTimedOut},
	}}
	exec := &Executor{Querier: sq}
	res := exec.Execute(context.Background(), newTask(), time.Second, 1)
	if res.Succeeded() {
		t.Fatal("expected failure")
	}
	if res.Failure != model.KindTimeout {
		t.Fatal("unexpected failure kind", res.Failure)
	}
	if res.Attempts != 2 {
		t.Fatal("unexpected attempts", res.Attempts)
	}
}

func TestExecutorDoesNotRetryResolutionErrors(t *testing.T) {
	sq := &scriptedQuerier{outcomes: []scriptedOutcome{
		{err: ErrNoSuchHost},
	}}
	exec := &Executor{Querier: sq}
	res := exec.Execute(context.Background(), newTask(), time.Second, 5)
	if res.Succeeded() {
		t.Fatal("expected failure")
	}
	if res.Failure != model.KindResolutionError {
		t.Fatal("unexpected failure kind", res.Failure)
	}
	if res.Attempts != 1 {
		t.Fatal("unexpected attempts", res.Attempts)
	}
	if sq.calls != 1 {
		t.Fatal("resolution errors must not consume retries")
	}
}

func TestExecutorZeroRetries(t *testing.T) {
	sq := &scriptedQuerier{outcomes: []scriptedOutcome{
		{err: errTimedOut},
	}}
	exec := &Executor{Querier: sq}
	res := exec.Execute(context.Background(), newTask(), time.Second, 0)
	if res.Attempts != 1 {
		t.Fatal("unexpected attempts", res.Attempts)
	}
}
