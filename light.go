package causalproof

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LightCheckOptions configures CheckLight's fast path (spec.md §4.I).
type LightCheckOptions struct {
	MaxAgeMs int64
	MinDepth int
}

// DefaultLightCheckOptions returns the spec's stated defaults:
// maxAgeMs 300000, minDepth 3.
func DefaultLightCheckOptions() LightCheckOptions {
	return LightCheckOptions{MaxAgeMs: 300000, MinDepth: 3}
}

// LightCheckResult is what CheckLight returns.
type LightCheckResult struct {
	Valid  bool
	Errors []string
}

// CheckLight runs the light proof's single-digit-millisecond fast
// check: agent identity, freshness, minimum chain depth, target
// presence at the chain's tail, and timestamp monotonicity.
func CheckLight(proof LightProof, expectedAgentID string, opts LightCheckOptions) LightCheckResult {
	var errs []string

	if proof.AgentID != expectedAgentID {
		errs = append(errs, fmt.Sprintf("agent identifier %q does not match expected %q", proof.AgentID, expectedAgentID))
	}

	age := nowMillis() - proof.GeneratedAt
	if age > opts.MaxAgeMs {
		errs = append(errs, fmt.Sprintf("light proof age %dms exceeds maxAgeMs %d", age, opts.MaxAgeMs))
	}

	if len(proof.Chain) < opts.MinDepth {
		errs = append(errs, fmt.Sprintf("chain length %d is below minDepth %d", len(proof.Chain), opts.MinDepth))
	}

	if len(proof.Chain) == 0 {
		errs = append(errs, "chain is empty: no target digest to check")
	} else {
		last := proof.Chain[len(proof.Chain)-1]
		if last.EventHash != proof.TargetHash {
			errs = append(errs, "target digest does not match the chain's last element")
		}
		for i := 1; i < len(proof.Chain); i++ {
			if proof.Chain[i].Timestamp < proof.Chain[i-1].Timestamp {
				errs = append(errs, fmt.Sprintf("chain element %d's timestamp precedes element %d's", i, i-1))
				break
			}
		}
	}

	return LightCheckResult{Valid: len(errs) == 0, Errors: errs}
}

// Scheduler runs submitted tasks on its own ticks, never inline with
// the caller that submitted them — the same cooperative-scheduling
// shape as the teacher's AnchorRelay.Run poll loop, generalized from
// "poll storage for outbox items" to "drain a task queue."
type Scheduler struct {
	tasks chan func()
}

// NewScheduler returns a Scheduler with room for backlog pending
// tasks before Submit blocks.
func NewScheduler(backlog int) *Scheduler {
	return &Scheduler{tasks: make(chan func(), backlog)}
}

// Submit enqueues task to run on the scheduler's next tick.
func (s *Scheduler) Submit(task func()) {
	s.tasks <- task
}

// Run drains and executes queued tasks once per tick until ctx is
// done. It never suspends mid-task.
func (s *Scheduler) Run(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.drain()
		}
	}
}

func (s *Scheduler) drain() {
	for {
		select {
		case task := <-s.tasks:
			task()
		default:
			return
		}
	}
}

// DeferredResult is a handle to a full verification scheduled to run
// later. Status is "pending" until the scheduler runs the task, then
// "done".
type DeferredResult struct {
	mu     sync.Mutex
	status string
	result VerificationResult
	done   chan struct{}
}

func newDeferredResult() *DeferredResult {
	return &DeferredResult{status: "pending", done: make(chan struct{})}
}

// Status returns "pending" or "done".
func (d *DeferredResult) Status() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Result returns the completed verification result and true, or a
// zero value and false if still pending.
func (d *DeferredResult) Result() (VerificationResult, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status != "done" {
		return VerificationResult{}, false
	}
	return d.result, true
}

// Wait blocks until the deferred verification completes.
func (d *DeferredResult) Wait() VerificationResult {
	<-d.done
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

func (d *DeferredResult) complete(result VerificationResult) {
	d.mu.Lock()
	d.result = result
	d.status = "done"
	d.mu.Unlock()
	close(d.done)
}

// ProgressiveContext carries the identity a progressive verification
// check is evaluated against.
type ProgressiveContext struct {
	AgentID   string
	PublicKey string
}

// ProgressiveOptions configures ProgressiveVerifier.Evaluate (spec.md §4.I).
type ProgressiveOptions struct {
	AutoVerifyFull bool
	IsHighValue    bool
	MinDepth       int
	MaxAgeMs       int64
}

// DefaultProgressiveOptions mirrors DefaultLightCheckOptions with
// AutoVerifyFull enabled, matching the spec's stated defaults.
func DefaultProgressiveOptions() ProgressiveOptions {
	return ProgressiveOptions{AutoVerifyFull: true, MinDepth: 3, MaxAgeMs: 300000}
}

// ProgressiveDecision is the synchronous result of ProgressiveVerifier.Evaluate.
type ProgressiveDecision struct {
	CanProceed     bool
	RefusalReason  string
	ImmediateTrust float64
	DeferredStatus string
	Deferred       *DeferredResult
}

// ProgressiveVerifier runs the two-phase trust pipeline: a synchronous
// light check, with an optional full cryptographic verification
// scheduled to run on sched's next tick rather than inline.
type ProgressiveVerifier struct {
	sched *Scheduler
}

// NewProgressiveVerifier binds a verifier to the scheduler that will
// run its deferred full checks.
func NewProgressiveVerifier(sched *Scheduler) *ProgressiveVerifier {
	return &ProgressiveVerifier{sched: sched}
}

// Evaluate runs the light check synchronously and, unless the caller
// flagged the call as high-value, returns canProceed based on it. When
// full and ctx.PublicKey are supplied and AutoVerifyFull is set, it
// schedules the full cryptographic check on the scheduler and returns
// a handle to the deferred result.
func (pv *ProgressiveVerifier) Evaluate(light LightProof, full *Proof, ctx ProgressiveContext, opts ProgressiveOptions) *ProgressiveDecision {
	lightResult := CheckLight(light, ctx.AgentID, LightCheckOptions{MaxAgeMs: opts.MaxAgeMs, MinDepth: opts.MinDepth})

	decision := &ProgressiveDecision{}
	if lightResult.Valid {
		decision.ImmediateTrust = 0.7
	}

	switch {
	case opts.IsHighValue:
		decision.CanProceed = false
		decision.RefusalReason = "high_value_requires_full_verification"
	default:
		decision.CanProceed = lightResult.Valid
		if !lightResult.Valid {
			decision.RefusalReason = "light_verification_failed"
		}
	}

	if full != nil && ctx.PublicKey != "" && opts.AutoVerifyFull {
		deferred := newDeferredResult()
		decision.Deferred = deferred
		decision.DeferredStatus = "pending"
		pv.sched.Submit(func() {
			result := VerifyProof(full, ctx.AgentID, ctx.PublicKey)
			deferred.complete(result)
		})
	}

	return decision
}
