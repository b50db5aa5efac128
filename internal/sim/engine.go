package sim

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"lifesim/internal/decision"
	"lifesim/pkg/constants"
	"lifesim/pkg/mathutil"
)

// Structured rejections returned by Engine operations. None of them implies
// a state mutation happened.
var (
	// ErrNotRunning rejects a step when no run is active.
	ErrNotRunning = errors.New("simulation is not running")
	// ErrWaitingForResume rejects a step after a pause has been observed
	// at a day boundary.
	ErrWaitingForResume = errors.New("paused, waiting for resume")
	// ErrStepInFlight rejects a step while another one holds the day.
	ErrStepInFlight = errors.New("a step is already in progress")
	// ErrPaused reports that the in-flight decision acquisition was
	// cancelled by a pause; the day was not consumed.
	ErrPaused = errors.New("simulation paused")
	// ErrNotStarted rejects a resume with no run to resume.
	ErrNotStarted = errors.New("no active run to resume")
)

// StepResult is the outcome of one accepted day step.
type StepResult struct {
	Finished bool
	Reason   string
	Message  string
	Log      *LogEntry
	Paused   bool // day committed, pause observed, now waiting for resume
	Snapshot Snapshot
}

// Engine owns one simulation session. All state is private to the engine and
// mutated under its lock; at most one step is in flight at a time, and the
// only suspension point is the decision acquisition, which runs unlocked so
// Pause can cancel it.
type Engine struct {
	logger   *zap.Logger
	provider decision.Provider

	mu             sync.Mutex
	rng            *rand.Rand
	state          State
	stepInFlight   bool
	cancelDecision context.CancelFunc
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand overrides the gamble randomness source, for reproducible tests.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = rng
	}
}

// NewEngine builds an idle engine around a decision provider.
func NewEngine(logger *zap.Logger, provider decision.Provider, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		logger:   logger,
		provider: provider,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		state:    newState(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start clears all state and begins a new run. Targets are reset to
// uncompleted and accumulated in deadline order; the agent starts at the
// configured start age on day 1 of the year.
func (e *Engine) Start(cfg Config, targets []Target, speed int) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.abandonDecisionLocked()
	e.state = newState()
	e.state.Phase = PhaseRunning
	e.state.Config = cfg
	e.state.CurrentAge = cfg.StartAge
	if speed <= 0 {
		speed = constants.DefaultSpeed
	}
	e.state.Speed = speed

	reset := make([]Target, len(targets))
	copy(reset, targets)
	for i := range reset {
		reset[i].Completed = false
		reset[i].CompletedAge = 0
	}
	e.state.Targets = AccumulateTargets(reset)

	e.logger.Info("simulation started",
		zap.String("op", "sim.Start"),
		zap.Int("startAge", cfg.StartAge),
		zap.Int("deadlineAge", cfg.DeadlineAge),
		zap.Int("targets", len(e.state.Targets)),
	)
	return e.snapshotLocked()
}

// Reset clears all state unconditionally and returns to idle.
func (e *Engine) Reset() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.abandonDecisionLocked()
	e.state = newState()

	e.logger.Info("simulation reset", zap.String("op", "sim.Reset"))
	return e.snapshotLocked()
}

// Pause requests a pause. It is advisory and returns immediately: a step
// already mutating state finishes its day, while an in-flight decision
// acquisition is cancelled so its step ends with no mutation. Pausing an
// idle or finished engine is a no-op.
func (e *Engine) Pause() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase == PhaseRunning {
		e.state.Phase = PhasePauseRequested
	}
	e.abandonDecisionLocked()

	e.logger.Info("pause requested",
		zap.String("op", "sim.Pause"),
		zap.Stringer("phase", e.state.Phase),
	)
	return e.snapshotLocked()
}

// Resume clears the pause flags and re-enters running. A supplied config is
// merged with its StartAge forced back to the original run's start age, so
// deadline and progress math stay anchored to the original start. Supplied
// targets keep any already-completed target (matched by description) verbatim
// and re-accumulate the rest. Resuming with no run to resume is rejected.
func (e *Engine) Resume(cfg *Config, targets []Target) (Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state.Phase {
	case PhaseIdle, PhaseFinished:
		return e.snapshotLocked(), ErrNotStarted
	}

	if cfg != nil {
		next := *cfg
		next.StartAge = e.state.Config.StartAge
		e.state.Config = next
	}
	if targets != nil {
		merged := make([]Target, 0, len(targets))
		for _, t := range targets {
			if done, ok := findCompleted(e.state.Targets, t.Description); ok {
				merged = append(merged, done)
				continue
			}
			t.Completed = false
			t.CompletedAge = 0
			merged = append(merged, t)
		}
		e.state.Targets = AccumulateTargets(merged)
	}
	e.state.Phase = PhaseRunning

	e.logger.Info("simulation resumed",
		zap.String("op", "sim.Resume"),
		zap.Bool("configReplaced", cfg != nil),
		zap.Bool("targetsReplaced", targets != nil),
	)
	return e.snapshotLocked(), nil
}

// Step advances the simulation by exactly one day: pressure evaluation,
// decision acquisition, action execution, bookkeeping, target completion,
// log emission. A rejected step mutates nothing.
func (e *Engine) Step(ctx context.Context) (StepResult, error) {
	e.mu.Lock()

	switch e.state.Phase {
	case PhaseRunning, PhasePauseRequested:
	case PhaseWaitingForResume:
		e.mu.Unlock()
		return StepResult{}, ErrWaitingForResume
	default:
		e.mu.Unlock()
		return StepResult{}, ErrNotRunning
	}
	if e.stepInFlight {
		e.mu.Unlock()
		return StepResult{}, ErrStepInFlight
	}

	if e.state.CurrentAge >= e.state.Config.DeadlineAge {
		e.state.Phase = PhaseFinished
		e.state.FinishReason = FinishTimeout
		res := StepResult{
			Finished: true,
			Reason:   FinishTimeout,
			Message:  fmt.Sprintf("⏰ Time's up at age %d, simulation over", e.state.CurrentAge),
			Snapshot: e.snapshotLocked(),
		}
		e.mu.Unlock()
		e.logger.Info("simulation finished", zap.String("op", "sim.Step"), zap.String("reason", FinishTimeout))
		return res, nil
	}

	e.stepInFlight = true
	pressure := EvaluatePressure(&e.state)
	req := e.decisionRequestLocked(pressure)
	decisionCtx, cancel := context.WithCancel(ctx)
	e.cancelDecision = cancel
	e.mu.Unlock()

	dec, err := e.provider.Decide(decisionCtx, req)
	cancel()

	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelDecision = nil
	e.stepInFlight = false

	if err != nil {
		if errors.Is(err, decision.ErrCancelled) || errors.Is(err, context.Canceled) {
			e.logger.Info("step cancelled before decision", zap.String("op", "sim.Step"))
			return StepResult{}, ErrPaused
		}
		return StepResult{}, fmt.Errorf("acquire decision: %w", err)
	}

	return e.commitDayLocked(dec, pressure), nil
}

// commitDayLocked applies one decided day to the state and emits its log
// entry. The caller holds the lock.
func (e *Engine) commitDayLocked(dec decision.Decision, pressure PressureInfo) StepResult {
	st := &e.state

	action := ActionWork
	if dec.Action == decision.ActionGamble {
		action = ActionGamble
	}
	result := ExecuteAction(action, st.Config, e.rng)

	st.Stats.TotalDays++
	st.Stats.TotalIncome = mathutil.Round(st.Stats.TotalIncome + result.Income)
	st.Stats.TotalExpenses = mathutil.Round(st.Stats.TotalExpenses + st.Config.DailyCost)
	if action == ActionWork {
		st.History.WorkDays++
		st.Stats.WorkCount++
	} else {
		st.History.GambleDays++
		st.Stats.GambleCount++
	}

	st.CurrentMoney = mathutil.Round(st.CurrentMoney + result.NetIncome)
	st.DayCount++
	st.CurrentDayInYear++

	if action == ActionGamble {
		st.History.TotalGambles++
		if result.IsWin {
			st.History.Wins++
		} else {
			st.History.Losses++
		}
	}

	yearPassed := false
	if st.CurrentDayInYear > constants.DaysPerYear {
		st.CurrentDayInYear = 1
		st.CurrentAge++
		yearPassed = true
	}

	// At most one completion per day: the earliest-deadline target that is
	// unmet, funded, and still inside its deadline.
	st.Targets = AccumulateTargets(st.Targets)
	var completed *CompletedTarget
	for i := range st.Targets {
		t := &st.Targets[i]
		if !t.Completed && st.CurrentMoney >= t.AccumulatedAmount && st.CurrentAge <= t.DeadlineAge {
			t.Completed = true
			t.CompletedAge = st.CurrentAge
			completed = &CompletedTarget{Name: t.Description, Amount: t.AccumulatedAmount}
			break
		}
	}

	allCompleted := true
	for _, t := range st.Targets {
		if !t.Completed {
			allCompleted = false
			break
		}
	}

	logEntry := LogEntry{
		Day:             st.DayCount,
		Age:             st.CurrentAge,
		DayInYear:       st.CurrentDayInYear,
		Action:          result.Label,
		Income:          result.Income,
		DailyCost:       st.Config.DailyCost,
		NetIncome:       result.NetIncome,
		TotalMoney:      st.CurrentMoney,
		Pressure:        pressure.Pressure,
		PressureEmoji:   pressure.Emoji,
		PressureText:    pressure.Text,
		PressureReason:  pressure.Reason,
		Description:     result.Description,
		DecisionReason:  dec.Reason,
		IsAI:            dec.IsAI,
		YearPassed:      yearPassed,
		CompletedTarget: completed,
		Stats:           st.Stats,
	}
	st.Logs = append(st.Logs, logEntry)

	pausedNow := false
	if st.Phase == PhasePauseRequested {
		st.Phase = PhaseWaitingForResume
		pausedNow = true
	}

	e.logger.Debug("day committed",
		zap.String("op", "sim.Step"),
		zap.Int("day", st.DayCount),
		zap.Int("age", st.CurrentAge),
		zap.String("action", string(action)),
		zap.Float64("money", st.CurrentMoney),
		zap.Int("pressure", pressure.Pressure),
	)

	if allCompleted {
		st.Phase = PhaseFinished
		st.FinishReason = FinishSuccess
		e.logger.Info("simulation finished", zap.String("op", "sim.Step"), zap.String("reason", FinishSuccess))
		return StepResult{
			Finished: true,
			Reason:   FinishSuccess,
			Message:  fmt.Sprintf("🎉 All targets reached! Final savings: %.0f", st.CurrentMoney),
			Snapshot: e.snapshotLocked(),
		}
	}

	return StepResult{
		Log:      &logEntry,
		Paused:   pausedNow,
		Snapshot: e.snapshotLocked(),
	}
}

// decisionRequestLocked projects the state into the provider request.
// The caller holds the lock.
func (e *Engine) decisionRequestLocked(pressure PressureInfo) decision.Request {
	st := &e.state
	req := decision.Request{
		Age:              st.CurrentAge,
		DayInYear:        st.CurrentDayInYear,
		Money:            st.CurrentMoney,
		RemainingDays:    pressure.RemainingDays,
		Pressure:         pressure.Pressure,
		PressureText:     pressure.Text,
		WorkDays:         st.History.WorkDays,
		GambleDays:       st.History.GambleDays,
		Wins:             st.History.Wins,
		Losses:           st.History.Losses,
		WorkIncome:       st.Config.WorkIncome,
		DailyCost:        st.Config.DailyCost,
		GambleWinRate:    st.Config.GambleWinRate,
		GambleWinAmount:  st.Config.GambleWinAmount,
		GambleLossAmount: st.Config.GambleLossAmount,
	}
	if pressure.CurrentTarget != nil {
		req.TargetDescription = pressure.CurrentTarget.Description
		req.TargetAmount = pressure.CurrentTarget.AccumulatedAmount
	}
	return req
}

// abandonDecisionLocked cancels an in-flight decision acquisition, if any.
// The caller holds the lock.
func (e *Engine) abandonDecisionLocked() {
	if e.cancelDecision != nil {
		e.cancelDecision()
	}
}

func findCompleted(targets []Target, description string) (Target, bool) {
	for _, t := range targets {
		if t.Completed && t.Description == description {
			return t, true
		}
	}
	return Target{}, false
}
