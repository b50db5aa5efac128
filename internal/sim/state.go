// Package sim implements the day-stepping simulation engine: target
// accumulation, the pressure heuristic, action execution, and the
// run/pause/resume/reset state machine.
package sim

// Config holds the run parameters for a simulation. It is immutable for the
// duration of a run except that Resume may replace it while preserving the
// original StartAge.
type Config struct {
	StartAge         int     `json:"startAge" yaml:"startAge"`
	DeadlineAge      int     `json:"deadlineAge" yaml:"deadlineAge"`
	WorkIncome       float64 `json:"workIncome" yaml:"workIncome"`
	DailyCost        float64 `json:"dailyCost" yaml:"dailyCost"`
	GambleWinRate    float64 `json:"gambleWinRate" yaml:"gambleWinRate"`
	GambleWinAmount  float64 `json:"gambleWinAmount" yaml:"gambleWinAmount"`
	GambleLossAmount float64 `json:"gambleLossAmount" yaml:"gambleLossAmount"`
}

// Target is a named savings goal with a deadline age. Targets are cumulative:
// later targets require funding all earlier-deadline ones too. The
// accumulated fields are derived and recomputed on every accumulation pass;
// Completed and CompletedAge are the only externally mutated fields.
type Target struct {
	Description       string  `json:"description" yaml:"description"`
	Amount            float64 `json:"amount" yaml:"amount"`
	DeadlineAge       int     `json:"deadlineAge" yaml:"deadlineAge"`
	Completed         bool    `json:"completed" yaml:"-"`
	CompletedAge      int     `json:"completedAge,omitempty" yaml:"-"`
	AccumulatedAmount float64 `json:"accumulatedAmount" yaml:"-"`
	RemainingAmount   float64 `json:"remainingAmount" yaml:"-"`
}

// History tracks per-action tallies across the run.
type History struct {
	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
	TotalGambles int `json:"totalGambles"`
	WorkDays     int `json:"workDays"`
	GambleDays   int `json:"gambleDays"`
}

// Stats tracks aggregate bookkeeping across the run.
type Stats struct {
	TotalDays     int     `json:"totalDays"`
	WorkCount     int     `json:"workCount"`
	GambleCount   int     `json:"gambleCount"`
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
}

// PressureInfo is the derived urgency summary for the current state. It is
// recomputed on every evaluation and never stored long-term.
type PressureInfo struct {
	Pressure       int     `json:"pressure"`
	Emoji          string  `json:"emoji"`
	Text           string  `json:"text"`
	Reason         string  `json:"reason"`
	CurrentTarget  *Target `json:"currentTarget,omitempty"`
	RemainingMoney float64 `json:"remainingMoney,omitempty"`
	RemainingDays  int     `json:"remainingDays,omitempty"`
	DailyRequired  float64 `json:"dailyRequired,omitempty"`
}

// CompletedTarget summarizes a target completion for a log entry.
type CompletedTarget struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// LogEntry is the immutable record appended once per completed day.
type LogEntry struct {
	Day             int              `json:"day"`
	Age             int              `json:"age"`
	DayInYear       int              `json:"dayInYear"`
	Action          string           `json:"action"`
	Income          float64          `json:"income"`
	DailyCost       float64          `json:"dailyCost"`
	NetIncome       float64          `json:"netIncome"`
	TotalMoney      float64          `json:"totalMoney"`
	Pressure        int              `json:"pressure"`
	PressureEmoji   string           `json:"pressureEmoji"`
	PressureText    string           `json:"pressureText"`
	PressureReason  string           `json:"pressureReason"`
	Description     string           `json:"description"`
	DecisionReason  string           `json:"decisionReason"`
	IsAI            bool             `json:"isAI"`
	YearPassed      bool             `json:"yearPassed"`
	CompletedTarget *CompletedTarget `json:"completedTarget"`
	Stats           Stats            `json:"stats"`
}

// Snapshot is the immutable client-facing projection of the simulation state.
type Snapshot struct {
	IsRunning          bool         `json:"isRunning"`
	IsPaused           bool         `json:"isPaused"`
	IsWaitingForResume bool         `json:"isWaitingForResume"`
	DayCount           int          `json:"dayCount"`
	CurrentAge         int          `json:"currentAge"`
	CurrentMoney       float64      `json:"currentMoney"`
	CurrentDayInYear   int          `json:"currentDayInYear"`
	Targets            []Target     `json:"targets"`
	Logs               []LogEntry   `json:"logs"`
	Pressure           PressureInfo `json:"pressure"`
	Stats              Stats        `json:"stats"`
	History            History      `json:"history"`
}

// Phase is the lifecycle state of a simulation run. Modeling it as a single
// enumeration keeps the flag combinations the client sees consistent.
type Phase int

const (
	// PhaseIdle means no run has been started.
	PhaseIdle Phase = iota
	// PhaseRunning means day steps are accepted.
	PhaseRunning
	// PhasePauseRequested means a pause was requested but the current or
	// next day step is still allowed to finish.
	PhasePauseRequested
	// PhaseWaitingForResume means a pause has been observed at a day
	// boundary; steps are rejected until Resume.
	PhaseWaitingForResume
	// PhaseFinished means the run ended, either by timeout or success.
	PhaseFinished
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePauseRequested:
		return "pause-requested"
	case PhaseWaitingForResume:
		return "waiting-for-resume"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Finish reasons reported when a run ends.
const (
	FinishTimeout = "timeout"
	FinishSuccess = "success"
)

// State is the mutable simulation state exclusively owned by an Engine.
type State struct {
	Phase            Phase
	FinishReason     string
	Config           Config
	Targets          []Target
	CurrentAge       int
	CurrentDayInYear int
	DayCount         int
	CurrentMoney     float64
	Speed            int
	Logs             []LogEntry
	History          History
	Stats            Stats
}

func newState() State {
	return State{
		Phase:            PhaseIdle,
		CurrentDayInYear: 1,
		Targets:          []Target{},
		Logs:             []LogEntry{},
	}
}
