package sim

import "lifesim/pkg/constants"

// Snapshot projects the engine's state into an immutable client view. The
// log is truncated to the trailing window, target accumulation is re-derived,
// and the pressure summary is recomputed on every call.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() Snapshot {
	st := &e.state

	logs := st.Logs
	if len(logs) > constants.LogWindow {
		logs = logs[len(logs)-constants.LogWindow:]
	}
	logsCopy := make([]LogEntry, len(logs))
	copy(logsCopy, logs)

	return Snapshot{
		IsRunning:          st.Phase == PhaseRunning || st.Phase == PhasePauseRequested || st.Phase == PhaseWaitingForResume,
		IsPaused:           st.Phase == PhasePauseRequested || st.Phase == PhaseWaitingForResume,
		IsWaitingForResume: st.Phase == PhaseWaitingForResume,
		DayCount:           st.DayCount,
		CurrentAge:         st.CurrentAge,
		CurrentMoney:       st.CurrentMoney,
		CurrentDayInYear:   st.CurrentDayInYear,
		Targets:            AccumulateTargets(st.Targets),
		Logs:               logsCopy,
		Pressure:           EvaluatePressure(st),
		Stats:              st.Stats,
		History:            st.History,
	}
}
