package session

// Phase is the step of the session state machine. Exactly one is active.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoadingCave
	PhaseCountdown
	PhasePlaying
	PhaseResolving
	PhaseGameOver
	PhaseGameCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseLoadingCave:
		return "LoadingCave"
	case PhaseCountdown:
		return "Countdown"
	case PhasePlaying:
		return "Playing"
	case PhaseResolving:
		return "Resolving"
	case PhaseGameOver:
		return "GameOver"
	case PhaseGameCompleted:
		return "GameCompleted"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the phase ends a run.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseGameCompleted
}

// Outcome is the result carried by PhaseResolving.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSuccess
	OutcomeCrashed
	OutcomeOutOfTime
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeCrashed:
		return "Crashed"
	case OutcomeOutOfTime:
		return "OutOfTime"
	default:
		return "None"
	}
}

// Failed reports whether the outcome is a failure.
func (o Outcome) Failed() bool {
	return o == OutcomeCrashed || o == OutcomeOutOfTime
}

// BonusKind identifies a bonus box.
type BonusKind int

const (
	BonusFullShields BonusKind = iota
	BonusOneUp
)

func (k BonusKind) String() string {
	switch k {
	case BonusFullShields:
		return "FullShields"
	case BonusOneUp:
		return "OneUp"
	default:
		return "Unknown"
	}
}

// OptionPanel identifies a yes/no popup shown by the presenter.
type OptionPanel int

const (
	PanelNone OptionPanel = iota
	PanelGameOver
	PanelQuit
	PanelGameCompleted
)

// Prompt returns the popup text.
func (p OptionPanel) Prompt() string {
	switch p {
	case PanelGameOver:
		return "GAME OVER!!!\nPlay again?"
	case PanelQuit:
		return "Do you want to end this game?"
	case PanelGameCompleted:
		return "Congratulations!\nYou have completed the final cave!"
	default:
		return ""
	}
}

// SingleChoice reports whether the panel only has an OK button.
func (p OptionPanel) SingleChoice() bool {
	return p == PanelGameCompleted
}
