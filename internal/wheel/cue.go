package wheel

// Cue identifies a sound effect.
type Cue int

const (
	CueTick Cue = iota
	CueSubBanner
	CueVersus
	CueWin
	CueBonus
)

func (c Cue) String() string {
	switch c {
	case CueTick:
		return "tick"
	case CueSubBanner:
		return "sub-banner"
	case CueVersus:
		return "versus"
	case CueWin:
		return "win"
	case CueBonus:
		return "bonus"
	default:
		return "unknown"
	}
}

// CuePlayer plays sound effects. Play restarts the cue from the beginning.
type CuePlayer interface {
	Play(c Cue) error
}

type silentCues struct{}

func (silentCues) Play(Cue) error { return nil }

// cueGate lets each gated cue through at most once until reset.
type cueGate map[Cue]bool

func (g cueGate) allow(c Cue) bool {
	if g[c] {
		return false
	}
	g[c] = true
	return true
}
