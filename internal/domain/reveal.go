package domain

// RevealState represents which words of the current word set are visible
type RevealState string

const (
	RevealUnloaded RevealState = "unloaded"
	RevealNative   RevealState = "native"
	RevealBoth     RevealState = "both"
	RevealForeign  RevealState = "foreign"
)

// RevealMode selects how a reveal cycle ends
type RevealMode string

const (
	// RevealModeBoth shows both words after the first one, then asks for the next word set.
	RevealModeBoth RevealMode = "both"
	// RevealModeFlip flips to the other word and waits for the supplier's rotation.
	RevealModeFlip RevealMode = "flip"
)

// Band is the color band of the countdown bar
type Band string

const (
	BandRelax       Band = "relax"
	BandConcentrate Band = "concentrate"
	BandHurryUp     Band = "hurryup"
)

// BandFor returns the band for the remaining countdown percentage
func BandFor(percent int) Band {
	switch {
	case percent > 66:
		return BandRelax
	case percent > 33:
		return BandConcentrate
	default:
		return BandHurryUp
	}
}

// CountdownStep returns how many percent the bar shrinks per update.
// Floor division, so the bar may stop short of zero.
func CountdownStep(timeoutMs, updateIntervalMs int) int {
	if timeoutMs <= 0 || updateIntervalMs <= 0 {
		return 0
	}
	return 100 * updateIntervalMs / timeoutMs
}
