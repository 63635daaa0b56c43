package domain

// WordSet is one vocabulary entry pairing a native word with its translation
type WordSet struct {
	Category        string `json:"category"`
	NativeLanguage  string `json:"nativeLanguage"`
	ForeignLanguage string `json:"foreignLanguage"`
	NativeWord      string `json:"nativeWord"`
	ForeignWord     string `json:"foreignWord"`
}

// Side selects one half of a word set
type Side string

const (
	SideNative  Side = "native"
	SideForeign Side = "foreign"
)

// Other returns the opposite side
func (s Side) Other() Side {
	if s == SideForeign {
		return SideNative
	}
	return SideForeign
}

// Word returns the word shown for the given side
func (w WordSet) Word(side Side) string {
	if side == SideForeign {
		return w.ForeignWord
	}
	return w.NativeWord
}

// Language returns the language code of the given side
func (w WordSet) Language(side Side) string {
	if side == SideForeign {
		return w.ForeignLanguage
	}
	return w.NativeLanguage
}
