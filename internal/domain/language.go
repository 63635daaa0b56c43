package domain

var languageFlags = map[string]string{
	"es": "🇲🇽",
	"en": "🇺🇸",
	"fr": "🇫🇷",
	"de": "🇩🇪",
	"it": "🇮🇹",
	"pt": "🇵🇹",
}

// Flag returns the display flag for a language code, or an empty string
func Flag(code string) string {
	return languageFlags[code]
}
