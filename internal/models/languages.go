package models

// sourceLanguages are the recognition languages KlicStudio can transcribe.
var sourceLanguages = map[string]struct{}{
	"zh_cn": {},
	"en":    {},
	"ja":    {},
	"tr":    {},
	"de":    {},
	"ko":    {},
	"ru":    {},
}

// translationLanguages are the languages KlicStudio can translate subtitles into.
var translationLanguages = map[string]struct{}{
	"zh_cn": {}, "zh_tw": {}, "en": {}, "ja": {}, "pinyin": {}, "mid": {},
	"ms": {}, "th": {}, "vi": {}, "fil": {}, "ko": {}, "ar": {}, "fr": {},
	"de": {}, "it": {}, "ru": {}, "pt": {}, "es": {}, "hi": {}, "bn": {},
	"he": {}, "fa": {}, "af": {}, "sv": {}, "fi": {}, "da": {}, "no": {},
	"nl": {}, "el": {}, "uk": {}, "hu": {}, "pl": {}, "tr": {}, "sr": {},
	"hr": {}, "cs": {}, "sw": {}, "yo": {}, "ha": {}, "am": {}, "om": {},
	"is": {}, "lb": {}, "ca": {}, "ro": {}, "ro2": {}, "sk": {}, "bs": {},
	"mk": {}, "sl": {}, "bg": {}, "lv": {}, "lt": {}, "et": {}, "mt": {},
	"sq": {},
}

// IsSourceLanguage reports whether code is a supported recognition language.
func IsSourceLanguage(code string) bool {
	_, ok := sourceLanguages[code]
	return ok
}

// IsTranslationLanguage reports whether code is a supported translation target.
func IsTranslationLanguage(code string) bool {
	_, ok := translationLanguages[code]
	return ok
}
