package i18n

import "sync/atomic"

// Translator retrieves localized titles for error codes.
// data provides optional metadata to embed in the message (for example,
// "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "値が不正です"
		case "required":
			return "必須の値がありません"
		case "unknown_key":
			return "未知のキーです"
		case "invalid_enum":
			return "列挙値が不正です"
		case "invalid_format":
			return "書式が不正です"
		case "duplicate_key":
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid value"
		case "required":
			return "missing required value"
		case "unknown_key":
			return "unexpected key"
		case "invalid_enum":
			return "invalid enum value"
		case "invalid_format":
			return "invalid format"
		case "duplicate_key":
			return "duplicate key"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		}
	}
	return code
}

type holder struct{ tr Translator }

var current atomic.Pointer[holder]

func init() { current.Store(&holder{tr: dictTranslator{lang: "en"}}) }

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	current.Store(&holder{tr: dictTranslator{lang: lang}})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	current.Store(&holder{tr: tr})
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return current.Load().tr.Message(code, data) }
