package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "schema" or "attr").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "exclude_only_conflict":
			return "exclude と only は同時に指定できません"
		case "unknown_field":
			return "未知のフィールドです"
		case "duplicate_field":
			return "フィールドが重複しています"
		case "option_conflict":
			return "オプションが競合しています"
		case "invalid_const":
			return "定数値が不正です"
		case "invalid_identifier":
			return "識別子が不正です"
		case "duplicate_schema":
			return "スキーマ識別子が重複しています"
		case "invalid_type":
			return "型が不正です"
		case "schema_not_found":
			return "スキーマが見つかりません"
		case "ambiguous_schema":
			return "スキーマ名が曖昧です"
		case "missing_attribute":
			return "属性が見つかりません"
		case "pack_error":
			return "変換エラー"
		}
	default: // "en"
		switch code {
		case "exclude_only_conflict":
			return "exclude and only are mutually exclusive"
		case "unknown_field":
			return "unknown field"
		case "duplicate_field":
			return "duplicate field"
		case "option_conflict":
			return "conflicting options"
		case "invalid_const":
			return "invalid constant value"
		case "invalid_identifier":
			return "invalid identifier"
		case "duplicate_schema":
			return "duplicate schema identifier"
		case "invalid_type":
			return "invalid type"
		case "schema_not_found":
			return "schema not found"
		case "ambiguous_schema":
			return "ambiguous schema name"
		case "missing_attribute":
			return "missing attribute"
		case "pack_error":
			return "pack error"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
