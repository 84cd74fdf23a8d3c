package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "no_handler":
			return "ハンドラが登録されていません"
		case "bad_descriptor":
			return "型引数が不正です"
		case "invalid_type":
			return "型が不正です"
		case "tuple_arity":
			return "タプルの要素数が不足しています"
		case "union_no_match":
			return "どの候補型にも一致しません"
		case "invalid_enum":
			return "列挙メンバーに一致しません"
		case "invalid_literal":
			return "リテラル定数に一致しません"
		case "invalid_format":
			return "書式が不正です"
		}
	default: // "en"
		switch code {
		case "no_handler":
			return "no registered handler"
		case "bad_descriptor":
			return "invalid type arguments"
		case "invalid_type":
			return "invalid type"
		case "tuple_arity":
			return "tuple has fewer elements than declared positions"
		case "union_no_match":
			return "no union member matched"
		case "invalid_enum":
			return "no enum member matched"
		case "invalid_literal":
			return "no literal constant matched"
		case "invalid_format":
			return "invalid format"
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
