package ai

import "strings"

// DefaultLanguage is used for any unrecognized language code.
const DefaultLanguage = "en"

// FallbackMessage is returned when the API answers without usable content.
const FallbackMessage = "无法获取生成的提交信息"

var systemPrompts = map[string]string{
	"zh": "生成精简的SVN提交信息：\n" +
		"1. 控制在15字以内\n" +
		"2. 只提取最核心动作和目的\n" +
		"3. 忽略具体文件名和细节\n" +
		"4. 不列举具体项目\n" +
		"5. 不使用标点符号\n" +
		"6. 严禁输出任何推理过程或解释\n" +
		"7. 只输出提交信息本身，不要有其他任何内容",
	"en": "Generate minimal SVN commit message:\n" +
		"1. Maximum 8 words\n" +
		"2. Extract only core action and purpose\n" +
		"3. Ignore specific filenames and details\n" +
		"4. No listing of items\n" +
		"5. No punctuation\n" +
		"6. Strictly forbidden to output any reasoning process\n" +
		"7. Output only the commit message itself with no other content",
	"ja": "簡潔なSVNコミットメッセージ：\n" +
		"1. 15字以内\n" +
		"2. 核心動作と目的のみ\n" +
		"3. ファイル名や詳細は無視\n" +
		"4. 項目列挙禁止\n" +
		"5. 句読点使用禁止\n" +
		"6. 推論過程の出力は厳禁\n" +
		"7. コミットメッセージのみを出力し他の内容は含めない",
}

type userPromptText struct {
	lead  string
	extra string
}

var userPrompts = map[string]userPromptText{
	"zh": {lead: "请根据以下代码变更生成提交信息：", extra: "额外要求："},
	"en": {lead: "Generate a commit message for the following code changes:", extra: "Additional requirement: "},
	"ja": {lead: "以下のコード変更に基づいてコミットメッセージを生成してください：", extra: "追加要件："},
}

// SupportedLanguages returns the recognized language codes.
func SupportedLanguages() []string {
	return []string{"zh", "en", "ja"}
}

// NormalizeLanguage maps a configured language code to a supported one.
func NormalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if _, ok := systemPrompts[lang]; ok {
		return lang
	}
	return DefaultLanguage
}

// SystemPrompt returns the system instruction for the given language code.
func SystemPrompt(lang string) string {
	return systemPrompts[NormalizeLanguage(lang)]
}

// UserPrompt builds the user message: a lead-in, the diff and, when present,
// the user's extra instruction.
func UserPrompt(lang, diff, extra string) string {
	text := userPrompts[NormalizeLanguage(lang)]

	var sb strings.Builder
	sb.WriteString(text.lead)
	sb.WriteString("\n\n")
	sb.WriteString(diff)
	if extra = strings.TrimSpace(extra); extra != "" {
		sb.WriteString("\n\n")
		sb.WriteString(text.extra)
		sb.WriteString(extra)
	}
	return sb.String()
}
