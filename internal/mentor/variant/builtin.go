package variant

import "sort"

// DefaultName is the variant used when none is configured.
const DefaultName = "mentor"

var builtins = map[string]Variant{
	"mentor": {
		Title:       "Mentor AI",
		Description: "AI メンターとの対話を通じてメンタルケアと成長をサポートするチャットアプリケーション",
		Heading:     "Mentor AI へようこそ",
		Welcome:     "何でもお気軽にお話しください。",
		Placeholder: "メッセージを入力してください...",
		Reply:       "こんにちは！メンターAIです。どのようなことでお悩みでしょうか？お気軽にお話しください。",
	},
	"companion": {
		Title:       "ChatAI",
		Description: "AIメンタリングチャット",
		Heading:     "ChatAI へようこそ",
		Welcome:     "今日の気持ちを聞かせてください。",
		Placeholder: "メッセージを入力...",
		Greeting:    "こんにちは！今日はどんなことを話しましょうか？",
		Reply:       "「{{input}}」について、もう少し詳しく教えていただけますか？",
	},
}

// Builtin returns the built-in variant with the given name.
func Builtin(name string) (*Variant, bool) {
	v, ok := builtins[name]
	if !ok {
		return nil, false
	}
	v.Name = name
	return &v, true
}

// BuiltinNames returns the names of all built-in variants, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
