package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Success Icon = iota
	Fail
	Progress
	Play
	Pause
	Stop
	Moon
	Heart
	Download
	Book
)

var icons = map[Icon]iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "💥",
		nerd:    "ﮊ",
		plain:   "✗",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "…",
		kaomoji: "(・_・)",
		squares: "🟨",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "♪(´▽｀)",
		squares: "🟦",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(￣ー￣)",
		squares: "⬜",
	},
	Stop: {
		emoji:   "⏹️",
		nerd:    "",
		plain:   "[]",
		kaomoji: "(－_－)",
		squares: "⬛",
	},
	Moon: {
		emoji:   "🌙",
		nerd:    "",
		plain:   "z",
		kaomoji: "(－_－) zzZ",
		squares: "🟪",
	},
	Heart: {
		emoji:   "💜",
		nerd:    "",
		plain:   "<3",
		kaomoji: "(♡˙︶˙♡)",
		squares: "🟥",
	},
	Download: {
		emoji:   "📥",
		nerd:    "",
		plain:   "v",
		kaomoji: "(っ˘ڡ˘ς)",
		squares: "🟫",
	},
	Book: {
		emoji:   "📖",
		nerd:    "",
		plain:   "#",
		kaomoji: "(・ω・)",
		squares: "🟧",
	},
}
