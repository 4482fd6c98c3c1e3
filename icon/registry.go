package icon

// Icon identifies a status symbol.
type Icon int

const (
	Success Icon = iota
	Fail
	Warn
	Progress
	Skip
	Download
	Lock
)

var icons = map[Icon]*iconDef{
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Fail: {
		emoji:   "👹",
		nerd:    "",
		plain:   "✖",
		kaomoji: "(╯°□°)╯︵ ┻━┻",
		squares: "🟥",
	},
	Warn: {
		emoji:   "⚠️",
		nerd:    "",
		plain:   "!",
		kaomoji: "(⊙_⊙)",
		squares: "🟨",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "",
		plain:   "…",
		kaomoji: "(・_・ヾ",
		squares: "🟦",
	},
	Skip: {
		emoji:   "⏭️",
		nerd:    "",
		plain:   "»",
		kaomoji: "(￣ー￣)",
		squares: "⬜",
	},
	Download: {
		emoji:   "📥",
		nerd:    "",
		plain:   "↓",
		kaomoji: "(ง •̀_•́)ง",
		squares: "🟪",
	},
	Lock: {
		emoji:   "🔑",
		nerd:    "",
		plain:   "*",
		kaomoji: "(¬_¬)",
		squares: "⬛",
	},
}
