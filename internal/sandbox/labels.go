package sandbox

// labels holds the HUD and feedback text for one language.
type labels struct {
	Hunger      string
	Thirst      string
	Energy      string
	Happy       string
	Food        string
	Water       string
	Paused      string
	PressSpace  string
	FoodAdded   string
	WaterFilled string
	Petted      string
	Reset       string
	Running     string
}

var labelSets = map[string]labels{
	"en": {
		Hunger:      "Hunger",
		Thirst:      "Thirst",
		Energy:      "Energy",
		Happy:       "Happy",
		Food:        "Food",
		Water:       "Water",
		Paused:      "PAUSED",
		PressSpace:  "Press SPACE to resume",
		FoodAdded:   "Food added!",
		WaterFilled: "Water filled!",
		Petted:      "Pet!",
		Reset:       "Habitat reset",
		Running:     "Running!",
	},
	"zh": {
		Hunger:      "饥饿",
		Thirst:      "口渴",
		Energy:      "精力",
		Happy:       "快乐",
		Food:        "食物",
		Water:       "水",
		Paused:      "已暂停",
		PressSpace:  "按空格键继续",
		FoodAdded:   "已添加食物！",
		WaterFilled: "已加水！",
		Petted:      "摸摸！",
		Reset:       "已重置",
		Running:     "跑起来！",
	},
}

// labelsFor returns the label set for lang, English if unknown.
func labelsFor(lang string) labels {
	if l, ok := labelSets[lang]; ok {
		return l
	}
	return labelSets["en"]
}
