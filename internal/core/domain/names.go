package domain

import "strings"

// displayNames maps common item names to their Chinese rendering. The skill
// speaks both languages; items outside the table simply have no display name.
var displayNames = map[string]string{
	"apples":    "苹果",
	"bananas":   "香蕉",
	"beer":      "啤酒",
	"bread":     "面包",
	"butter":    "黄油",
	"carrots":   "胡萝卜",
	"eggs":      "鸡蛋",
	"milk":      "牛奶",
	"noodles":   "面条",
	"rice":      "米",
	"soy sauce": "酱油",
	"tofu":      "豆腐",
}

// DisplayName returns the alternate-language rendering for an item, or ""
// when the item is not in the lookup table.
func DisplayName(name string) string {
	return displayNames[strings.ToLower(strings.TrimSpace(name))]
}
