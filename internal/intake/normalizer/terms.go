package normalizer

import "maps"

// defaultTerms maps Tagalog words that show up in typed orders to the English
// words used on the menu. Keys are lower-case and unaccented.
var defaultTerms = map[string]string{
	// food
	"baboy":     "pork",
	"manok":     "chicken",
	"baka":      "beef",
	"isda":      "fish",
	"hipon":     "shrimp",
	"kanin":     "rice",
	"itlog":     "egg",
	"gulay":     "vegetables",
	"sabaw":     "soup",
	"tinapay":   "bread",
	"pulot":     "honey",
	"tadyang":   "ribs",
	"inihaw":    "grilled",
	"prito":     "fried",
	"maanghang": "spicy",
	"matamis":   "sweet",
	"sarsa":     "sauce",

	// numbers
	"isa":    "one",
	"dalawa": "two",
	"tatlo":  "three",
	"apat":   "four",
	"lima":   "five",
	"anim":   "six",
	"pito":   "seven",
	"walo":   "eight",
	"siyam":  "nine",
	"sampu":  "ten",
}

// DefaultTerms returns a copy of the built-in term table.
func DefaultTerms() map[string]string {
	return maps.Clone(defaultTerms)
}
