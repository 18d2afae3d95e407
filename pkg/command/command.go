package command

import (
	"strings"

	"github.com/jwebster45206/pompeii/pkg/world"
)

// Command is one normalized line of player input.
type Command struct {
	Raw  string // Trimmed input as typed, used for the echo line
	Text string // Lowercased, whitespace-collapsed input
	Verb string // First token
	Arg  string // Remaining tokens joined by single spaces
}

// Parse normalizes raw input. Empty input yields an empty Command.
func Parse(raw string) Command {
	trimmed := strings.TrimSpace(raw)
	tokens := strings.Fields(strings.ToLower(trimmed))
	if len(tokens) == 0 {
		return Command{Raw: trimmed}
	}
	return Command{
		Raw:  trimmed,
		Text: strings.Join(tokens, " "),
		Verb: tokens[0],
		Arg:  strings.Join(tokens[1:], " "),
	}
}

// vaseSynonyms are the names players use for the ancient vase.
var vaseSynonyms = []string{
	"vase",
	"ancient vase",
	"old vase",
	"roman vase",
	"pompeii vase",
	"ceramic vase",
	"antique vase",
	"mysterious vase",
	"strange vase",
	"ancient_vase",
}

// IsVase reports whether the argument names the vase. Matching is
// case-insensitive substring containment, so "my old vase please" counts.
func IsVase(arg string) bool {
	lower := strings.ToLower(arg)
	for _, syn := range vaseSynonyms {
		if strings.Contains(lower, syn) {
			return true
		}
	}
	return false
}

// IsMap reports whether the argument names a map item.
func IsMap(arg string) bool {
	return strings.Contains(strings.ToLower(arg), "map")
}

// ResolveItem maps a take/open argument to an item key. Vase synonyms
// resolve to the ancient vase and map names to the tourist map; anything
// else becomes snake_case.
func ResolveItem(arg string) world.ItemID {
	switch {
	case IsVase(arg):
		return world.AncientVase
	case IsMap(arg):
		return world.TouristMap
	}
	return world.ItemID(toKey(arg))
}

// StripArticle drops one leading "the", "a" or "an".
func StripArticle(arg string) string {
	for _, article := range []string{"the ", "a ", "an "} {
		if rest, ok := strings.CutPrefix(arg, article); ok {
			return strings.TrimSpace(rest)
		}
	}
	return arg
}

// NPCKey maps a talk argument to a resident key: "to the high priest"
// becomes "high_priest".
func NPCKey(arg string) world.NPCID {
	key := strings.TrimSpace(strings.ToLower(arg))
	key = strings.TrimPrefix(key, "to ")
	return world.NPCID(toKey(StripArticle(key)))
}

func toKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}
