package command

// Entry describes one in-world command for the help listing.
type Entry struct {
	Name        string
	Description string
}

// Reference lists every command the interpreter understands, in the
// order it checks them.
var Reference = []Entry{
	{Name: "help", Description: "Show this list of commands"},
	{Name: "look", Description: "Describe where you are, the exits, items and people"},
	{Name: "take <item>", Description: "Pick up an item you can see"},
	{Name: "open <thing>", Description: "Open the vase, the map, or a door (doors only from the past)"},
	{Name: "inventory", Description: "List what you are carrying"},
	{Name: "go <direction>", Description: "Walk north, south, east or west"},
	{Name: "talk <name>", Description: "Speak with someone in ancient Pompeii (past only)"},
	{Name: "status", Description: "Report your progress on the mission"},
}
