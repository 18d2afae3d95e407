package world

// MapLines is the tourist map, one string per row. North is up.
var MapLines = []string{
	"          [Temple of Apollo]     [Villa of the Mysteries]",
	"                  |                         |",
	"[Tabularium]--[Forum]------------------[Macellum]",
	"                  |",
	"           [Porta Marina]--[Stabian Baths]",
	"                  |",
	"              [Harbor]",
}
