package world

// ItemKind groups items by the role they play in the quest.
type ItemKind string

const (
	KindVase             ItemKind = "vase"
	KindMap              ItemKind = "map"
	KindVolcanicEvidence ItemKind = "volcanic_evidence"
	KindHistoricalRecord ItemKind = "historical_record"
	KindKey              ItemKind = "key"
)

// Item is static data about a takeable object.
type Item struct {
	ID   ItemID   `json:"id"`
	Kind ItemKind `json:"kind"`
	Hint string   `json:"hint,omitempty"` // Extra line shown when the item is picked up
}

var items = map[ItemID]Item{
	AncientVase: {ID: AncientVase, Kind: KindVase,
		Hint: "The vase is warm to the touch. Something inside it seems to hum."},
	TouristMap: {ID: TouristMap, Kind: KindMap,
		Hint: "Type 'open map' to unfold it."},
	VolcanicRockSample: {ID: VolcanicRockSample, Kind: KindVolcanicEvidence,
		Hint: "Fresh pumice from the eruption layer. Proof of what Vesuvius is about to do."},
	SulfurCrystals: {ID: SulfurCrystals, Kind: KindVolcanicEvidence,
		Hint: "The springs are turning to sulfur. The mountain is waking."},
	AshLayerCore: {ID: AshLayerCore, Kind: KindVolcanicEvidence,
		Hint: "Metres of ash, layer on layer. This is how deep the city will be buried."},
	SeismographReadout: {ID: SeismographReadout, Kind: KindVolcanicEvidence,
		Hint: "The readout reconstructs the tremors of August 79 AD. They are getting stronger."},
	HistoricalAccounts: {ID: HistoricalAccounts, Kind: KindHistoricalRecord,
		Hint: "Pliny the Younger describes the eruption hour by hour. A city official would find it hard to argue with."},
	EarthquakeRecords: {ID: EarthquakeRecords, Kind: KindHistoricalRecord,
		Hint: "Records of the earthquake of 62 AD. The same warnings came before it."},
	PlasterCastPhoto: {ID: PlasterCastPhoto, Kind: KindHistoricalRecord,
		Hint: "Photographs of the casts of those who did not flee. Hard to look at."},
	CeremonialKey: {ID: CeremonialKey, Kind: KindKey,
		Hint: "An ornate bronze key marked with Apollo's lyre. It must open something at the temple."},
	VillaKey: {ID: VillaKey, Kind: KindKey,
		Hint: "A heavy iron key stamped with a senator's seal. It must open a villa door."},
	OfficialSeal: {ID: OfficialSeal, Kind: KindKey,
		Hint: "The guard at the Tabularium door will let the bearer of this seal pass."},
}

// GetItem returns the static data for an item.
func GetItem(id ItemID) (Item, bool) {
	it, ok := items[id]
	return it, ok
}

// IsMapItem reports whether the item unfolds into the map panel.
func IsMapItem(id ItemID) bool {
	it, ok := items[id]
	return ok && it.Kind == KindMap
}

// ItemOrder is the canonical order for listing items.
var ItemOrder = []ItemID{
	AncientVase, TouristMap,
	VolcanicRockSample, SulfurCrystals, AshLayerCore, SeismographReadout,
	HistoricalAccounts, EarthquakeRecords, PlasterCastPhoto,
	CeremonialKey, VillaKey, OfficialSeal,
}
