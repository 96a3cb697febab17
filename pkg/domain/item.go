package domain

// Bin colors served by /api/rules. The first three are the playable bins
// of the sorting game; the server may add informational colors (compost,
// déchetterie...) that only show up in the guide.
const (
	BinJaune = "jaune"
	BinVerte = "verte"
	BinBleue = "bleue"
)

// PlayableBins are the sorting destinations offered during a game.
var PlayableBins = []string{BinJaune, BinVerte, BinBleue}

// Item is one sortable reference item: static data, loaded wholesale,
// never mutated by the client. Wire names follow the server's API.
type Item struct {
	Name        string   `json:"nom"`
	Icon        string   `json:"icon"`
	Bin         string   `json:"poubelle"`
	Description string   `json:"description"`
	Tip         string   `json:"bon_a_savoir"`
	Keywords    []string `json:"mots_cles"`
}

// RuleSet is the full sorting-rules dataset, keyed by bin color.
type RuleSet map[string][]Item
