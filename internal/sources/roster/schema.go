package roster

// File is the top-level structure of roster.yaml.
// It doubles as the snapshot format mirrored to Redis, hence the json tags.
type File struct {
	Sources []SourceRecord `yaml:"sources" json:"sources,omitempty"`
	Players []PlayerRecord `yaml:"players" json:"players,omitempty"`
	Teams   []TeamRecord   `yaml:"teams" json:"teams,omitempty"`
}

// SourceRecord describes a tournament. Players and teams may also name
// sources that are not listed here; those get no link and no brackets.
type SourceRecord struct {
	Name     string          `yaml:"name" json:"name"`
	Link     string          `yaml:"link,omitempty" json:"link,omitempty"`
	Brackets []BracketRecord `yaml:"brackets,omitempty" json:"brackets,omitempty"`
}

type BracketRecord struct {
	Name       string            `yaml:"name" json:"name"`
	Placements []PlacementRecord `yaml:"placements,omitempty" json:"placements,omitempty"`
}

type PlacementRecord struct {
	Place   int      `yaml:"place" json:"place"`
	Team    string   `yaml:"team,omitempty" json:"team,omitempty"`
	Players []string `yaml:"players,omitempty" json:"players,omitempty"`
}

type PlayerRecord struct {
	ID          string        `yaml:"id" json:"id"`
	Names       []string      `yaml:"names" json:"names"`
	Country     string        `yaml:"country,omitempty" json:"country,omitempty"` // ISO 3166 alpha-2, e.g. "GB"
	Top500      bool          `yaml:"top500,omitempty" json:"top500,omitempty"`
	FriendCodes []string      `yaml:"friend_codes,omitempty" json:"friend_codes,omitempty"`
	Twitch      []string      `yaml:"twitch,omitempty" json:"twitch,omitempty"`
	Twitter     []string      `yaml:"twitter,omitempty" json:"twitter,omitempty"`
	Battlefy    []string      `yaml:"battlefy,omitempty" json:"battlefy,omitempty"`
	Discord     []string      `yaml:"discord,omitempty" json:"discord,omitempty"`
	Weapons     []string      `yaml:"weapons,omitempty" json:"weapons,omitempty"`
	Plus        []PlusRecord  `yaml:"plus,omitempty" json:"plus,omitempty"`
	Sources     []string      `yaml:"sources,omitempty" json:"sources,omitempty"`
	Teams       []StintRecord `yaml:"teams,omitempty" json:"teams,omitempty"` // most recent first
}

type PlusRecord struct {
	Level int    `yaml:"level" json:"level"`
	Date  string `yaml:"date" json:"date"` // YYYY-MM or YYYY-MM-DD
}

type StintRecord struct {
	ID      string   `yaml:"id" json:"id"`
	Sources []string `yaml:"sources,omitempty" json:"sources,omitempty"`
}

type TeamRecord struct {
	ID       string   `yaml:"id" json:"id"`
	Names    []string `yaml:"names" json:"names"`
	Tags     []string `yaml:"tags,omitempty" json:"tags,omitempty"`
	Division string   `yaml:"division,omitempty" json:"division,omitempty"`
	Battlefy string   `yaml:"battlefy,omitempty" json:"battlefy,omitempty"`
	Sources  []string `yaml:"sources,omitempty" json:"sources,omitempty"`
}
