package scoring

// Config holds the points awarded per finishing position in games with more
// than two entrants.
type Config struct {
	First  int `json:"first"`
	Second int `json:"second"`
	Third  int `json:"third"`
	Fourth int `json:"fourth"`
}

// TwoPlayerConfig holds the points awarded in games with two or fewer entrants.
type TwoPlayerConfig struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

// Tables bundles both point tables. It is read fresh from the settings store
// on every game creation and passed in by value, so a config change only
// affects games created afterwards.
type Tables struct {
	Standard  Config
	TwoPlayer TwoPlayerConfig
}

// GameResult holds the derived mappings for a game, computed once at
// creation time and frozen.
type GameResult struct {
	PlayerPoints   map[string]int // entrant key -> points
	TeamPoints     map[string]int // team id -> summed points
	TeamPlacements map[string]int // team id -> best (lowest) placement
}

// DefaultConfig returns the standard point table used until settings
// overwrite it.
func DefaultConfig() Config {
	return Config{First: 4, Second: 3, Third: 2, Fourth: 1}
}

// DefaultTwoPlayerConfig returns the two-player point table used until
// settings overwrite it.
func DefaultTwoPlayerConfig() TwoPlayerConfig {
	return TwoPlayerConfig{First: 4, Second: 1}
}

// DefaultTables returns both default tables.
func DefaultTables() Tables {
	return Tables{Standard: DefaultConfig(), TwoPlayer: DefaultTwoPlayerConfig()}
}
