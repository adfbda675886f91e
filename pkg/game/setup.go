package game

// NewGameState returns a fresh, empty game ready for players to join.
func NewGameState() *GameState {
	return &GameState{
		Players:      []Player{},
		Dice:         [2]int{1, 1},
		DoublesCount: 0,
		Phase:        PhaseRoll,
		Board:        Board,
		Logs:         []string{},
	}
}

// NewPlayer returns a player record with standard opening holdings.
// The color is left empty; callers assign one.
func NewPlayer(id, name string) Player {
	return Player{
		ID:         id,
		Name:       name,
		Money:      StartingMoney,
		Position:   0,
		Properties: []string{},
		Houses:     map[string]int{},
		Mortgaged:  []string{},
	}
}
