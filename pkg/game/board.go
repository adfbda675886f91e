package game

// Board is the fixed 40-tile catalog, ordered by position. It is read-only;
// games share it by reference.
var Board = []Tile{
	{ID: "go", Index: 0, Name: "GO", Type: TileGo},
	{ID: "mediterranean", Index: 1, Name: "Mediterranean Avenue", Type: TileStreet, Group: GroupBrown, Price: 60, Rent: []int{2, 10, 30, 90, 160, 250}, MortgageValue: 30, HouseCost: 50},
	{ID: "chest1", Index: 2, Name: "Community Chest", Type: TileCommunityChest},
	{ID: "baltic", Index: 3, Name: "Baltic Avenue", Type: TileStreet, Group: GroupBrown, Price: 60, Rent: []int{4, 20, 60, 180, 320, 450}, MortgageValue: 30, HouseCost: 50},
	{ID: "tax1", Index: 4, Name: "Income Tax", Type: TileTax, Price: 200},
	{ID: "reading_rr", Index: 5, Name: "Reading Railroad", Type: TileRailroad, Group: GroupRailroad, Price: 200, Rent: []int{25, 50, 100, 200}, MortgageValue: 100},
	{ID: "oriental", Index: 6, Name: "Oriental Avenue", Type: TileStreet, Group: GroupLightBlue, Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, MortgageValue: 50, HouseCost: 50},
	{ID: "chance1", Index: 7, Name: "Chance", Type: TileChance},
	{ID: "vermont", Index: 8, Name: "Vermont Avenue", Type: TileStreet, Group: GroupLightBlue, Price: 100, Rent: []int{6, 30, 90, 270, 400, 550}, MortgageValue: 50, HouseCost: 50},
	{ID: "connecticut", Index: 9, Name: "Connecticut Avenue", Type: TileStreet, Group: GroupLightBlue, Price: 120, Rent: []int{8, 40, 100, 300, 450, 600}, MortgageValue: 60, HouseCost: 50},
	{ID: "jail", Index: 10, Name: "Jail / Just Visiting", Type: TileJail},
	{ID: "st_charles", Index: 11, Name: "St. Charles Place", Type: TileStreet, Group: GroupPink, Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, MortgageValue: 70, HouseCost: 100},
	{ID: "electric", Index: 12, Name: "Electric Company", Type: TileUtility, Group: GroupUtility, Price: 150, MortgageValue: 75},
	{ID: "states", Index: 13, Name: "States Avenue", Type: TileStreet, Group: GroupPink, Price: 140, Rent: []int{10, 50, 150, 450, 625, 750}, MortgageValue: 70, HouseCost: 100},
	{ID: "virginia", Index: 14, Name: "Virginia Avenue", Type: TileStreet, Group: GroupPink, Price: 160, Rent: []int{12, 60, 180, 500, 700, 900}, MortgageValue: 80, HouseCost: 100},
	{ID: "pennsylvania_rr", Index: 15, Name: "Pennsylvania Railroad", Type: TileRailroad, Group: GroupRailroad, Price: 200, Rent: []int{25, 50, 100, 200}, MortgageValue: 100},
	{ID: "st_james", Index: 16, Name: "St. James Place", Type: TileStreet, Group: GroupOrange, Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, MortgageValue: 90, HouseCost: 100},
	{ID: "chest2", Index: 17, Name: "Community Chest", Type: TileCommunityChest},
	{ID: "tennessee", Index: 18, Name: "Tennessee Avenue", Type: TileStreet, Group: GroupOrange, Price: 180, Rent: []int{14, 70, 200, 550, 750, 950}, MortgageValue: 90, HouseCost: 100},
	{ID: "new_york", Index: 19, Name: "New York Avenue", Type: TileStreet, Group: GroupOrange, Price: 200, Rent: []int{16, 80, 220, 600, 800, 1000}, MortgageValue: 100, HouseCost: 100},
	{ID: "parking", Index: 20, Name: "Free Parking", Type: TileParking},
	{ID: "kentucky", Index: 21, Name: "Kentucky Avenue", Type: TileStreet, Group: GroupRed, Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, MortgageValue: 110, HouseCost: 150},
	{ID: "chance2", Index: 22, Name: "Chance", Type: TileChance},
	{ID: "indiana", Index: 23, Name: "Indiana Avenue", Type: TileStreet, Group: GroupRed, Price: 220, Rent: []int{18, 90, 250, 700, 875, 1050}, MortgageValue: 110, HouseCost: 150},
	{ID: "illinois", Index: 24, Name: "Illinois Avenue", Type: TileStreet, Group: GroupRed, Price: 240, Rent: []int{20, 100, 300, 750, 925, 1100}, MortgageValue: 120, HouseCost: 150},
	{ID: "bo_rr", Index: 25, Name: "B. & O. Railroad", Type: TileRailroad, Group: GroupRailroad, Price: 200, Rent: []int{25, 50, 100, 200}, MortgageValue: 100},
	{ID: "atlantic", Index: 26, Name: "Atlantic Avenue", Type: TileStreet, Group: GroupYellow, Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, MortgageValue: 130, HouseCost: 150},
	{ID: "ventnor", Index: 27, Name: "Ventnor Avenue", Type: TileStreet, Group: GroupYellow, Price: 260, Rent: []int{22, 110, 330, 800, 975, 1150}, MortgageValue: 130, HouseCost: 150},
	{ID: "water", Index: 28, Name: "Water Works", Type: TileUtility, Group: GroupUtility, Price: 150, MortgageValue: 75},
	{ID: "marvin", Index: 29, Name: "Marvin Gardens", Type: TileStreet, Group: GroupYellow, Price: 280, Rent: []int{24, 120, 360, 850, 1025, 1200}, MortgageValue: 140, HouseCost: 150},
	{ID: "go_to_jail", Index: 30, Name: "Go To Jail", Type: TileGoToJail},
	{ID: "pacific", Index: 31, Name: "Pacific Avenue", Type: TileStreet, Group: GroupGreen, Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, MortgageValue: 150, HouseCost: 200},
	{ID: "north_carolina", Index: 32, Name: "North Carolina Avenue", Type: TileStreet, Group: GroupGreen, Price: 300, Rent: []int{26, 130, 390, 900, 1100, 1275}, MortgageValue: 150, HouseCost: 200},
	{ID: "chest3", Index: 33, Name: "Community Chest", Type: TileCommunityChest},
	{ID: "pennsylvania", Index: 34, Name: "Pennsylvania Avenue", Type: TileStreet, Group: GroupGreen, Price: 320, Rent: []int{28, 150, 450, 1000, 1200, 1400}, MortgageValue: 160, HouseCost: 200},
	{ID: "short_line", Index: 35, Name: "Short Line", Type: TileRailroad, Group: GroupRailroad, Price: 200, Rent: []int{25, 50, 100, 200}, MortgageValue: 100},
	{ID: "chance3", Index: 36, Name: "Chance", Type: TileChance},
	{ID: "park_place", Index: 37, Name: "Park Place", Type: TileStreet, Group: GroupDarkBlue, Price: 350, Rent: []int{35, 175, 500, 1100, 1300, 1500}, MortgageValue: 175, HouseCost: 200},
	{ID: "tax2", Index: 38, Name: "Luxury Tax", Type: TileTax, Price: 100},
	{ID: "boardwalk", Index: 39, Name: "Boardwalk", Type: TileStreet, Group: GroupDarkBlue, Price: 400, Rent: []int{50, 200, 600, 1400, 1700, 2000}, MortgageValue: 200, HouseCost: 200},
}

const (
	// BoardSize is the number of tiles on the loop.
	BoardSize = 40
	// JailPosition is where incarcerated players sit.
	JailPosition = 10
	// PassGoBonus is credited once per wrap past GO.
	PassGoBonus = 200
	// JailFine releases a jailed player when paid.
	JailFine = 50
	// MaxHouses is the hotel tier.
	MaxHouses = 5
	// StartingMoney is each player's opening balance.
	StartingMoney = 1500
)

// TileAt returns the tile at a board position.
func TileAt(pos int) *Tile {
	if pos < 0 || pos >= len(Board) {
		return nil
	}
	return &Board[pos]
}

// TileByID looks a tile up by identifier.
func TileByID(id string) *Tile {
	for i := range Board {
		if Board[i].ID == id {
			return &Board[i]
		}
	}
	return nil
}

// TilesInGroup returns every tile in a property group.
func TilesInGroup(group PropertyGroup) []*Tile {
	var tiles []*Tile
	for i := range Board {
		if Board[i].Group == group {
			tiles = append(tiles, &Board[i])
		}
	}
	return tiles
}
