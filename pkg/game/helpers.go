package game

// OwnsCompleteGroup reports whether every tile in the group belongs to the
// player. Complete ownership doubles unimproved street rent and is a
// precondition for building.
func OwnsCompleteGroup(p *Player, group PropertyGroup) bool {
	tiles := TilesInGroup(group)
	if len(tiles) == 0 {
		return false
	}
	for _, t := range tiles {
		if !p.HasProperty(t.ID) {
			return false
		}
	}
	return true
}

// CanBuildEvenly reports whether a house may go on the property under the
// even-building rule: you may only build on a property sitting at the
// minimum improvement level of its group.
func CanBuildEvenly(p *Player, propertyID string) bool {
	tile := TileByID(propertyID)
	if tile == nil || tile.Group == "" {
		return false
	}
	current := p.HouseCount(propertyID)
	min := current
	for _, t := range TilesInGroup(tile.Group) {
		if n := p.HouseCount(t.ID); n < min {
			min = n
		}
	}
	return current == min
}

// CanSellEvenly is the mirror rule: houses come off the most-improved
// property of the group first.
func CanSellEvenly(p *Player, propertyID string) bool {
	tile := TileByID(propertyID)
	if tile == nil || tile.Group == "" {
		return false
	}
	current := p.HouseCount(propertyID)
	max := current
	for _, t := range TilesInGroup(tile.Group) {
		if n := p.HouseCount(t.ID); n > max {
			max = n
		}
	}
	return current == max
}

// groupHasImprovements reports whether any tile of the group carries houses.
// Mortgaging requires the whole group to be unimproved.
func groupHasImprovements(p *Player, group PropertyGroup) bool {
	for _, t := range TilesInGroup(group) {
		if p.HouseCount(t.ID) > 0 {
			return true
		}
	}
	return false
}
