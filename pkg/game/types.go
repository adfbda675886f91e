package game

// TileType categorizes the 40 board positions.
type TileType string

const (
	TileStreet         TileType = "street"
	TileRailroad       TileType = "railroad"
	TileUtility        TileType = "utility"
	TileChance         TileType = "chance"
	TileCommunityChest TileType = "community_chest"
	TileTax            TileType = "tax"
	TileGo             TileType = "go"
	TileJail           TileType = "jail"
	TileParking        TileType = "parking"
	TileGoToJail       TileType = "go_to_jail"
)

// PropertyGroup is the color (or transport) group a purchasable tile belongs to.
type PropertyGroup string

const (
	GroupBrown     PropertyGroup = "brown"
	GroupLightBlue PropertyGroup = "light_blue"
	GroupPink      PropertyGroup = "pink"
	GroupOrange    PropertyGroup = "orange"
	GroupRed       PropertyGroup = "red"
	GroupYellow    PropertyGroup = "yellow"
	GroupGreen     PropertyGroup = "green"
	GroupDarkBlue  PropertyGroup = "dark_blue"
	GroupRailroad  PropertyGroup = "railroad"
	GroupUtility   PropertyGroup = "utility"
)

// Tile is one static board position. The catalog is immutable for the
// lifetime of a game; ownership and improvements live on players.
type Tile struct {
	ID            string        `json:"id"`
	Index         int           `json:"index"` // 0-39
	Name          string        `json:"name"`
	Type          TileType      `json:"type"`
	Group         PropertyGroup `json:"group,omitempty"`
	Price         int           `json:"price,omitempty"`
	Rent          []int         `json:"rent,omitempty"` // streets: [base,1..4 houses,hotel]; railroads: tiers by count
	MortgageValue int           `json:"mortgageValue,omitempty"`
	HouseCost     int           `json:"houseCost,omitempty"`
}

// Player is one seat at the table. Money is signed; a player may go negative
// and must recover (sell, mortgage) or declare bankruptcy before ending the turn.
type Player struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Color             string         `json:"color"`
	Money             int            `json:"money"`
	Position          int            `json:"position"`
	InJail            bool           `json:"isInJail"`
	JailTurns         int            `json:"jailTurns"`
	Properties        []string       `json:"properties"` // tile IDs, no duplicates
	Houses            map[string]int `json:"houses"`     // tile ID -> 0..5 (5 = hotel)
	Mortgaged         []string       `json:"mortgaged"`  // subset of Properties
	GetOutOfJailCards int            `json:"getOutOfJailCards"`
}

// TradeOffer is one side of a trade: cash plus properties plus jail cards.
type TradeOffer struct {
	Money             int      `json:"money"`
	Properties        []string `json:"properties"`
	GetOutOfJailCards int      `json:"getOutOfJailCards"`
}

// TradeStatus tracks the lifecycle of a trade request.
type TradeStatus string

const (
	TradePending   TradeStatus = "pending"
	TradeAccepted  TradeStatus = "accepted"
	TradeRejected  TradeStatus = "rejected"
	TradeCancelled TradeStatus = "cancelled"
)

// TradeRequest is the single active proposal. At most one exists game-wide.
type TradeRequest struct {
	ID             string      `json:"id"`
	InitiatorID    string      `json:"initiatorId"`
	TargetPlayerID string      `json:"targetPlayerId"`
	Offer          TradeOffer  `json:"offer"`
	Request        TradeOffer  `json:"request"`
	Status         TradeStatus `json:"status"`
}

// AuctionState is the live auction started when the active player declines
// to buy. Participants is bid order; the highest bidder is always a member.
type AuctionState struct {
	PropertyID      string   `json:"propertyId"`
	CurrentBid      int      `json:"currentBid"`
	HighestBidderID string   `json:"highestBidderId,omitempty"`
	Participants    []string `json:"participants"`
}

// Phase is the turn phase. Auctions overlay the normal roll/action cycle.
type Phase string

const (
	PhaseRoll    Phase = "roll"
	PhaseAction  Phase = "action"
	PhaseAuction Phase = "auction"
	PhaseEnd     Phase = "end"
)

// GameState is the full authoritative snapshot broadcast after every accepted
// action. The reducer never mutates a GameState in place: it either returns
// the identical pointer (silent no-op) or a fresh value.
type GameState struct {
	Players         []Player      `json:"players"` // order defines turn sequence
	CurrentPlayerID string        `json:"currentPlayerId"`
	Dice            [2]int        `json:"dice"`
	DoublesCount    int           `json:"doublesCount"`
	Phase           Phase         `json:"phase"`
	Board           []Tile        `json:"board"`
	WinnerID        string        `json:"winner,omitempty"`
	Auction         *AuctionState `json:"auction,omitempty"`
	ActiveTrade     *TradeRequest `json:"activeTrade,omitempty"`
	ErrorMessage    string        `json:"errorMessage,omitempty"`
	ToastMessage    string        `json:"toastMessage,omitempty"`
	Logs            []string      `json:"logs"`
}

// PlayerByID returns a pointer into the Players slice, or nil.
func (s *GameState) PlayerByID(id string) *Player {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return &s.Players[i]
		}
	}
	return nil
}

// playerIndex returns the turn-order index of a player, or -1.
func (s *GameState) playerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// OwnerOf returns the player whose property set contains the tile, or nil.
func (s *GameState) OwnerOf(tileID string) *Player {
	for i := range s.Players {
		for _, pid := range s.Players[i].Properties {
			if pid == tileID {
				return &s.Players[i]
			}
		}
	}
	return nil
}

// HasProperty reports whether the player owns the tile.
func (p *Player) HasProperty(tileID string) bool {
	for _, id := range p.Properties {
		if id == tileID {
			return true
		}
	}
	return false
}

// IsMortgaged reports whether the player has mortgaged the tile.
func (p *Player) IsMortgaged(tileID string) bool {
	for _, id := range p.Mortgaged {
		if id == tileID {
			return true
		}
	}
	return false
}

// HouseCount returns the improvement level on a tile (0 if none recorded).
func (p *Player) HouseCount(tileID string) int {
	return p.Houses[tileID]
}

// clone deep-copies a player so reducer output never aliases reducer input.
func (p Player) clone() Player {
	c := p
	c.Properties = append([]string(nil), p.Properties...)
	c.Mortgaged = append([]string(nil), p.Mortgaged...)
	c.Houses = make(map[string]int, len(p.Houses))
	for k, v := range p.Houses {
		c.Houses[k] = v
	}
	return c
}

// clone deep-copies the mutable parts of the state. The board catalog is
// shared: it is immutable by contract.
func (s *GameState) clone() *GameState {
	c := *s
	c.Players = make([]Player, len(s.Players))
	for i := range s.Players {
		c.Players[i] = s.Players[i].clone()
	}
	c.Logs = append([]string(nil), s.Logs...)
	if s.Auction != nil {
		a := *s.Auction
		a.Participants = append([]string(nil), s.Auction.Participants...)
		c.Auction = &a
	}
	if s.ActiveTrade != nil {
		t := *s.ActiveTrade
		t.Offer.Properties = append([]string(nil), s.ActiveTrade.Offer.Properties...)
		t.Request.Properties = append([]string(nil), s.ActiveTrade.Request.Properties...)
		c.ActiveTrade = &t
	}
	return &c
}
