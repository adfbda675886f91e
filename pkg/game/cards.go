package game

// CardActionType tags the effect a draw applies to a single player.
type CardActionType string

const (
	CardMoney        CardActionType = "MONEY"
	CardMoveTo       CardActionType = "MOVE_TO"
	CardGoToJail     CardActionType = "GO_TO_JAIL"
	CardGetOutOfJail CardActionType = "GET_OUT_OF_JAIL"
	CardRepairs      CardActionType = "REPAIRS"
)

// CardAction is one card effect. Amount is signed for MONEY; Position and
// CollectGo apply to MOVE_TO; HouseCost/HotelCost to REPAIRS.
type CardAction struct {
	Type      CardActionType `json:"type"`
	Amount    int            `json:"amount,omitempty"`
	Position  int            `json:"position,omitempty"`
	CollectGo bool           `json:"collectGo,omitempty"`
	HouseCost int            `json:"houseCost,omitempty"`
	HotelCost int            `json:"hotelCost,omitempty"`
}

// Card is one chance or community chest entry.
type Card struct {
	ID     string     `json:"id"`
	Text   string     `json:"text"`
	Action CardAction `json:"action"`
}

// ChanceCards is the chance deck. Draws are uniform with replacement; the
// deck is never exhausted.
var ChanceCards = []Card{
	{ID: "c1", Text: "Advance to Go (Collect $200)", Action: CardAction{Type: CardMoveTo, Position: 0, CollectGo: true}},
	{ID: "c2", Text: "Bank error in your favor. Collect $200", Action: CardAction{Type: CardMoney, Amount: 200}},
	{ID: "c3", Text: "Doctor's fees. Pay $50", Action: CardAction{Type: CardMoney, Amount: -50}},
	{ID: "c4", Text: "Go to Jail. Go directly to Jail, do not pass Go, do not collect $200", Action: CardAction{Type: CardGoToJail}},
	{ID: "c5", Text: "Take a trip to Reading Railroad. If you pass Go, collect $200", Action: CardAction{Type: CardMoveTo, Position: 5, CollectGo: true}},
	{ID: "c6", Text: "Your building loan matures. Collect $150", Action: CardAction{Type: CardMoney, Amount: 150}},
	{ID: "c7", Text: "Pay poor tax of $15", Action: CardAction{Type: CardMoney, Amount: -15}},
	{ID: "c8", Text: "Advance to Boardwalk", Action: CardAction{Type: CardMoveTo, Position: 39}},
	{ID: "c9", Text: "Get Out of Jail Free", Action: CardAction{Type: CardGetOutOfJail}},
	{ID: "c10", Text: "Make general repairs on all your property. Pay $25 per house and $100 per hotel", Action: CardAction{Type: CardRepairs, HouseCost: 25, HotelCost: 100}},
}

// CommunityChestCards is the community chest deck.
var CommunityChestCards = []Card{
	{ID: "cc1", Text: "Advance to Go (Collect $200)", Action: CardAction{Type: CardMoveTo, Position: 0, CollectGo: true}},
	{ID: "cc2", Text: "Bank error in your favor. Collect $200", Action: CardAction{Type: CardMoney, Amount: 200}},
	{ID: "cc3", Text: "Doctor's fees. Pay $50", Action: CardAction{Type: CardMoney, Amount: -50}},
	{ID: "cc4", Text: "From sale of stock you get $50", Action: CardAction{Type: CardMoney, Amount: 50}},
	{ID: "cc5", Text: "Get Out of Jail Free", Action: CardAction{Type: CardGetOutOfJail}},
	{ID: "cc6", Text: "Go to Jail. Go directly to jail, do not pass Go, do not collect $200", Action: CardAction{Type: CardGoToJail}},
	{ID: "cc7", Text: "Grand Opera Night. Collect $50 from every player for opening night seats", Action: CardAction{Type: CardMoney, Amount: 50}},
	{ID: "cc8", Text: "Holiday Fund matures. Receive $100", Action: CardAction{Type: CardMoney, Amount: 100}},
	{ID: "cc9", Text: "Income tax refund. Collect $20", Action: CardAction{Type: CardMoney, Amount: 20}},
	{ID: "cc10", Text: "It is your birthday. Collect $10", Action: CardAction{Type: CardMoney, Amount: 10}},
	{ID: "cc11", Text: "Life insurance matures. Collect $100", Action: CardAction{Type: CardMoney, Amount: 100}},
	{ID: "cc12", Text: "Pay hospital fees of $100", Action: CardAction{Type: CardMoney, Amount: -100}},
	{ID: "cc13", Text: "Pay school fees of $50", Action: CardAction{Type: CardMoney, Amount: -50}},
	{ID: "cc14", Text: "Receive $25 consultancy fee", Action: CardAction{Type: CardMoney, Amount: 25}},
	{ID: "cc15", Text: "You are assessed for street repairs. Pay $40 per house and $115 per hotel", Action: CardAction{Type: CardRepairs, HouseCost: 40, HotelCost: 115}},
	{ID: "cc16", Text: "You have won second prize in a beauty contest. Collect $10", Action: CardAction{Type: CardMoney, Amount: 10}},
}

// ProcessCardEffect applies one card to a player and returns the updated
// player plus whether the draw incarcerated them (the reducer uses that to
// cancel doubles re-rolls and skip rent).
func ProcessCardEffect(p Player, card Card) (Player, bool) {
	out := p.clone()
	sentToJail := false

	switch card.Action.Type {
	case CardMoney:
		out.Money += card.Action.Amount

	case CardRepairs:
		houses, hotels := 0, 0
		for _, count := range out.Houses {
			if count == MaxHouses {
				hotels++
			} else {
				houses += count
			}
		}
		out.Money -= houses*card.Action.HouseCost + hotels*card.Action.HotelCost

	case CardGoToJail:
		out.Position = JailPosition
		out.InJail = true
		out.JailTurns = 0
		sentToJail = true

	case CardMoveTo:
		// Destination below the current position means a wrap past GO.
		if card.Action.CollectGo && card.Action.Position < out.Position {
			out.Money += PassGoBonus
		}
		out.Position = card.Action.Position

	case CardGetOutOfJail:
		out.GetOutOfJailCards++
	}

	return out, sentToJail
}
