package game

// ActionType tags the closed action vocabulary accepted by the reducer.
type ActionType string

const (
	ActionJoinGame           ActionType = "JOIN_GAME"
	ActionRollDice           ActionType = "ROLL_DICE"
	ActionEndTurn            ActionType = "END_TURN"
	ActionContinueTurn       ActionType = "CONTINUE_TURN"
	ActionBuyProperty        ActionType = "BUY_PROPERTY"
	ActionDeclineBuy         ActionType = "DECLINE_BUY"
	ActionPlaceBid           ActionType = "PLACE_BID"
	ActionConcedeAuction     ActionType = "CONCEDE_AUCTION"
	ActionBuildHouse         ActionType = "BUILD_HOUSE"
	ActionSellHouse          ActionType = "SELL_HOUSE"
	ActionMortgageProperty   ActionType = "MORTGAGE_PROPERTY"
	ActionUnmortgageProperty ActionType = "UNMORTGAGE_PROPERTY"
	ActionPayFine            ActionType = "PAY_FINE"
	ActionUseJailCard        ActionType = "USE_GOOJ_CARD"
	ActionDeclareBankruptcy  ActionType = "DECLARE_BANKRUPTCY"
	ActionProposeTrade       ActionType = "PROPOSE_TRADE"
	ActionAcceptTrade        ActionType = "ACCEPT_TRADE"
	ActionRejectTrade        ActionType = "REJECT_TRADE"
	ActionCancelTrade        ActionType = "CANCEL_TRADE"
	ActionResetGame          ActionType = "RESET_GAME"
	ActionDismissError       ActionType = "DISMISS_ERROR"
	ActionDismissToast       ActionType = "DISMISS_TOAST"
)

// PlayerSeed is the minimal record needed to (re)create a game player.
type PlayerSeed struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Action carries one player intent into the reducer. Type selects the kind;
// the remaining fields are payload for the kinds that need them. Die1/Die2
// override the random dice when both are in 1..6 (deterministic testing).
type Action struct {
	Type           ActionType   `json:"type"`
	PlayerID       string       `json:"playerId,omitempty"`
	Name           string       `json:"name,omitempty"`
	PropertyID     string       `json:"propertyId,omitempty"`
	Amount         int          `json:"amount,omitempty"`
	Die1           int          `json:"die1,omitempty"`
	Die2           int          `json:"die2,omitempty"`
	TargetPlayerID string       `json:"targetPlayerId,omitempty"`
	Offer          TradeOffer   `json:"offer,omitempty"`
	Request        TradeOffer   `json:"request,omitempty"`
	Players        []PlayerSeed `json:"players,omitempty"`
}
