package game

import (
	"fmt"
	"math/rand"
	"time"

	uuid "github.com/satori/go.uuid"
)

// Reducer applies actions to game states. It is pure with respect to its
// input state: the returned value is either the identical pointer (silent
// no-op: wrong actor, wrong phase, structurally inapplicable) or a freshly
// built state. Randomness is confined to the injected source; tests pass
// explicit die values on the roll action and substitute single-card decks.
type Reducer struct {
	rng *rand.Rand

	// Chance and Community are the decks drawn from with replacement.
	// Exposed so tests can pin the next draw.
	Chance    []Card
	Community []Card
}

// NewReducer builds a reducer around the given random source. A nil source
// gets a time-seeded one.
func NewReducer(rng *rand.Rand) *Reducer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Reducer{
		rng:       rng,
		Chance:    ChanceCards,
		Community: CommunityChestCards,
	}
}

// Apply is the single entry point of the rules engine.
func (r *Reducer) Apply(s *GameState, a Action) *GameState {
	switch a.Type {
	case ActionJoinGame:
		return r.applyJoin(s, a)
	case ActionRollDice:
		return r.applyRoll(s, a)
	case ActionEndTurn:
		return r.applyEndTurn(s, a)
	case ActionContinueTurn:
		return r.applyContinueTurn(s, a)
	case ActionBuyProperty:
		return r.applyBuy(s, a)
	case ActionDeclineBuy:
		return r.applyDeclineBuy(s, a)
	case ActionPlaceBid:
		return r.applyPlaceBid(s, a)
	case ActionConcedeAuction:
		return r.applyConcedeAuction(s, a)
	case ActionBuildHouse:
		return r.applyBuildHouse(s, a)
	case ActionSellHouse:
		return r.applySellHouse(s, a)
	case ActionMortgageProperty:
		return r.applyMortgage(s, a)
	case ActionUnmortgageProperty:
		return r.applyUnmortgage(s, a)
	case ActionPayFine:
		return r.applyPayFine(s, a)
	case ActionUseJailCard:
		return r.applyUseJailCard(s, a)
	case ActionDeclareBankruptcy:
		return r.applyBankruptcy(s, a)
	case ActionProposeTrade:
		return r.applyProposeTrade(s, a)
	case ActionAcceptTrade:
		return r.applyAcceptTrade(s, a)
	case ActionRejectTrade:
		return r.applyRejectTrade(s, a)
	case ActionCancelTrade:
		return r.applyCancelTrade(s, a)
	case ActionResetGame:
		return r.applyReset(s, a)
	case ActionDismissError:
		if s.ErrorMessage == "" {
			return s
		}
		next := s.clone()
		next.ErrorMessage = ""
		return next
	case ActionDismissToast:
		if s.ToastMessage == "" {
			return s
		}
		next := s.clone()
		next.ToastMessage = ""
		return next
	default:
		return s
	}
}

// withError rejects an action with a user-facing reason. Everything except
// the error field is carried over unchanged.
func withError(s *GameState, msg string) *GameState {
	next := s.clone()
	next.ErrorMessage = msg
	return next
}

// begin starts a successful mutation: fresh clone with stale transient
// messages cleared.
func begin(s *GameState) *GameState {
	next := s.clone()
	next.ErrorMessage = ""
	next.ToastMessage = ""
	return next
}

func logf(s *GameState, format string, args ...interface{}) {
	s.Logs = append(s.Logs, fmt.Sprintf(format, args...))
}

func (r *Reducer) rollDie() int {
	return r.rng.Intn(6) + 1
}

func (r *Reducer) drawCard(deck []Card) Card {
	return deck[r.rng.Intn(len(deck))]
}

func (r *Reducer) randomColor() string {
	return fmt.Sprintf("#%06x", r.rng.Intn(0xffffff+1))
}

// ----- join / reset -----

func (r *Reducer) applyJoin(s *GameState, a Action) *GameState {
	if s.PlayerByID(a.PlayerID) != nil {
		return s
	}
	next := begin(s)
	p := NewPlayer(a.PlayerID, a.Name)
	p.Color = r.randomColor()
	next.Players = append(next.Players, p)
	if len(next.Players) == 1 {
		next.CurrentPlayerID = p.ID
	}
	logf(next, "%s joined the game", p.Name)
	return next
}

func (r *Reducer) applyReset(s *GameState, a Action) *GameState {
	if len(a.Players) == 0 {
		return s
	}
	next := NewGameState()
	for _, seed := range a.Players {
		p := NewPlayer(seed.ID, seed.Name)
		if seed.Color != "" {
			p.Color = seed.Color
		} else {
			p.Color = r.randomColor()
		}
		next.Players = append(next.Players, p)
	}
	next.CurrentPlayerID = next.Players[0].ID
	logf(next, "New game started with %d players", len(next.Players))
	return next
}

// ----- rolling and movement -----

func (r *Reducer) applyRoll(s *GameState, a Action) *GameState {
	if s.CurrentPlayerID != a.PlayerID || s.Phase != PhaseRoll {
		return s
	}

	die1, die2 := a.Die1, a.Die2
	if die1 < 1 || die1 > 6 || die2 < 1 || die2 > 6 {
		die1, die2 = r.rollDie(), r.rollDie()
	}
	isDouble := die1 == die2
	sum := die1 + die2

	next := begin(s)
	next.Dice = [2]int{die1, die2}
	p := next.PlayerByID(a.PlayerID)
	logf(next, "%s rolled %d and %d", p.Name, die1, die2)

	if p.InJail {
		r.resolveJailRoll(next, p, isDouble, sum)
		return next
	}

	// Speeding: three consecutive doubles go straight to jail, movement
	// discarded.
	if isDouble && next.DoublesCount+1 >= 3 {
		sendToJail(p)
		next.DoublesCount = 0
		next.Phase = PhaseAction
		logf(next, "%s was caught speeding and sent to jail", p.Name)
		return next
	}
	if isDouble {
		next.DoublesCount++
	} else {
		next.DoublesCount = 0
	}

	r.movePlayer(next, p, sum)
	r.resolveTile(next, p, sum)
	next.Phase = PhaseAction
	return next
}

func (r *Reducer) resolveJailRoll(next *GameState, p *Player, isDouble bool, sum int) {
	next.DoublesCount = 0
	switch {
	case isDouble:
		// Doubles release immediately. The escape roll moves the player
		// but does not count toward speeding or grant a re-roll.
		p.InJail = false
		p.JailTurns = 0
		logf(next, "%s rolled doubles and escaped jail", p.Name)
		r.movePlayer(next, p, sum)
		r.resolveTile(next, p, sum)
	case p.JailTurns >= 2:
		// Third failed attempt: forced release, standard fine.
		p.InJail = false
		p.JailTurns = 0
		p.Money -= JailFine
		logf(next, "%s paid the $%d fine after three turns in jail", p.Name, JailFine)
		r.movePlayer(next, p, sum)
		r.resolveTile(next, p, sum)
	default:
		p.JailTurns++
		logf(next, "%s stays in jail (%d failed attempts)", p.Name, p.JailTurns)
	}
	next.Phase = PhaseAction
}

// movePlayer advances a player clockwise. A numerically lower destination
// means the board wrapped past GO.
func (r *Reducer) movePlayer(next *GameState, p *Player, steps int) {
	old := p.Position
	p.Position = (old + steps) % BoardSize
	if p.Position < old {
		p.Money += PassGoBonus
		logf(next, "%s passed GO and collected $%d", p.Name, PassGoBonus)
	}
}

func sendToJail(p *Player) {
	p.Position = JailPosition
	p.InJail = true
	p.JailTurns = 0
}

// resolveTile applies the landed tile's effect chain: card draws, the
// go-to-jail tile, taxes, and finally rent. A player who ends up in jail
// during the chain pays no rent.
func (r *Reducer) resolveTile(next *GameState, p *Player, diceSum int) {
	tile := TileAt(p.Position)
	if tile == nil {
		return
	}

	switch tile.Type {
	case TileChance:
		r.applyCard(next, p, r.drawCard(r.Chance))
	case TileCommunityChest:
		r.applyCard(next, p, r.drawCard(r.Community))
	case TileGoToJail:
		sendToJail(p)
		next.DoublesCount = 0
		logf(next, "%s was sent to jail", p.Name)
		return
	case TileTax:
		p.Money -= tile.Price
		logf(next, "%s paid $%d %s", p.Name, tile.Price, tile.Name)
	}

	if p.InJail {
		return
	}
	r.settleRent(next, p, diceSum)
}

func (r *Reducer) applyCard(next *GameState, p *Player, card Card) {
	logf(next, "%s drew: %s", p.Name, card.Text)
	updated, sentToJail := ProcessCardEffect(*p, card)
	*p = updated
	if sentToJail {
		next.DoublesCount = 0
	}
}

// settleRent charges the mover for landing on another player's property.
// Mortgaged properties collect nothing.
func (r *Reducer) settleRent(next *GameState, p *Player, diceSum int) {
	tile := TileAt(p.Position)
	if tile == nil || tile.Price == 0 || tile.Type == TileTax {
		return
	}
	owner := next.OwnerOf(tile.ID)
	if owner == nil || owner.ID == p.ID {
		return
	}
	if owner.IsMortgaged(tile.ID) {
		return
	}
	rent := rentFor(owner, tile, diceSum)
	if rent <= 0 {
		return
	}
	p.Money -= rent
	owner.Money += rent
	logf(next, "%s paid $%d rent to %s for %s", p.Name, rent, owner.Name, tile.Name)
}

// rentFor computes the rent owed on a tile the owner holds unmortgaged.
func rentFor(owner *Player, tile *Tile, diceSum int) int {
	switch tile.Type {
	case TileRailroad:
		count := 0
		for _, t := range TilesInGroup(GroupRailroad) {
			if owner.HasProperty(t.ID) {
				count++
			}
		}
		idx := count - 1
		if idx < 0 {
			idx = 0
		}
		if idx >= len(tile.Rent) {
			idx = len(tile.Rent) - 1
		}
		return tile.Rent[idx]
	case TileUtility:
		count := 0
		for _, t := range TilesInGroup(GroupUtility) {
			if owner.HasProperty(t.ID) {
				count++
			}
		}
		if count >= 2 {
			return diceSum * 10
		}
		return diceSum * 4
	case TileStreet:
		houses := owner.HouseCount(tile.ID)
		if houses == 0 && OwnsCompleteGroup(owner, tile.Group) {
			return tile.Rent[0] * 2
		}
		if houses >= len(tile.Rent) {
			houses = len(tile.Rent) - 1
		}
		return tile.Rent[houses]
	default:
		if len(tile.Rent) > 0 {
			return tile.Rent[0]
		}
		return 0
	}
}

// ----- buying and auctions -----

func purchasable(tile *Tile) bool {
	switch tile.Type {
	case TileStreet, TileRailroad, TileUtility:
		return tile.Price > 0
	default:
		return false
	}
}

func (r *Reducer) applyBuy(s *GameState, a Action) *GameState {
	if s.CurrentPlayerID != a.PlayerID || s.Phase != PhaseAction {
		return s
	}
	tile := TileByID(a.PropertyID)
	if tile == nil || !purchasable(tile) {
		return s
	}
	if s.OwnerOf(tile.ID) != nil {
		return withError(s, "Property is already owned.")
	}
	p := s.PlayerByID(a.PlayerID)
	if p.Money < tile.Price {
		return withError(s, "Insufficient funds.")
	}

	next := begin(s)
	buyer := next.PlayerByID(a.PlayerID)
	buyer.Money -= tile.Price
	buyer.Properties = append(buyer.Properties, tile.ID)
	next.ToastMessage = fmt.Sprintf("You bought %s.", tile.Name)
	logf(next, "%s bought %s for $%d", buyer.Name, tile.Name, tile.Price)
	return next
}

func (r *Reducer) applyDeclineBuy(s *GameState, a Action) *GameState {
	if s.CurrentPlayerID != a.PlayerID || s.Phase != PhaseAction || s.Auction != nil {
		return s
	}
	p := s.PlayerByID(a.PlayerID)
	tile := TileAt(p.Position)
	if tile == nil || !purchasable(tile) || s.OwnerOf(tile.ID) != nil {
		return s
	}
	if s.ActiveTrade != nil {
		return withError(s, "Resolve the pending trade before starting an auction.")
	}

	next := begin(s)
	participants := make([]string, 0, len(next.Players))
	for i := range next.Players {
		participants = append(participants, next.Players[i].ID)
	}
	next.Auction = &AuctionState{
		PropertyID:   tile.ID,
		CurrentBid:   0,
		Participants: participants,
	}
	next.Phase = PhaseAuction
	logf(next, "%s declined to buy %s; auction started", p.Name, tile.Name)
	return next
}

func auctionParticipantIndex(a *AuctionState, playerID string) int {
	for i, id := range a.Participants {
		if id == playerID {
			return i
		}
	}
	return -1
}

func (r *Reducer) applyPlaceBid(s *GameState, a Action) *GameState {
	if s.Phase != PhaseAuction || s.Auction == nil {
		return s
	}
	if auctionParticipantIndex(s.Auction, a.PlayerID) < 0 {
		return s
	}
	if a.Amount <= s.Auction.CurrentBid {
		return withError(s, "Bid must be higher than current bid.")
	}
	p := s.PlayerByID(a.PlayerID)
	if p == nil || p.Money < a.Amount {
		return withError(s, "Insufficient funds.")
	}

	next := begin(s)
	next.Auction.CurrentBid = a.Amount
	next.Auction.HighestBidderID = a.PlayerID
	logf(next, "%s bid $%d", p.Name, a.Amount)

	// Bidding against an empty field wins outright.
	if len(next.Auction.Participants) == 1 {
		resolveAuction(next)
	}
	return next
}

func (r *Reducer) applyConcedeAuction(s *GameState, a Action) *GameState {
	if s.Phase != PhaseAuction || s.Auction == nil {
		return s
	}
	idx := auctionParticipantIndex(s.Auction, a.PlayerID)
	if idx < 0 {
		return s
	}
	if s.Auction.HighestBidderID == a.PlayerID {
		return withError(s, "The highest bidder cannot concede.")
	}

	next := begin(s)
	au := next.Auction
	au.Participants = append(au.Participants[:idx], au.Participants[idx+1:]...)
	if p := next.PlayerByID(a.PlayerID); p != nil {
		logf(next, "%s conceded the auction", p.Name)
	}

	switch {
	case len(au.Participants) == 0:
		// Nobody left and no bid: close without a sale.
		tile := TileByID(au.PropertyID)
		logf(next, "Auction for %s closed with no bids", tile.Name)
		next.Auction = nil
		next.Phase = PhaseAction
	case len(au.Participants) == 1 && au.Participants[0] == au.HighestBidderID:
		resolveAuction(next)
	}
	return next
}

// resolveAuction awards the property to the high bidder and returns control
// to the action phase.
func resolveAuction(next *GameState) {
	au := next.Auction
	tile := TileByID(au.PropertyID)
	winner := next.PlayerByID(au.HighestBidderID)
	winner.Money -= au.CurrentBid
	winner.Properties = append(winner.Properties, tile.ID)
	logf(next, "%s won the auction for %s at $%d", winner.Name, tile.Name, au.CurrentBid)
	next.Auction = nil
	next.Phase = PhaseAction
}

// ----- building, selling, mortgages -----

func (r *Reducer) applyBuildHouse(s *GameState, a Action) *GameState {
	if s.CurrentPlayerID != a.PlayerID || s.Phase != PhaseAction {
		return s
	}
	tile := TileByID(a.PropertyID)
	if tile == nil || tile.Type != TileStreet {
		return s
	}
	p := s.PlayerByID(a.PlayerID)
	switch {
	case !p.HasProperty(tile.ID):
		return withError(s, "You do not own this property.")
	case !OwnsCompleteGroup(p, tile.Group):
		return withError(s, "You must own the complete color group to build.")
	case p.HouseCount(tile.ID) >= MaxHouses:
		return withError(s, "This property is fully improved.")
	case p.Money < tile.HouseCost:
		return withError(s, "Insufficient funds.")
	case !CanBuildEvenly(p, tile.ID):
		return withError(s, "You must build evenly across the group.")
	case s.DoublesCount > 0:
		return withError(s, "Finish your doubles roll before building.")
	}

	next := begin(s)
	owner := next.PlayerByID(a.PlayerID)
	owner.Money -= tile.HouseCost
	owner.Houses[tile.ID]++
	logf(next, "%s built on %s (level %d)", owner.Name, tile.Name, owner.Houses[tile.ID])
	return next
}

func (r *Reducer) applySellHouse(s *GameState, a Action) *GameState {
	if s.CurrentPlayerID != a.PlayerID || s.Phase != PhaseAction {
		return s
	}
	tile := TileByID(a.PropertyID)
	if tile == nil || tile.Type != TileStreet {
		return s
	}
	p := s.PlayerByID(a.PlayerID)
	switch {
	case !p.HasProperty(tile.ID):
		return withError(s, "You do not own this property.")
	case p.HouseCount(tile.ID) == 0:
		return withError(s, "There is nothing to sell on this property.")
	case !CanSellEvenly(p, tile.ID):
		return withError(s, "You must sell evenly across the group.")
	}

	next := begin(s)
	owner := next.PlayerByID(a.PlayerID)
	owner.Houses[tile.ID]--
	if owner.Houses[tile.ID] == 0 {
		delete(owner.Houses, tile.ID)
	}
	refund := tile.HouseCost / 2
	owner.Money += refund
	logf(next, "%s sold a house on %s for $%d", owner.Name, tile.Name, refund)
	return next
}

func (r *Reducer) applyMortgage(s *GameState, a Action) *GameState {
	if s.CurrentPlayerID != a.PlayerID || s.Phase != PhaseAction {
		return s
	}
	tile := TileByID(a.PropertyID)
	if tile == nil || !purchasable(tile) {
		return s
	}
	p := s.PlayerByID(a.PlayerID)
	switch {
	case !p.HasProperty(tile.ID):
		return withError(s, "You do not own this property.")
	case p.IsMortgaged(tile.ID):
		return withError(s, "Property is already mortgaged.")
	case tile.Group != "" && groupHasImprovements(p, tile.Group):
		return withError(s, "Sell all houses in this group before mortgaging.")
	}

	next := begin(s)
	owner := next.PlayerByID(a.PlayerID)
	owner.Mortgaged = append(owner.Mortgaged, tile.ID)
	owner.Money += tile.MortgageValue
	logf(next, "%s mortgaged %s for $%d", owner.Name, tile.Name, tile.MortgageValue)
	return next
}

// unmortgageCost is the mortgage value plus a 10% surcharge, rounded up.
func unmortgageCost(tile *Tile) int {
	return tile.MortgageValue + (tile.MortgageValue+9)/10
}

func (r *Reducer) applyUnmortgage(s *GameState, a Action) *GameState {
	if s.CurrentPlayerID != a.PlayerID || s.Phase != PhaseAction {
		return s
	}
	tile := TileByID(a.PropertyID)
	if tile == nil || !purchasable(tile) {
		return s
	}
	p := s.PlayerByID(a.PlayerID)
	cost := unmortgageCost(tile)
	switch {
	case !p.HasProperty(tile.ID):
		return withError(s, "You do not own this property.")
	case !p.IsMortgaged(tile.ID):
		return withError(s, "Property is not mortgaged.")
	case p.Money < cost:
		return withError(s, "Insufficient funds.")
	}

	next := begin(s)
	owner := next.PlayerByID(a.PlayerID)
	for i, id := range owner.Mortgaged {
		if id == tile.ID {
			owner.Mortgaged = append(owner.Mortgaged[:i], owner.Mortgaged[i+1:]...)
			break
		}
	}
	owner.Money -= cost
	logf(next, "%s lifted the mortgage on %s for $%d", owner.Name, tile.Name, cost)
	return next
}

// ----- jail -----

func (r *Reducer) applyPayFine(s *GameState, a Action) *GameState {
	if s.CurrentPlayerID != a.PlayerID || s.Phase != PhaseRoll {
		return s
	}
	p := s.PlayerByID(a.PlayerID)
	if !p.InJail {
		return s
	}
	next := begin(s)
	freed := next.PlayerByID(a.PlayerID)
	freed.Money -= JailFine
	freed.InJail = false
	freed.JailTurns = 0
	logf(next, "%s paid the $%d fine and left jail", freed.Name, JailFine)
	return next
}

func (r *Reducer) applyUseJailCard(s *GameState, a Action) *GameState {
	if s.CurrentPlayerID != a.PlayerID || s.Phase != PhaseRoll {
		return s
	}
	p := s.PlayerByID(a.PlayerID)
	if !p.InJail {
		return s
	}
	if p.GetOutOfJailCards == 0 {
		return withError(s, "You don't have a Get Out of Jail Free card.")
	}
	next := begin(s)
	freed := next.PlayerByID(a.PlayerID)
	freed.GetOutOfJailCards--
	freed.InJail = false
	freed.JailTurns = 0
	logf(next, "%s used a Get Out of Jail Free card", freed.Name)
	return next
}

// ----- turn flow -----

func (r *Reducer) applyContinueTurn(s *GameState, a Action) *GameState {
	if s.CurrentPlayerID != a.PlayerID || s.Phase != PhaseAction || s.DoublesCount == 0 {
		return s
	}
	next := begin(s)
	next.Phase = PhaseRoll
	logf(next, "%s rolls again after doubles", s.PlayerByID(a.PlayerID).Name)
	return next
}

func (r *Reducer) applyEndTurn(s *GameState, a Action) *GameState {
	if s.CurrentPlayerID != a.PlayerID {
		return s
	}
	// A live auction must resolve before the turn can pass, and a decided
	// game has no turns left to end.
	if s.Phase == PhaseAuction || s.Phase == PhaseEnd {
		return s
	}
	p := s.PlayerByID(a.PlayerID)
	if p == nil {
		return s
	}
	if p.Money < 0 {
		return withError(s, "You cannot end your turn with a negative balance. Sell, mortgage, or declare bankruptcy.")
	}

	next := begin(s)
	idx := next.playerIndex(a.PlayerID)
	nextPlayer := next.Players[(idx+1)%len(next.Players)]
	next.CurrentPlayerID = nextPlayer.ID
	next.Phase = PhaseRoll
	next.DoublesCount = 0
	logf(next, "%s ended their turn; %s to roll", p.Name, nextPlayer.Name)
	return next
}

func (r *Reducer) applyBankruptcy(s *GameState, a Action) *GameState {
	idx := s.playerIndex(a.PlayerID)
	if idx < 0 {
		return s
	}

	next := begin(s)
	bankrupt := next.Players[idx]
	wasCurrent := next.CurrentPlayerID == a.PlayerID
	heirID := next.Players[(idx+1)%len(next.Players)].ID

	next.Players = append(next.Players[:idx], next.Players[idx+1:]...)
	logf(next, "%s declared bankruptcy", bankrupt.Name)

	// A pending trade with the departed player cannot survive.
	if t := next.ActiveTrade; t != nil && (t.InitiatorID == a.PlayerID || t.TargetPlayerID == a.PlayerID) {
		next.ActiveTrade = nil
	}
	if au := next.Auction; au != nil {
		if i := auctionParticipantIndex(au, a.PlayerID); i >= 0 {
			au.Participants = append(au.Participants[:i], au.Participants[i+1:]...)
			if au.HighestBidderID == a.PlayerID {
				au.CurrentBid = 0
				au.HighestBidderID = ""
			}
			switch {
			case len(au.Participants) == 0:
				next.Auction = nil
				next.Phase = PhaseAction
			case len(au.Participants) == 1 && au.Participants[0] == au.HighestBidderID:
				resolveAuction(next)
			}
		}
	}

	if len(next.Players) == 0 {
		next.CurrentPlayerID = ""
		next.Phase = PhaseEnd
		return next
	}
	if len(next.Players) == 1 {
		winner := next.Players[0]
		next.WinnerID = winner.ID
		next.CurrentPlayerID = winner.ID
		next.Phase = PhaseEnd
		logf(next, "%s wins the game", winner.Name)
		return next
	}

	if wasCurrent {
		next.CurrentPlayerID = heirID
		if next.Phase != PhaseAuction {
			next.Phase = PhaseRoll
		}
		next.DoublesCount = 0
	}
	return next
}

// ----- trades -----

// validateOffer checks that a player currently holds everything in a bundle.
func validateOffer(p *Player, offer TradeOffer, possessive string) string {
	if p.Money < offer.Money {
		return fmt.Sprintf("%s enough money for this offer.", possessive)
	}
	for _, id := range offer.Properties {
		if !p.HasProperty(id) {
			return fmt.Sprintf("%s a property in this offer.", possessive)
		}
	}
	if p.GetOutOfJailCards < offer.GetOutOfJailCards {
		return fmt.Sprintf("%s enough Get Out of Jail Free cards.", possessive)
	}
	return ""
}

func (r *Reducer) applyProposeTrade(s *GameState, a Action) *GameState {
	initiator := s.PlayerByID(a.PlayerID)
	target := s.PlayerByID(a.TargetPlayerID)
	if initiator == nil || target == nil || initiator.ID == target.ID {
		return s
	}
	if s.ActiveTrade != nil {
		return withError(s, "A trade is already pending.")
	}
	if s.Auction != nil {
		return withError(s, "You cannot trade during an auction.")
	}
	if msg := validateOffer(initiator, a.Offer, "You don't have"); msg != "" {
		return withError(s, msg)
	}

	next := begin(s)
	next.ActiveTrade = &TradeRequest{
		ID:             uuid.NewV4().String(),
		InitiatorID:    a.PlayerID,
		TargetPlayerID: a.TargetPlayerID,
		Offer:          a.Offer,
		Request:        a.Request,
		Status:         TradePending,
	}
	logf(next, "%s proposed a trade to %s", initiator.Name, target.Name)
	return next
}

func (r *Reducer) applyAcceptTrade(s *GameState, a Action) *GameState {
	trade := s.ActiveTrade
	if trade == nil {
		return s
	}
	if trade.TargetPlayerID != a.PlayerID {
		return withError(s, "Only the trade's recipient can accept it.")
	}
	initiator := s.PlayerByID(trade.InitiatorID)
	target := s.PlayerByID(trade.TargetPlayerID)
	if initiator == nil || target == nil {
		return s
	}
	// Both sides are re-validated at acceptance: holdings may have changed
	// since the proposal.
	if msg := validateOffer(initiator, trade.Offer, "The initiator no longer has"); msg != "" {
		return withError(s, msg)
	}
	if msg := validateOffer(target, trade.Request, "You no longer have"); msg != "" {
		return withError(s, msg)
	}

	next := begin(s)
	from := next.PlayerByID(trade.InitiatorID)
	to := next.PlayerByID(trade.TargetPlayerID)

	from.Money += trade.Request.Money - trade.Offer.Money
	to.Money += trade.Offer.Money - trade.Request.Money
	for _, id := range trade.Offer.Properties {
		transferProperty(from, to, id)
	}
	for _, id := range trade.Request.Properties {
		transferProperty(to, from, id)
	}
	from.GetOutOfJailCards += trade.Request.GetOutOfJailCards - trade.Offer.GetOutOfJailCards
	to.GetOutOfJailCards += trade.Offer.GetOutOfJailCards - trade.Request.GetOutOfJailCards

	next.ActiveTrade = nil
	next.ToastMessage = "Trade accepted."
	logf(next, "%s accepted a trade from %s", to.Name, from.Name)
	return next
}

// transferProperty moves a tile between players, carrying its mortgaged
// status and any improvements with it.
func transferProperty(from, to *Player, tileID string) {
	for i, id := range from.Properties {
		if id == tileID {
			from.Properties = append(from.Properties[:i], from.Properties[i+1:]...)
			break
		}
	}
	to.Properties = append(to.Properties, tileID)

	for i, id := range from.Mortgaged {
		if id == tileID {
			from.Mortgaged = append(from.Mortgaged[:i], from.Mortgaged[i+1:]...)
			to.Mortgaged = append(to.Mortgaged, tileID)
			break
		}
	}
	if n, ok := from.Houses[tileID]; ok {
		delete(from.Houses, tileID)
		to.Houses[tileID] = n
	}
}

func (r *Reducer) applyRejectTrade(s *GameState, a Action) *GameState {
	trade := s.ActiveTrade
	if trade == nil {
		return s
	}
	if trade.TargetPlayerID != a.PlayerID {
		return withError(s, "Only the trade's recipient can reject it.")
	}
	next := begin(s)
	next.ActiveTrade = nil
	next.ToastMessage = "Trade rejected."
	logf(next, "%s rejected the trade", s.PlayerByID(a.PlayerID).Name)
	return next
}

func (r *Reducer) applyCancelTrade(s *GameState, a Action) *GameState {
	trade := s.ActiveTrade
	if trade == nil {
		return s
	}
	if trade.InitiatorID != a.PlayerID {
		return withError(s, "Only the initiator can cancel the trade.")
	}
	next := begin(s)
	next.ActiveTrade = nil
	next.ToastMessage = "Trade cancelled."
	logf(next, "%s cancelled the trade", s.PlayerByID(a.PlayerID).Name)
	return next
}
