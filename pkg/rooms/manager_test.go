package rooms

import (
	"math/rand"
	"testing"

	"github.com/trade-tycoon/backend/pkg/game"
)

func newTestManager() *Manager {
	rng := rand.New(rand.NewSource(1))
	return NewManager(game.NewReducer(rng), rng)
}

func TestCreateRoom(t *testing.T) {
	m := newTestManager()
	roomID, hostID := m.CreateRoom("HostPlayer")

	if len(roomID) != 8 {
		t.Errorf("room id %q should be 8 characters", roomID)
	}
	state, ok := m.Room(roomID)
	if !ok {
		t.Fatal("room should exist")
	}
	if len(state.Players) != 1 {
		t.Fatalf("players = %d, want 1", len(state.Players))
	}
	host := state.Players[0]
	if host.ID != hostID || host.Name != "HostPlayer" || !host.IsHost {
		t.Errorf("host seat wrong: %+v", host)
	}
	if state.Status != StatusLobby {
		t.Errorf("status = %q, want lobby", state.Status)
	}
}

func TestJoinRoom(t *testing.T) {
	m := newTestManager()
	roomID, _ := m.CreateRoom("Host")

	userID, state, err := m.JoinRoom(roomID, "Player2")
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if userID == "" {
		t.Error("joiner should get an id")
	}
	if len(state.Players) != 2 || state.Players[1].Name != "Player2" {
		t.Errorf("lobby after join: %+v", state.Players)
	}
	if state.Players[1].IsHost {
		t.Error("joiner must not be host")
	}
	if state.Players[0].Color == state.Players[1].Color {
		t.Error("colors should be distinct")
	}
}

func TestJoinUnknownRoom(t *testing.T) {
	m := newTestManager()
	if _, _, err := m.JoinRoom("INVALID", "Player2"); err != ErrRoomNotFound {
		t.Errorf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestJoinFullRoom(t *testing.T) {
	m := newTestManager()
	roomID, _ := m.CreateRoom("Host")
	for i := 1; i < MaxPlayers; i++ {
		if _, _, err := m.JoinRoom(roomID, "Player"); err != nil {
			t.Fatalf("seat %d: %v", i, err)
		}
	}

	if _, _, err := m.JoinRoom(roomID, "Player9"); err != ErrRoomFull {
		t.Errorf("err = %v, want ErrRoomFull", err)
	}
	state, _ := m.Room(roomID)
	if len(state.Players) != MaxPlayers {
		t.Errorf("players = %d, want %d", len(state.Players), MaxPlayers)
	}
}

func TestJoinStartedGame(t *testing.T) {
	m := newTestManager()
	roomID, hostID := m.CreateRoom("Host")
	m.JoinRoom(roomID, "P2")
	if _, err := m.StartGame(roomID, hostID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if _, _, err := m.JoinRoom(roomID, "LateJoiner"); err != ErrGameStarted {
		t.Errorf("err = %v, want ErrGameStarted", err)
	}
}

func TestUpdatePlayer(t *testing.T) {
	m := newTestManager()
	roomID, hostID := m.CreateRoom("Host")

	state, err := m.UpdatePlayer(roomID, hostID, "NewName", "#000000")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if state.Players[0].Name != "NewName" || state.Players[0].Color != "#000000" {
		t.Errorf("seat after update: %+v", state.Players[0])
	}

	if _, err := m.UpdatePlayer("INVALID", hostID, "X", "#000"); err != ErrRoomNotFound {
		t.Errorf("err = %v, want ErrRoomNotFound", err)
	}
	if _, err := m.UpdatePlayer(roomID, "ghost", "X", "#000"); err != ErrUnknownPlayer {
		t.Errorf("err = %v, want ErrUnknownPlayer", err)
	}
}

func TestUpdatePlayerTruncatesName(t *testing.T) {
	m := newTestManager()
	roomID, hostID := m.CreateRoom("Host")

	state, err := m.UpdatePlayer(roomID, hostID, "AVeryLongNameThatKeepsGoing", "#123456")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := state.Players[0].Name; len(got) != MaxNameLength {
		t.Errorf("name %q has length %d, want %d", got, len(got), MaxNameLength)
	}
}

func TestUpdatePlayerKeepsColorWhenTaken(t *testing.T) {
	m := newTestManager()
	roomID, hostID := m.CreateRoom("Host")
	p2ID, _, _ := m.JoinRoom(roomID, "P2")

	m.UpdatePlayer(roomID, hostID, "Host", "#000000")
	state, err := m.UpdatePlayer(roomID, p2ID, "P2", "#000000")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	p2 := state.Players[1]
	if p2.Color == "#000000" {
		t.Error("color collision should be ignored")
	}
	if p2.Name != "P2" {
		t.Error("rename should still apply")
	}
}

func TestReconnect(t *testing.T) {
	m := newTestManager()
	roomID, hostID := m.CreateRoom("Host")

	state, gs, err := m.Reconnect(roomID, hostID)
	if err != nil {
		t.Fatalf("lobby reconnect failed: %v", err)
	}
	if state.RoomID != roomID || gs != nil {
		t.Errorf("lobby reconnect returned roomID=%q gs=%v", state.RoomID, gs)
	}

	m.JoinRoom(roomID, "P2")
	m.StartGame(roomID, hostID)
	_, gs, err = m.Reconnect(roomID, hostID)
	if err != nil {
		t.Fatalf("game reconnect failed: %v", err)
	}
	if gs == nil {
		t.Error("game reconnect should include the game state")
	}

	if _, _, err := m.Reconnect("INVALID", hostID); err != ErrRoomNotFound {
		t.Errorf("err = %v, want ErrRoomNotFound", err)
	}
	if _, _, err := m.Reconnect(roomID, "ghost"); err != ErrUnknownPlayer {
		t.Errorf("err = %v, want ErrUnknownPlayer", err)
	}
}

func TestStartGame(t *testing.T) {
	m := newTestManager()
	roomID, hostID := m.CreateRoom("Host")

	// One player is not enough.
	if _, err := m.StartGame(roomID, hostID); err != ErrNotEnough {
		t.Errorf("err = %v, want ErrNotEnough", err)
	}

	p2ID, _, _ := m.JoinRoom(roomID, "P2")

	// Only the host starts.
	if _, err := m.StartGame(roomID, p2ID); err != ErrNotHost {
		t.Errorf("err = %v, want ErrNotHost", err)
	}

	gs, err := m.StartGame(roomID, hostID)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(gs.Players) != 2 {
		t.Fatalf("game players = %d, want 2", len(gs.Players))
	}
	if gs.CurrentPlayerID != hostID {
		t.Errorf("first turn = %q, want host %q", gs.CurrentPlayerID, hostID)
	}
	if gs.Players[0].Money != game.StartingMoney {
		t.Errorf("money = %d, want %d", gs.Players[0].Money, game.StartingMoney)
	}

	state, _ := m.Room(roomID)
	if state.Status != StatusGame {
		t.Errorf("status = %q, want game", state.Status)
	}

	// Lobby colors carry into the game.
	lobby := state.Players[0]
	if gs.Players[0].Color != lobby.Color {
		t.Error("game player should keep the lobby color")
	}

	if _, err := m.StartGame("INVALID", hostID); err != ErrRoomNotFound {
		t.Errorf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestApplyAction(t *testing.T) {
	m := newTestManager()
	roomID, hostID := m.CreateRoom("Host")
	p2ID, _, _ := m.JoinRoom(roomID, "P2")
	m.StartGame(roomID, hostID)

	gs, changed, err := m.ApplyAction(roomID, hostID, game.Action{
		Type: game.ActionRollDice, PlayerID: hostID, Die1: 2, Die2: 3,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !changed {
		t.Error("a valid roll should change the state")
	}
	if gs.PlayerByID(hostID).Position != 5 {
		t.Errorf("position = %d, want 5", gs.PlayerByID(hostID).Position)
	}

	// The committed state is what the next action sees.
	state, _ := m.Room(roomID)
	if state.GameState.PlayerByID(hostID).Position != 5 {
		t.Error("state was not committed to the room")
	}

	// Acting as someone else is refused outright.
	if _, _, err := m.ApplyAction(roomID, p2ID, game.Action{
		Type: game.ActionRollDice, PlayerID: hostID,
	}); err != ErrNotYourPlayer {
		t.Errorf("err = %v, want ErrNotYourPlayer", err)
	}

	// Unknown users cannot act at all.
	if _, _, err := m.ApplyAction(roomID, "ghost", game.Action{
		Type: game.ActionRollDice, PlayerID: hostID,
	}); err != ErrUnknownPlayer {
		t.Errorf("err = %v, want ErrUnknownPlayer", err)
	}
}

func TestApplyActionBeforeStart(t *testing.T) {
	m := newTestManager()
	roomID, hostID := m.CreateRoom("Host")

	if _, _, err := m.ApplyAction(roomID, hostID, game.Action{
		Type: game.ActionRollDice, PlayerID: hostID,
	}); err != ErrGameNotStarted {
		t.Errorf("err = %v, want ErrGameNotStarted", err)
	}
	if _, _, err := m.ApplyAction("INVALID", hostID, game.Action{}); err != ErrRoomNotFound {
		t.Errorf("err = %v, want ErrRoomNotFound", err)
	}
}

func TestSilentNoOpDoesNotCommit(t *testing.T) {
	m := newTestManager()
	roomID, hostID := m.CreateRoom("Host")
	p2ID, _, _ := m.JoinRoom(roomID, "P2")
	m.StartGame(roomID, hostID)

	// P2 rolling out of turn is a reducer no-op.
	gs, changed, err := m.ApplyAction(roomID, p2ID, game.Action{
		Type: game.ActionRollDice, PlayerID: p2ID, Die1: 1, Die2: 2,
	})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if changed {
		t.Error("out-of-turn roll must not be reported as a change")
	}
	if gs.PlayerByID(p2ID).Position != 0 {
		t.Error("no-op must not move the player")
	}
}

func TestLeaveRoom(t *testing.T) {
	m := newTestManager()
	roomID, hostID := m.CreateRoom("Host")
	p2ID, _, _ := m.JoinRoom(roomID, "P2")

	state, err := m.LeaveRoom(roomID, p2ID)
	if err != nil {
		t.Fatalf("leave failed: %v", err)
	}
	if len(state.Players) != 1 {
		t.Errorf("players = %d, want 1", len(state.Players))
	}

	if _, err := m.LeaveRoom(roomID, "ghost"); err != ErrUnknownPlayer {
		t.Errorf("err = %v, want ErrUnknownPlayer", err)
	}

	// Host leaving hands the seat to the next player.
	p3ID, _, _ := m.JoinRoom(roomID, "P3")
	state, err = m.LeaveRoom(roomID, hostID)
	if err != nil {
		t.Fatalf("host leave failed: %v", err)
	}
	if !state.Players[0].IsHost || state.Players[0].ID != p3ID {
		t.Errorf("host seat did not transfer: %+v", state.Players[0])
	}

	// Last player out closes the room.
	if _, err := m.LeaveRoom(roomID, p3ID); err != nil {
		t.Fatalf("final leave failed: %v", err)
	}
	if _, ok := m.Room(roomID); ok {
		t.Error("emptied room should close")
	}
}

func TestLeaveRoomBlockedInGame(t *testing.T) {
	m := newTestManager()
	roomID, hostID := m.CreateRoom("Host")
	p2ID, _, _ := m.JoinRoom(roomID, "P2")
	m.StartGame(roomID, hostID)

	if _, err := m.LeaveRoom(roomID, p2ID); err != ErrGameStarted {
		t.Errorf("err = %v, want ErrGameStarted", err)
	}
}

func TestCloseRoom(t *testing.T) {
	m := newTestManager()
	roomID, _ := m.CreateRoom("Host")
	m.CloseRoom(roomID)
	if _, ok := m.Room(roomID); ok {
		t.Error("closed room should be gone")
	}
}
