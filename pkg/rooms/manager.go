package rooms

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	uuid "github.com/satori/go.uuid"
	"github.com/trade-tycoon/backend/pkg"
	"github.com/trade-tycoon/backend/pkg/game"
)

const (
	// MaxPlayers caps a lobby.
	MaxPlayers = 8
	// MaxNameLength truncates player display names.
	MaxNameLength = 15

	roomCodeLength = 8

	// StatusLobby and StatusGame are the two room lifecycle states.
	StatusLobby = "lobby"
	StatusGame  = "game"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrGameStarted    = errors.New("game already started")
	ErrGameNotStarted = errors.New("game not started")
	ErrNotHost        = errors.New("only the host can start the game")
	ErrNotEnough      = errors.New("at least 2 players required")
	ErrUnknownPlayer  = errors.New("player not in room")
	ErrNotYourPlayer  = errors.New("cannot act for another player")
)

var palette = []string{
	"#FF0000", "#0000FF", "#008000", "#FFFF00",
	"#FFA500", "#800080", "#00FFFF", "#FFC0CB",
}

// LobbyPlayer is a seat in a room before the game starts.
type LobbyPlayer struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Color   string `json:"color"`
	IsHost  bool   `json:"isHost"`
	IsReady bool   `json:"isReady"`
}

// LobbyState is the broadcastable view of a room.
type LobbyState struct {
	RoomID    string          `json:"roomId"`
	Players   []LobbyPlayer   `json:"players"`
	Status    string          `json:"status"`
	GameState *game.GameState `json:"gameState,omitempty"`
}

// Room pairs a lobby with its own lock so rooms never block each other.
// Actions within one room are serialized: a game action is fully applied
// and committed before the next one starts.
type Room struct {
	mu    sync.Mutex
	state LobbyState
}

// Manager is the in-memory room authority. It owns every live room and is
// the only writer of their lobby and game state.
type Manager struct {
	mu      sync.RWMutex
	rooms   map[string]*Room
	reducer *game.Reducer
	rng     *rand.Rand
}

// NewManager builds a manager around the given reducer. A nil rng source
// is fine; ids fall back to the global source.
func NewManager(reducer *game.Reducer, rng *rand.Rand) *Manager {
	return &Manager{
		rooms:   make(map[string]*Room),
		reducer: reducer,
		rng:     rng,
	}
}

func (m *Manager) intn(n int) int {
	if m.rng != nil {
		return m.rng.Intn(n)
	}
	return rand.Intn(n)
}

func newUserID() string {
	return uuid.NewV4().String()
}

// CreateRoom opens a new lobby with the host seated and returns the room
// code and the host's player id.
func (m *Manager) CreateRoom(hostName string) (roomID, hostID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for {
		roomID = pkg.RandString(roomCodeLength)
		if _, taken := m.rooms[roomID]; !taken {
			break
		}
	}
	hostID = newUserID()
	room := &Room{state: LobbyState{
		RoomID: roomID,
		Status: StatusLobby,
		Players: []LobbyPlayer{{
			ID:      hostID,
			Name:    truncateName(hostName),
			Color:   m.pickColor(nil),
			IsHost:  true,
			IsReady: true,
		}},
	}}
	m.rooms[roomID] = room
	return roomID, hostID
}

func (m *Manager) room(roomID string) (*Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	return r, ok
}

// JoinRoom seats a new player in a lobby. Joining a started game or a full
// room fails.
func (m *Manager) JoinRoom(roomID, playerName string) (string, *LobbyState, error) {
	room, ok := m.room(roomID)
	if !ok {
		return "", nil, ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	if room.state.Status != StatusLobby {
		return "", nil, ErrGameStarted
	}
	if len(room.state.Players) >= MaxPlayers {
		return "", nil, ErrRoomFull
	}

	taken := make([]string, 0, len(room.state.Players))
	for _, p := range room.state.Players {
		taken = append(taken, p.Color)
	}
	userID := newUserID()
	room.state.Players = append(room.state.Players, LobbyPlayer{
		ID:      userID,
		Name:    truncateName(playerName),
		Color:   m.pickColor(taken),
		IsHost:  false,
		IsReady: true,
	})
	snapshot := room.state
	return userID, &snapshot, nil
}

// LeaveRoom gives up a lobby seat. Leaving a running game is handled by the
// bankruptcy action instead; the host leaving an otherwise empty lobby
// closes the room, otherwise the oldest remaining seat inherits host.
func (m *Manager) LeaveRoom(roomID, userID string) (*LobbyState, error) {
	room, ok := m.room(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	if room.state.Status != StatusLobby {
		return nil, ErrGameStarted
	}
	idx := room.state.playerIndex(userID)
	if idx < 0 {
		return nil, ErrUnknownPlayer
	}
	wasHost := room.state.Players[idx].IsHost
	room.state.Players = append(room.state.Players[:idx], room.state.Players[idx+1:]...)

	if len(room.state.Players) == 0 {
		m.CloseRoom(roomID)
		return &LobbyState{RoomID: roomID, Status: StatusLobby}, nil
	}
	if wasHost {
		room.state.Players[0].IsHost = true
	}
	snapshot := room.state
	return &snapshot, nil
}

// Reconnect re-admits a known player and hands back what they need to
// resume: the lobby view, plus the game state when one is running.
func (m *Manager) Reconnect(roomID, userID string) (*LobbyState, *game.GameState, error) {
	room, ok := m.room(roomID)
	if !ok {
		return nil, nil, ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	inLobby := room.state.playerIndex(userID) >= 0
	inGame := room.state.GameState != nil && room.state.GameState.PlayerByID(userID) != nil
	if !inLobby && !inGame {
		return nil, nil, ErrUnknownPlayer
	}
	snapshot := room.state
	return &snapshot, room.state.GameState, nil
}

// UpdatePlayer renames a seated player and changes their color. A color
// another player already holds is ignored; the rename still applies.
func (m *Manager) UpdatePlayer(roomID, userID, name, color string) (*LobbyState, error) {
	room, ok := m.room(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	idx := room.state.playerIndex(userID)
	if idx < 0 {
		return nil, ErrUnknownPlayer
	}

	colorTaken := false
	for _, p := range room.state.Players {
		if p.ID != userID && p.Color == color {
			colorTaken = true
			break
		}
	}
	room.state.Players[idx].Name = truncateName(name)
	if !colorTaken {
		room.state.Players[idx].Color = color
	}
	snapshot := room.state
	return &snapshot, nil
}

// StartGame flips a lobby into a running game. Host only, two players
// minimum; lobby seats map to game players one to one, in join order.
func (m *Manager) StartGame(roomID, userID string) (*game.GameState, error) {
	room, ok := m.room(roomID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	idx := room.state.playerIndex(userID)
	if idx < 0 || !room.state.Players[idx].IsHost {
		return nil, ErrNotHost
	}
	if room.state.Status != StatusLobby {
		return nil, ErrGameStarted
	}
	if len(room.state.Players) < 2 {
		return nil, ErrNotEnough
	}

	gs := game.NewGameState()
	for _, lp := range room.state.Players {
		p := game.NewPlayer(lp.ID, lp.Name)
		p.Color = lp.Color
		gs.Players = append(gs.Players, p)
	}
	gs.CurrentPlayerID = gs.Players[0].ID

	room.state.Status = StatusGame
	room.state.GameState = gs
	return gs, nil
}

// ApplyAction routes one player intent into the room's game. The acting
// user must be a seated game player and may only act as themselves; the
// reducer rejects everything else. The returned changed flag is false when
// the reducer treated the action as a silent no-op.
func (m *Manager) ApplyAction(roomID, userID string, a game.Action) (*game.GameState, bool, error) {
	room, ok := m.room(roomID)
	if !ok {
		return nil, false, ErrRoomNotFound
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	gs := room.state.GameState
	if gs == nil {
		return nil, false, ErrGameNotStarted
	}
	if gs.PlayerByID(userID) == nil {
		return nil, false, ErrUnknownPlayer
	}
	if a.PlayerID != "" && a.PlayerID != userID {
		return nil, false, ErrNotYourPlayer
	}

	next := m.reducer.Apply(gs, a)
	if next == gs {
		return gs, false, nil
	}
	room.state.GameState = next
	return next, true, nil
}

// Room returns a point-in-time copy of a room's lobby view.
func (m *Manager) Room(roomID string) (*LobbyState, bool) {
	room, ok := m.room(roomID)
	if !ok {
		return nil, false
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	snapshot := room.state
	return &snapshot, true
}

// CloseRoom drops a room from the registry.
func (m *Manager) CloseRoom(roomID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, roomID)
}

func (ls *LobbyState) playerIndex(userID string) int {
	for i := range ls.Players {
		if ls.Players[i].ID == userID {
			return i
		}
	}
	return -1
}

func truncateName(name string) string {
	if len(name) > MaxNameLength {
		return name[:MaxNameLength]
	}
	return name
}

// pickColor hands out an unused palette color, falling back to a random
// one once the palette is exhausted.
func (m *Manager) pickColor(taken []string) string {
	available := make([]string, 0, len(palette))
	for _, c := range palette {
		used := false
		for _, t := range taken {
			if t == c {
				used = true
				break
			}
		}
		if !used {
			available = append(available, c)
		}
	}
	if len(available) > 0 {
		return available[m.intn(len(available))]
	}
	return fmt.Sprintf("#%06x", m.intn(0xffffff+1))
}
