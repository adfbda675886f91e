package socket

import (
	"encoding/json"
	"net/http"
	"os"

	socketio "github.com/googollee/go-socket.io"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/trade-tycoon/backend/app/models"
	"github.com/trade-tycoon/backend/pkg/game"
	"github.com/trade-tycoon/backend/pkg/rooms"
	"github.com/trade-tycoon/backend/platform/cache"
	"github.com/trade-tycoon/backend/platform/database"
	"github.com/trade-tycoon/backend/platform/logging"
	"github.com/trade-tycoon/backend/platform/queries"
)

type joinPayload struct {
	RoomID string `json:"room_id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Color  string `json:"color"`
}

type actionPayload struct {
	RoomID string      `json:"room_id"`
	UserID string      `json:"user_id"`
	Action game.Action `json:"action"`
}

type joinedRoom struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

func marshal(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Errorf("marshal failed: %v", err)
		return "{}"
	}
	return string(data)
}

// CreateSocketIOServer runs the realtime transport. Sockets carry lobby
// and game traffic; the manager is the single authority over both, and
// every accepted game action is also snapshotted to redis under the room
// code so a restarted process can offer reconnection.
func CreateSocketIOServer(manager *rooms.Manager) {
	server, err := socketio.NewServer(nil)
	if err != nil {
		logging.Fatalf("socket server: %v", err)
	}

	db := database.PostgreSQLConnection()
	defer db.Close()

	pool := cache.CreateRedisPool()
	defer pool.Close()

	broadcastLobby := func(roomID string) {
		if state, ok := manager.Room(roomID); ok {
			server.BroadcastToRoom("/", roomID, "lobby_update", marshal(state))
			conn := pool.Get()
			defer conn.Close()
			if err := cache.SaveLobby(roomID, state, &conn); err != nil {
				logging.Warnf("lobby snapshot for %s failed: %v", roomID, err)
			}
		}
	}

	saveState := func(roomID string, gs *game.GameState) {
		conn := pool.Get()
		defer conn.Close()
		if err := cache.SaveState(roomID, gs, &conn); err != nil {
			logging.Warnf("state snapshot for %s failed: %v", roomID, err)
		}
	}

	server.OnConnect("/", func(s socketio.Conn) error {
		s.SetContext("")
		logging.WithFields(logrus.Fields{"socket": s.ID()}).Debug("connected")
		return nil
	})

	server.OnEvent("/", "create_room", func(s socketio.Conn, jsonStr string) {
		var p joinPayload
		json.Unmarshal([]byte(jsonStr), &p)
		if p.Name == "" {
			s.Emit("error-message", "A host name is required")
			return
		}

		roomID, hostID := manager.CreateRoom(p.Name)
		err := queries.CreateGame(&models.Game{
			Id:     roomID,
			Name:   p.Name,
			Status: models.GameStatusLobby,
		}, db)
		if err != nil {
			logging.Errorf("game row for %s failed: %v", roomID, err)
		}

		s.Join(roomID)
		s.Emit("joined_room", marshal(joinedRoom{RoomID: roomID, UserID: hostID}))
		broadcastLobby(roomID)
		logging.Infof("room %s created by %s", roomID, hostID)
	})

	server.OnEvent("/", "join_room", func(s socketio.Conn, jsonStr string) {
		var p joinPayload
		json.Unmarshal([]byte(jsonStr), &p)

		userID, _, err := manager.JoinRoom(p.RoomID, p.Name)
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		if err := queries.CreatePlayer(models.Player{
			UserId:   userID,
			GameId:   p.RoomID,
			Username: p.Name,
		}, db); err != nil {
			logging.Warnf("player row for %s failed: %v", p.RoomID, err)
		}

		s.Join(p.RoomID)
		s.Emit("joined_room", marshal(joinedRoom{RoomID: p.RoomID, UserID: userID}))
		broadcastLobby(p.RoomID)
	})

	server.OnEvent("/", "leave_room", func(s socketio.Conn, jsonStr string) {
		var p joinPayload
		json.Unmarshal([]byte(jsonStr), &p)

		if _, err := manager.LeaveRoom(p.RoomID, p.UserID); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		if err := queries.DeletePlayer(p.UserID, p.RoomID, db); err != nil {
			logging.Warnf("player row cleanup for %s failed: %v", p.RoomID, err)
		}
		s.Leave(p.RoomID)
		broadcastLobby(p.RoomID)
	})

	server.OnEvent("/", "update_player", func(s socketio.Conn, jsonStr string) {
		var p joinPayload
		json.Unmarshal([]byte(jsonStr), &p)

		if _, err := manager.UpdatePlayer(p.RoomID, p.UserID, p.Name, p.Color); err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		broadcastLobby(p.RoomID)
	})

	server.OnEvent("/", "start_game", func(s socketio.Conn, jsonStr string) {
		var p joinPayload
		json.Unmarshal([]byte(jsonStr), &p)

		gs, err := manager.StartGame(p.RoomID, p.UserID)
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		if err := queries.MarkGameStarted(p.RoomID, db); err != nil {
			logging.Warnf("marking %s started failed: %v", p.RoomID, err)
		}
		saveState(p.RoomID, gs)
		server.BroadcastToRoom("/", p.RoomID, "game_state_update", marshal(gs))
		logging.Infof("room %s started with %d players", p.RoomID, len(gs.Players))
	})

	server.OnEvent("/", "game_action", func(s socketio.Conn, jsonStr string) {
		var p actionPayload
		if err := json.Unmarshal([]byte(jsonStr), &p); err != nil {
			s.Emit("error-message", "Malformed action")
			return
		}

		gs, changed, err := manager.ApplyAction(p.RoomID, p.UserID, p.Action)
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		// Silent no-ops produce no traffic at all.
		if !changed {
			return
		}
		saveState(p.RoomID, gs)

		// A state carrying a validation error goes only to the actor;
		// everyone else sees nothing.
		if gs.ErrorMessage != "" {
			s.Emit("game_state_update", marshal(gs))
			return
		}
		server.BroadcastToRoom("/", p.RoomID, "game_state_update", marshal(gs))

		if gs.WinnerID != "" {
			if err := queries.MarkGameFinished(p.RoomID, db); err != nil {
				logging.Warnf("marking %s finished failed: %v", p.RoomID, err)
			}
			conn := pool.Get()
			defer conn.Close()
			if err := cache.DeleteRoom(p.RoomID, &conn); err != nil {
				logging.Warnf("snapshot cleanup for %s failed: %v", p.RoomID, err)
			}
		}
	})

	server.OnEvent("/", "reconnect", func(s socketio.Conn, jsonStr string) {
		var p joinPayload
		json.Unmarshal([]byte(jsonStr), &p)

		state, gs, err := manager.Reconnect(p.RoomID, p.UserID)
		if err == rooms.ErrRoomNotFound {
			// The room is gone from memory (process restart). Offer the
			// last redis snapshot read-only so the client can render it.
			conn := pool.Get()
			defer conn.Close()
			snapshot, loadErr := cache.LoadState(p.RoomID, &conn)
			if loadErr != nil || snapshot.PlayerByID(p.UserID) == nil {
				s.Emit("error-message", err.Error())
				return
			}
			s.Emit("game_state_update", marshal(snapshot))
			return
		}
		if err != nil {
			s.Emit("error-message", err.Error())
			return
		}
		s.Join(p.RoomID)
		s.Emit("joined_room", marshal(joinedRoom{RoomID: p.RoomID, UserID: p.UserID}))
		s.Emit("lobby_update", marshal(state))
		if gs != nil {
			s.Emit("game_state_update", marshal(gs))
		}
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		logging.Errorf("socket error: %v", e)
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		s.LeaveAll()
	})

	go server.Serve()
	defer server.Close()

	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowCredentials: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/socket.io/", server)
	addr := os.Getenv("SOCKET_ADDR")
	if addr == "" {
		addr = ":8000"
	}
	logging.Infof("socket server listening on %s", addr)
	http.ListenAndServe(addr, c.Handler(mux))
}
