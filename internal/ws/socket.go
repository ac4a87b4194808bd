package ws

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	socketio "github.com/googollee/go-socket.io"
	"github.com/picdash/picdash/internal/game"
	"github.com/rs/zerolog/log"
)

// binding ties a live connection to the one player it represents.
type binding struct {
	sessionID string
	playerID  string
}

// Server is the event boundary around the game core: it decodes and
// validates client events, routes them to the owning session, and fans
// the resulting notifications out to that session's connections only.
type Server struct {
	reg *game.Registry

	mu       sync.Mutex
	members  map[string]map[string]socketio.Conn // sessionID -> socketID -> conn
	bindings map[string]binding                  // socketID -> binding
}

func New(reg *game.Registry) *Server {
	return &Server{
		reg:      reg,
		members:  make(map[string]map[string]socketio.Conn),
		bindings: make(map[string]binding),
	}
}

// Mount attaches the Socket.IO server with all handlers to the given
// Gin engine.
func (srv *Server) Mount(r *gin.Engine) *socketio.Server {
	io := socketio.NewServer(nil)

	io.OnConnect("/", func(s socketio.Conn) error {
		log.Info().Str("sid", s.ID()).Msg("socket connected")
		return nil
	})

	io.OnEvent("/", "create-game", func(s socketio.Conn, payload CreateGamePayload) map[string]any {
		if err := payload.validate(); err != nil {
			return srv.err(s, err)
		}
		sess, host, err := srv.reg.Create(payload.PlayerName, s.ID(), payload.MaxPlayers)
		if err != nil {
			return srv.err(s, err)
		}
		srv.bind(sess.ID(), host.ID, s)
		log.Info().Str("sid", s.ID()).Str("gameId", sess.ID()).Str("code", sess.JoinCode()).Msg("create-game")
		s.Emit(EvtGameCreated, map[string]any{
			"gameId":   sess.ID(),
			"joinCode": sess.JoinCode(),
			"playerId": host.ID,
			"game":     sess.Snapshot(), // prompts deliberately withheld
		})
		return map[string]any{"gameId": sess.ID(), "playerId": host.ID}
	})

	io.OnEvent("/", "join-game", func(s socketio.Conn, payload JoinGamePayload) map[string]any {
		if err := payload.validate(); err != nil {
			return srv.err(s, err)
		}
		sess, p, err := srv.reg.Join(payload.JoinCode, payload.PlayerName, s.ID())
		if err != nil {
			return srv.err(s, err)
		}
		srv.bind(sess.ID(), p.ID, s)
		log.Info().Str("sid", s.ID()).Str("gameId", sess.ID()).Str("playerId", p.ID).Msg("join-game")
		s.Emit(EvtGameJoined, map[string]any{
			"gameId":   sess.ID(),
			"playerId": p.ID,
			"game":     sess.Snapshot(),
		})
		srv.broadcastExcept(sess.ID(), s.ID(), EvtPlayerJoined, map[string]any{"player": p})
		return map[string]any{"playerId": p.ID}
	})

	io.OnEvent("/", "player-ready", func(s socketio.Conn, payload PlayerReadyPayload) map[string]any {
		sess, playerID, err := srv.resolve(s)
		if err != nil {
			return srv.err(s, err)
		}
		allReady, err := sess.SetReady(playerID, payload.IsReady)
		if err != nil {
			return srv.err(s, err)
		}
		srv.broadcast(sess.ID(), EvtPlayerStatusUpdated, map[string]any{
			"playerId": playerID,
			"isReady":  payload.IsReady,
		})
		if allReady {
			srv.broadcast(sess.ID(), EvtAllPlayersReady, map[string]any{})
		}
		return map[string]any{"ok": true}
	})

	io.OnEvent("/", "start-game", func(s socketio.Conn) map[string]any {
		sess, playerID, err := srv.resolve(s)
		if err != nil {
			return srv.err(s, err)
		}
		prompt, err := sess.Start(playerID)
		if err != nil {
			return srv.err(s, err)
		}
		log.Info().Str("gameId", sess.ID()).Msg("start-game")
		srv.broadcast(sess.ID(), EvtGameStarted, map[string]any{
			"gameId":             sess.ID(),
			"currentRound":       prompt.Round,
			"currentPromptIndex": prompt.PromptIndex,
			"prompt":             prompt,
		})
		return map[string]any{"ok": true}
	})

	io.OnEvent("/", "submit-prompt", func(s socketio.Conn, payload SubmitPromptPayload) map[string]any {
		if err := payload.validate(); err != nil {
			return srv.err(s, err)
		}
		sess, playerID, err := srv.resolve(s)
		if err != nil {
			return srv.err(s, err)
		}
		out, err := sess.Submit(playerID, payload.PromptText, payload.ImageURL)
		if err != nil {
			return srv.err(s, err)
		}
		log.Info().Str("gameId", sess.ID()).Str("submissionId", out.SubmissionID).Msg("submit-prompt")
		s.Emit(EvtPromptSubmitted, map[string]any{"submissionId": out.SubmissionID})
		srv.emitVotingOpened(sess.ID(), out)
		return map[string]any{"submissionId": out.SubmissionID}
	})

	io.OnEvent("/", "submit-vote", func(s socketio.Conn, payload SubmitVotePayload) map[string]any {
		if err := payload.validate(); err != nil {
			return srv.err(s, err)
		}
		sess, playerID, err := srv.resolve(s)
		if err != nil {
			return srv.err(s, err)
		}
		out, err := sess.Vote(playerID, payload.SubmissionID)
		if err != nil {
			return srv.err(s, err)
		}
		log.Info().Str("gameId", sess.ID()).Str("submissionId", payload.SubmissionID).Msg("submit-vote")
		s.Emit(EvtVoteSubmitted, map[string]any{"ok": true})
		srv.emitSlotClosed(sess.ID(), out)
		return map[string]any{"ok": true}
	})

	io.OnEvent("/", "play-again", func(s socketio.Conn) map[string]any {
		sess, playerID, err := srv.resolve(s)
		if err != nil {
			return srv.err(s, err)
		}
		if err := sess.Reset(playerID); err != nil {
			return srv.err(s, err)
		}
		log.Info().Str("gameId", sess.ID()).Msg("play-again")
		srv.broadcast(sess.ID(), EvtGameReset, map[string]any{"game": sess.Snapshot()})
		return map[string]any{"ok": true}
	})

	io.OnEvent("/", "leave-game", func(s socketio.Conn) map[string]any {
		srv.drop(s)
		return map[string]any{"ok": true}
	})

	io.OnError("/", func(s socketio.Conn, e error) {
		log.Error().Str("sid", s.ID()).Err(e).Msg("socket error")
	})
	io.OnDisconnect("/", func(s socketio.Conn, reason string) {
		srv.drop(s)
		log.Info().Str("sid", s.ID()).Str("reason", reason).Msg("socket disconnected")
	})

	go io.Serve()

	r.GET("/socket.io/*any", gin.WrapH(io))
	r.POST("/socket.io/*any", gin.WrapH(io))
	r.OPTIONS("/socket.io/*any", func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Status(http.StatusNoContent)
	})

	return io
}

// drop detaches a connection and removes its player from the session,
// whether the leave was voluntary or an abrupt disconnect.
func (srv *Server) drop(s socketio.Conn) {
	srv.mu.Lock()
	b, ok := srv.bindings[s.ID()]
	if ok {
		delete(srv.bindings, s.ID())
		if m := srv.members[b.sessionID]; m != nil {
			delete(m, s.ID())
			if len(m) == 0 {
				delete(srv.members, b.sessionID)
			}
		}
	}
	srv.mu.Unlock()
	if !ok {
		return
	}

	sess, found := srv.reg.ByID(b.sessionID)
	if !found {
		return
	}
	out, err := sess.RemovePlayer(b.playerID)
	if err != nil {
		return
	}
	log.Info().Str("gameId", b.sessionID).Str("playerId", b.playerID).Str("name", out.Removed.Name).Msg("player left")
	if out.Empty {
		srv.reg.Remove(b.sessionID)
		log.Info().Str("gameId", b.sessionID).Msg("game removed, no players left")
		return
	}
	srv.broadcast(b.sessionID, EvtPlayerLeft, map[string]any{"playerId": b.playerID})
	if out.NewHostID != "" {
		srv.broadcast(b.sessionID, EvtHostChanged, map[string]any{"newHostId": out.NewHostID})
	}
	if out.Submit != nil {
		srv.emitVotingOpened(b.sessionID, *out.Submit)
	}
	if out.Vote != nil {
		srv.emitSlotClosed(b.sessionID, *out.Vote)
	}
}

func (srv *Server) emitVotingOpened(sessionID string, out game.SubmitOutcome) {
	if !out.VotingOpened {
		return
	}
	srv.broadcast(sessionID, EvtVotingStarted, map[string]any{
		"promptSlotId": out.SlotID,
		"submissions":  out.Submissions,
	})
}

// emitSlotClosed broadcasts the result of a closed slot followed by
// whatever comes next: the round scoreboard, the final scoreboard, or
// the next prompt.
func (srv *Server) emitSlotClosed(sessionID string, out game.VoteOutcome) {
	if !out.SlotClosed {
		return
	}
	srv.broadcast(sessionID, EvtVotingResults, map[string]any{
		"promptSlotId":        out.SlotID,
		"winningSubmissionId": out.Result.WinningSubmissionID,
		"isUnanimous":         out.Result.IsUnanimous,
		"pointsAwarded":       out.Result.PointsAwarded,
		"votes":               out.Result.VoteCounts,
	})
	if out.RoundEnded {
		srv.broadcast(sessionID, EvtRoundEnded, map[string]any{"players": out.Players})
	}
	if out.GameEnded {
		srv.broadcast(sessionID, EvtGameEnded, map[string]any{"players": out.Players})
		return
	}
	if out.NextPrompt != nil {
		srv.broadcast(sessionID, EvtNextPrompt, map[string]any{
			"promptId":           out.NextPrompt.SlotID,
			"text":               out.NextPrompt.Text,
			"currentRound":       out.NextPrompt.Round,
			"currentPromptIndex": out.NextPrompt.PromptIndex,
		})
	}
}

func (srv *Server) bind(sessionID, playerID string, s socketio.Conn) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.bindings[s.ID()] = binding{sessionID: sessionID, playerID: playerID}
	if srv.members[sessionID] == nil {
		srv.members[sessionID] = make(map[string]socketio.Conn)
	}
	srv.members[sessionID][s.ID()] = s
}

// resolve maps a connection back to its session and player.
func (srv *Server) resolve(s socketio.Conn) (*game.Session, string, error) {
	srv.mu.Lock()
	b, ok := srv.bindings[s.ID()]
	srv.mu.Unlock()
	if !ok {
		return nil, "", game.ErrGameNotFound
	}
	sess, found := srv.reg.ByID(b.sessionID)
	if !found {
		return nil, "", game.ErrGameNotFound
	}
	return sess, b.playerID, nil
}

// broadcast emits to every connection in the session, and only there.
func (srv *Server) broadcast(sessionID, event string, payload map[string]any) {
	srv.mu.Lock()
	conns := make([]socketio.Conn, 0, len(srv.members[sessionID]))
	for _, c := range srv.members[sessionID] {
		conns = append(conns, c)
	}
	srv.mu.Unlock()
	for _, c := range conns {
		c.Emit(event, payload)
	}
}

func (srv *Server) broadcastExcept(sessionID, exceptSID, event string, payload map[string]any) {
	srv.mu.Lock()
	conns := make([]socketio.Conn, 0, len(srv.members[sessionID]))
	for sid, c := range srv.members[sessionID] {
		if sid != exceptSID {
			conns = append(conns, c)
		}
	}
	srv.mu.Unlock()
	for _, c := range conns {
		c.Emit(event, payload)
	}
}

// err reports a guard failure to the acting connection only. State is
// untouched; nothing is broadcast.
func (srv *Server) err(s socketio.Conn, e error) map[string]any {
	code := errCode(e)
	s.Emit(EvtError, map[string]any{"code": code, "message": e.Error()})
	return map[string]any{"error": code}
}
