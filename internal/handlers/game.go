package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/middleware"
	"github.com/vancomm/minefield/internal/mines"
	"github.com/vancomm/minefield/internal/session"
)

var ErrNoGame = errors.New("no game in progress")

type GameHandler struct {
	log      *logrus.Logger
	sessions *session.Registry
	cookies  *config.Cookies
	ws       *config.WebSocket
}

func NewGameHandler(
	log *logrus.Logger,
	sessions *session.Registry,
	cookies *config.Cookies,
	ws *config.WebSocket,
) *GameHandler {
	handler := &GameHandler{
		log:      log,
		sessions: sessions,
		cookies:  cookies,
		ws:       ws,
	}

	return handler
}

// current returns the session bound to the request cookies.
func (g GameHandler) current(r *http.Request) (*session.Session, bool) {
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok {
		return nil, false
	}
	id, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, false
	}
	return g.sessions.Get(id)
}

// NewGame starts a game and makes it the caller's current one. Any game the
// caller had before is discarded.
func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	opts, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}

	s, err := g.sessions.Create(opts)
	if errors.Is(err, mines.ErrInvalidConfiguration) ||
		errors.Is(err, mines.ErrUnknownPreset) {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to create a new game")
		return
	}

	if old, ok := g.current(r); ok {
		g.sessions.Delete(old.ID)
	}

	if err := g.cookies.Issue(w, s.ID.String()); err != nil {
		g.sessions.Delete(s.ID)
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to issue session cookies")
		return
	}

	g.log.WithFields(logrus.Fields{
		"session": s.ID,
		"seed":    s.Field().Seed(),
	}).Debug("created game")

	sendJSONOrLog(w, g.log, http.StatusOK, s.View())
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.current(r)
	if !ok {
		sendErrorOrLog(w, g.log, http.StatusNotFound, ErrNoGame)
		return
	}
	sendJSONOrLog(w, g.log, http.StatusOK, s.View())
}

func (g GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	move, err := ParseMoveDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	s, ok := g.current(r)
	if !ok {
		sendErrorOrLog(w, g.log, http.StatusNotFound, ErrNoGame)
		return
	}

	move.apply(s)

	sendJSONOrLog(w, g.log, http.StatusOK, s.View())
}

func (g GameHandler) Press(w http.ResponseWriter, r *http.Request) {
	press, err := ParsePressDTO(r.URL.Query())
	if err != nil {
		sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
		return
	}
	s, ok := g.current(r)
	if !ok {
		sendErrorOrLog(w, g.log, http.StatusNotFound, ErrNoGame)
		return
	}

	s.Press(press.Button, press.X, press.Y)

	sendJSONOrLog(w, g.log, http.StatusOK, s.View())
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := g.current(r)
	if !ok {
		sendErrorOrLog(w, g.log, http.StatusNotFound, ErrNoGame)
		return
	}

	s.Forfeit()

	sendJSONOrLog(w, g.log, http.StatusOK, s.View())
}

func (g GameHandler) Layout(w http.ResponseWriter, r *http.Request) {
	s, ok := g.current(r)
	if !ok {
		sendErrorOrLog(w, g.log, http.StatusNotFound, ErrNoGame)
		return
	}
	f := s.Field()
	sendJSONOrLog(w, g.log, http.StatusOK, NewLayoutDTO(s.Layout(), f.Rows, f.Cols))
}

// ConnectWS speaks the text command protocol: every message is one or more
// newline separated commands, every reply is the board after them. The
// connection is closed once the game is over.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.current(r)
	if !ok {
		sendErrorOrLog(w, g.log, http.StatusNotFound, ErrNoGame)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade connection")
		return
	}
	defer c.Close()
	c.SetReadLimit(g.ws.ReadLimit)

	log := g.log.WithField("session", s.ID)
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("read")
			}
			return
		}
		if mt != websocket.TextMessage {
			g.closeWS(c, websocket.CloseUnsupportedData, "text messages only")
			return
		}

		log.WithField("message", string(message)).Debug("ws >")

		var reply any
		if err := s.ExecuteAll(string(message)); err != nil {
			reply = wrapError(err)
		} else {
			reply = s.View()
		}

		if err := c.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout)); err != nil {
			log.WithError(err).Debug("unable to set write deadline")
			return
		}
		if err := c.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("write")
			return
		}

		if s.Outcome() != session.Playing {
			g.closeWS(c, websocket.CloseNormalClosure, s.Outcome().String())
			return
		}
	}
}

func (g GameHandler) closeWS(c *websocket.Conn, code int, text string) {
	msg := websocket.FormatCloseMessage(code, text)
	deadline := time.Now().Add(g.ws.WriteTimeout)
	if err := c.WriteControl(websocket.CloseMessage, msg, deadline); err != nil {
		g.log.WithError(err).Debug("unable to send close message")
	}
}
