package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/minefield/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.sessions, a.cookies, a.ws)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game", game.Fetch)
	a.router.HandleFunc("POST /game/move", game.Move)
	a.router.HandleFunc("POST /game/press", game.Press)
	a.router.HandleFunc("POST /game/forfeit", game.Forfeit)
	a.router.HandleFunc("GET /game/layout", game.Layout)
	a.router.HandleFunc("/game/connect", game.ConnectWS)
}
