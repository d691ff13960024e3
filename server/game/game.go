package game

import (
	"time"

	"arena/server/domain"
)

// Game は1つのシミュレーションの状態をまとめたハンドルです。
// Roomのゴルーチンからのみ操作されるためロックを持ちません。
type Game struct {
	gameMap  *Map
	items    *ItemCatalog
	notifier Notifier

	players []*ClientInfo
}

func NewGame(gameMap *Map, items *ItemCatalog, notifier Notifier) *Game {
	return &Game{
		gameMap:  gameMap,
		items:    items,
		notifier: notifier,
	}
}

func (g *Game) Map() *Map           { return g.gameMap }
func (g *Game) Items() *ItemCatalog { return g.items }
func (g *Game) Notifier() Notifier  { return g.notifier }
func (g *Game) PlayerCount() int    { return len(g.players) }

// ConnectedCount は切断されていないクライアントの数を返す
func (g *Game) ConnectedCount() int {
	n := 0
	for _, p := range g.players {
		if p.Connected() {
			n++
		}
	}
	return n
}

// AddPlayer はロスターの末尾に新しい枠を追加し、チャンピオンをマップに配置する
func (g *Game) AddPlayer(sessionID domain.SessionID, name string, champion *Champion) *ClientInfo {
	client := &ClientInfo{
		index:     len(g.players),
		sessionID: sessionID,
		name:      name,
		champion:  champion,
		connected: true,
	}
	champion.client = client
	g.players = append(g.players, client)
	g.gameMap.AddChampion(champion)
	return client
}

// Players はロスターのスナップショットを返す
func (g *Game) Players() []*ClientInfo {
	out := make([]*ClientInfo, len(g.players))
	copy(out, g.players)
	return out
}

func (g *Game) Player(index int) (*ClientInfo, bool) {
	if index < 0 || index >= len(g.players) {
		return nil, false
	}
	return g.players[index], true
}

func (g *Game) PlayerBySession(sessionID domain.SessionID) (*ClientInfo, bool) {
	for _, p := range g.players {
		if p.sessionID == sessionID {
			return p, true
		}
	}
	return nil, false
}

// Update はシミュレーションをdiffだけ進める
func (g *Game) Update(diff time.Duration) {
	g.gameMap.Update(diff)
}
