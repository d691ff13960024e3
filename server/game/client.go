package game

import "arena/server/domain"

// ClientInfo はロスター上の1枠です。indexはセッション中変わりません。
type ClientInfo struct {
	index     int
	sessionID domain.SessionID
	name      string
	champion  *Champion
	connected bool
}

func (c *ClientInfo) Index() int                  { return c.index }
func (c *ClientInfo) SessionID() domain.SessionID { return c.sessionID }
func (c *ClientInfo) Name() string                { return c.name }
func (c *ClientInfo) Champion() *Champion         { return c.champion }
func (c *ClientInfo) Connected() bool             { return c.connected }
func (c *ClientInfo) SetConnected(connected bool) { c.connected = connected }
