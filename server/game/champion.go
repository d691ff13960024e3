package game

import "arena/server/domain"

// Champion はプレイヤーが操作するユニットです。
type Champion struct {
	*Unit

	client    *ClientInfo
	model     string
	gold      Gold
	inventory *Inventory
}

func NewChampion(team TeamID, position domain.Position2D, model string) *Champion {
	return &Champion{
		Unit:      NewUnit(team, position),
		model:     model,
		inventory: NewInventory(),
	}
}

func (c *Champion) Client() *ClientInfo   { return c.client }
func (c *Champion) Model() string         { return c.model }
func (c *Champion) SetModel(model string) { c.model = model }
func (c *Champion) Gold() Gold            { return c.gold }
func (c *Champion) SetGold(g Gold)        { c.gold = g }
func (c *Champion) Inventory() *Inventory { return c.inventory }
