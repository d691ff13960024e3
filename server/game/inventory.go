package game

import "errors"

// InventorySize はチャンピオンが持てるアイテム枠の数
const InventorySize = 7

var ErrInventoryFull = errors.New("inventory full")

// Item はインベントリ内のアイテム
type Item struct {
	Type   *ItemType
	Slot   uint8
	Stacks uint8
}

type Inventory struct {
	slots [InventorySize]*Item
}

func NewInventory() *Inventory {
	return &Inventory{}
}

// Add はアイテムを追加する。スタック可能な同種アイテムがあれば積み、なければ空き枠に入れる。
func (inv *Inventory) Add(t *ItemType) (*Item, error) {
	for _, it := range inv.slots {
		if it != nil && it.Type.ID == t.ID && it.Stacks < t.MaxStacks {
			it.Stacks++
			return it, nil
		}
	}
	for i, it := range inv.slots {
		if it == nil {
			item := &Item{Type: t, Slot: uint8(i), Stacks: 1}
			inv.slots[i] = item
			return item, nil
		}
	}
	return nil, ErrInventoryFull
}

func (inv *Inventory) Slot(i int) *Item {
	if i < 0 || i >= InventorySize {
		return nil
	}
	return inv.slots[i]
}

// Items は使用中の枠を枠番号順で返す
func (inv *Inventory) Items() []*Item {
	var out []*Item
	for _, it := range inv.slots {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}
