package game

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/goccy/go-json"
)

// ItemType はアイテムカタログの1エントリ
type ItemType struct {
	ID        uint32  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	MaxStacks uint8   `json:"maxStacks"`
}

// ItemCatalog はIDからItemTypeを引く読み取り専用の表
type ItemCatalog struct {
	types map[uint32]*ItemType
}

func NewItemCatalog(types ...ItemType) (*ItemCatalog, error) {
	c := &ItemCatalog{types: make(map[uint32]*ItemType, len(types))}
	for _, t := range types {
		if _, ok := c.types[t.ID]; ok {
			return nil, fmt.Errorf("duplicate item id %d", t.ID)
		}
		if t.MaxStacks == 0 {
			t.MaxStacks = 1
		}
		c.types[t.ID] = &t
	}
	return c, nil
}

func (c *ItemCatalog) Lookup(id uint32) (*ItemType, bool) {
	t, ok := c.types[id]
	return t, ok
}

// IDs は登録済みのアイテムIDを昇順で返す
func (c *ItemCatalog) IDs() []uint32 {
	ids := make([]uint32, 0, len(c.types))
	for id := range c.types {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// DefaultItemCatalog はカタログファイルが指定されていない場合のカタログ
func DefaultItemCatalog() *ItemCatalog {
	c, _ := NewItemCatalog(
		ItemType{ID: 1001, Name: "Boots of Speed", Price: 300, MaxStacks: 1},
		ItemType{ID: 1036, Name: "Long Sword", Price: 350, MaxStacks: 1},
		ItemType{ID: 1037, Name: "Pickaxe", Price: 875, MaxStacks: 1},
		ItemType{ID: 1038, Name: "B. F. Sword", Price: 1300, MaxStacks: 1},
		ItemType{ID: 1042, Name: "Dagger", Price: 300, MaxStacks: 1},
		ItemType{ID: 1052, Name: "Amplifying Tome", Price: 435, MaxStacks: 1},
		ItemType{ID: 2003, Name: "Health Potion", Price: 50, MaxStacks: 5},
		ItemType{ID: 2004, Name: "Mana Potion", Price: 50, MaxStacks: 5},
	)
	return c
}

// LoadItemCatalog はJSON配列からカタログを読み込む
func LoadItemCatalog(r io.Reader) (*ItemCatalog, error) {
	var types []ItemType
	if err := json.NewDecoder(r).Decode(&types); err != nil {
		return nil, fmt.Errorf("decode item catalog: %w", err)
	}
	return NewItemCatalog(types...)
}

func LoadItemCatalogFile(path string) (*ItemCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadItemCatalog(f)
}
