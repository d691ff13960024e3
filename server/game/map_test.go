package game

import (
	"testing"

	"arena/server/domain"
)

func TestMap_RangeQueries(t *testing.T) {
	m := NewMap(100, 100, nil)
	near := NewUnit(TeamNeutral, domain.Position2D{X: 3, Y: 4})
	dead := NewUnit(TeamNeutral, domain.Position2D{X: 1, Y: 1})
	far := NewUnit(TeamNeutral, domain.Position2D{X: 50, Y: 50})
	champ := NewChampion(TeamBlue, domain.Position2D{X: 0, Y: 5}, "Annie")
	m.AddUnit(near)
	m.AddUnit(dead)
	m.AddUnit(far)
	m.AddChampion(champ)
	dead.Die()

	center := domain.Position2D{}

	all := m.UnitsInRange(center, 5, false)
	if len(all) != 3 || all[0] != near || all[1] != dead || all[2] != champ.Unit {
		t.Errorf("UnitsInRange = %v", all)
	}

	alive := m.UnitsInRange(center, 5, true)
	if len(alive) != 2 || alive[0] != near || alive[1] != champ.Unit {
		t.Errorf("UnitsInRange(alive) = %v", alive)
	}

	champs := m.ChampionsInRange(center, 5, true)
	if len(champs) != 1 || champs[0] != champ {
		t.Errorf("ChampionsInRange = %v", champs)
	}

	if got := m.UnitsInRange(center, 1, false); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestMap_ChampionOf(t *testing.T) {
	m := NewMap(10, 10, nil)
	champ := NewChampion(TeamPurple, domain.Position2D{}, "Ashe")
	minion := NewUnit(TeamPurple, domain.Position2D{})
	m.AddChampion(champ)
	m.AddUnit(minion)

	if c, ok := m.ChampionOf(champ.Unit); !ok || c != champ {
		t.Error("champion not found")
	}
	if _, ok := m.ChampionOf(minion); ok {
		t.Error("minion is not a champion")
	}
	if len(m.Units()) != 2 {
		t.Errorf("units = %d", len(m.Units()))
	}
}

func TestGame_Roster(t *testing.T) {
	g := NewGame(NewMap(10, 10, nil), DefaultItemCatalog(), nil)
	a := g.AddPlayer(domain.NewSessionID(), "a", NewChampion(TeamBlue, domain.Position2D{}, "Annie"))
	b := g.AddPlayer(domain.NewSessionID(), "b", NewChampion(TeamPurple, domain.Position2D{}, "Ashe"))

	if a.Index() != 0 || b.Index() != 1 {
		t.Fatalf("indices = %d, %d", a.Index(), b.Index())
	}
	if a.Champion().Client() != a {
		t.Error("champion back-reference not set")
	}
	if p, ok := g.Player(1); !ok || p != b {
		t.Error("Player(1) mismatch")
	}
	if _, ok := g.Player(2); ok {
		t.Error("Player(2) should be out of range")
	}
	if p, ok := g.PlayerBySession(b.SessionID()); !ok || p != b {
		t.Error("PlayerBySession mismatch")
	}
	if len(g.Map().Units()) != 2 {
		t.Error("champions not placed on map")
	}
}
