package game

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"arena/server/domain"

	"github.com/goccy/go-json"
)

// NavMesh はマップの歩行可能領域を提供します。
type NavMesh interface {
	IsWalkable(x, y float32) bool
	// ClosestTerrainExit はpに最も近い歩行可能な点を返す
	ClosestTerrainExit(p domain.Position2D) domain.Position2D
}

var ErrInvalidGrid = errors.New("invalid navigation grid")

// GridMesh は正方セルのグリッドで表したNavMesh実装です。
type GridMesh struct {
	cols, rows int
	cellSize   float32
	blocked    []bool
}

var _ NavMesh = (*GridMesh)(nil)

func NewGridMesh(cols, rows int, cellSize float32) (*GridMesh, error) {
	if cols <= 0 || rows <= 0 || !(cellSize > 0) {
		return nil, fmt.Errorf("%w: %dx%d cell=%v", ErrInvalidGrid, cols, rows, cellSize)
	}
	return &GridMesh{
		cols:     cols,
		rows:     rows,
		cellSize: cellSize,
		blocked:  make([]bool, cols*rows),
	}, nil
}

func (g *GridMesh) Width() float32  { return float32(g.cols) * g.cellSize }
func (g *GridMesh) Height() float32 { return float32(g.rows) * g.cellSize }

// Block はセルを通行不可にする
func (g *GridMesh) Block(col, row int) {
	if g.inGrid(col, row) {
		g.blocked[row*g.cols+col] = true
	}
}

func (g *GridMesh) IsWalkable(x, y float32) bool {
	if !(x >= 0 && x < g.Width() && y >= 0 && y < g.Height()) {
		return false
	}
	col, row := g.cellOf(x, y)
	return g.walkableCell(col, row)
}

func (g *GridMesh) ClosestTerrainExit(p domain.Position2D) domain.Position2D {
	p = g.clamp(p)
	if g.IsWalkable(p.X, p.Y) {
		return p
	}

	col, row := g.cellOf(p.X, p.Y)
	best := domain.Position2D{}
	bestDist := float32(math.MaxFloat32)
	found := false

	maxRing := max(g.cols, g.rows)
	for ring := 1; ring <= maxRing; ring++ {
		// リング上のセル中心はpから少なくとも(ring-0.5)セル離れている
		if found && (float32(ring)-0.5)*g.cellSize > float32(math.Sqrt(float64(bestDist))) {
			break
		}
		for dy := -ring; dy <= ring; dy++ {
			for dx := -ring; dx <= ring; dx++ {
				if max(abs(dx), abs(dy)) != ring {
					continue
				}
				c, r := col+dx, row+dy
				if !g.walkableCell(c, r) {
					continue
				}
				center := g.center(c, r)
				if d := p.DistanceSq(center); d < bestDist {
					best, bestDist, found = center, d, true
				}
			}
		}
	}
	if !found {
		return p
	}
	return best
}

func (g *GridMesh) clamp(p domain.Position2D) domain.Position2D {
	// 右端・下端はグリッド外になるため、セル内に収まるよう僅かに内側へ寄せる
	const inset = 1e-3
	if math.IsNaN(float64(p.X)) {
		p.X = 0
	}
	if math.IsNaN(float64(p.Y)) {
		p.Y = 0
	}
	p.X = min(max(p.X, 0), g.Width()-g.cellSize*inset)
	p.Y = min(max(p.Y, 0), g.Height()-g.cellSize*inset)
	return p
}

func (g *GridMesh) cellOf(x, y float32) (int, int) {
	return int(x / g.cellSize), int(y / g.cellSize)
}

func (g *GridMesh) center(col, row int) domain.Position2D {
	return domain.Position2D{
		X: (float32(col) + 0.5) * g.cellSize,
		Y: (float32(row) + 0.5) * g.cellSize,
	}
}

func (g *GridMesh) inGrid(col, row int) bool {
	return col >= 0 && row >= 0 && col < g.cols && row < g.rows
}

func (g *GridMesh) walkableCell(col, row int) bool {
	return g.inGrid(col, row) && !g.blocked[row*g.cols+col]
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// gridFile はナビゲーショングリッドのファイル形式。
// rowsの各文字が1セルで '#' が通行不可。
type gridFile struct {
	CellSize float32  `json:"cellSize"`
	Rows     []string `json:"rows"`
}

func LoadGridMesh(r io.Reader) (*GridMesh, error) {
	var f gridFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode navigation grid: %w", err)
	}
	if len(f.Rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidGrid)
	}
	cols := len(f.Rows[0])
	g, err := NewGridMesh(cols, len(f.Rows), f.CellSize)
	if err != nil {
		return nil, err
	}
	for row, line := range f.Rows {
		if len(line) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, row, len(line), cols)
		}
		for col, c := range []byte(line) {
			if c == '#' {
				g.Block(col, row)
			}
		}
	}
	return g, nil
}

func LoadGridMeshFile(path string) (*GridMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadGridMesh(f)
}
