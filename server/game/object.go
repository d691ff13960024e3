package game

import (
	"arena/server/domain"

	"github.com/google/uuid"
)

// NetID はクライアントと共有するオブジェクトIDです。
type NetID uuid.UUID

func NewNetID() NetID {
	return NetID(uuid.New())
}

func (id NetID) Bytes() [16]byte {
	return [16]byte(id)
}

func (id NetID) String() string {
	return uuid.UUID(id).String()
}

// TeamID はチーム識別子
type TeamID uint32

const (
	TeamBlue    TeamID = 100
	TeamPurple  TeamID = 200
	TeamNeutral TeamID = 300
)

func (t TeamID) String() string {
	switch t {
	case TeamBlue:
		return "blue"
	case TeamPurple:
		return "purple"
	case TeamNeutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Object はマップ上に存在するもの
type Object interface {
	NetID() NetID
	Team() TeamID
	Position() domain.Position2D
}
