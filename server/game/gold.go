package game

import (
	"errors"
	"math"
)

// Gold は所持金を100万分の1単位の固定小数点で保持する。
// 浮動小数点の加減算による誤差を避け、加算と減算が厳密に打ち消し合うようにする。
type Gold int64

const (
	goldScale = 1_000_000
	// MaxGold は扱える所持金の絶対値の上限
	MaxGold Gold = 1_000_000_000_000 * goldScale
)

var ErrGoldOutOfRange = errors.New("gold out of range")

// GoldFromFloat は実数の金額を最も近い100万分の1単位に丸めてGoldに変換する
func GoldFromFloat(amount float64) (Gold, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, ErrGoldOutOfRange
	}
	scaled := math.Round(amount * goldScale)
	if math.Abs(scaled) > float64(MaxGold) {
		return 0, ErrGoldOutOfRange
	}
	return Gold(scaled), nil
}

func (g Gold) Float() float64 {
	return float64(g) / goldScale
}

// Add はdeltaを加算した値を返す。上限を超える場合はエラー。
func (g Gold) Add(delta Gold) (Gold, error) {
	sum := g + delta
	if sum > MaxGold || sum < -MaxGold {
		return g, ErrGoldOutOfRange
	}
	return sum, nil
}
