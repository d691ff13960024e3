package script

import (
	"errors"
	"math"
)

// Converter はスクリプト値を宣言された型のGoの値に変換する。
// 変換できない場合はエラーを返す。暗黙の型変換は行わない。
type Converter func(v Value) (any, error)

// 組み込み型
const (
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeString  = "string"
	TypeBool    = "bool"
	TypeAny     = "any"
	TypeList    = "list"
)

var (
	errWrongKind   = errors.New("wrong kind")
	errNotFinite   = errors.New("not finite")
	errNotInteger  = errors.New("not an integer")
	errOutOfBounds = errors.New("integer out of range")
)

func builtinTypes() map[string]Converter {
	return map[string]Converter{
		TypeNumber:  convertNumber,
		TypeInteger: convertInteger,
		TypeString:  convertString,
		TypeBool:    convertBool,
		TypeAny:     func(v Value) (any, error) { return v, nil },
		TypeList:    convertList,
	}
}

func convertNumber(v Value) (any, error) {
	n, ok := v.AsNumber()
	if !ok {
		return nil, errWrongKind
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, errNotFinite
	}
	return n, nil
}

func convertInteger(v Value) (any, error) {
	n, ok := v.AsNumber()
	if !ok {
		return nil, errWrongKind
	}
	if math.IsNaN(n) || math.IsInf(n, 0) || n != math.Trunc(n) {
		return nil, errNotInteger
	}
	// 2^53を超えると整数として正確に表せない
	if math.Abs(n) > 1<<53 {
		return nil, errOutOfBounds
	}
	return int64(n), nil
}

func convertString(v Value) (any, error) {
	s, ok := v.AsString()
	if !ok {
		return nil, errWrongKind
	}
	return s, nil
}

func convertBool(v Value) (any, error) {
	b, ok := v.AsBool()
	if !ok {
		return nil, errWrongKind
	}
	return b, nil
}

func convertList(v Value) (any, error) {
	l, ok := v.AsList()
	if !ok {
		return nil, errWrongKind
	}
	return l, nil
}

// ObjectType はホストオブジェクト型Tを受け付けるConverterを返す
func ObjectType[T any]() Converter {
	return func(v Value) (any, error) {
		o, ok := v.AsObject()
		if !ok {
			return nil, errWrongKind
		}
		t, ok := o.(T)
		if !ok {
			return nil, errWrongKind
		}
		return t, nil
	}
}
