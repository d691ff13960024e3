package script

import (
	"fmt"
	"strconv"
)

// Kind はスクリプト値の種別
type Kind uint8

const (
	KindNil Kind = iota
	KindNumber
	KindString
	KindBool
	KindObject
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value はスクリプトとホストの間でやり取りされる値です。
// ゼロ値はnilを表します。
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	obj  any
	list []Value
}

func Nil() Value                 { return Value{} }
func Number(n float64) Value     { return Value{kind: KindNumber, num: n} }
func String(s string) Value      { return Value{kind: KindString, str: s} }
func Bool(b bool) Value          { return Value{kind: KindBool, b: b} }
func List(values ...Value) Value { return Value{kind: KindList, list: values} }

// Object はホスト側のオブジェクトへのハンドルを包む。nilはNilになる。
func Object(o any) Value {
	if o == nil {
		return Nil()
	}
	return Value{kind: KindObject, obj: o}
}

// ObjectList はホストオブジェクトのスライスをリストに変換する
func ObjectList[T any](objects []T) Value {
	values := make([]Value, len(objects))
	for i, o := range objects {
		values[i] = Object(o)
	}
	return List(values...)
}

func (v Value) Kind() Kind  { return v.kind }
func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }
func (v Value) AsString() (string, bool)  { return v.str, v.kind == KindString }
func (v Value) AsBool() (bool, bool)      { return v.b, v.kind == KindBool }
func (v Value) AsObject() (any, bool)     { return v.obj, v.kind == KindObject }
func (v Value) AsList() ([]Value, bool)   { return v.list, v.kind == KindList }

func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindObject:
		return fmt.Sprintf("object(%T)", v.obj)
	case KindList:
		return fmt.Sprintf("list(%d)", len(v.list))
	default:
		return v.kind.String()
	}
}
