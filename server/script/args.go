package script

// Args は型変換済みの引数列です。
type Args struct {
	values  []any
	present []bool
}

func (a Args) Len() int { return len(a.values) }

// Present はi番目の引数が渡されたかを返す
func (a Args) Present(i int) bool {
	return i >= 0 && i < len(a.present) && a.present[i]
}

// Arg はi番目の引数をTとして取り出す。省略された引数はゼロ値になる。
// Tは宣言した型のConverterが返す型と一致している必要がある。
func Arg[T any](a Args, i int) T {
	var zero T
	if !a.Present(i) {
		return zero
	}
	v, ok := a.values[i].(T)
	if !ok {
		return zero
	}
	return v
}
