package luahost

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"reflect"
	"slices"
	"strings"

	"arena/server/script"

	"github.com/Shopify/go-lua"
)

var (
	ErrFunctionNotFound = errors.New("lua function not found")
	ErrUnsupportedValue = errors.New("unsupported lua value")
)

// テーブルの入れ子の上限。循環参照するテーブルを弾くため。
const maxTableDepth = 8

// ホストオブジェクトのuserdataに共通で設定するメタテーブル名
const objectMetaTable = "arena.object"

// Host はLuaのステートにRegistryの全操作をグローバル関数として公開します。
// Roomのゴルーチンからのみ呼び出されることを前提にしています。
type Host struct {
	state    *lua.State
	registry *script.Registry

	// Load/Call実行中のコンテキスト
	ctx context.Context
}

func NewHost(registry *script.Registry) *Host {
	h := &Host{
		state:    lua.NewState(),
		registry: registry,
		ctx:      context.Background(),
	}
	lua.OpenLibraries(h.state)
	registerObjectMetaTable(h.state)
	h.state.Register("print", h.print)
	for _, name := range registry.Names() {
		h.state.Register(name, h.bind(name))
	}
	return h
}

// Load はchunkを読み込んで実行する
func (h *Host) Load(ctx context.Context, name, source string) error {
	h.ctx = ctx
	defer func() { h.ctx = context.Background() }()

	if err := lua.LoadBuffer(h.state, source, name, "text"); err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	if err := h.state.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("run %s: %w", name, err)
	}
	return nil
}

func (h *Host) LoadFile(ctx context.Context, path string) error {
	h.ctx = ctx
	defer func() { h.ctx = context.Background() }()

	if err := lua.LoadFile(h.state, path, "text"); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	if err := h.state.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("run %s: %w", path, err)
	}
	slog.InfoContext(ctx, "lua script loaded", "path", path)
	return nil
}

// LoadDir はdir直下の*.luaを名前順に読み込む
func (h *Host) LoadDir(ctx context.Context, dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.lua"))
	if err != nil {
		return err
	}
	slices.Sort(paths)
	for _, path := range paths {
		if err := h.LoadFile(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

// HasFunction はグローバルにnameという関数が定義されているかを返す
func (h *Host) HasFunction(name string) bool {
	h.state.Global(name)
	ok := h.state.IsFunction(-1)
	h.state.Pop(1)
	return ok
}

// Call はグローバル関数fnを呼び出して戻り値を返す
func (h *Host) Call(ctx context.Context, fn string, args ...script.Value) ([]script.Value, error) {
	h.ctx = ctx
	defer func() { h.ctx = context.Background() }()

	l := h.state
	base := l.Top()
	defer l.SetTop(base)

	l.Global(fn)
	if !l.IsFunction(-1) {
		return nil, fmt.Errorf("%w: %s", ErrFunctionNotFound, fn)
	}
	for _, a := range args {
		pushValue(l, a)
	}
	if err := l.ProtectedCall(len(args), lua.MultipleReturns, 0); err != nil {
		return nil, fmt.Errorf("call %s: %w", fn, err)
	}

	results := make([]script.Value, 0, l.Top()-base)
	for i := base + 1; i <= l.Top(); i++ {
		v, err := toValue(l, i, 0)
		if err != nil {
			return nil, fmt.Errorf("call %s: result #%d: %w", fn, i-base, err)
		}
		results = append(results, v)
	}
	return results, nil
}

func (h *Host) bind(name string) lua.Function {
	return func(l *lua.State) int {
		n := l.Top()
		args := make([]script.Value, n)
		for i := 1; i <= n; i++ {
			v, err := toValue(l, i, 0)
			if err != nil {
				lua.Errorf(l, "%s: argument #%d: %s", name, i, err.Error())
				return 0
			}
			args[i-1] = v
		}

		result, err := h.registry.Invoke(h.ctx, name, args)
		if err != nil {
			// pcallで捕捉できるLuaのエラーにする
			lua.Errorf(l, "%s", err.Error())
			return 0
		}
		if sig, _ := h.registry.Signature(name); sig.Result == "" {
			return 0
		}
		pushValue(l, result)
		return 1
	}
}

func (h *Host) print(l *lua.State) int {
	n := l.Top()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		v, err := toValue(l, i, 0)
		if err != nil {
			parts = append(parts, lua.TypeNameOf(l, i))
			continue
		}
		if s, ok := v.AsString(); ok {
			parts = append(parts, s)
			continue
		}
		parts = append(parts, v.String())
	}
	slog.InfoContext(h.ctx, "lua: print", "message", strings.Join(parts, "\t"))
	return 0
}

// 境界を越えるたびにuserdataは作り直されるため、
// 同じホストオブジェクトを指すuserdata同士が == で等しくなるようにする
func registerObjectMetaTable(l *lua.State) {
	lua.NewMetaTable(l, objectMetaTable)
	l.PushGoFunction(func(l *lua.State) int {
		l.PushBoolean(sameObject(l.ToUserData(1), l.ToUserData(2)))
		return 1
	})
	l.SetField(-2, "__eq")
	l.Pop(1)
}

func sameObject(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() || !va.Comparable() {
		return false
	}
	return a == b
}

func pushValue(l *lua.State, v script.Value) {
	switch v.Kind() {
	case script.KindNumber:
		n, _ := v.AsNumber()
		l.PushNumber(n)
	case script.KindString:
		s, _ := v.AsString()
		l.PushString(s)
	case script.KindBool:
		b, _ := v.AsBool()
		l.PushBoolean(b)
	case script.KindObject:
		o, _ := v.AsObject()
		l.PushUserData(o)
		lua.SetMetaTableNamed(l, objectMetaTable)
	case script.KindList:
		items, _ := v.AsList()
		l.CreateTable(len(items), 0)
		for i, item := range items {
			pushValue(l, item)
			l.RawSetInt(-2, i+1)
		}
	default:
		l.PushNil()
	}
}

func toValue(l *lua.State, index, depth int) (script.Value, error) {
	switch l.TypeOf(index) {
	case lua.TypeNil, lua.TypeNone:
		return script.Nil(), nil
	case lua.TypeNumber:
		n, _ := l.ToNumber(index)
		return script.Number(n), nil
	case lua.TypeString:
		s, _ := l.ToString(index)
		return script.String(s), nil
	case lua.TypeBoolean:
		return script.Bool(l.ToBoolean(index)), nil
	case lua.TypeUserData, lua.TypeLightUserData:
		return script.Object(l.ToUserData(index)), nil
	case lua.TypeTable:
		if depth >= maxTableDepth {
			return script.Nil(), fmt.Errorf("%w: table nested too deeply", ErrUnsupportedValue)
		}
		index = l.AbsIndex(index)
		n := l.RawLength(index)
		items := make([]script.Value, 0, n)
		for i := 1; i <= n; i++ {
			l.RawGetInt(index, i)
			item, err := toValue(l, -1, depth+1)
			l.Pop(1)
			if err != nil {
				return script.Nil(), err
			}
			items = append(items, item)
		}
		return script.List(items...), nil
	default:
		return script.Nil(), fmt.Errorf("%w: %s", ErrUnsupportedValue, lua.TypeNameOf(l, index))
	}
}
