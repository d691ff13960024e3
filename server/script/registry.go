package script

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("arena/server/script")

// Param は引数1つ分の宣言
type Param struct {
	Name     string
	Type     string
	Optional bool
}

func Required(name, typ string) Param { return Param{Name: name, Type: typ} }
func Optional(name, typ string) Param { return Param{Name: name, Type: typ, Optional: true} }

// Signature は操作の引数と戻り値の宣言。Resultが空なら戻り値なし。
// 省略可能な引数は末尾にのみ置ける。
type Signature struct {
	Params []Param
	Result string
}

// Sig はSignatureを組み立てる
func Sig(result string, params ...Param) Signature {
	return Signature{Params: params, Result: result}
}

// Arity は必須引数の数と全引数の数を返す
func (s Signature) Arity() (required, total int) {
	for _, p := range s.Params {
		if !p.Optional {
			required++
		}
	}
	return required, len(s.Params)
}

// Operation はスクリプトから呼び出せるネイティブ関数
type Operation func(ctx context.Context, args Args) (Value, error)

type binding struct {
	name      string
	signature Signature
	convert   []Converter
	result    Converter
	op        Operation
}

// Builder は起動時にRegistryを組み立てる。
// 登録エラーは記録され、Buildでまとめて返される。
type Builder struct {
	types    map[string]Converter
	bindings map[string]*binding
	errs     []error
}

func NewBuilder() *Builder {
	return &Builder{
		types:    builtinTypes(),
		bindings: make(map[string]*binding),
	}
}

// RegisterType はスクリプトで表現可能な引数型を追加する
func (b *Builder) RegisterType(name string, convert Converter) *Builder {
	if _, ok := b.types[name]; ok {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrDuplicateType, name))
		return b
	}
	b.types[name] = convert
	return b
}

// Register は名前に操作を割り当てる
func (b *Builder) Register(name string, sig Signature, op Operation) *Builder {
	if _, ok := b.bindings[name]; ok {
		b.errs = append(b.errs, fmt.Errorf("%w: %q", ErrDuplicateBinding, name))
		return b
	}
	bd, err := b.resolve(name, sig, op)
	if err != nil {
		b.errs = append(b.errs, err)
		return b
	}
	b.bindings[name] = bd
	return b
}

func (b *Builder) resolve(name string, sig Signature, op Operation) (*binding, error) {
	if name == "" || op == nil {
		return nil, fmt.Errorf("%w: %q: empty name or nil operation", ErrSignatureResolution, name)
	}
	bd := &binding{
		name:      name,
		signature: Signature{Params: slices.Clone(sig.Params), Result: sig.Result},
		convert:   make([]Converter, len(sig.Params)),
		op:        op,
	}
	seenOptional := false
	for i, p := range sig.Params {
		conv, ok := b.types[p.Type]
		if !ok {
			return nil, fmt.Errorf("%w: %q: parameter %q has unknown type %q", ErrSignatureResolution, name, p.Name, p.Type)
		}
		if seenOptional && !p.Optional {
			return nil, fmt.Errorf("%w: %q: required parameter %q follows an optional one", ErrSignatureResolution, name, p.Name)
		}
		seenOptional = seenOptional || p.Optional
		bd.convert[i] = conv
	}
	if sig.Result != "" {
		conv, ok := b.types[sig.Result]
		if !ok {
			return nil, fmt.Errorf("%w: %q: unknown result type %q", ErrSignatureResolution, name, sig.Result)
		}
		bd.result = conv
	}
	return bd, nil
}

// Build は不変のRegistryを返す。登録エラーがあった場合は失敗する。
func (b *Builder) Build() (*Registry, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	bindings := make(map[string]*binding, len(b.bindings))
	names := make([]string, 0, len(b.bindings))
	for name, bd := range b.bindings {
		bindings[name] = bd
		names = append(names, name)
	}
	slices.Sort(names)
	return &Registry{bindings: bindings, names: names}, nil
}

// Registry は名前から操作を引く読み取り専用の表です。
// Build後は変更されないため、複数ゴルーチンや再入呼び出しからロックなしで参照できます。
type Registry struct {
	bindings map[string]*binding
	names    []string
}

// Names は登録済みの名前を昇順で返す
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

func (r *Registry) Has(name string) bool {
	_, ok := r.bindings[name]
	return ok
}

func (r *Registry) Signature(name string) (Signature, bool) {
	bd, ok := r.bindings[name]
	if !ok {
		return Signature{}, false
	}
	return Signature{Params: slices.Clone(bd.signature.Params), Result: bd.signature.Result}, true
}

// Invoke は名前で操作を呼び出す。引数の検証はすべて操作の実行前に行われる。
func (r *Registry) Invoke(ctx context.Context, name string, args []Value) (result Value, err error) {
	ctx, span := tracer.Start(ctx, "script."+name, trace.WithAttributes(
		attribute.String("script.operation", name),
		attribute.Int("script.args", len(args)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	bd, ok := r.bindings[name]
	if !ok {
		return Nil(), fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}

	required, total := bd.signature.Arity()
	if len(args) < required || len(args) > total {
		return Nil(), fmt.Errorf("%w: %s takes %s arguments, got %d", ErrArityMismatch, name, arityString(required, total), len(args))
	}

	converted := make([]any, total)
	present := make([]bool, total)
	for i, v := range args {
		p := bd.signature.Params[i]
		// 省略可能な引数へのnilは省略として扱う
		if p.Optional && v.IsNil() {
			continue
		}
		out, err := bd.convert[i](v)
		if err != nil {
			return Nil(), &ArgumentError{Operation: name, Index: i, Want: p.Type, Got: v.Kind(), Reason: err}
		}
		converted[i] = out
		present[i] = true
	}

	result, err = bd.op(ctx, Args{values: converted, present: present})
	if err != nil {
		return Nil(), err
	}
	if bd.result == nil {
		return Nil(), nil
	}
	if _, err := bd.result(result); err != nil {
		return Nil(), fmt.Errorf("%w: %s returned %s, want %s", ErrResultType, name, result.Kind(), bd.signature.Result)
	}
	return result, nil
}

func arityString(required, total int) string {
	if required == total {
		return fmt.Sprint(total)
	}
	return fmt.Sprintf("%d to %d", required, total)
}
