package api

import (
	"context"

	"arena/server/domain"
	"arena/server/game"
	"arena/server/script"
)

// スクリプトから見えるホストオブジェクトの型
const (
	TypeUnit     = "unit"
	TypeChampion = "champion"
	TypeObject   = "object"
	TypeTarget   = "target"
	TypeClient   = "client"
)

type (
	param = script.Param
	args  = script.Args
)

var (
	req = script.Required
	opt = script.Optional
	sig = script.Sig
)

// Register はホストオブジェクトの型と全操作をbuilderに登録する
func (o *Operations) Register(b *script.Builder) {
	b.RegisterType(TypeUnit, convertUnit).
		RegisterType(TypeChampion, script.ObjectType[*game.Champion]()).
		RegisterType(TypeObject, script.ObjectType[game.Object]()).
		RegisterType(TypeTarget, convertTarget).
		RegisterType(TypeClient, script.ObjectType[*game.ClientInfo]())

	b.Register("setChampionModel", sig("", req("champion", TypeChampion), req("model", script.TypeString)),
		func(ctx context.Context, a args) (script.Value, error) {
			o.SetChampionModel(script.Arg[*game.Champion](a, 0), script.Arg[string](a, 1))
			return script.Nil(), nil
		})

	b.Register("teleportTo", sig("", req("unit", TypeUnit), req("x", script.TypeNumber), req("y", script.TypeNumber)),
		func(ctx context.Context, a args) (script.Value, error) {
			return script.Nil(), o.TeleportTo(ctx, script.Arg[*game.Unit](a, 0), f32(a, 1), f32(a, 2))
		})

	b.Register("isWalkable", sig(script.TypeBool, req("x", script.TypeNumber), req("y", script.TypeNumber)),
		func(ctx context.Context, a args) (script.Value, error) {
			return script.Bool(o.IsWalkable(f32(a, 0), f32(a, 1))), nil
		})

	b.Register("addParticle", sig("", req("owner", TypeChampion), req("particle", script.TypeString), req("x", script.TypeNumber), req("y", script.TypeNumber)),
		func(ctx context.Context, a args) (script.Value, error) {
			return script.Nil(), o.AddParticle(ctx, script.Arg[*game.Champion](a, 0), script.Arg[string](a, 1), f32(a, 2), f32(a, 3))
		})

	b.Register("addParticleTarget", sig("", req("owner", TypeChampion), req("particle", script.TypeString), req("target", TypeTarget)),
		func(ctx context.Context, a args) (script.Value, error) {
			o.AddParticleTarget(ctx, script.Arg[*game.Champion](a, 0), script.Arg[string](a, 1), script.Arg[*game.Target](a, 2))
			return script.Nil(), nil
		})

	b.Register("addBuff", sig("", req("name", script.TypeString), req("duration", script.TypeNumber), req("target", TypeUnit), req("source", TypeUnit)),
		func(ctx context.Context, a args) (script.Value, error) {
			_, err := o.AddBuff(ctx, script.Arg[string](a, 0), script.Arg[float64](a, 1), script.Arg[*game.Unit](a, 2), script.Arg[*game.Unit](a, 3))
			return script.Nil(), err
		})

	b.Register("printChat", sig("", req("message", script.TypeString)),
		func(ctx context.Context, a args) (script.Value, error) {
			o.PrintChat(ctx, script.Arg[string](a, 0))
			return script.Nil(), nil
		})

	rangeParams := []param{req("target", TypeTarget), req("range", script.TypeNumber), req("aliveOnly", script.TypeBool)}
	b.Register("getUnitsInRange", sig(script.TypeList, rangeParams...),
		func(ctx context.Context, a args) (script.Value, error) {
			units := o.UnitsInRange(script.Arg[*game.Target](a, 0), f32(a, 1), script.Arg[bool](a, 2))
			return script.ObjectList(units), nil
		})
	b.Register("getChampionsInRange", sig(script.TypeList, rangeParams...),
		func(ctx context.Context, a args) (script.Value, error) {
			champions := o.ChampionsInRange(script.Arg[*game.Target](a, 0), f32(a, 1), script.Arg[bool](a, 2))
			return script.ObjectList(champions), nil
		})

	b.Register("dashTo", sig("",
		req("unit", TypeUnit),
		req("x", script.TypeNumber),
		req("y", script.TypeNumber),
		req("speed", script.TypeNumber),
		req("leapHeight", script.TypeNumber),
		opt("animation", script.TypeString),
	), func(ctx context.Context, a args) (script.Value, error) {
		return script.Nil(), o.DashTo(ctx, script.Arg[*game.Unit](a, 0), f32(a, 1), f32(a, 2), f32(a, 3), f32(a, 4), script.Arg[string](a, 5))
	})

	b.Register("getTeam", sig(script.TypeInteger, req("object", TypeObject)),
		func(ctx context.Context, a args) (script.Value, error) {
			return script.Number(float64(o.Team(script.Arg[game.Object](a, 0)))), nil
		})

	b.Register("isDead", sig(script.TypeBool, req("unit", TypeUnit)),
		func(ctx context.Context, a args) (script.Value, error) {
			return script.Bool(o.IsDead(script.Arg[*game.Unit](a, 0))), nil
		})

	b.Register("sendPacket", sig("", req("hex", script.TypeString)),
		func(ctx context.Context, a args) (script.Value, error) {
			return script.Nil(), o.SendPacket(ctx, script.Arg[string](a, 0))
		})

	b.Register("setGold", sig("", req("champion", TypeChampion), req("amount", script.TypeNumber)),
		func(ctx context.Context, a args) (script.Value, error) {
			return script.Nil(), o.SetGold(script.Arg[*game.Champion](a, 0), script.Arg[float64](a, 1))
		})
	b.Register("addGold", sig("", req("champion", TypeChampion), req("amount", script.TypeNumber)),
		func(ctx context.Context, a args) (script.Value, error) {
			return script.Nil(), o.AddGold(script.Arg[*game.Champion](a, 0), script.Arg[float64](a, 1))
		})

	b.Register("getStacks", sig(script.TypeInteger, req("buff", script.TypeString), req("unit", TypeUnit)),
		func(ctx context.Context, a args) (script.Value, error) {
			return script.Number(float64(o.Stacks(script.Arg[string](a, 0), script.Arg[*game.Unit](a, 1)))), nil
		})
	b.Register("setStacks", sig("", req("buff", script.TypeString), req("unit", TypeUnit), req("stacks", script.TypeInteger)),
		func(ctx context.Context, a args) (script.Value, error) {
			return script.Nil(), o.SetStacks(script.Arg[string](a, 0), script.Arg[*game.Unit](a, 1), script.Arg[int64](a, 2))
		})

	b.Register("addItem", sig("", req("champion", TypeChampion), req("item", script.TypeInteger)),
		func(ctx context.Context, a args) (script.Value, error) {
			_, err := o.AddItem(ctx, script.Arg[*game.Champion](a, 0), script.Arg[int64](a, 1))
			return script.Nil(), err
		})

	b.Register("getAllChampions", sig(script.TypeList),
		func(ctx context.Context, a args) (script.Value, error) {
			return script.ObjectList(o.AllChampions()), nil
		})
	b.Register("getAllPlayers", sig(script.TypeList),
		func(ctx context.Context, a args) (script.Value, error) {
			return script.ObjectList(o.AllPlayers()), nil
		})
	b.Register("getPlayer", sig(TypeClient, req("index", script.TypeInteger)),
		func(ctx context.Context, a args) (script.Value, error) {
			p, err := o.Player(script.Arg[int64](a, 0))
			if err != nil {
				return script.Nil(), err
			}
			return script.Object(p), nil
		})
	b.Register("getChampion", sig(TypeChampion, req("index", script.TypeInteger)),
		func(ctx context.Context, a args) (script.Value, error) {
			c, err := o.Champion(script.Arg[int64](a, 0))
			if err != nil {
				return script.Nil(), err
			}
			return script.Object(c), nil
		})

	// スクリプトから座標のTargetを作るための補助
	b.Register("newTarget", sig(TypeTarget, req("x", script.TypeNumber), req("y", script.TypeNumber)),
		func(ctx context.Context, a args) (script.Value, error) {
			p := domain.Position2D{X: f32(a, 0), Y: f32(a, 1)}
			return script.Object(game.PointTarget(p)), nil
		})
}

// f32 はnumber引数をfloat32で取り出す
func f32(a args, i int) float32 {
	return float32(script.Arg[float64](a, i))
}

// convertUnit はUnitまたはChampionを受け付ける
func convertUnit(v script.Value) (any, error) {
	o, _ := v.AsObject()
	switch u := o.(type) {
	case *game.Unit:
		return u, nil
	case *game.Champion:
		return u.Unit, nil
	}
	return script.ObjectType[*game.Unit]()(v)
}

// convertTarget はTargetに加え、ユニットを指すTargetとしてUnitとChampionを受け付ける
func convertTarget(v script.Value) (any, error) {
	o, _ := v.AsObject()
	switch t := o.(type) {
	case *game.Target:
		return t, nil
	case *game.Unit:
		return game.UnitTarget(t), nil
	case *game.Champion:
		return game.UnitTarget(t.Unit), nil
	}
	return script.ObjectType[*game.Target]()(v)
}
