package domain

// 通知メッセージのボディ定義。
// いずれも Header + PayloadHeader{DataTypeNotify, NotifyKind} の後ろに続く。

// TeleportPayload はテレポート通知
//
//	unitID    [16]byte
//	position  Position2D - 解決後の座標
type TeleportPayload struct {
	UnitID   [16]byte
	Position Position2D
}

func (p *TeleportPayload) Encode() []byte {
	var w wireWriter
	w.id(p.UnitID)
	w.position(p.Position)
	return w.bytes()
}

func ParseTeleportPayload(data []byte) (*TeleportPayload, error) {
	r := wireReader{data: data}
	p := &TeleportPayload{
		UnitID:   r.id(),
		Position: r.position(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

// DashPayload はダッシュ通知
//
//	unitID      [16]byte
//	target      Position2D - スクリプトが要求した座標
//	speed       float32
//	leapHeight  float32
type DashPayload struct {
	UnitID     [16]byte
	Target     Position2D
	Speed      float32
	LeapHeight float32
}

func (p *DashPayload) Encode() []byte {
	var w wireWriter
	w.id(p.UnitID)
	w.position(p.Target)
	w.f32(p.Speed)
	w.f32(p.LeapHeight)
	return w.bytes()
}

func ParseDashPayload(data []byte) (*DashPayload, error) {
	r := wireReader{data: data}
	p := &DashPayload{
		UnitID:     r.id(),
		Target:     r.position(),
		Speed:      r.f32(),
		LeapHeight: r.f32(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

// BuffAddPayload はバフ付与通知
//
//	targetID  [16]byte
//	sourceID  [16]byte
//	duration  float32
//	stacks    u8
//	name      string
type BuffAddPayload struct {
	TargetID [16]byte
	SourceID [16]byte
	Duration float32
	Stacks   uint8
	Name     string
}

func (p *BuffAddPayload) Encode() []byte {
	var w wireWriter
	w.id(p.TargetID)
	w.id(p.SourceID)
	w.f32(p.Duration)
	w.u8(p.Stacks)
	w.string(p.Name)
	return w.bytes()
}

func ParseBuffAddPayload(data []byte) (*BuffAddPayload, error) {
	r := wireReader{data: data}
	p := &BuffAddPayload{
		TargetID: r.id(),
		SourceID: r.id(),
		Duration: r.f32(),
		Stacks:   r.u8(),
		Name:     r.string(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

// ParticleTargetKind はパーティクルの対象種別
type ParticleTargetKind uint8

const (
	ParticleTargetPoint ParticleTargetKind = 0
	ParticleTargetUnit  ParticleTargetKind = 1
)

// ParticleSpawnPayload はパーティクル生成通知
//
//	ownerID     [16]byte
//	targetKind  u8
//	targetID    [16]byte - targetKindがUnitのときのみ有効
//	position    Position2D
//	particle    string
type ParticleSpawnPayload struct {
	OwnerID    [16]byte
	TargetKind ParticleTargetKind
	TargetID   [16]byte
	Position   Position2D
	Particle   string
}

func (p *ParticleSpawnPayload) Encode() []byte {
	var w wireWriter
	w.id(p.OwnerID)
	w.u8(uint8(p.TargetKind))
	w.id(p.TargetID)
	w.position(p.Position)
	w.string(p.Particle)
	return w.bytes()
}

func ParseParticleSpawnPayload(data []byte) (*ParticleSpawnPayload, error) {
	r := wireReader{data: data}
	p := &ParticleSpawnPayload{
		OwnerID:    r.id(),
		TargetKind: ParticleTargetKind(r.u8()),
		TargetID:   r.id(),
		Position:   r.position(),
		Particle:   r.string(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

// SetAnimationPayload はアニメーション差し替え通知
//
//	unitID      [16]byte
//	count       u8
//	animations  string * count
type SetAnimationPayload struct {
	UnitID     [16]byte
	Animations []string
}

func (p *SetAnimationPayload) Encode() []byte {
	var w wireWriter
	w.id(p.UnitID)
	w.u8(uint8(len(p.Animations)))
	for _, a := range p.Animations {
		w.string(a)
	}
	return w.bytes()
}

func ParseSetAnimationPayload(data []byte) (*SetAnimationPayload, error) {
	r := wireReader{data: data}
	p := &SetAnimationPayload{UnitID: r.id()}
	count := int(r.u8())
	for i := 0; i < count && r.err == nil; i++ {
		p.Animations = append(p.Animations, r.string())
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

// ItemBoughtPayload はアイテム購入通知
//
//	championID  [16]byte
//	itemID      u32
//	slot        u8
//	stacks      u8
type ItemBoughtPayload struct {
	ChampionID [16]byte
	ItemID     uint32
	Slot       uint8
	Stacks     uint8
}

func (p *ItemBoughtPayload) Encode() []byte {
	var w wireWriter
	w.id(p.ChampionID)
	w.u32(p.ItemID)
	w.u8(p.Slot)
	w.u8(p.Stacks)
	return w.bytes()
}

func ParseItemBoughtPayload(data []byte) (*ItemBoughtPayload, error) {
	r := wireReader{data: data}
	p := &ItemBoughtPayload{
		ChampionID: r.id(),
		ItemID:     r.u32(),
		Slot:       r.u8(),
		Stacks:     r.u8(),
	}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}

// DebugMessagePayload はチャット欄に表示するデバッグメッセージ
type DebugMessagePayload struct {
	Message string
}

func (p *DebugMessagePayload) Encode() []byte {
	var w wireWriter
	w.string(p.Message)
	return w.bytes()
}

func ParseDebugMessagePayload(data []byte) (*DebugMessagePayload, error) {
	r := wireReader{data: data}
	p := &DebugMessagePayload{Message: r.string()}
	if r.err != nil {
		return nil, r.err
	}
	return p, nil
}
