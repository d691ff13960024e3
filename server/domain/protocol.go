package domain

import (
	"encoding/binary"
	"errors"
	"time"
)

// バイトオーダー: リトルエンディアン
var byteOrder = binary.LittleEndian

const (
	HeaderSize        = 25
	PayloadHeaderSize = 2
	ProtocolVersion   = 1
)

// Header はメッセージヘッダー (25バイト)
//
//	version    u8      (1)
//	sessionID  [16]byte (16)
//	seq        u16     (2)
//	length     u16     (2)  - ペイロード長
//	timestamp  u32     (4)
type Header struct {
	Version   uint8
	SessionID [16]byte
	Seq       uint16
	Length    uint16
	Timestamp uint32
}

// DataType はメッセージの種別
type DataType uint8

const (
	DataTypeInput   DataType = 1
	DataTypeChat    DataType = 2
	DataTypeControl DataType = 4
	DataTypeNotify  DataType = 6
)

// ControlSubType はcontrolメッセージのサブタイプ
type ControlSubType uint8

const (
	ControlSubTypeJoin   ControlSubType = 1
	ControlSubTypeLeave  ControlSubType = 2
	ControlSubTypeKick   ControlSubType = 3
	ControlSubTypePing   ControlSubType = 4
	ControlSubTypePong   ControlSubType = 5
	ControlSubTypeError  ControlSubType = 6
	ControlSubTypeAssign ControlSubType = 7
)

// NotifyKind はサーバーからクライアントへの通知メッセージのサブタイプ
type NotifyKind uint8

const (
	NotifyTeleport      NotifyKind = 1
	NotifyDash          NotifyKind = 2
	NotifyBuffAdd       NotifyKind = 3
	NotifyParticleSpawn NotifyKind = 4
	NotifySetAnimation  NotifyKind = 5
	NotifyItemBought    NotifyKind = 6
	NotifyDebugMessage  NotifyKind = 7
)

func (k NotifyKind) String() string {
	switch k {
	case NotifyTeleport:
		return "teleport"
	case NotifyDash:
		return "dash"
	case NotifyBuffAdd:
		return "buff_add"
	case NotifyParticleSpawn:
		return "particle_spawn"
	case NotifySetAnimation:
		return "set_animation"
	case NotifyItemBought:
		return "item_bought"
	case NotifyDebugMessage:
		return "debug_message"
	default:
		return "unknown"
	}
}

// PayloadHeader はペイロードヘッダー (2バイト)
//
//	datatype  u8 (1)
//	subtype   u8 (1)
type PayloadHeader struct {
	DataType DataType
	SubType  uint8
}

var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidPayloadSize = errors.New("invalid payload size")
	ErrInvalidFrameSize   = errors.New("invalid frame size")
)

// ParseHeader はバイト列からHeaderをパースする
func ParseHeader(data []byte) (*Header, error) {
	if len(data) < HeaderSize {
		return nil, ErrInvalidHeaderSize
	}

	var sessionID [16]byte
	copy(sessionID[:], data[1:17])

	return &Header{
		Version:   data[0],
		SessionID: sessionID,
		Seq:       byteOrder.Uint16(data[17:19]),
		Length:    byteOrder.Uint16(data[19:21]),
		Timestamp: byteOrder.Uint32(data[21:25]),
	}, nil
}

// Encode はHeaderをバイト列にエンコードする
func (h *Header) Encode() []byte {
	data := make([]byte, HeaderSize)
	data[0] = h.Version
	copy(data[1:17], h.SessionID[:])
	byteOrder.PutUint16(data[17:19], h.Seq)
	byteOrder.PutUint16(data[19:21], h.Length)
	byteOrder.PutUint32(data[21:25], h.Timestamp)
	return data
}

// ParsePayloadHeader はバイト列からPayloadHeaderをパースする
func ParsePayloadHeader(data []byte) (*PayloadHeader, error) {
	if len(data) < PayloadHeaderSize {
		return nil, ErrInvalidPayloadSize
	}

	return &PayloadHeader{
		DataType: DataType(data[0]),
		SubType:  data[1],
	}, nil
}

// Encode はPayloadHeaderをバイト列にエンコードする
func (p *PayloadHeader) Encode() []byte {
	data := make([]byte, PayloadHeaderSize)
	data[0] = byte(p.DataType)
	data[1] = p.SubType
	return data
}

// EncodeMessage はHeader・PayloadHeader・ボディを1つのメッセージにまとめる。
// Header.Length はPayloadHeaderとボディの合計長で上書きされる。
func EncodeMessage(header Header, payloadHeader PayloadHeader, body []byte) []byte {
	header.Length = uint16(PayloadHeaderSize + len(body))

	data := make([]byte, 0, HeaderSize+PayloadHeaderSize+len(body))
	data = append(data, header.Encode()...)
	data = append(data, payloadHeader.Encode()...)
	data = append(data, body...)
	return data
}

// Timestamp はヘッダー用のミリ秒タイムスタンプ (下位32bit) を返す
func Timestamp(t time.Time) uint32 {
	return uint32(t.UnixMilli() & 0xFFFFFFFF)
}

// EncodeControlMessage はボディを持たないcontrolメッセージをエンコードする
func EncodeControlMessage(sessionID SessionID, subType ControlSubType) []byte {
	header := Header{
		Version:   ProtocolVersion,
		SessionID: sessionID.Bytes(),
		Timestamp: Timestamp(time.Now()),
	}
	payloadHeader := PayloadHeader{
		DataType: DataTypeControl,
		SubType:  uint8(subType),
	}
	return EncodeMessage(header, payloadHeader, nil)
}

// EncodeAssignMessage はセッションID通知メッセージをエンコードする
// クライアントに自分のセッションIDを通知するために使用
func EncodeAssignMessage(sessionID SessionID) []byte {
	return EncodeControlMessage(sessionID, ControlSubTypeAssign)
}

// EncodeJoinMessage はルーム参加メッセージをエンコードする
func EncodeJoinMessage(sessionID SessionID) []byte {
	return EncodeControlMessage(sessionID, ControlSubTypeJoin)
}

// EncodeLeaveMessage はルーム離脱メッセージをエンコードする
// 異常切断時にclose()からRoom離脱を通知するために使用
func EncodeLeaveMessage(sessionID SessionID) []byte {
	return EncodeControlMessage(sessionID, ControlSubTypeLeave)
}

// EncodePingMessage はPingメッセージをエンコードする
// クライアントに死活確認のpingを送信するために使用
func EncodePingMessage(sessionID SessionID) []byte {
	return EncodeControlMessage(sessionID, ControlSubTypePing)
}

// EncodeFrame はトランスポートに書き込むフレームを作る。
// 先頭1バイトがチャネル、残りがメッセージ本体。
func EncodeFrame(channel Channel, message []byte) []byte {
	frame := make([]byte, 1+len(message))
	frame[0] = byte(channel)
	copy(frame[1:], message)
	return frame
}

// ParseFrame はフレームをチャネルとメッセージに分解する
func ParseFrame(frame []byte) (Channel, []byte, error) {
	if len(frame) < 1 {
		return 0, nil, ErrInvalidFrameSize
	}
	return Channel(frame[0]), frame[1:], nil
}

// InputPayloadSize はInputPayloadのサイズ
const InputPayloadSize = 4

var ErrInvalidInputPayloadSize = errors.New("invalid input payload size")

// InputPayload はユーザー入力 (4バイト)
//
//	keyMask uint32 (4) - キー入力ビットマスク
type InputPayload struct {
	KeyMask uint32
}

// ParseInputPayload はバイト列からInputPayloadをパースする
func ParseInputPayload(data []byte) (*InputPayload, error) {
	if len(data) < InputPayloadSize {
		return nil, ErrInvalidInputPayloadSize
	}

	return &InputPayload{
		KeyMask: byteOrder.Uint32(data[0:4]),
	}, nil
}

// Encode はInputPayloadをバイト列にエンコードする
func (i *InputPayload) Encode() []byte {
	data := make([]byte, InputPayloadSize)
	byteOrder.PutUint32(data[0:4], i.KeyMask)
	return data
}

// ChatPayload はクライアントからのチャット入力
//
//	text  u16 length + bytes
type ChatPayload struct {
	Text string
}

// ParseChatPayload はバイト列からChatPayloadをパースする
func ParseChatPayload(data []byte) (*ChatPayload, error) {
	r := wireReader{data: data}
	text := r.string()
	if r.err != nil {
		return nil, r.err
	}
	return &ChatPayload{Text: text}, nil
}

// Encode はChatPayloadをバイト列にエンコードする
func (c *ChatPayload) Encode() []byte {
	var w wireWriter
	w.string(c.Text)
	return w.bytes()
}
