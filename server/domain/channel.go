package domain

import "fmt"

// Channel は送信メッセージのルーティング区分
type Channel uint8

const (
	ChannelHandshake     Channel = 0
	ChannelC2S           Channel = 1
	ChannelGameplay      Channel = 2
	ChannelS2C           Channel = 3
	ChannelLowPriority   Channel = 4
	ChannelCommunication Channel = 5
	ChannelLoadingScreen Channel = 7
)

func (c Channel) String() string {
	switch c {
	case ChannelHandshake:
		return "handshake"
	case ChannelC2S:
		return "c2s"
	case ChannelGameplay:
		return "gameplay"
	case ChannelS2C:
		return "s2c"
	case ChannelLowPriority:
		return "low_priority"
	case ChannelCommunication:
		return "communication"
	case ChannelLoadingScreen:
		return "loading_screen"
	default:
		return fmt.Sprintf("channel(%d)", uint8(c))
	}
}

// Valid は定義済みのチャネルかどうかを返す
func (c Channel) Valid() bool {
	switch c {
	case ChannelHandshake, ChannelC2S, ChannelGameplay, ChannelS2C,
		ChannelLowPriority, ChannelCommunication, ChannelLoadingScreen:
		return true
	default:
		return false
	}
}
