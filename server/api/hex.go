package api

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// DecodeHexPayload は空白を取り除いた16進文字列をバイト列にデコードする
func DecodeHexPayload(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrPayloadDecode)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPayloadDecode, err)
	}
	return b, nil
}
