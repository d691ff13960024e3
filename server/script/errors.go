package script

import (
	"errors"
	"fmt"
)

// 登録時のエラー。起動を中断する。
var (
	ErrDuplicateBinding    = errors.New("duplicate binding")
	ErrDuplicateType       = errors.New("duplicate type")
	ErrSignatureResolution = errors.New("signature cannot be resolved")
)

// 呼び出し時のエラー。呼び出し元のスクリプトに返す。
var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrArityMismatch    = errors.New("arity mismatch")
	ErrArgumentType     = errors.New("argument type mismatch")
	ErrResultType       = errors.New("result type mismatch")
)

// ArgumentError は引数の変換に失敗したことを表す
type ArgumentError struct {
	Operation string
	Index     int
	Want      string
	Got       Kind
	Reason    error
}

func (e *ArgumentError) Error() string {
	msg := fmt.Sprintf("%s: argument #%d: want %s, got %s", e.Operation, e.Index+1, e.Want, e.Got)
	if e.Reason != nil {
		msg += " (" + e.Reason.Error() + ")"
	}
	return msg
}

func (e *ArgumentError) Unwrap() error {
	return ErrArgumentType
}
