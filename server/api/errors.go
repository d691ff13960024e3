package api

import "errors"

var (
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrUnknownItem         = errors.New("unknown item")
	ErrPayloadDecode       = errors.New("payload decode failed")
	ErrInvalidBuffDuration = errors.New("buff duration must be positive")
	ErrInvalidDashSpeed    = errors.New("dash speed must be positive")
	ErrInvalidPosition     = errors.New("position must be finite")
	ErrUnknownBuff         = errors.New("unknown buff")
	ErrInvalidStacks       = errors.New("stacks out of range")
	ErrDeadTarget          = errors.New("target is dead")
)
