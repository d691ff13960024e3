package domain

import (
	"errors"
	"math"
)

// MaxStringLength はワイヤー上の文字列の最大バイト長。超過分は切り詰める。
const MaxStringLength = 4096

var ErrTruncatedPayload = errors.New("truncated payload")

// wireWriter はリトルエンディアンで値を追記していくバッファ
type wireWriter struct {
	buf []byte
}

func (w *wireWriter) u8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *wireWriter) u16(v uint16) {
	w.buf = byteOrder.AppendUint16(w.buf, v)
}

func (w *wireWriter) u32(v uint32) {
	w.buf = byteOrder.AppendUint32(w.buf, v)
}

func (w *wireWriter) f32(v float32) {
	w.u32(math.Float32bits(v))
}

func (w *wireWriter) id(v [16]byte) {
	w.buf = append(w.buf, v[:]...)
}

func (w *wireWriter) position(p Position2D) {
	w.f32(p.X)
	w.f32(p.Y)
}

// string は u16 長 + バイト列で書き込む
func (w *wireWriter) string(s string) {
	if len(s) > MaxStringLength {
		s = s[:MaxStringLength]
	}
	w.u16(uint16(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *wireWriter) bytes() []byte {
	return w.buf
}

// wireReader は最初に発生したエラーを保持し、以降の読み出しはゼロ値を返す
type wireReader struct {
	data []byte
	off  int
	err  error
}

func (r *wireReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if r.off+n > len(r.data) {
		r.err = ErrTruncatedPayload
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *wireReader) u8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *wireReader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return byteOrder.Uint16(b)
}

func (r *wireReader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return byteOrder.Uint32(b)
}

func (r *wireReader) f32() float32 {
	return math.Float32frombits(r.u32())
}

func (r *wireReader) id() [16]byte {
	var v [16]byte
	copy(v[:], r.take(16))
	return v
}

func (r *wireReader) position() Position2D {
	x := r.f32()
	y := r.f32()
	return Position2D{X: x, Y: y}
}

func (r *wireReader) string() string {
	n := int(r.u16())
	return string(r.take(n))
}
