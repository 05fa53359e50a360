package types

import (
	"encoding/binary"
	"syscall"
)

// 入力イベントタイプの定数（input-event-codes.hから）
const (
	EvSyn = 0x00 // 同期イベント
	EvKey = 0x01 // ボタンの押下・解放イベント
	EvRel = 0x02 // 相対座標イベント
	EvAbs = 0x03 // 絶対座標イベント
)

// 絶対座標軸コードの定数（ジョイスティック関連のみ）
const (
	AbsX     = 0x00 // 左スティックのX軸
	AbsY     = 0x01 // 左スティックのY軸
	AbsHat0X = 0x10 // 十字キーのX軸（ハットスイッチ）
	AbsHat0Y = 0x11 // 十字キーのY軸（ハットスイッチ）
)

// EventSize は入力イベントレコードのバイトサイズ（64bit環境）
const EventSize = 24

// Event は入力イベントを表す構造体
type Event struct {
	Time  syscall.Timeval // イベント発生時刻
	Type  uint16          // イベントタイプ
	Code  uint16          // イベントコード
	Value int32           // イベント値
}

// ParseEvent は生のバイト列から入力イベントをデコードする。
// レコード長が一致しない場合は ok=false を返し、入力を読み捨てる。
func ParseEvent(buf []byte) (ev Event, ok bool) {
	if len(buf) != EventSize {
		return Event{}, false
	}
	ev.Time.Sec = int64(binary.LittleEndian.Uint64(buf[0:8]))
	ev.Time.Usec = int64(binary.LittleEndian.Uint64(buf[8:16]))
	ev.Type = binary.LittleEndian.Uint16(buf[16:18])
	ev.Code = binary.LittleEndian.Uint16(buf[18:20])
	ev.Value = int32(binary.LittleEndian.Uint32(buf[20:24]))
	return ev, true
}
