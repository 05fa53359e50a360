package types

import (
	"bytes"
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// Notify はディレクトリ監視(inotify)の通知レコードを表す構造体
type Notify struct {
	Wd   int32  // ウォッチディスクリプタ
	Mask uint32 // イベント種別のビットマスク
	Name string // 対象エントリ名（NUL終端を除去済み）
}

// ParseNotify はread(2)が返したバッファから通知レコード列をデコードする。
// 長さの足りない不完全なレコードを見つけた時点で読み取りを打ち切る。
func ParseNotify(buf []byte) []Notify {
	var out []Notify
	for off := 0; off+unix.SizeofInotifyEvent <= len(buf); {
		wd := int32(binary.LittleEndian.Uint32(buf[off : off+4]))
		mask := binary.LittleEndian.Uint32(buf[off+4 : off+8])
		// cookieはrename追跡用のため読み飛ばす
		nameLen := int(binary.LittleEndian.Uint32(buf[off+12 : off+16]))
		off += unix.SizeofInotifyEvent
		if off+nameLen > len(buf) {
			break
		}
		name := buf[off : off+nameLen]
		if i := bytes.IndexByte(name, 0); i >= 0 {
			name = name[:i]
		}
		out = append(out, Notify{Wd: wd, Mask: mask, Name: string(name)})
		off += nameLen
	}
	return out
}
