package monitor

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/char5742/gamepad-port/internal/consts"
	"github.com/char5742/gamepad-port/internal/types"
)

// describe はEVIOCGIDとEVIOCGABSでデバイスの識別子と軸レンジを取得する
func describe(fd int) (NodeInfo, error) {
	var id types.InputID
	if _, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(fd),
		uintptr(consts.EVIOCGID),
		uintptr(unsafe.Pointer(&id)),
	); errno != 0 {
		return NodeInfo{}, fmt.Errorf("デバイス識別子の取得に失敗しました: %v", errno)
	}
	var abs types.AbsInfo
	if _, _, errno := unix.Syscall(
		unix.SYS_IOCTL,
		uintptr(fd),
		uintptr(consts.EVIOCGABS0),
		uintptr(unsafe.Pointer(&abs)),
	); errno != 0 {
		return NodeInfo{}, fmt.Errorf("軸レンジの取得に失敗しました: %v", errno)
	}
	return NodeInfo{ID: id.HardwareID(), AbsMin: abs.Minimum, AbsMax: abs.Maximum}, nil
}

// ReadEvent は指定ノードから入力イベントを1件読み取る。
// ok=false はいま読めるイベントがないこと、gone=true はデバイスが
// 使用不能になったことを示す。
func (m *Monitor) ReadEvent(idx int) (ev types.Event, ok bool, gone bool) {
	var buf [types.EventSize]byte
	n, err := unix.Read(m.nodes[idx].fd, buf[:])
	if err == unix.EAGAIN || err == unix.EINTR {
		return types.Event{}, false, false
	}
	if err != nil {
		return types.Event{}, false, true
	}
	if n != types.EventSize {
		return types.Event{}, false, false
	}
	ev, ok = types.ParseEvent(buf[:n])
	return ev, ok, false
}

// Drop は指定ノードを監視対象から外して閉じ、空きに戻す
func (m *Monitor) Drop(idx int) {
	fd := m.nodes[idx].fd
	// closeで自動的に登録解除されるためDELの失敗は見ない
	_ = unix.EpollCtl(m.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	closeFD(fd)
	m.nodes[idx] = node{fd: -1}
}

// closeFD はディスクリプタを閉じる。閉じられないディスクリプタは
// 回復不能な状態のためパニックする。
func closeFD(fd int) {
	if err := unix.Close(fd); err != nil {
		panic(fmt.Sprintf("デバイスの切断に失敗しました: %v", err))
	}
}
