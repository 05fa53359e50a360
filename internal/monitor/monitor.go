// Package monitor はデバイスディレクトリの監視と接続中ノードの
// 読み取り多重化を担当する。inotifyとepollを直接使い、すべての
// 待ち受けは Wait の1箇所に集約される。
package monitor

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// NodeInfo は接続中ノードのデバイス情報
type NodeInfo struct {
	ID     uint32 // vendor<<16|product 形式のハードウェアID
	AbsMin int32  // 軸の最小値
	AbsMax int32  // 軸の最大値
}

// node は開いているデバイスノード。nameが空文字列の要素は空き。
type node struct {
	name string // by-id配下のエントリ名
	fd   int
	info NodeInfo
}

// Ready は Wait が報告する準備完了イベント
type Ready struct {
	Hotplug bool // ディレクトリ監視側の通知
	Node    int  // 準備ができたノード番号（Hotplug=falseのとき有効）
	Gone    bool // デバイスのエラー・切断が通知された
}

// Transition はホットプラグによるノードの増減1件
type Transition struct {
	Added bool // 追加ならtrue、取り外しならfalse
	Node  int  // 対象ノード番号
}

// Monitor はデバイスディレクトリと接続中ノードを監視する構造体
type Monitor struct {
	dir   string
	infd  int // inotifyディスクリプタ
	epfd  int // epollディスクリプタ
	limit int // 同時に扱うノード数の上限
	nodes []node
}

// New は指定ディレクトリの監視を開始し、接続済みデバイスを取り込む。
// 監視自体を確立できない場合は抜き差し検出なしでの継続はできないため
// パニックする。
func New(dir string, limit int) *Monitor {
	infd, err := unix.InotifyInit1(unix.IN_NONBLOCK | unix.IN_CLOEXEC)
	if err != nil {
		panic(fmt.Sprintf("ディレクトリ監視を初期化できませんでした: %v", err))
	}
	if _, err := unix.InotifyAddWatch(infd, dir, unix.IN_CREATE|unix.IN_DELETE); err != nil {
		panic(fmt.Sprintf("%s の監視を開始できませんでした: %v", dir, err))
	}
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		panic(fmt.Sprintf("epollを初期化できませんでした: %v", err))
	}
	m := &Monitor{dir: dir, infd: infd, epfd: epfd, limit: limit}
	if err := m.register(infd); err != nil {
		panic(fmt.Sprintf("ディレクトリ監視をepollに登録できませんでした: %v", err))
	}
	m.scan()
	return m
}

// register はディスクリプタを読み取り可能イベントの監視対象に加える
func (m *Monitor) register(fd int) error {
	ev := unix.EpollEvent{Events: unix.EPOLLIN, Fd: int32(fd)}
	return unix.EpollCtl(m.epfd, unix.EPOLL_CTL_ADD, fd, &ev)
}

// Wait は監視対象のどれかが準備できるまで待ち、その発生源を報告する。
// シグナル割り込みは内部で再試行する。
func (m *Monitor) Wait() (Ready, error) {
	var events [1]unix.EpollEvent
	for {
		n, err := unix.EpollWait(m.epfd, events[:], -1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return Ready{}, fmt.Errorf("イベント待機に失敗しました: %w", err)
		}
		if n == 0 {
			continue
		}
		fd := int(events[0].Fd)
		if fd == m.infd {
			return Ready{Hotplug: true}, nil
		}
		idx := m.nodeByFD(fd)
		if idx < 0 {
			// すでに閉じたノードの残イベント
			continue
		}
		gone := events[0].Events&(unix.EPOLLERR|unix.EPOLLHUP) != 0
		return Ready{Node: idx, Gone: gone}, nil
	}
}

func (m *Monitor) nodeByFD(fd int) int {
	for i := range m.nodes {
		if m.nodes[i].name != "" && m.nodes[i].fd == fd {
			return i
		}
	}
	return -1
}

func (m *Monitor) nodeByName(name string) int {
	for i := range m.nodes {
		if m.nodes[i].name == name {
			return i
		}
	}
	return -1
}

// Info は指定ノードのデバイス情報を返す
func (m *Monitor) Info(idx int) NodeInfo {
	return m.nodes[idx].info
}

// Active は使用中のノード番号を昇順で返す
func (m *Monitor) Active() []int {
	var out []int
	for i := range m.nodes {
		if m.nodes[i].name != "" {
			out = append(out, i)
		}
	}
	return out
}

// Close は全デバイスと監視用ディスクリプタを閉じる
func (m *Monitor) Close() {
	for i := range m.nodes {
		if m.nodes[i].name != "" {
			m.Drop(i)
		}
	}
	closeFD(m.infd)
	closeFD(m.epfd)
}
