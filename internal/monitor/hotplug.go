package monitor

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"github.com/char5742/gamepad-port/internal/consts"
	"github.com/char5742/gamepad-port/internal/types"
)

// openRetryDelay はノード作成の通知からudevによる準備完了までの猶予
const openRetryDelay = 16 * time.Millisecond

// scan は起動時に接続済みのデバイスを列挙して取り込む。
// ディレクトリが読めなくても抜き差し検出だけで運用を続ける。
func (m *Monitor) scan() {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		log.Printf("デバイスディレクトリを読み取れませんでした: %v", err)
		return
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), consts.EventSuffix) {
			m.resolve(e.Name())
		}
	}
}

// resolve はエントリ名をデバイスノードとして開き、空きノードに割り当てる。
// 通知直後はノードの準備が済んでいないことがあるため、開けない場合は
// 少し待って一度だけ再試行する。
func (m *Monitor) resolve(name string) (int, bool) {
	path := filepath.Join(m.dir, name)
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		time.Sleep(openRetryDelay)
		fd, err = unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	}
	if err != nil {
		log.Printf("デバイスノードを開けませんでした: %s: %v", name, err)
		return 0, false
	}
	info, err := describe(fd)
	if err != nil {
		log.Printf("デバイス情報を取得できませんでした: %s: %v", name, err)
		closeFD(fd)
		return 0, false
	}
	idx := -1
	for i := range m.nodes {
		if m.nodes[i].name == "" {
			idx = i
			break
		}
	}
	if idx < 0 {
		if len(m.nodes) >= m.limit {
			log.Printf("デバイス数が上限に達しているため無視します: %s", name)
			closeFD(fd)
			return 0, false
		}
		m.nodes = append(m.nodes, node{fd: -1})
		idx = len(m.nodes) - 1
	}
	if err := m.register(fd); err != nil {
		log.Printf("デバイスを監視対象に追加できませんでした: %s: %v", name, err)
		closeFD(fd)
		return 0, false
	}
	m.nodes[idx] = node{name: name, fd: fd, info: info}
	return idx, true
}

// ReadHotplug はディレクトリ監視の通知を読み切り、ジョイスティックの
// 増減をノードに反映して転記する。無関係なエントリの変化は捨てる。
func (m *Monitor) ReadHotplug() []Transition {
	buf := make([]byte, 4096)
	n, err := unix.Read(m.infd, buf)
	if err != nil || n <= 0 {
		return nil
	}
	var out []Transition
	for _, rec := range types.ParseNotify(buf[:n]) {
		if !strings.HasSuffix(rec.Name, consts.EventSuffix) {
			continue
		}
		switch {
		case rec.Mask&unix.IN_CREATE != 0:
			if idx, ok := m.resolve(rec.Name); ok {
				out = append(out, Transition{Added: true, Node: idx})
			}
		case rec.Mask&unix.IN_DELETE != 0:
			if idx := m.nodeByName(rec.Name); idx >= 0 {
				m.Drop(idx)
				out = append(out, Transition{Added: false, Node: idx})
			}
		}
	}
	return out
}
