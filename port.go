// Package gamepad は接続中のジョイスティック・ゲームパッドの状態を
// ロックフリーな共有メモリとしてアプリケーションに公開する。
// デバイスの抜き差しは自動的に検出され、ハードウェアごとの配置の
// クセは共通のボタン・軸の語彙へ正規化される。
package gamepad

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/char5742/gamepad-port/internal/monitor"
)

// MaxDevices は同時に扱える物理デバイス数の上限
const MaxDevices = 64

// DefaultDeviceDir は既定の監視対象ディレクトリ
const DefaultDeviceDir = "/dev/input/by-id"

// Port は接続中の全デバイスへの入り口となる構造体。
// スロットの生成・削除とイベントのデコードは Poll を呼ぶ単一の
// ゴルーチンだけが行い、読み取り側は Get で得たビューを通じて
// ロックなしで状態を参照する。
type Port struct {
	mon    *monitor.Monitor
	count  atomic.Int32
	quirks atomic.Pointer[QuirkTable]
	slots  [MaxDevices]Device
}

// New は既定のデバイスディレクトリを監視する Port を作成する。
// ディレクトリ監視を確立できない場合は抜き差し検出なしでの継続は
// できないためパニックする。
func New() *Port {
	return NewWithDir(DefaultDeviceDir)
}

// NewWithDir は指定ディレクトリを監視する Port を作成し、
// 接続済みデバイスを初期スキャンで取り込む。
func NewWithDir(dir string) *Port {
	p := &Port{}
	t := BuiltinQuirks()
	p.quirks.Store(&t)
	p.mon = monitor.New(dir, MaxDevices)
	for _, node := range p.mon.Active() {
		p.attach(node, p.mon.Info(node))
	}
	return p
}

// Poll はデバイスの状態変化をひとつ待ち受ける。
// ok=true のとき slot は状態が変化したスロット番号。ok=false は今回
// 報告すべき変化がないことを示し、呼び出し側は再度 Poll を呼べばよい。
// タイムアウトは持たないため、待ち時間を制限したい場合は呼び出し側で
// 別のタイマーと競争させること。
func (p *Port) Poll() (slot int, ok bool) {
	for {
		r, err := p.mon.Wait()
		if err != nil {
			return -1, false
		}
		if r.Hotplug {
			first := -1
			for _, t := range p.mon.ReadHotplug() {
				if t.Added {
					s := p.attach(t.Node, p.mon.Info(t.Node))
					if first < 0 {
						first = s
					}
				} else {
					p.detachByNode(t.Node)
				}
			}
			if first >= 0 {
				return first, true
			}
			return -1, false
		}
		s := p.slotByNode(r.Node)
		if s < 0 {
			continue
		}
		if r.Gone {
			p.mon.Drop(r.Node)
			p.detachSlot(s)
			continue
		}
		if gone := p.drain(s, r.Node); gone {
			p.mon.Drop(r.Node)
			p.detachSlot(s)
			continue
		}
		return s, true
	}
}

// drain はノードから読めるだけイベントを読み、デバイスに反映する。
// デバイスが使用不能になった場合はtrueを返す。
func (p *Port) drain(slot, node int) bool {
	dev := &p.slots[slot]
	q := p.quirkFor(dev.hardwareID)
	for {
		ev, ok, gone := p.mon.ReadEvent(node)
		if gone {
			return true
		}
		if !ok {
			return false
		}
		decode(dev, q, ev)
	}
}

// attach は空きスロットを選んで新しいデバイスを割り当てる
func (p *Port) attach(node int, info monitor.NodeInfo) int {
	slot := 0
	for slot < MaxDevices && p.slots[slot].plug.Load() {
		slot++
	}
	// ノード数はスロット数と同じ上限で制限されるため必ず空きがある
	q := p.quirkFor(info.ID)
	p.slots[slot].reset(node, info.ID, info.AbsMin, info.AbsMax, q.NoCam)
	p.count.Add(1)
	log.Printf("デバイスを接続しました: slot=%d id=%08X", slot, info.ID)
	return slot
}

// detachSlot はスロットを取り外し済みにする
func (p *Port) detachSlot(slot int) {
	p.slots[slot].plug.Store(false)
	p.count.Add(-1)
	log.Printf("デバイスを取り外しました: slot=%d", slot)
}

// detachByNode は指定ノードを割り当てているスロットを取り外し済みにする
func (p *Port) detachByNode(node int) {
	if s := p.slotByNode(node); s >= 0 {
		p.detachSlot(s)
	}
}

// slotByNode は指定ノードを割り当てているスロットを探す
func (p *Port) slotByNode(node int) int {
	for i := range p.slots {
		if p.slots[i].plug.Load() && p.slots[i].node == node {
			return i
		}
	}
	return -1
}

// Get は指定スロットのデバイスビューを返す。
// スロットが空または範囲外の場合はnilを返す。
func (p *Port) Get(slot int) *Device {
	if slot < 0 || slot >= MaxDevices {
		return nil
	}
	d := &p.slots[slot]
	if !d.plug.Load() {
		return nil
	}
	return d
}

// Count は接続中デバイス数の目安を返す。
// 追加・削除と並行して読んだ場合は前後どちらかの値になるため、
// スロット走査の根拠には使わないこと。
func (p *Port) Count() int {
	return int(p.count.Load())
}

// Swap は2つのスロットの内容をライブ状態ごと入れ替える。
// プレイヤーの担当コントローラーを入れ替える用途を想定している。
// 添字が範囲外の場合はエラーを返す。取り込み中のゴルーチンと同じ
// スロットを同時に触らないことは呼び出し側の責務。
func (p *Port) Swap(a, b int) error {
	if a < 0 || a >= MaxDevices || b < 0 || b >= MaxDevices {
		return fmt.Errorf("スロット番号が範囲外です: %d, %d", a, b)
	}
	swapDevices(&p.slots[a], &p.slots[b])
	return nil
}

// SetQuirks は使用する補正テーブルを差し替える。
// 以後にデコードされるイベントと新規接続デバイスに適用される。
func (p *Port) SetQuirks(t QuirkTable) {
	p.quirks.Store(&t)
}

func (p *Port) quirkFor(id uint32) Quirk {
	return p.quirks.Load().Lookup(id)
}

// Close は全デバイスと監視用ディスクリプタを閉じる。
// 終了処理でディスクリプタを閉じられない場合はパニックする。
func (p *Port) Close() {
	p.mon.Close()
}
