package gamepad

import (
	"math"
	"sync/atomic"
)

// Btn はコントローラー上の論理ボタンを表す型。
// 値はそのままボタンマスクのビット番号になる。
type Btn uint8

// 論理ボタンの定義
const (
	BtnLeft  Btn = iota // 十字キー左
	BtnRight            // 十字キー右
	BtnUp               // 十字キー上
	BtnDown             // 十字キー下
	BtnX                // Xボタン
	BtnA                // Aボタン
	BtnY                // Yボタン
	BtnB                // Bボタン
	BtnL                // 左トリガーボタン
	BtnR                // 右トリガーボタン
	BtnW                // 左ショルダーボタン
	BtnZ                // 右ショルダーボタン
	BtnF                // セレクト・戻る
	BtnE                // スタート・メニュー
	BtnD                // 左スティック押し込み
	BtnC                // 右スティック押し込み
)

// Device は1台のジョイスティック・ゲームパッドの状態を保持する構造体。
// 軸とボタンはそれぞれ独立したアトミック値として格納されるため、
// 読み取り側はロックなしで参照できる。複数フィールドにまたがる
// スナップショットの一貫性は保証されず、別々の時点の値が混ざって
// 見えることがある。
type Device struct {
	node       int    // 入力元のノード番号
	hardwareID uint32 // クセ補正テーブルの検索キー（vendor<<16|product）
	absMin     int32  // 発見時に取得した軸の最小値
	absMax     int32  // 発見時に取得した軸の最大値
	noCam      bool   // 右スティックを持たないハードウェア

	joyx atomic.Uint32 // 左スティックX [-1,1] のfloat32ビット表現
	joyy atomic.Uint32 // 左スティックY
	camx atomic.Uint32 // 右スティックX
	camy atomic.Uint32 // 右スティックY
	trgl atomic.Uint32 // 左トリガー [0,1]
	trgr atomic.Uint32 // 右トリガー
	btns atomic.Uint32 // ボタンのビットマスク
	plug atomic.Bool   // 接続中フラグ
}

// reset は取り外し済みスロットを新しいデバイスで初期化する
func (d *Device) reset(node int, hwid uint32, absMin, absMax int32, noCam bool) {
	d.node = node
	d.hardwareID = hwid
	d.absMin = absMin
	d.absMax = absMax
	d.noCam = noCam
	d.joyx.Store(0)
	d.joyy.Store(0)
	d.camx.Store(0)
	d.camy.Store(0)
	d.trgl.Store(0)
	d.trgr.Store(0)
	d.btns.Store(0)
	d.plug.Store(true)
}

// HardwareID はデバイスのハードウェアIDを返す
func (d *Device) HardwareID() uint32 {
	return d.hardwareID
}

// Joy は左スティックの座標を返す
func (d *Device) Joy() (x, y float32) {
	return loadFloat(&d.joyx), loadFloat(&d.joyy)
}

// Cam は右スティックの座標を返す。
// 右スティックを持たないデバイスでは ok=false を返す。
func (d *Device) Cam() (x, y float32, ok bool) {
	if d.noCam {
		return 0, 0, false
	}
	return loadFloat(&d.camx), loadFloat(&d.camy), true
}

// Triggers は左右トリガーの引き量を返す
func (d *Device) Triggers() (l, r float32) {
	return loadFloat(&d.trgl), loadFloat(&d.trgr)
}

// Btn は指定した論理ボタンが押されているかどうかを返す
func (d *Device) Btn(b Btn) bool {
	return d.btns.Load()&(1<<b) != 0
}

// editBtn はボタンマスクの1ビットを設定・解除する
func (d *Device) editBtn(b Btn, pressed bool) {
	if pressed {
		d.btns.Or(1 << b)
	} else {
		d.btns.And(^(uint32(1) << b))
	}
}

func loadFloat(u *atomic.Uint32) float32 {
	return math.Float32frombits(u.Load())
}

func storeFloat(u *atomic.Uint32, v float32) {
	u.Store(math.Float32bits(v))
}

// swapDevices は2スロットの内容を完全に入れ替える。
// アトミック型はコピーできないためフィールド単位で移し替える。
func swapDevices(a, b *Device) {
	a.node, b.node = b.node, a.node
	a.hardwareID, b.hardwareID = b.hardwareID, a.hardwareID
	a.absMin, b.absMin = b.absMin, a.absMin
	a.absMax, b.absMax = b.absMax, a.absMax
	a.noCam, b.noCam = b.noCam, a.noCam
	for _, pair := range [...][2]*atomic.Uint32{
		{&a.joyx, &b.joyx},
		{&a.joyy, &b.joyy},
		{&a.camx, &b.camx},
		{&a.camy, &b.camy},
		{&a.trgl, &b.trgl},
		{&a.trgr, &b.trgr},
		{&a.btns, &b.btns},
	} {
		x, y := pair[0].Load(), pair[1].Load()
		pair[0].Store(y)
		pair[1].Store(x)
	}
	x, y := a.plug.Load(), b.plug.Load()
	a.plug.Store(y)
	b.plug.Store(x)
}
