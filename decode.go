package gamepad

import (
	"log"

	"github.com/char5742/gamepad-port/internal/consts"
	"github.com/char5742/gamepad-port/internal/types"
)

const (
	aliasAxis        = 40   // 一部のパッドが重複して報告する軸コード
	triggerThreshold = 0.99 // トリガーを「引き切った」とみなす正規化値
)

// deadzone は生の値を中央寄せし、全レンジの1/8にあたる不感帯を取り除く。
// 戻り値は補正後の値と、片側の有効レンジ。
func deadzone(min, max, val int32) (int32, int32) {
	rng := max - min
	halfr := rng >> 1
	deadz := halfr >> 2
	midpt := min + halfr
	value := val - midpt
	switch {
	case value > -deadz && value < deadz:
		value = 0
	case value < 0:
		value += deadz
	default:
		value -= deadz
	}
	return value, halfr - deadz
}

// transform はスティック軸の生値を [-1,1] に正規化する
func transform(min, max, val int32) float32 {
	value, full := deadzone(min, max, val)
	if full <= 0 {
		return 0
	}
	v := float32(value) / float32(full)
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return v
}

// transformTrigger はトリガー軸の生値を [0,1] に正規化する。不感帯はない。
func transformTrigger(min, max, val int32) float32 {
	if max <= min {
		return 0
	}
	v := float32(val-min) / float32(max-min)
	if v > 1 {
		v = 1
	}
	if v < 0 {
		v = 0
	}
	return v
}

// decode は生イベント1件を対象デバイスの状態に反映する。
// 認識できたイベントを適用したときtrueを返す。
func decode(dev *Device, q Quirk, ev types.Event) bool {
	switch ev.Type {
	case types.EvKey:
		return decodeButton(dev, q, ev)
	case types.EvAbs:
		return decodeAxis(dev, q, ev)
	}
	return false
}

// decodeButton はボタンイベントを論理ボタンへ対応付ける。
// 値が1なら押下、それ以外は解放として扱う。
func decodeButton(dev *Device, q Quirk, ev types.Event) bool {
	pressed := ev.Value == 1
	code := int(ev.Code) - consts.BtnBase
	var b Btn
	switch code {
	case 0, 19:
		b = BtnX
	case 1, 17:
		b = BtnA
	case 2, 16:
		b = BtnB
	case 3, 20:
		b = BtnY
	case 4, 24:
		b = BtnL
	case 5, 25:
		b = BtnR
	case 6, 22:
		b = BtnW // 6は実機未確認の暫定割り当て
	case 7, 23:
		b = BtnZ
	case 8, 26:
		b = BtnF // 8は実機未確認の暫定割り当て
	case 9, 27:
		b = BtnE
	case 12, 256:
		b = BtnUp
	case 13, 259:
		b = BtnRight
	case 14, 257:
		b = BtnDown
	case 15, 258:
		b = BtnLeft
	case 29:
		b = BtnD
	case 30:
		b = BtnC
	default:
		log.Printf("不明なボタンコードです: %d", code)
		return false
	}
	dev.editBtn(q.remapButton(b), pressed)
	return true
}

// decodeAxis は絶対座標イベントをスティック・十字キー・トリガーへ
// 対応付ける。十字キーは左右・上下それぞれ排他のボタン対として扱う。
func decodeAxis(dev *Device, q Quirk, ev types.Event) bool {
	min, max := dev.absMin, dev.absMax
	if q.StickTrim {
		// 物理的にフルストロークまで倒れないスティックの補正
		pad := (max - min) / 4
		min += pad
		max -= pad
	}
	switch code := ev.Code; code {
	case types.AbsX:
		storeFloat(&dev.joyx, transform(min, max, ev.Value))
	case types.AbsY:
		storeFloat(&dev.joyy, transform(min, max, ev.Value))
	case types.AbsHat0X:
		dev.editBtn(BtnLeft, ev.Value < 0)
		dev.editBtn(BtnRight, ev.Value > 0)
	case types.AbsHat0Y:
		dev.editBtn(BtnUp, ev.Value < 0)
		dev.editBtn(BtnDown, ev.Value > 0)
	case aliasAxis:
		return false
	default:
		switch code {
		case q.CamX:
			storeFloat(&dev.camx, transform(min, max, ev.Value))
		case q.CamY:
			storeFloat(&dev.camy, transform(min, max, ev.Value))
		case q.TrigL:
			v := transformTrigger(q.TrigMin, q.TrigMax, ev.Value)
			dev.editBtn(BtnL, v > triggerThreshold)
			storeFloat(&dev.trgl, v)
		case q.TrigR:
			v := transformTrigger(q.TrigMin, q.TrigMax, ev.Value)
			dev.editBtn(BtnR, v > triggerThreshold)
			storeFloat(&dev.trgr, v)
		default:
			log.Printf("不明な軸コードです: %d", code)
			return false
		}
	}
	return true
}
