package gamepad

// Quirk は特定のハードウェアに対する入力補正の記述。
// 軸コードやトリガーレンジが0のフィールドは既定値として扱われる。
type Quirk struct {
	ID        uint32 // vendor<<16|product 形式のハードウェアID
	SwapAB    bool   // AボタンとBボタンの物理配置が逆
	SwapXY    bool   // XボタンとYボタンの物理配置が逆
	CamX      uint16 // 右スティックX軸のイベントコード
	CamY      uint16 // 右スティックY軸のイベントコード
	TrigL     uint16 // 左トリガー軸のイベントコード
	TrigR     uint16 // 右トリガー軸のイベントコード
	StickTrim bool   // スティック可動域を両端1/4ずつ詰める補正
	TrigMin   int32  // トリガー生値の最小
	TrigMax   int32  // トリガー生値の最大
	NoCam     bool   // 右スティックを持たない
}

// QuirkTable はハードウェアIDからクセ補正への対応表
type QuirkTable map[uint32]Quirk

// DefaultQuirk は補正を持たないハードウェアの既定マッピングを返す
func DefaultQuirk() Quirk {
	return Quirk{
		CamX:    3,
		CamY:    4,
		TrigL:   2,
		TrigR:   5,
		TrigMin: 0,
		TrigMax: 127,
	}
}

// BuiltinQuirks は組み込みの補正テーブルを返す
func BuiltinQuirks() QuirkTable {
	t := QuirkTable{}
	// XBox系パッド: A/Bの物理配置が逆
	t.add(Quirk{ID: 0x0E6F0501, SwapAB: true})
	// PS3パッド: X/Yの物理配置が逆
	t.add(Quirk{ID: 0x054C0268, SwapXY: true})
	// GameCube変換アダプタ: 軸の割り当てが特殊で可動域も狭い
	t.add(Quirk{
		ID:        0x00791844,
		CamX:      5,
		CamY:      2,
		TrigL:     3,
		TrigR:     4,
		StickTrim: true,
		TrigMin:   32,
		TrigMax:   95,
	})
	// フライトスティック: 右スティックを持たない
	t.add(Quirk{ID: 0x07B50316, NoCam: true})
	return t
}

// add は未指定のフィールドを既定値で補ってエントリを登録する
func (t QuirkTable) add(q Quirk) {
	d := DefaultQuirk()
	if q.CamX == 0 {
		q.CamX = d.CamX
	}
	if q.CamY == 0 {
		q.CamY = d.CamY
	}
	if q.TrigL == 0 {
		q.TrigL = d.TrigL
	}
	if q.TrigR == 0 {
		q.TrigR = d.TrigR
	}
	if q.TrigMax == 0 {
		q.TrigMax = d.TrigMax
	}
	t[q.ID] = q
}

// Lookup はハードウェアIDに対応する補正を返す。未登録なら既定値。
func (t QuirkTable) Lookup(id uint32) Quirk {
	if q, ok := t[id]; ok {
		return q
	}
	return DefaultQuirk()
}

// Merge は上書きエントリを適用した新しいテーブルを返す
func (t QuirkTable) Merge(overrides []Quirk) QuirkTable {
	merged := make(QuirkTable, len(t)+len(overrides))
	for id, q := range t {
		merged[id] = q
	}
	for _, q := range overrides {
		merged.add(q)
	}
	return merged
}

// remapButton はボタン入れ替え補正を適用した論理ボタンを返す
func (q Quirk) remapButton(b Btn) Btn {
	if q.SwapAB {
		switch b {
		case BtnA:
			return BtnB
		case BtnB:
			return BtnA
		}
	}
	if q.SwapXY {
		switch b {
		case BtnX:
			return BtnY
		case BtnY:
			return BtnX
		}
	}
	return b
}
