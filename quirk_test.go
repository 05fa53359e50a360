package gamepad

import "testing"

func TestDefaultQuirk(t *testing.T) {
	q := DefaultQuirk()
	if q.CamX != 3 || q.CamY != 4 {
		t.Errorf("既定の右スティック軸 = (%d, %d), want (3, 4)", q.CamX, q.CamY)
	}
	if q.TrigL != 2 || q.TrigR != 5 {
		t.Errorf("既定のトリガー軸 = (%d, %d), want (2, 5)", q.TrigL, q.TrigR)
	}
	if q.TrigMin != 0 || q.TrigMax != 127 {
		t.Errorf("既定のトリガーレンジ = (%d, %d), want (0, 127)", q.TrigMin, q.TrigMax)
	}
	if q.SwapAB || q.SwapXY || q.StickTrim || q.NoCam {
		t.Error("既定の補正にフラグが立っている")
	}
}

func TestBuiltinQuirks(t *testing.T) {
	table := BuiltinQuirks()

	tests := []struct {
		name string
		id   uint32
		want Quirk
	}{
		{
			name: "xbox swap A/B",
			id:   0x0E6F0501,
			want: Quirk{ID: 0x0E6F0501, SwapAB: true, CamX: 3, CamY: 4, TrigL: 2, TrigR: 5, TrigMax: 127},
		},
		{
			name: "ps3 swap X/Y",
			id:   0x054C0268,
			want: Quirk{ID: 0x054C0268, SwapXY: true, CamX: 3, CamY: 4, TrigL: 2, TrigR: 5, TrigMax: 127},
		},
		{
			name: "gamecube adapter",
			id:   0x00791844,
			want: Quirk{ID: 0x00791844, CamX: 5, CamY: 2, TrigL: 3, TrigR: 4, StickTrim: true, TrigMin: 32, TrigMax: 95},
		},
		{
			name: "flight stick",
			id:   0x07B50316,
			want: Quirk{ID: 0x07B50316, NoCam: true, CamX: 3, CamY: 4, TrigL: 2, TrigR: 5, TrigMax: 127},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table[tt.id]
			if !ok {
				t.Fatalf("組み込みテーブルに %08X がない", tt.id)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestQuirkLookupUnknown(t *testing.T) {
	if got := BuiltinQuirks().Lookup(0x01020304); got != DefaultQuirk() {
		t.Errorf("未登録IDの Lookup = %+v, want 既定値", got)
	}
}

func TestQuirkTableAddNormalizes(t *testing.T) {
	table := QuirkTable{}
	table.add(Quirk{ID: 0x00010002, SwapAB: true})

	got := table[0x00010002]
	want := DefaultQuirk()
	want.ID = 0x00010002
	want.SwapAB = true
	if got != want {
		t.Errorf("未指定フィールドが既定値で補われていない: got %+v", got)
	}
}

func TestQuirkTableMerge(t *testing.T) {
	base := BuiltinQuirks()
	merged := base.Merge([]Quirk{
		// 組み込みを上書きして入れ替えを打ち消す
		{ID: 0x0E6F0501},
		// 新規エントリ
		{ID: 0x11112222, StickTrim: true},
	})

	if q := merged.Lookup(0x0E6F0501); q.SwapAB {
		t.Error("上書きエントリが組み込みを置き換えていない")
	}
	if q := merged.Lookup(0x11112222); !q.StickTrim || q.CamX != 3 {
		t.Errorf("新規エントリが正しく登録されていない: %+v", q)
	}

	// 元のテーブルは変更されない
	if q := base.Lookup(0x0E6F0501); !q.SwapAB {
		t.Error("Mergeが元のテーブルを書き換えた")
	}
}

func TestRemapButton(t *testing.T) {
	tests := []struct {
		name  string
		quirk Quirk
		in    Btn
		want  Btn
	}{
		{"no swap", Quirk{}, BtnA, BtnA},
		{"swap AB forward", Quirk{SwapAB: true}, BtnA, BtnB},
		{"swap AB backward", Quirk{SwapAB: true}, BtnB, BtnA},
		{"swap AB leaves X", Quirk{SwapAB: true}, BtnX, BtnX},
		{"swap XY forward", Quirk{SwapXY: true}, BtnX, BtnY},
		{"swap XY backward", Quirk{SwapXY: true}, BtnY, BtnX},
		{"swap XY leaves A", Quirk{SwapXY: true}, BtnA, BtnA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.quirk.remapButton(tt.in); got != tt.want {
				t.Errorf("remapButton(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
