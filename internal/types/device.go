package types

// InputID はデバイス識別子を表す構造体（EVIOCGIDで取得）
type InputID struct {
	Bustype uint16 // バスタイプ
	Vendor  uint16 // ベンダーID
	Product uint16 // 製品ID
	Version uint16 // バージョン
}

// HardwareID はクセ補正テーブルの検索キーとなる32bit値を返す
func (id InputID) HardwareID() uint32 {
	return uint32(id.Vendor)<<16 | uint32(id.Product)
}

// AbsInfo は絶対座標軸のキャリブレーション情報を表す構造体（EVIOCGABSで取得）
type AbsInfo struct {
	Value      int32 // 現在値
	Minimum    int32 // 最小値
	Maximum    int32 // 最大値
	Fuzz       int32 // ノイズ許容量
	Flat       int32 // 中立域
	Resolution int32 // 分解能
}
