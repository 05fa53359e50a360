package consts

// デバイス問い合わせ用のIOCTL（input.hから）
const (
	EVIOCGID   = 0x80084502 // デバイス識別子（bustype/vendor/product/version）の取得
	EVIOCGABS0 = 0x80184540 // ABS_X軸のキャリブレーション情報の取得
)

// ボタンイベントコードの定数（input-event-codes.hから）
const (
	BtnBase = 0x120 // ゲームパッドのボタンコードの先頭（BTN_JOYSTICK）
)

// デバイスノード解決用の定数
const (
	EventSuffix = "-event-joystick" // evdevジョイスティックノードの名前サフィックス
)
