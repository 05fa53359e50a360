package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	gamepad "github.com/char5742/gamepad-port"
)

// Config はアプリケーション全体の設定を表す構造体
type Config struct {
	Monitor MonitorConfig `toml:"monitor"`
	Quirks  []QuirkEntry  `toml:"quirk"`
}

// MonitorConfig はデバイス監視の設定
type MonitorConfig struct {
	DeviceDir string `toml:"device_dir"`
}

// QuirkEntry はハードウェアごとの入力補正の設定。
// 0のままのフィールドは組み込みの既定値が使われる。
type QuirkEntry struct {
	ID        int64 `toml:"id"`
	SwapAB    bool  `toml:"swap_ab"`
	SwapXY    bool  `toml:"swap_xy"`
	CamX      int   `toml:"cam_x"`
	CamY      int   `toml:"cam_y"`
	TrigL     int   `toml:"trigger_left"`
	TrigR     int   `toml:"trigger_right"`
	StickTrim bool  `toml:"stick_trim"`
	TrigMin   int   `toml:"trigger_min"`
	TrigMax   int   `toml:"trigger_max"`
	NoCam     bool  `toml:"no_cam"`
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() *Config {
	return &Config{
		Monitor: MonitorConfig{
			DeviceDir: gamepad.DefaultDeviceDir,
		},
	}
}

// LoadConfig は設定ファイルから設定を読み込む
func LoadConfig(configPath string) (*Config, error) {
	// デフォルト設定を用意
	config := DefaultConfig()

	// ファイルが存在しない場合はデフォルト設定を保存して返す
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// 設定ディレクトリの作成
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return config, err
		}

		// デフォルト設定の保存
		if err := SaveConfig(configPath, config); err != nil {
			return config, err
		}

		return config, nil
	}

	// 設定ファイルの読み込み
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return config, err
	}

	return config, nil
}

// SaveConfig は設定をTOMLファイルに保存する
func SaveConfig(configPath string, config *Config) error {
	// 設定ディレクトリの作成
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// ファイルを開く（なければ作成）
	f, err := os.Create(configPath)
	if err != nil {
		return err
	}
	defer f.Close()

	// TOML形式でエンコードして書き込み
	encoder := toml.NewEncoder(f)
	return encoder.Encode(config)
}

// GetDefaultConfigDir はデフォルトの設定ディレクトリを返す
func GetDefaultConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "gamepad-port"), nil
}

// QuirkTable は組み込みテーブルに設定ファイルの上書きを適用した
// 補正テーブルを返す
func (c *Config) QuirkTable() gamepad.QuirkTable {
	overrides := make([]gamepad.Quirk, 0, len(c.Quirks))
	for _, e := range c.Quirks {
		overrides = append(overrides, gamepad.Quirk{
			ID:        uint32(e.ID),
			SwapAB:    e.SwapAB,
			SwapXY:    e.SwapXY,
			CamX:      uint16(e.CamX),
			CamY:      uint16(e.CamY),
			TrigL:     uint16(e.TrigL),
			TrigR:     uint16(e.TrigR),
			StickTrim: e.StickTrim,
			TrigMin:   int32(e.TrigMin),
			TrigMax:   int32(e.TrigMax),
			NoCam:     e.NoCam,
		})
	}
	return gamepad.BuiltinQuirks().Merge(overrides)
}
