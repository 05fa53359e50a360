package config

import (
	"os"
	"path/filepath"
	"testing"

	gamepad "github.com/char5742/gamepad-port"
)

func TestLoadConfigCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig がエラーを返した: %v", err)
	}
	if cfg.Monitor.DeviceDir != gamepad.DefaultDeviceDir {
		t.Errorf("DeviceDir = %q, want %q", cfg.Monitor.DeviceDir, gamepad.DefaultDeviceDir)
	}
	if len(cfg.Quirks) != 0 {
		t.Errorf("初期状態の補正エントリ数 = %d, want 0", len(cfg.Quirks))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("デフォルト設定ファイルが書き出されていない: %v", err)
	}
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	saved := DefaultConfig()
	saved.Monitor.DeviceDir = "/tmp/test-devices"
	saved.Quirks = []QuirkEntry{
		{ID: 0x12340001, SwapAB: true, TrigMax: 200},
		{ID: 0x56780002, CamX: 6, CamY: 7, NoCam: false},
	}
	if err := SaveConfig(path, saved); err != nil {
		t.Fatalf("SaveConfig がエラーを返した: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig がエラーを返した: %v", err)
	}
	if loaded.Monitor.DeviceDir != saved.Monitor.DeviceDir {
		t.Errorf("DeviceDir = %q, want %q", loaded.Monitor.DeviceDir, saved.Monitor.DeviceDir)
	}
	if len(loaded.Quirks) != len(saved.Quirks) {
		t.Fatalf("補正エントリ数 = %d, want %d", len(loaded.Quirks), len(saved.Quirks))
	}
	for i := range saved.Quirks {
		if loaded.Quirks[i] != saved.Quirks[i] {
			t.Errorf("補正エントリ%d = %+v, want %+v", i, loaded.Quirks[i], saved.Quirks[i])
		}
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("monitor = ["), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err == nil {
		t.Error("壊れた設定ファイルで LoadConfig がエラーを返さない")
	}
	if cfg == nil {
		t.Error("エラー時もデフォルト設定を返すべき")
	}
}

func TestQuirkTableAppliesOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Quirks = []QuirkEntry{
		// 組み込みのXBox補正を置き換える
		{ID: 0x0E6F0501},
		// 新規ハードウェアを追加する。軸は未指定なので既定値になる。
		{ID: 0x0ABC0123, StickTrim: true},
	}

	table := cfg.QuirkTable()

	if q := table.Lookup(0x0E6F0501); q.SwapAB {
		t.Error("設定ファイルの上書きが組み込み補正を置き換えていない")
	}
	if q := table.Lookup(0x0ABC0123); !q.StickTrim || q.CamX != 3 || q.TrigMax != 127 {
		t.Errorf("新規エントリが既定値で補われていない: %+v", q)
	}
	// 組み込みのみのエントリはそのまま残る
	if q := table.Lookup(0x054C0268); !q.SwapXY {
		t.Error("上書きされていない組み込み補正が失われた")
	}
}
