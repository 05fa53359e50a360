package monitor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPanicsWhenWatchImpossible(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("存在しないディレクトリの監視でパニックしない")
		}
	}()
	New(filepath.Join(t.TempDir(), "no-such-dir"), 4)
}

func TestScanSkipsUnresolvableEntries(t *testing.T) {
	dir := t.TempDir()
	// サフィックスが一致しないエントリと、一致するが実デバイスではない
	// 通常ファイル。どちらも取り込まれない。
	for _, name := range []string{"readme.txt", "usb-pad-event-joystick"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	m := New(dir, 4)
	defer m.Close()

	if active := m.Active(); len(active) != 0 {
		t.Errorf("取り込まれたノード = %v, want なし", active)
	}
}

func TestHotplugIgnoresUnrelatedEntries(t *testing.T) {
	dir := t.TempDir()
	m := New(dir, 4)
	defer m.Close()

	// サフィックスが一致しないファイルの作成は黙って捨てられる
	if err := os.WriteFile(filepath.Join(dir, "note.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	r, err := m.Wait()
	if err != nil {
		t.Fatalf("Wait がエラーを返した: %v", err)
	}
	if !r.Hotplug {
		t.Fatalf("ディレクトリ変化で Hotplug=false が返った: %+v", r)
	}
	if ts := m.ReadHotplug(); len(ts) != 0 {
		t.Errorf("無関係なエントリで遷移が報告された: %+v", ts)
	}

	// サフィックスは一致するが実デバイスではないファイルも取り込まれない
	padPath := filepath.Join(dir, "usb-pad-event-joystick")
	if err := os.WriteFile(padPath, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if r, err = m.Wait(); err != nil || !r.Hotplug {
		t.Fatalf("Wait = (%+v, %v)", r, err)
	}
	if ts := m.ReadHotplug(); len(ts) != 0 {
		t.Errorf("解決に失敗したエントリで遷移が報告された: %+v", ts)
	}

	// 追跡していないエントリの削除も黙って捨てられる
	if err := os.Remove(padPath); err != nil {
		t.Fatal(err)
	}
	if r, err = m.Wait(); err != nil || !r.Hotplug {
		t.Fatalf("Wait = (%+v, %v)", r, err)
	}
	if ts := m.ReadHotplug(); len(ts) != 0 {
		t.Errorf("未追跡エントリの削除で遷移が報告された: %+v", ts)
	}

	if active := m.Active(); len(active) != 0 {
		t.Errorf("取り込まれたノード = %v, want なし", active)
	}
}

func TestNodeLookups(t *testing.T) {
	m := &Monitor{nodes: []node{
		{name: "usb-a-event-joystick", fd: 10, info: NodeInfo{ID: 0x00010002, AbsMin: -100, AbsMax: 100}},
		{fd: -1},
		{name: "usb-b-event-joystick", fd: 12, info: NodeInfo{ID: 0x00030004}},
	}}

	if got := m.nodeByName("usb-b-event-joystick"); got != 2 {
		t.Errorf("nodeByName = %d, want 2", got)
	}
	if got := m.nodeByName("missing"); got != -1 {
		t.Errorf("未知の名前の nodeByName = %d, want -1", got)
	}
	if got := m.nodeByFD(10); got != 0 {
		t.Errorf("nodeByFD = %d, want 0", got)
	}
	if got := m.nodeByFD(11); got != -1 {
		t.Errorf("未知のfdの nodeByFD = %d, want -1", got)
	}

	active := m.Active()
	if len(active) != 2 || active[0] != 0 || active[1] != 2 {
		t.Errorf("Active() = %v, want [0 2]", active)
	}

	if info := m.Info(0); info.ID != 0x00010002 || info.AbsMin != -100 || info.AbsMax != 100 {
		t.Errorf("Info(0) = %+v", info)
	}
}
