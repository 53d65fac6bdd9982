package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WISP_STACK_SIZE", "")
	t.Setenv("WISP_GLOBALS_SIZE", "")
	t.Setenv("WISP_MAX_FRAMES", "")
	t.Setenv("WISP_NO_COLOR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %s", err)
	}

	if cfg.StackSize != 2048 {
		t.Errorf("StackSize=%d, want 2048", cfg.StackSize)
	}
	if cfg.GlobalsSize != 65536 {
		t.Errorf("GlobalsSize=%d, want 65536", cfg.GlobalsSize)
	}
	if cfg.MaxFrames != 1024 {
		t.Errorf("MaxFrames=%d, want 1024", cfg.MaxFrames)
	}
	if cfg.NoColor {
		t.Errorf("NoColor=true, want false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WISP_STACK_SIZE", "4096")
	t.Setenv("WISP_GLOBALS_SIZE", "1024")
	t.Setenv("WISP_MAX_FRAMES", "16")
	t.Setenv("WISP_NO_COLOR", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %s", err)
	}

	if cfg.StackSize != 4096 {
		t.Errorf("StackSize=%d, want 4096", cfg.StackSize)
	}
	if cfg.GlobalsSize != 1024 {
		t.Errorf("GlobalsSize=%d, want 1024", cfg.GlobalsSize)
	}
	if cfg.MaxFrames != 16 {
		t.Errorf("MaxFrames=%d, want 16", cfg.MaxFrames)
	}
	if !cfg.NoColor {
		t.Errorf("NoColor=false, want true")
	}
}

func TestLoadInvalidIntFallsBackToDefault(t *testing.T) {
	t.Setenv("WISP_STACK_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %s", err)
	}
	if cfg.StackSize != 2048 {
		t.Errorf("StackSize=%d, want fallback 2048", cfg.StackSize)
	}
}
