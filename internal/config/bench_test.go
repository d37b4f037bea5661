package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeBenchConfig writes fullTOML to a temp file and returns the path.
func writeBenchConfig(b *testing.B) string {
	b.Helper()
	path := filepath.Join(b.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte(fullTOML), 0o644); err != nil {
		b.Fatalf("writing bench config: %v", err)
	}
	return path
}

// BenchmarkLoad measures finding, decoding, and resolving a config file.
func BenchmarkLoad(b *testing.B) {
	path := writeBenchConfig(b)
	env := envMap(map[string]string{EnvIncludeTags: "a,b,c"})
	b.ReportAllocs()
	b.ResetTimer()

	for b.Loop() {
		if _, _, err := Load("", path, env, nil); err != nil {
			b.Fatal(err)
		}
	}
}
