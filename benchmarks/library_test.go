package benchmarks

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/mathconv/pkg/mathconv"
	"github.com/randalmurphal/mathconv/pkg/mathconv/library"
)

// BenchmarkMemoryStore_Save measures saving a formula in memory.
func BenchmarkMemoryStore_Save(b *testing.B) {
	store := library.NewMemoryStore()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(formulaName(i%100), functionHeavy)
	}
}

// BenchmarkMemoryStore_Load measures loading a formula from memory.
func BenchmarkMemoryStore_Load(b *testing.B) {
	store := library.NewMemoryStore()
	_ = store.Save("f", functionHeavy)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Load("f")
	}
}

// BenchmarkSQLiteStore_Save measures saving a formula in SQLite.
func BenchmarkSQLiteStore_Save(b *testing.B) {
	store := createSQLiteStore(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = store.Save(formulaName(i%100), functionHeavy)
	}
}

// BenchmarkSQLiteStore_Load measures loading a formula from SQLite.
func BenchmarkSQLiteStore_Load(b *testing.B) {
	store := createSQLiteStore(b)
	_ = store.Save("f", functionHeavy)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = store.Load("f")
	}
}

// BenchmarkConvertNamed_SQLite measures evaluating a stored formula.
func BenchmarkConvertNamed_SQLite(b *testing.B) {
	store := createSQLiteStore(b)
	_ = store.Save("f", functionHeavy)
	conv := mathconv.New(mathconv.WithLibrary(store))
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = conv.ConvertNamed(ctx, "f", i, 2, 3)
	}
}

// Helper functions

func createSQLiteStore(b *testing.B) *library.SQLiteStore {
	b.Helper()
	store, err := library.NewSQLiteStore(filepath.Join(b.TempDir(), "bench.db"))
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { store.Close() })
	return store
}

func formulaName(i int) string {
	return "formula-" + string(rune('a'+i%26)) + string(rune('a'+i/26%26))
}
