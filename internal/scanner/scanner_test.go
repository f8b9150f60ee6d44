package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/eslint-globals/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "testServerUtil.ts"), "export const testServerUtil = () => 'hi'\n")
	writeFile(t, filepath.Join(dir, "use-counter.ts"), "export default function () { return 1 }\n")
	writeFile(t, filepath.Join(dir, "auth", "index.ts"), "export function useAuth() {}\n")
	writeFile(t, filepath.Join(dir, "auth", "helpers.ts"), "export function notScanned() {}\n")
	writeFile(t, filepath.Join(dir, "types.d.ts"), "export declare const ignored: string\n")

	imports, err := New().ScanDir(context.Background(), dir)
	require.NoError(t, err)

	absDir, _ := filepath.Abs(dir)
	assert.ElementsMatch(t, []models.Import{
		{Name: "useAuth", From: filepath.Join(absDir, "auth", "index.ts")},
		{Name: "testServerUtil", From: filepath.Join(absDir, "testServerUtil.ts")},
		{Name: "default", As: "useCounter", From: filepath.Join(absDir, "use-counter.ts")},
	}, imports)
}

func TestScanDir_Missing(t *testing.T) {
	_, err := New().ScanDir(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestScanDir_Canceled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.ts"), "export const a = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ScanDir(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScanDirs_ConcatenatesInOrder(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()
	writeFile(t, filepath.Join(first, "a.ts"), "export const fromFirst = 1\n")
	writeFile(t, filepath.Join(second, "b.ts"), "export const fromSecond = 1\n")

	imports, err := New().ScanDirs(context.Background(), []string{first, second})
	require.NoError(t, err)
	require.Len(t, imports, 2)
	assert.Equal(t, "fromFirst", imports[0].Name)
	assert.Equal(t, "fromSecond", imports[1].Name)
}
