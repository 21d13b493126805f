package document

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScanner(t *testing.T) *Scanner {
	t.Helper()
	c, err := NewCodec(DefaultEncoding)
	require.NoError(t, err)
	return NewScanner(c)
}

func writeEncoded(t *testing.T, s *Scanner, path, content string) {
	t.Helper()
	data, err := s.Codec().Encode(content)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestScanner_List(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	s := newTestScanner(t)
	dir := t.TempDir()

	for _, name := range []string{"ON_SCHET__c.xml", "ON_SCHET__a.xml", "ON_SCHET_b.xml", "ON_NSCHFDOPPR_1.xml", "ON_SCHET__d.txt"} {
		writeEncoded(t, s, filepath.Join(dir, name), "<x/>")
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "ON_SCHET__dir.xml"), 0755))

	tests := []struct {
		name string
		dir  string
		glob string
		want []string
	}{
		{
			name: "sorted_matches",
			dir:  dir,
			glob: "ON_SCHET__*.xml",
			want: []string{
				filepath.Join(dir, "ON_SCHET__a.xml"),
				filepath.Join(dir, "ON_SCHET__c.xml"),
			},
		},
		{
			name: "other_prefix",
			dir:  dir,
			glob: "ON_NSCHFDOPPR*.xml",
			want: []string{filepath.Join(dir, "ON_NSCHFDOPPR_1.xml")},
		},
		{
			name: "absent_directory",
			dir:  "",
			glob: "ON_SCHET__*.xml",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(ctx, tt.dir, tt.glob)
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanner_List_InvalidGlob(t *testing.T) {
	s := newTestScanner(t)
	_, err := s.List(context.Background(), t.TempDir(), "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid glob")
}

func TestScanner_LoadSave(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	s := newTestScanner(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "ON_SCHET__1.xml")
	writeEncoded(t, s, path, `<Покупатель Название="Старое"/>`)

	set, err := s.Load(ctx, dir, "ON_SCHET__*.xml")
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, `<Покупатель Название="Старое"/>`, set.Documents[0].Text)

	set.Documents[0].Text = `<Покупатель Название="Новое"/>`
	require.NoError(t, s.Save(ctx, set.Documents[0]))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := s.Codec().Encode(`<Покупатель Название="Новое"/>`)
	require.NoError(t, err)
	assert.Equal(t, want, raw)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be gone")
}

func TestScanner_Load_DecodeErrorIsFatal(t *testing.T) {
	s := newTestScanner(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ON_SCHET__bad.xml"), []byte{0x98}, 0644))

	_, err := s.Load(context.Background(), dir, "ON_SCHET__*.xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding")
	assert.ErrorIs(t, err, ErrUndecodable)
}

func TestScanner_Save_EncodeError(t *testing.T) {
	s := newTestScanner(t)
	path := filepath.Join(t.TempDir(), "x.xml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

	err := s.Save(context.Background(), &Document{Path: path, Text: "東京"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnencodable)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), raw, "file must be untouched")
}

func TestSet_Len_Nil(t *testing.T) {
	var s *Set
	assert.Equal(t, 0, s.Len())
}

func TestScanner_Save_WritesThroughSymlink(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	s := newTestScanner(t)

	target := filepath.Join(t.TempDir(), "archive", "ON_SCHET__1.xml")
	writeEncoded(t, s, target, `<Покупатель Название="Старое"/>`)

	dir := t.TempDir()
	link := filepath.Join(dir, "ON_SCHET__1.xml")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	set, err := s.Load(ctx, dir, "ON_SCHET__*.xml")
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	set.Documents[0].Text = `<Покупатель Название="Новое"/>`
	require.NoError(t, s.Save(ctx, set.Documents[0]))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.True(t, info.Mode()&os.ModeSymlink != 0, "link should stay a symlink")

	doc, err := s.Read(ctx, target)
	require.NoError(t, err)
	assert.Equal(t, `<Покупатель Название="Новое"/>`, doc.Text)

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be gone")
}
