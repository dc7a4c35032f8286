package ops

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robinrosenstock/vcard/internal/errors"
)

func TestDelete_ByName(t *testing.T) {
	tmpDir := t.TempDir()
	first := card("FN:John Smith", "TEL:+1 555 0100")
	target := card("FN:jane DOE", "TEL:+1 555 0101")
	last := card("N:Roe;Richard;;;", "CATEGORIES:Work")
	path := writeVCF(t, tmpDir, "contacts.vcf", first, target, last)

	output, err := Delete(nil, DeleteInput{Path: path, Names: []string{"Jane Doe"}})
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if output.Deleted != 1 {
		t.Errorf("Deleted = %d, want 1", output.Deleted)
	}
	require.Equal(t, 0, output.Stripped)
	require.Equal(t, 3, output.Total)
	require.True(t, output.Written)
	require.Equal(t, first+last, readFile(t, path))
}

func TestDelete_KeepNumber(t *testing.T) {
	tmpDir := t.TempDir()
	target := card(
		"FN:Jane Doe",
		"N:Doe;Jane;;;",
		"item1.TEL;TYPE=cell:+1 555 0101",
		"PHOTO;ENCODING=b;TYPE=JPEG:AAAA",
		"CATEGORIES:Family",
		"EMAIL:jane@example.com",
		"NOTE:remove me",
	)
	path := writeVCF(t, tmpDir, "contacts.vcf", target)

	output, err := Delete(nil, DeleteInput{Path: path, Names: []string{"jane doe"}, Keep: []string{"Number"}})
	require.NoError(t, err)
	require.Equal(t, 0, output.Deleted)
	require.Equal(t, 1, output.Stripped)

	want := "BEGIN:VCARD\nVERSION:3.0\nFN:Jane Doe\nN:Doe;Jane;;;\nitem1.TEL;TYPE=cell:+1 555 0101\nEND:VCARD\n"
	require.Equal(t, want, readFile(t, path))
}

func TestDelete_KeepPhotoAndCategory(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeVCF(t, tmpDir, "contacts.vcf", card(
		"FN:Jane Doe",
		"TEL:1",
		"PHOTO:AAAA",
		"CATEGORY:Family",
	))

	_, err := Delete(nil, DeleteInput{Path: path, Names: []string{"Jane Doe"}, Keep: []string{"photo", "category"}})
	require.NoError(t, err)
	require.Equal(t, card("FN:Jane Doe", "PHOTO:AAAA", "CATEGORY:Family"), readFile(t, path))
}

func TestDelete_KeepNameOnly(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeVCF(t, tmpDir, "contacts.vcf", card("FN:Jane Doe", "TEL:1"))

	output, err := Delete(nil, DeleteInput{Path: path, Names: []string{"Jane Doe"}, Keep: []string{"name"}})
	require.NoError(t, err)
	require.Equal(t, 1, output.Stripped)
	require.Equal(t, card("FN:Jane Doe"), readFile(t, path))
}

func TestDelete_UnknownKeepField(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeVCF(t, tmpDir, "contacts.vcf", card("FN:Jane Doe"))

	_, err := Delete(nil, DeleteInput{Path: path, Names: []string{"Jane Doe"}, Keep: []string{"email"}})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got: %v", err)
	}
	require.Equal(t, card("FN:Jane Doe"), readFile(t, path))
}

func TestDelete_NoNamesIsNoOp(t *testing.T) {
	tmpDir := t.TempDir()
	original := card("FN:Jane Doe") + card("FN:John Smith")
	path := writeVCF(t, tmpDir, "contacts.vcf", original)
	out := filepath.Join(tmpDir, "out.vcf")

	output, err := Delete(nil, DeleteInput{Path: path, Out: out})
	require.NoError(t, err)
	require.Equal(t, 0, output.Deleted)
	require.False(t, output.Written)
	require.Equal(t, original, readFile(t, path))

	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("no-op delete should not create %s", out)
	}
}

func TestDelete_BlankNamesIsNoOp(t *testing.T) {
	tmpDir := t.TempDir()
	original := "BEGIN:VCARD\r\nVERSION:3.0\r\nFN:Jane Doe\r\nNOTE:long\r\n  folded\r\nEND:VCARD\r\n"
	path := writeVCF(t, tmpDir, "contacts.vcf", original)
	nameFile := filepath.Join(tmpDir, "names.txt")
	require.NoError(t, os.WriteFile(nameFile, []byte("\n  \n\t\n"), 0644))

	tests := []struct {
		name  string
		input DeleteInput
	}{
		{"blank inline names", DeleteInput{Path: path, Names: []string{"   ", ""}}},
		{"blank name file", DeleteInput{Path: path, NameFile: nameFile}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := Delete(nil, tt.input)
			require.NoError(t, err)
			require.False(t, output.Written)
			require.Equal(t, 0, output.Deleted)
			require.Equal(t, original, readFile(t, path))
		})
	}
}

func TestDelete_All(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeVCF(t, tmpDir, "contacts.vcf", card("FN:A"), card("FN:B"))

	output, err := Delete(nil, DeleteInput{Path: path, All: true})
	require.NoError(t, err)
	require.Equal(t, 2, output.Deleted)
	require.Equal(t, "", readFile(t, path))
}

func TestDelete_NameFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeVCF(t, tmpDir, "contacts.vcf", card("FN:A"), card("FN:B"), card("FN:C"))
	nameFile := filepath.Join(tmpDir, "names.txt")
	require.NoError(t, os.WriteFile(nameFile, []byte("a\nc\n"), 0644))

	output, err := Delete(nil, DeleteInput{Path: path, NameFile: nameFile, Names: []string{"A"}})
	require.NoError(t, err)
	require.Equal(t, 2, output.Deleted)
	require.Equal(t, card("FN:B"), readFile(t, path))
}

func TestDelete_SeparateDestination(t *testing.T) {
	tmpDir := t.TempDir()
	original := card("FN:A") + card("FN:B")
	path := writeVCF(t, tmpDir, "contacts.vcf", original)
	out := filepath.Join(tmpDir, "sub", "out.vcf")

	output, err := Delete(nil, DeleteInput{Path: path, Names: []string{"b"}, Out: out})
	require.NoError(t, err)
	require.Equal(t, out, output.Path)
	require.Equal(t, card("FN:A"), readFile(t, out))
	require.Equal(t, original, readFile(t, path))
}

func TestDelete_NoMatchRewritesUnchanged(t *testing.T) {
	tmpDir := t.TempDir()
	original := card("FN:A")
	path := writeVCF(t, tmpDir, "contacts.vcf", original)

	output, err := Delete(nil, DeleteInput{Path: path, Names: []string{"zed"}})
	require.NoError(t, err)
	require.Equal(t, 0, output.Deleted)
	require.True(t, output.Written)
	require.Equal(t, original, readFile(t, path))
}

func TestDelete_InPlaceThroughSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on Windows")
	}
	tmpDir := t.TempDir()
	target := writeVCF(t, tmpDir, "contacts.vcf", card("FN:Jane Doe"), card("FN:John Smith"))
	link := filepath.Join(tmpDir, "link.vcf")
	require.NoError(t, os.Symlink(target, link))

	output, err := Delete(nil, DeleteInput{Path: link, Names: []string{"Jane Doe"}})
	require.NoError(t, err)
	require.Equal(t, 1, output.Deleted)
	require.Equal(t, card("FN:John Smith"), readFile(t, target))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	require.NotZero(t, info.Mode()&os.ModeSymlink, "link should still be a symlink")
}

func TestDelete_MissingSource(t *testing.T) {
	tmpDir := t.TempDir()
	out := filepath.Join(tmpDir, "out.vcf")

	_, err := Delete(nil, DeleteInput{Path: filepath.Join(tmpDir, "missing.vcf"), Names: []string{"a"}, Out: out})
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got: %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("failed delete should not produce output")
	}
}

func TestDelete_MissingNameFile(t *testing.T) {
	tmpDir := t.TempDir()
	original := card("FN:A")
	path := writeVCF(t, tmpDir, "contacts.vcf", original)

	_, err := Delete(nil, DeleteInput{Path: path, NameFile: filepath.Join(tmpDir, "missing.txt")})
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got: %v", err)
	}
	require.Equal(t, original, readFile(t, path))
}

func TestDelete_EmptyPath(t *testing.T) {
	_, err := Delete(nil, DeleteInput{Names: []string{"a"}})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got: %v", err)
	}
}

func TestFormatDeleteMessage(t *testing.T) {
	tests := []struct {
		out  DeleteOutput
		want string
	}{
		{DeleteOutput{Path: "c.vcf"}, "No contacts matched; c.vcf rewritten without deletions"},
		{DeleteOutput{Path: "c.vcf", Deleted: 1}, "Deleted 1 contact in c.vcf"},
		{DeleteOutput{Path: "c.vcf", Deleted: 2, Stripped: 1}, "Deleted 2 contacts, stripped 1 contact in c.vcf"},
	}

	for _, tt := range tests {
		if got := formatDeleteMessage(&tt.out); got != tt.want {
			t.Errorf("formatDeleteMessage() = %q, want %q", got, tt.want)
		}
	}
}
