package ops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robinrosenstock/vcard/internal/config"
	"github.com/robinrosenstock/vcard/internal/errors"
	"github.com/robinrosenstock/vcard/internal/vcard"
)

func queryNames(t *testing.T, input QueryInput) []string {
	t.Helper()
	output, err := Query(config.DefaultConfig(), input)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	names := []string{}
	for _, c := range output.Cards {
		names = append(names, c.Name())
	}
	return names
}

func familyWorkFixture(t *testing.T) string {
	t.Helper()
	return writeVCF(t, t.TempDir(), "contacts.vcf",
		card("FN:Anna", "CATEGORIES:Family,Friends"),
		card("FN:Bert", "CATEGORIES:Work"),
		card("FN:Cleo", "CATEGORIES:family"),
		card("FN:Dirk"),
	)
}

func TestQuery_NoFiles(t *testing.T) {
	_, err := Query(nil, QueryInput{})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("expected INVALID_REQUEST, got: %v", err)
	}
}

func TestQuery_NoFilterReturnsAll(t *testing.T) {
	path := familyWorkFixture(t)
	require.Equal(t, []string{"Anna", "Bert", "Cleo", "Dirk"}, queryNames(t, QueryInput{Files: []string{path}}))
}

func TestQuery_IncludeAnyOf(t *testing.T) {
	path := writeVCF(t, t.TempDir(), "two.vcf",
		card("FN:First", "CATEGORIES:Family,Friends"),
		card("FN:Second", "CATEGORIES:Work"),
	)

	output, err := Query(nil, QueryInput{Files: []string{path}, Include: vcard.Terms{"family"}})
	require.NoError(t, err)
	require.Equal(t, 1, output.Matched)
	require.Equal(t, 2, output.Scanned)
	require.Equal(t, "First", output.Cards[0].Name())
}

func TestQuery_IncludeEquivalentForms(t *testing.T) {
	path := familyWorkFixture(t)
	joined := queryNames(t, QueryInput{Files: []string{path}, Include: vcard.Terms{"work;friends"}})
	split := queryNames(t, QueryInput{Files: []string{path}, Include: vcard.Terms{"Work", " FRIENDS "}})
	require.Equal(t, []string{"Anna", "Bert"}, joined)
	require.Equal(t, joined, split)
}

func TestQuery_RequiredAllOf(t *testing.T) {
	path := familyWorkFixture(t)
	got := queryNames(t, QueryInput{Files: []string{path}, Required: vcard.Terms{"family", "friends"}})
	require.Equal(t, []string{"Anna"}, got)
}

func TestQuery_ExcludeWinsOverInclude(t *testing.T) {
	path := familyWorkFixture(t)
	got := queryNames(t, QueryInput{
		Files:   []string{path},
		Include: vcard.Terms{"family"},
		Exclude: vcard.Terms{"friends"},
	})
	require.Equal(t, []string{"Cleo"}, got)
}

func TestQuery_ExcludeOnly(t *testing.T) {
	path := familyWorkFixture(t)
	got := queryNames(t, QueryInput{Files: []string{path}, Exclude: vcard.Terms{"family"}})
	require.Equal(t, []string{"Bert", "Dirk"}, got)
}

func TestQuery_SearchNames(t *testing.T) {
	path := familyWorkFixture(t)
	got := queryNames(t, QueryInput{Files: []string{path}, SearchNames: []string{"NN", "le"}})
	require.Equal(t, []string{"Anna", "Cleo"}, got)
}

func TestQuery_SearchCombinedWithCategories(t *testing.T) {
	path := familyWorkFixture(t)
	got := queryNames(t, QueryInput{
		Files:       []string{path},
		Include:     vcard.Terms{"family"},
		SearchNames: []string{"e"},
	})
	require.Equal(t, []string{"Cleo"}, got)
}

func TestQuery_NameAllowList(t *testing.T) {
	tmpDir := t.TempDir()
	path := familyWorkFixture(t)
	nameFile := filepath.Join(tmpDir, "names.txt")
	require.NoError(t, os.WriteFile(nameFile, []byte("dirk\n"), 0644))

	got := queryNames(t, QueryInput{Files: []string{path}, Names: []string{"BERT"}, NameFile: nameFile})
	require.Equal(t, []string{"Bert", "Dirk"}, got)
}

func TestQuery_NameAllowListIsExact(t *testing.T) {
	path := familyWorkFixture(t)
	got := queryNames(t, QueryInput{Files: []string{path}, Names: []string{"Ann"}})
	require.Empty(t, got)
}

func TestQuery_NameFileMissing(t *testing.T) {
	path := familyWorkFixture(t)
	_, err := Query(nil, QueryInput{Files: []string{path}, NameFile: filepath.Join(t.TempDir(), "missing.txt")})
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got: %v", err)
	}
}

func TestQuery_MissingFileSkipped(t *testing.T) {
	path := familyWorkFixture(t)
	missing := filepath.Join(t.TempDir(), "gone.vcf")

	output, err := Query(nil, QueryInput{Files: []string{missing, path}, Include: vcard.Terms{"work"}})
	require.NoError(t, err)
	require.Equal(t, 1, output.Matched)
	require.Equal(t, []string{missing}, output.Skipped)
}

func TestQuery_NoDedupAcrossFiles(t *testing.T) {
	tmpDir := t.TempDir()
	a := writeVCF(t, tmpDir, "a.vcf", card("FN:Same", "CATEGORIES:x"))
	b := writeVCF(t, tmpDir, "b.vcf", card("FN:Same", "CATEGORIES:x"))

	got := queryNames(t, QueryInput{Files: []string{a, b}, Include: vcard.Terms{"x"}})
	require.Equal(t, []string{"Same", "Same"}, got)
}

func TestQuery_CardTextUnchanged(t *testing.T) {
	path := writeVCF(t, t.TempDir(), "a.vcf", card("FN:Anna", "item1.TEL;TYPE=cell:+49 1", "CATEGORIES:Family"))

	output, err := Query(nil, QueryInput{Files: []string{path}})
	require.NoError(t, err)
	require.Equal(t, readFile(t, path), vcard.Join(output.Cards))
}
