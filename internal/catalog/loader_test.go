package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCave = `
id: sample
name: Sample
time_limit: 30s
notes: first cave
map: |
  #####
  #S E#
  #####
`

func TestParseCave(t *testing.T) {
	c, err := ParseCave([]byte(sampleCave))
	require.NoError(t, err)

	assert.Equal(t, "sample", c.ID)
	assert.Equal(t, "Sample", c.Name)
	assert.Equal(t, "first cave", c.Notes)
	assert.Equal(t, TimeLimit30s, c.TimeLimit)
	assert.Equal(t, []string{"#####", "#S E#", "#####"}, c.Map)
}

func TestParseCaveDefaults(t *testing.T) {
	c, err := ParseCave([]byte("map: \"#S E#\"\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCaveName, c.Name)
	assert.Equal(t, DefaultTimeLimit, c.TimeLimit)
}

func TestParseCaveRejectsEmptyMap(t *testing.T) {
	_, err := ParseCave([]byte("name: Nothing\n"))
	assert.Error(t, err)
}

func TestLoaderSortsByPathAndDefaultsID(t *testing.T) {
	fsys := fstest.MapFS{
		"caves/b.yaml":      {Data: []byte("map: \"#S E#\"\n")},
		"caves/a.yml":       {Data: []byte("map: \"#S E#\"\n")},
		"caves/c/deep.yaml": {Data: []byte("id: deep\nmap: \"#S E#\"\n")},
		"caves/readme.txt":  {Data: []byte("ignored")},
	}
	l := &Loader{FS: fsys, Root: "caves"}

	caves, err := l.LoadAll()
	require.NoError(t, err)
	require.Len(t, caves, 3)
	assert.Equal(t, "a", caves[0].ID)
	assert.Equal(t, "b", caves[1].ID)
	assert.Equal(t, "deep", caves[2].ID)
}

func TestLoaderMalformedFileIsConfigurationError(t *testing.T) {
	fsys := fstest.MapFS{
		"caves/bad.yaml": {Data: []byte("time_limit: 17s\nmap: \"#\"\n")},
	}
	_, err := (&Loader{FS: fsys, Root: "caves"}).LoadAll()
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestLoaderValidateHook(t *testing.T) {
	fsys := fstest.MapFS{
		"caves/a.yaml": {Data: []byte("map: \"#####\"\n")},
	}
	l := &Loader{FS: fsys, Root: "caves", Validate: func(Cave) error {
		return errors.New("no start pad")
	}}
	_, err := l.LoadAll()
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.Contains(t, err.Error(), "no start pad")
}

func TestLoaderEmptyDirectoryFailsToBuild(t *testing.T) {
	dir := t.TempDir()
	_, err := NewDirLoader(dir).Load(CavesPerLevel)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestLoaderReadsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.yaml"), []byte(sampleCave), 0o600))

	cat, err := NewDirLoader(dir).Load(CavesPerLevel)
	require.NoError(t, err)
	assert.Equal(t, 1, cat.LevelCount())
}

func TestDefaultLoaderBuildsCatalog(t *testing.T) {
	cat, err := DefaultLoader().Load(CavesPerLevel)
	require.NoError(t, err)

	assert.Equal(t, 7, cat.TotalCaves())
	assert.Equal(t, 3, cat.LevelCount())

	first, err := cat.Cave(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "01-first-flight", first.ID)
	assert.Equal(t, TimeLimit1m, first.TimeLimit)
}
