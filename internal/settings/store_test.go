package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

const goodURL = "https://script.google.com/macros/s/AKfycbzNmRQ1Qxz_Yq-sKpr/exec"

func TestValidScriptURL(t *testing.T) {
	assert.True(t, ValidScriptURL(goodURL))
	assert.True(t, ValidScriptURL(goodURL+"?action=getData"))

	assert.False(t, ValidScriptURL(""))
	assert.False(t, ValidScriptURL("https://script.google.com/macros/s/abc"))          // no /exec
	assert.False(t, ValidScriptURL("http://script.google.com/macros/s/abc/exec"))      // not https
	assert.False(t, ValidScriptURL("https://example.com/macros/s/abc/exec"))           // wrong host
	assert.False(t, ValidScriptURL("https://script.google.com/macros/s/abc/exec/more")) // trailing path
}

func TestLoad_MissingFileStartsUnconfigured(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "settings.json"), "")
	assert.NoError(t, err)
	assert.False(t, store.Configured())
	assert.Empty(t, store.ScriptURL())
}

func TestLoad_EnvFallbackApplies(t *testing.T) {
	store, err := Load(filepath.Join(t.TempDir(), "settings.json"), goodURL)
	assert.NoError(t, err)
	assert.True(t, store.Configured())
	assert.Equal(t, goodURL, store.ScriptURL())
}

func TestSetScriptURL_PersistsAndSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	store, err := Load(path, "")
	assert.NoError(t, err)
	assert.NoError(t, store.SetScriptURL("  "+goodURL+"  ")) // input is trimmed
	assert.Equal(t, goodURL, store.ScriptURL())

	reloaded, err := Load(path, "")
	assert.NoError(t, err)
	assert.Equal(t, goodURL, reloaded.ScriptURL())
}

func TestSetScriptURL_RejectsInvalidAndKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	store, err := Load(path, "")
	assert.NoError(t, err)
	assert.NoError(t, store.SetScriptURL(goodURL))

	assert.ErrorIs(t, store.SetScriptURL("https://example.com/exec"), ErrInvalidScriptURL)
	assert.Equal(t, goodURL, store.ScriptURL())
}

func TestSavedURLWinsOverFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	saved := "https://script.google.com/macros/s/saved123/exec"

	store, err := Load(path, goodURL)
	assert.NoError(t, err)
	assert.NoError(t, store.SetScriptURL(saved))
	assert.Equal(t, saved, store.ScriptURL())
}

func TestLoad_CorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := Load(path, "")
	assert.Error(t, err)
}
