package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/quickstart/internal/sdk"
)

func TestLoadDefaultsToTrue(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	p, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, Preferences{ShowInstructions: true, AllowToSave: true}, p)
}

func TestSaveLoad(t *testing.T) {
	s := &Store{Dir: filepath.Join(t.TempDir(), "quickstart")}
	require.NoError(t, s.Save(Preferences{ShowInstructions: false, AllowToSave: true}))

	p, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, Preferences{ShowInstructions: false, AllowToSave: true}, p)
	require.Equal(t, sdk.TestConfiguration{ShowInstructions: false, AllowToSave: true}, p.TestConfiguration())

	_, err = os.Stat(filepath.Join(s.Dir, prefsFile+".tmp"))
	require.True(t, os.IsNotExist(err))
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, prefsFile), []byte(`{"allow_to_save": false}`), 0o600))

	p, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, Preferences{ShowInstructions: true, AllowToSave: false}, p)
}

func TestLoadCorruptFile(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, prefsFile), []byte(`{`), 0o600))

	p, err := s.Load()
	require.Error(t, err)
	require.Equal(t, Defaults(), p)
}
