package workspace

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/goliatone/go-aemdialog/pkg/designer"
	"github.com/goliatone/go-aemdialog/pkg/model"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "workspace.db")
	store, err := Open(path)
	require.NoError(t, err)
	return store, path
}

func TestStore_EmptyWorkspaceLoadsZeroState(t *testing.T) {
	store, _ := openStore(t)
	defer store.Close()

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, state.Project)
	assert.False(t, state.HasUnsavedChanges)
}

func TestStore_RoundTripAcrossReopen(t *testing.T) {
	store, path := openStore(t)

	d := designer.New()
	state, err := d.CreateProject("Site")
	require.NoError(t, err)
	state, block, err := d.AddBlock(state, model.FieldTypeSelect, "size")
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), state))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded.Project)
	assert.Equal(t, state.Project.Name, loaded.Project.Name)
	assert.Equal(t, state.ActiveDialogID, loaded.ActiveDialogID)
	assert.True(t, loaded.HasUnsavedChanges)

	dialog, ok := loaded.ActiveDialog()
	require.True(t, ok)
	require.Len(t, dialog.Blocks, 1)
	assert.Equal(t, block.ID, dialog.Blocks[0].ID)
	assert.Equal(t, block.Properties, dialog.Blocks[0].Properties)
}

func TestStore_UpdateIsAtomic(t *testing.T) {
	store, _ := openStore(t)
	defer store.Close()
	d := designer.New()

	state, err := store.Update(context.Background(), func(designer.State) (designer.State, error) {
		return d.CreateProject("Site")
	})
	require.NoError(t, err)
	require.NotNil(t, state.Project)

	boom := errors.New("boom")
	_, err = store.Update(context.Background(), func(s designer.State) (designer.State, error) {
		next, err := d.UpdateProjectName(s, "Renamed")
		require.NoError(t, err)
		_ = next
		return designer.State{}, boom
	})
	assert.ErrorIs(t, err, boom)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Site", loaded.Project.Name)
}

func TestStore_RejectsNewerVersion(t *testing.T) {
	store, _ := openStore(t)
	defer store.Close()

	err := store.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketName)).Put([]byte(stateKey), []byte(`{"state":{},"version":99}`))
	})
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestStore_CancelledContext(t *testing.T) {
	store, _ := openStore(t)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, store.Save(ctx, designer.State{}), context.Canceled)
	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSnapshot(t *testing.T) {
	missing, err := Snapshot(context.Background(), filepath.Join(t.TempDir(), "absent.db"))
	require.NoError(t, err)
	assert.Nil(t, missing.Project)

	store, path := openStore(t)
	state, err := designer.New().CreateProject("Site")
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), state))
	require.NoError(t, store.Close())

	loaded, err := Snapshot(context.Background(), path)
	require.NoError(t, err)
	require.NotNil(t, loaded.Project)
	assert.Equal(t, "Site", loaded.Project.Name)
}
