package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/poiesic/helpmatch/core"
	"github.com/poiesic/helpmatch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "volunteers.csv"), filepath.Join(dir, "requests.csv"))
	require.NoError(t, err)
	return store, dir
}

func TestOpen_RequiresPaths(t *testing.T) {
	_, err := Open("", "requests.csv")
	assert.ErrorIs(t, err, ErrPathRequired)
}

func TestStore_MissingFilesAreEmpty(t *testing.T) {
	store, _ := openStore(t)
	ctx := context.Background()

	volunteers, err := store.ListVolunteers(ctx)
	require.NoError(t, err)
	assert.Empty(t, volunteers)

	_, err = store.GetRequest(ctx, "REQ_1")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_AddVolunteers(t *testing.T) {
	store, dir := openStore(t)
	ctx := context.Background()

	stored, err := store.AddVolunteers(ctx, &core.Volunteer{Name: "Ana", Skills: "math tutoring", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, "VOL_1", stored[0].ID)

	stored, err = store.AddVolunteers(ctx, &core.Volunteer{Name: "Ben"})
	require.NoError(t, err)
	assert.Equal(t, "VOL_2", stored[0].ID)

	v, err := store.GetVolunteer(ctx, "VOL_1")
	require.NoError(t, err)
	assert.Equal(t, "math tutoring", v.Skills)
	assert.Equal(t, 5.0, v.Rating)

	_, err = store.AddVolunteers(ctx, &core.Volunteer{ID: "VOL_2"})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	data, err := os.ReadFile(filepath.Join(dir, "volunteers.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "VOL_ID,VolunteerName")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestStore_AddRequests_AfterExternalEdit(t *testing.T) {
	store, dir := openStore(t)
	ctx := context.Background()

	path := filepath.Join(dir, "requests.csv")
	require.NoError(t, SaveRequests(path, []*core.HelpRequest{{ID: "REQ_4"}, {ID: "REQ_2"}}))

	stored, err := store.AddRequests(ctx, &core.HelpRequest{Category: "Cooking"})
	require.NoError(t, err)
	assert.Equal(t, "REQ_5", stored[0].ID)

	requests, err := store.ListRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, "REQ_5", requests[2].ID)
	assert.Equal(t, "Cooking", requests[2].Category)
}
