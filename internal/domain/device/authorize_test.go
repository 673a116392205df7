package device

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBindingRepo struct {
	bindings map[string]Binding // device id -> binding
}

func newFakeBindingRepo() *fakeBindingRepo {
	return &fakeBindingRepo{bindings: make(map[string]Binding)}
}

func (f *fakeBindingRepo) GetByDeviceID(_ context.Context, deviceID string) (*Binding, error) {
	if b, ok := f.bindings[deviceID]; ok {
		return &b, nil
	}
	return nil, nil
}

func (f *fakeBindingRepo) ListByUserID(_ context.Context, userID string) ([]Binding, error) {
	var out []Binding
	for _, b := range f.bindings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBindingRepo) BindIfAbsent(_ context.Context, deviceID, userID string) (Binding, error) {
	if b, ok := f.bindings[deviceID]; ok {
		return b, nil
	}
	b := Binding{DeviceID: deviceID, UserID: userID, CreatedAt: time.Now()}
	f.bindings[deviceID] = b
	return b, nil
}

func (f *fakeBindingRepo) ClearForUser(_ context.Context, userID string) error {
	for id, b := range f.bindings {
		if b.UserID == userID {
			delete(f.bindings, id)
		}
	}
	return nil
}

func TestAuthorize_EmptyDeviceIDSkipsCheck(t *testing.T) {
	repo := newFakeBindingRepo()
	err := Authorize(context.Background(), repo, "user-a", "")
	assert.NoError(t, err)
	assert.Empty(t, repo.bindings)
}

func TestAuthorize_FirstUseBinds(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBindingRepo()

	err := Authorize(ctx, repo, "user-a", "device-1")
	require.NoError(t, err)

	b, ok := repo.bindings["device-1"]
	require.True(t, ok)
	assert.Equal(t, "user-a", b.UserID)
}

func TestAuthorize_DeviceBoundToOtherUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBindingRepo()
	require.NoError(t, Authorize(ctx, repo, "user-a", "device-1"))

	err := Authorize(ctx, repo, "user-b", "device-1")
	assert.ErrorIs(t, err, ErrBoundToOtherUser)
}

func TestAuthorize_SecondDeviceForSameUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBindingRepo()
	require.NoError(t, Authorize(ctx, repo, "user-a", "device-1"))

	err := Authorize(ctx, repo, "user-a", "device-2")
	assert.ErrorIs(t, err, ErrUnrecognizedDevice)

	// The original binding is untouched.
	b := repo.bindings["device-1"]
	assert.Equal(t, "user-a", b.UserID)
	_, bound := repo.bindings["device-2"]
	assert.False(t, bound)
}

func TestAuthorize_RepeatWithSameDeviceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBindingRepo()
	require.NoError(t, Authorize(ctx, repo, "user-a", "device-1"))
	created := repo.bindings["device-1"].CreatedAt

	require.NoError(t, Authorize(ctx, repo, "user-a", "device-1"))

	assert.Len(t, repo.bindings, 1)
	assert.Equal(t, created, repo.bindings["device-1"].CreatedAt)
}

func TestAuthorize_LostRaceOnFirstBind(t *testing.T) {
	ctx := context.Background()
	repo := newFakeBindingRepo()

	// Another user won the conditional insert between our lookup and
	// our bind. BindIfAbsent returns their binding.
	repo.bindings["device-1"] = Binding{DeviceID: "device-1", UserID: "user-b", CreatedAt: time.Now()}

	// user-a has no bindings, device-1 appears bound to user-b.
	err := Authorize(ctx, repo, "user-a", "device-1")
	assert.ErrorIs(t, err, ErrBoundToOtherUser)
}
