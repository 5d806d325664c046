package page_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkaranja/freelancecrm/internal/page"
)

var errServer = errors.New("boom")

func loadedState(t *testing.T, items ...item) *page.State[item] {
	t.Helper()
	s := page.NewState[item](nil)
	err := s.Load(context.Background(), "load failed", func(context.Context) ([]item, error) {
		return items, nil
	})
	require.NoError(t, err)
	return s
}

func TestState_Load_Success(t *testing.T) {
	s := page.NewState[item](nil)
	require.Equal(t, page.StatusLoading, s.Status())

	err := s.Load(context.Background(), "load failed", func(context.Context) ([]item, error) {
		return []item{{ID: 2}, {ID: 1}}, nil
	})
	require.NoError(t, err)
	require.Equal(t, page.StatusLoaded, s.Status())
	require.Equal(t, []int64{2, 1}, ids(s.Items()))
	require.Empty(t, s.Err())
}

func TestState_Load_FailureLeavesEmptyCollection(t *testing.T) {
	s := page.NewState[item](nil)
	err := s.Load(context.Background(), "load failed", func(context.Context) ([]item, error) {
		return nil, errServer
	})
	require.Error(t, err)
	require.Equal(t, page.StatusLoadFailed, s.Status())
	require.Equal(t, "load failed", s.Err())
	require.Zero(t, s.Len())
}

func TestState_Load_RetriesOutOfLoadFailed(t *testing.T) {
	s := page.NewState[item](nil)
	_ = s.Load(context.Background(), "load failed", func(context.Context) ([]item, error) {
		return nil, errServer
	})

	err := s.Load(context.Background(), "load failed", func(context.Context) ([]item, error) {
		return []item{{ID: 1}}, nil
	})
	require.NoError(t, err)
	require.Equal(t, page.StatusLoaded, s.Status())
	require.Empty(t, s.Err())
	require.Equal(t, 1, s.Len())
}

func TestState_Insert_PrependsAndGrowsByOne(t *testing.T) {
	s := loadedState(t, item{ID: 1}, item{ID: 2})

	s.Insert(item{ID: 3})

	require.Equal(t, []int64{3, 1, 2}, ids(s.Items()))
	require.Equal(t, 3, s.Len())
}

func TestState_Patch_SuccessKeepsOptimisticValue(t *testing.T) {
	s := loadedState(t, item{ID: 1, Name: "old"}, item{ID: 2})

	err := s.Patch(context.Background(), 1, "update failed",
		func(it item) item {
			it.Name = "new"
			return it
		},
		func(context.Context) error { return nil })
	require.NoError(t, err)

	got, _ := s.Find(1)
	require.Equal(t, "new", got.Name)
	require.Empty(t, s.Err())
	require.Equal(t, page.InteractionIdle, s.Interaction(1))
}

func TestState_Patch_FailureRestoresSnapshot(t *testing.T) {
	s := loadedState(t, item{ID: 1, Name: "old"}, item{ID: 2, Name: "other"})

	err := s.Patch(context.Background(), 1, "update failed",
		func(it item) item {
			it.Name = "new"
			return it
		},
		func(context.Context) error { return errServer })
	require.ErrorIs(t, err, errServer)

	got, _ := s.Find(1)
	require.Equal(t, "old", got.Name)
	other, _ := s.Find(2)
	require.Equal(t, "other", other.Name)
	require.Equal(t, "update failed", s.Err())
	require.Equal(t, page.InteractionIdle, s.Interaction(1))
}

func TestState_Patch_MissingIDSendsNothing(t *testing.T) {
	s := loadedState(t, item{ID: 1})

	sent := false
	err := s.Patch(context.Background(), 99, "update failed",
		func(it item) item { return it },
		func(context.Context) error {
			sent = true
			return nil
		})
	require.NoError(t, err)
	require.False(t, sent)
	require.Empty(t, s.Err())
}

func TestState_Patch_OptimisticValueVisibleDuringRequest(t *testing.T) {
	s := loadedState(t, item{ID: 1, Name: "old"})

	err := s.Patch(context.Background(), 1, "update failed",
		func(it item) item {
			it.Name = "new"
			return it
		},
		func(context.Context) error {
			got, _ := s.Find(1)
			require.Equal(t, "new", got.Name)
			require.Equal(t, page.InteractionSaving, s.Interaction(1))
			return nil
		})
	require.NoError(t, err)
}

func TestState_ConfirmDelete_RequiresOpenConfirmation(t *testing.T) {
	s := loadedState(t, item{ID: 1})

	sent := false
	err := s.ConfirmDelete(context.Background(), 1, "delete failed", func(context.Context) error {
		sent = true
		return nil
	})
	require.NoError(t, err)
	require.False(t, sent)
	require.Equal(t, 1, s.Len())
}

func TestState_ConfirmDelete_Success(t *testing.T) {
	s := loadedState(t, item{ID: 1}, item{ID: 2}, item{ID: 3})

	require.True(t, s.RequestDelete(2))
	require.Equal(t, page.InteractionConfirmingDelete, s.Interaction(2))

	err := s.ConfirmDelete(context.Background(), 2, "delete failed", func(context.Context) error {
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 3}, ids(s.Items()))
	require.Equal(t, page.InteractionIdle, s.Interaction(2))
}

func TestState_ConfirmDelete_FailureRestoresOrderAndMembership(t *testing.T) {
	s := loadedState(t, item{ID: 1}, item{ID: 2}, item{ID: 3})

	require.True(t, s.RequestDelete(2))
	err := s.ConfirmDelete(context.Background(), 2, "delete failed", func(context.Context) error {
		return errServer
	})
	require.ErrorIs(t, err, errServer)
	require.Equal(t, []int64{1, 2, 3}, ids(s.Items()))
	require.Equal(t, "delete failed", s.Err())
}

func TestState_RequestDelete_MissingID(t *testing.T) {
	s := loadedState(t, item{ID: 1})
	require.False(t, s.RequestDelete(99))
}

func TestState_Cancel_DismissesConfirmation(t *testing.T) {
	s := loadedState(t, item{ID: 1})

	require.True(t, s.RequestDelete(1))
	s.Cancel(1)
	require.Equal(t, page.InteractionIdle, s.Interaction(1))

	sent := false
	err := s.ConfirmDelete(context.Background(), 1, "delete failed", func(context.Context) error {
		sent = true
		return nil
	})
	require.NoError(t, err)
	require.False(t, sent)
	require.Equal(t, 1, s.Len())
}

func TestState_Confirmations_IndependentPerRecord(t *testing.T) {
	s := loadedState(t, item{ID: 1}, item{ID: 2})

	require.True(t, s.RequestDelete(1))
	require.True(t, s.RequestStatusChange(2))

	require.Equal(t, page.InteractionConfirmingDelete, s.Interaction(1))
	require.Equal(t, page.InteractionConfirmingStatus, s.Interaction(2))

	s.Cancel(1)
	require.Equal(t, page.InteractionConfirmingStatus, s.Interaction(2))
}

func TestState_SetError_ClearError(t *testing.T) {
	s := loadedState(t)

	s.SetError("something broke")
	require.Equal(t, "something broke", s.Err())
	s.ClearError()
	require.Empty(t, s.Err())
}
