package withdraw

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/reconcile"
)

type fakeDeleter struct {
	deleted []int64
	failOn  int64
	inTx    bool
}

func (f *fakeDeleter) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.inTx = true
	err := fn(&gorm.DB{})
	f.inTx = false
	if err != nil {
		f.deleted = nil
		return err
	}
	return nil
}

func (f *fakeDeleter) DeleteJournal(ctx context.Context, id int64, tx *gorm.DB) (int64, error) {
	if !f.inTx {
		return 0, errors.New("delete outside transaction")
	}
	if f.failOn != 0 && id == f.failOn {
		return 0, errors.New("simulated delete failure")
	}
	f.deleted = append(f.deleted, id)
	return 1, nil
}

func testReport() *Report {
	return &Report{
		Eligible: []models.Journal{
			{ID: 1, Title: "Acta Informatica"},
			{ID: 3, Title: "Linked Journal"},
		},
		Ignored: []models.Journal{
			{ID: 2, Title: "Print Only Review"},
		},
	}
}

func TestApply_DeletesOnlyEligible(t *testing.T) {
	deleter := &fakeDeleter{}

	removed, err := Apply(context.Background(), deleter, testReport(), reconcile.Options{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.Equal(t, []int64{1, 3}, deleter.deleted)
}

func TestApply_UnconfirmedDeletesNothing(t *testing.T) {
	deleter := &fakeDeleter{}

	removed, err := Apply(context.Background(), deleter, testReport(), reconcile.Options{})
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Empty(t, deleter.deleted)
}

func TestApply_DryRunDeletesNothing(t *testing.T) {
	deleter := &fakeDeleter{}

	removed, err := Apply(context.Background(), deleter, testReport(), reconcile.Options{Confirmed: true, DryRun: true})
	require.NoError(t, err)
	assert.Zero(t, removed)
	assert.Empty(t, deleter.deleted)
}

func TestApply_FailureRollsBack(t *testing.T) {
	deleter := &fakeDeleter{failOn: 3}

	removed, err := Apply(context.Background(), deleter, testReport(), reconcile.Options{Confirmed: true})
	require.Error(t, err)
	assert.Zero(t, removed)
	assert.Empty(t, deleter.deleted)
}
