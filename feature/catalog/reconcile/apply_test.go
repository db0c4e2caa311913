package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"catalog-manager/feature/catalog/models"
)

type fakeSaver struct {
	saved   []models.Journal
	failOn  string
	inTx    bool
	commits int
}

func (f *fakeSaver) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	f.inTx = true
	err := fn(&gorm.DB{})
	f.inTx = false
	if err != nil {
		f.saved = nil
		return err
	}
	f.commits++
	return nil
}

func (f *fakeSaver) SaveJournal(ctx context.Context, journal *models.Journal, tx *gorm.DB) error {
	if !f.inTx {
		return errors.New("save outside transaction")
	}
	if f.failOn != "" && journal.Title == f.failOn {
		return errors.New("simulated save failure")
	}
	f.saved = append(f.saved, *journal)
	return nil
}

func testPlan() *Plan {
	return &Plan{
		New: []models.Journal{
			{Title: "Fresh Journal", EISSN: "9999-0001"},
		},
		Updated: []UpdatedRecord{
			{Journal: models.Journal{ID: 1, Title: "Acta Informatica", EISSN: "1432-0525"}},
		},
	}
}

func TestApply_WritesPlanInOneTransaction(t *testing.T) {
	saver := &fakeSaver{}

	written, err := Apply(context.Background(), saver, testPlan(), Options{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.Equal(t, 1, saver.commits)
	require.Len(t, saver.saved, 2)
	assert.Equal(t, "Fresh Journal", saver.saved[0].Title)
	assert.Equal(t, int64(1), saver.saved[1].ID)
}

func TestApply_UnconfirmedWritesNothing(t *testing.T) {
	saver := &fakeSaver{}

	written, err := Apply(context.Background(), saver, testPlan(), Options{})
	require.NoError(t, err)
	assert.Zero(t, written)
	assert.Empty(t, saver.saved)
}

func TestApply_DryRunWritesNothing(t *testing.T) {
	saver := &fakeSaver{}

	written, err := Apply(context.Background(), saver, testPlan(), Options{Confirmed: true, DryRun: true})
	require.NoError(t, err)
	assert.Zero(t, written)
	assert.Empty(t, saver.saved)
}

func TestApply_FailureRollsBack(t *testing.T) {
	saver := &fakeSaver{failOn: "Acta Informatica"}

	written, err := Apply(context.Background(), saver, testPlan(), Options{Confirmed: true})
	require.Error(t, err)
	assert.Zero(t, written)
	assert.Zero(t, saver.commits)
	assert.Empty(t, saver.saved)
}
