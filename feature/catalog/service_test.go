package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"catalog-manager/core/database"
	"catalog-manager/feature/catalog/feed"
	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/reconcile"
)

func setupMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	repo, mock := setupMockRepo(t)

	pool, err := database.NewPool(repo.db, 0)
	if err != nil {
		t.Fatalf("Failed to create pool: %v", err)
	}

	return NewService(repo, pool, feed.Config{}, zap.NewNop()), mock
}

func TestServicePlanReconciliation(t *testing.T) {
	svc, mock := setupMockService(t)

	// One record the catalog already holds, one it does not.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "Journal title,URL in DOAJ,Journal ISSN (print version),Journal EISSN (online version)\n")
		fmt.Fprint(w, "Acta Informatica,https://example.org/acta,0001-5903,1432-0525\n")
		fmt.Fprint(w, "Fresh Journal,https://example.org/fresh,,9999-0001\n")
	}))
	defer ts.Close()

	validTill := time.Date(2026, time.December, 31, 23, 59, 59, 0, time.Local)
	mock.ExpectQuery("SELECT journal.id, journal.title").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "title", "link", "print_issn", "e_issn", "valid_till", "publisher_id"}).
			AddRow(1, "Acta Informatica", "https://example.org/acta", "0001-5903", "1432-0525", validTill, 10))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `publisher`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "is_doaj"}).
			AddRow(10, "Directory Press", true))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `link`")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "publisher_id"}))

	plan, err := svc.PlanReconciliation(context.Background(), ts.URL, "")
	require.NoError(t, err)

	assert.Equal(t, reconcile.Summary{New: 1, Unchanged: 1}, plan.Summary)
	require.Len(t, plan.New, 1)
	assert.Equal(t, "Fresh Journal", plan.New[0].Title)
	assert.Equal(t, int64(10), plan.New[0].PublisherID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceApplyReconciliation(t *testing.T) {
	svc, mock := setupMockService(t)

	plan := &reconcile.Plan{
		New: []models.Journal{
			{Title: "Fresh Journal", EISSN: "9999-0001", PublisherID: 10},
		},
		Updated: []reconcile.UpdatedRecord{
			{Journal: models.Journal{ID: 1, Title: "Acta Informatica", EISSN: "1432-0525"}},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `journal`").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("UPDATE `journal` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	written, err := svc.ApplyReconciliation(context.Background(), plan, reconcile.Options{Confirmed: true})
	require.NoError(t, err)
	assert.Equal(t, 2, written)
	assert.NoError(t, mock.ExpectationsWereMet())
}
