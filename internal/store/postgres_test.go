package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/prospector-cli/internal/model"
)

func newTestPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

var pgSessionColumns = []string{"id", "date", "task", "category", "city", "status", "records", "notes"}

func TestPostgres_CreateSession(t *testing.T) {
	st, mock := newTestPostgresStore(t)

	mock.ExpectExec(`INSERT INTO sessions`).
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), "scrape pizza", "Pizza", "Paris",
			string(model.SessionStatusInProgress), pgxmock.AnyArg(), "",
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	created, err := st.CreateSession(context.Background(), model.Session{
		Task:     "scrape pizza",
		Category: "Pizza",
		City:     "Paris",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.SessionStatusInProgress, created.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetSession(t *testing.T) {
	st, mock := newTestPostgresStore(t)
	date := time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM sessions WHERE id = \$1`).
		WithArgs("abc").
		WillReturnRows(pgxmock.NewRows(pgSessionColumns).AddRow(
			"abc", date, "scrape pizza", "Pizza", "Paris", "completed",
			[]byte(`[{"local_id":1,"name":"Chez Luigi","city":"Paris"}]`), "",
		))

	got, err := st.GetSession(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Paris", got.City)
	assert.Equal(t, model.SessionStatusCompleted, got.Status)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "Chez Luigi", got.Records[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_GetSession_NotFound(t *testing.T) {
	st, mock := newTestPostgresStore(t)

	mock.ExpectQuery(`SELECT .+ FROM sessions WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(pgSessionColumns))

	_, err := st.GetSession(context.Background(), "missing")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListSessions_Filters(t *testing.T) {
	st, mock := newTestPostgresStore(t)
	date := time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM sessions WHERE 1=1 AND city ILIKE \$1 AND category = \$2 .+ LIMIT \$3`).
		WithArgs("%Paris%", "Pizza", 500).
		WillReturnRows(pgxmock.NewRows(pgSessionColumns).AddRow(
			"s1", date, "", "Pizza", "Paris", "completed", []byte(`[]`), "",
		))

	got, err := st.ListSessions(context.Background(), SessionFilter{City: "Paris", Category: "Pizza"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateSessionStatus(t *testing.T) {
	st, mock := newTestPostgresStore(t)

	mock.ExpectExec(`UPDATE sessions SET status`).
		WithArgs("completed", pgxmock.AnyArg(), "abc").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, st.UpdateSessionStatus(context.Background(), "abc", model.SessionStatusCompleted))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_UpdateSessionStatus_NotFound(t *testing.T) {
	st, mock := newTestPostgresStore(t)

	mock.ExpectExec(`UPDATE sessions SET status`).
		WithArgs("error", pgxmock.AnyArg(), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := st.UpdateSessionStatus(context.Background(), "missing", model.SessionStatusError)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ReplaceRecords(t *testing.T) {
	st, mock := newTestPostgresStore(t)

	mock.ExpectExec(`UPDATE sessions SET records`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "abc").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	records := []model.Record{{LocalID: 1, Name: "Pizza Roma", City: "Paris"}}
	require.NoError(t, st.ReplaceRecords(context.Background(), "abc", records))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteSession(t *testing.T) {
	st, mock := newTestPostgresStore(t)

	mock.ExpectExec(`DELETE FROM sessions`).
		WithArgs("abc").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, st.DeleteSession(context.Background(), "abc"))

	mock.ExpectExec(`DELETE FROM sessions`).
		WithArgs("abc").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.Error(t, st.DeleteSession(context.Background(), "abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
