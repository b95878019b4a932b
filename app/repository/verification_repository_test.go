package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"github.com/jomedical/clinicverify/app/models"
)

func dummyDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)
	return db
}

func TestVerificationStatusColumnName(t *testing.T) {
	t.Parallel()

	stmt := &gorm.Statement{DB: dummyDB(t)}
	require.NoError(t, stmt.Parse(&models.Verification{}))

	field := stmt.Schema.LookUpField("Status")
	require.NotNil(t, field)
	assert.Equal(t, "status", field.DBName)
}

func TestCountByStatusQueriesSchemaColumn(t *testing.T) {
	t.Parallel()

	db := dummyDB(t)
	repo := &verificationRepository{db: db}

	var counts []models.StatusCount
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return repo.statusBreakdown(tx).Scan(&counts)
	})

	// the breakdown must group by the column the model maps Status to
	assert.Contains(t, sql, "GROUP BY `status`")
	assert.NotContains(t, sql, "verification_status")
}
