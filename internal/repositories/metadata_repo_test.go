package repositories

import (
	"context"
	"errors"
	"testing"

	"staffsync/internal/models"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type SystemMetadataRepoTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	repo SystemMetadataRepository
	ctx  context.Context
}

func (suite *SystemMetadataRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewSystemMetadataRepository(mock)
	suite.ctx = context.Background()
}

func (suite *SystemMetadataRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestSystemMetadataRepoTestSuite(t *testing.T) {
	suite.Run(t, new(SystemMetadataRepoTestSuite))
}

func (suite *SystemMetadataRepoTestSuite) TestIncrementStartsAtOne() {
	suite.mock.ExpectQuery(`INSERT INTO system_metadata`).
		WithArgs(models.MetaKeyEmployeeCode).
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(int64(1)))

	value, err := suite.repo.Increment(suite.ctx, models.MetaKeyEmployeeCode)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(1), value)
}

func (suite *SystemMetadataRepoTestSuite) TestIncrementAdvances() {
	for want := int64(5); want <= 7; want++ {
		suite.mock.ExpectQuery(`INSERT INTO system_metadata`).
			WithArgs(models.MetaKeyEmployeeCode).
			WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(want))

		value, err := suite.repo.Increment(suite.ctx, models.MetaKeyEmployeeCode)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), want, value)
	}
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *SystemMetadataRepoTestSuite) TestGetUnusedCounter() {
	suite.mock.ExpectQuery(`SELECT value FROM system_metadata`).
		WithArgs("no_such_counter").
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.repo.Get(suite.ctx, "no_such_counter")
	assert.True(suite.T(), errors.Is(err, pgx.ErrNoRows))
}
