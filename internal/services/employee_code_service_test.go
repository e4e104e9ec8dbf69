package services

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type EmployeeCodeServiceTestSuite struct {
	suite.Suite
	mock pgxmock.PgxPoolIface
	svc  EmployeeCodeService
	ctx  context.Context
}

func (suite *EmployeeCodeServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.svc = NewEmployeeCodeService("EMP")
	suite.ctx = context.Background()
}

func (suite *EmployeeCodeServiceTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestEmployeeCodeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeCodeServiceTestSuite))
}

func (suite *EmployeeCodeServiceTestSuite) expectIncrement(value int64) {
	suite.mock.ExpectQuery(`INSERT INTO system_metadata`).
		WithArgs("employee_code_seq").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow(value))
}

func (suite *EmployeeCodeServiceTestSuite) TestNextFormatsCode() {
	suite.expectIncrement(42)

	code, err := suite.svc.Next(suite.ctx, suite.mock)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "EMP-00042", code)
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *EmployeeCodeServiceTestSuite) TestNextIsSequential() {
	for i, want := range []string{"EMP-00001", "EMP-00002", "EMP-00003"} {
		suite.expectIncrement(int64(i + 1))

		code, err := suite.svc.Next(suite.ctx, suite.mock)
		assert.NoError(suite.T(), err)
		assert.Equal(suite.T(), want, code)
	}
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
}

func (suite *EmployeeCodeServiceTestSuite) TestNextPropagatesCounterFailure() {
	suite.mock.ExpectQuery(`INSERT INTO system_metadata`).
		WithArgs("employee_code_seq").
		WillReturnError(errors.New("connection refused"))

	_, err := suite.svc.Next(suite.ctx, suite.mock)
	assert.Error(suite.T(), err)
}

func TestFormatEmployeeCode(t *testing.T) {
	assert.Equal(t, "EMP-00001", FormatEmployeeCode("EMP", 1))
	assert.Equal(t, "STAFF-00042", FormatEmployeeCode("STAFF", 42))
	// Values beyond five digits widen, they are not truncated.
	assert.Equal(t, "EMP-123456", FormatEmployeeCode("EMP", 123456))
}
