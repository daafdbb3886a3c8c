package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/delivery-tracker/internal/pkg/errors"
	"github.com/delivery-tracker/internal/repository/postgres"
	"github.com/delivery-tracker/internal/repository/postgres/testhelpers"
)

type OrderRepositoryTestSuite struct {
	suite.Suite
	testDB *testhelpers.TestDB
	repo   repository.OrderRepository
	ctx    context.Context
}

func (s *OrderRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	s.Require().NoError(testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations"))
	s.Require().NoError(s.testDB.Cleanup(context.Background()))
	s.Require().NoError(testhelpers.LoadFixtures(s.testDB.DB.DB, "testdata/fixtures", []string{"orders.sql"}))

	s.repo = postgres.NewOrderRepository(postgres.NewDBForTest(s.testDB.DB, s.testDB.Logger))
}

func (s *OrderRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Cleanup(context.Background())
		s.testDB.Close()
	}
}

func (s *OrderRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
}

func (s *OrderRepositoryTestSuite) TestGetDeliveryLocation() {
	loc, err := s.repo.GetDeliveryLocation(s.ctx, "ord-1")
	s.Require().NoError(err)

	s.Equal("00000101", loc.OrderNumber)
	s.Equal("Delhi Traders", loc.AccountName)
	s.True(loc.IsActivated())
	s.Require().NotNil(loc.ActivatedDate)
	s.Equal("2024-01-01", loc.ActivatedDate.Format("2006-01-02"))

	billing, shipping, err := loc.Coordinates()
	s.Require().NoError(err)
	s.InDelta(19.0760, billing.Lat, 1e-9)
	s.InDelta(77.2090, shipping.Lon, 1e-9)
}

func (s *OrderRepositoryTestSuite) TestGetDeliveryLocation_MissingCoordinates() {
	loc, err := s.repo.GetDeliveryLocation(s.ctx, "ord-2")
	s.Require().NoError(err)
	s.Nil(loc.ShippingLat)

	_, _, err = loc.Coordinates()
	s.ErrorIs(err, errors.ErrInvalidCoordinates)
}

func (s *OrderRepositoryTestSuite) TestGetDeliveryLocation_NotActivated() {
	loc, err := s.repo.GetDeliveryLocation(s.ctx, "ord-3")
	s.Require().NoError(err)
	s.False(loc.IsActivated())
	s.Nil(loc.ActivatedDate)
}

func (s *OrderRepositoryTestSuite) TestGetDeliveryLocation_NotFound() {
	loc, err := s.repo.GetDeliveryLocation(s.ctx, "missing")
	s.Nil(loc)
	s.ErrorIs(err, errors.ErrOrderNotFound)
}

func (s *OrderRepositoryTestSuite) TestListDeliveryLocations() {
	locs, err := s.repo.ListDeliveryLocations(s.ctx, []string{"ord-3", "ord-1", "missing"})
	s.Require().NoError(err)
	s.Require().Len(locs, 2)

	// сортировка по номеру заказа
	s.Equal("ord-1", locs[0].OrderID)
	s.Equal("ord-3", locs[1].OrderID)
}

func (s *OrderRepositoryTestSuite) TestListDeliveryLocations_Empty() {
	locs, err := s.repo.ListDeliveryLocations(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(locs)
}

func (s *OrderRepositoryTestSuite) TestActivationDateFeedsSchedule() {
	loc, err := s.repo.GetDeliveryLocation(s.ctx, "ord-1")
	s.Require().NoError(err)

	schedule := domain.ComputeSchedule(loc.ActivatedDate, 1400, time.Now())
	s.Equal("2024-01-07", schedule.ExpectedDate.Format("2006-01-02"))
}

func TestOrderRepositorySuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}
