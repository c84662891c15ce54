package dietchart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/ayurplan/engine/internal/domain/dietchart"
	"github.com/ayurplan/engine/internal/domain/patient"
	"github.com/ayurplan/engine/internal/ports/inbound"
	"github.com/ayurplan/engine/internal/ports/outbound"
	apperrors "github.com/ayurplan/engine/pkg/errors"
	"github.com/ayurplan/engine/test/testutils"
)

type DietChartServiceTestSuite struct {
	suite.Suite
	charts    *testutils.MockDietChartRepository
	patients  *testutils.MockPatientRepository
	nutrition *testutils.MockNutritionService
	service   *DietChartService
	now       time.Time
	ctx       context.Context
}

func (suite *DietChartServiceTestSuite) SetupTest() {
	suite.charts = testutils.NewMockDietChartRepository()
	suite.patients = &testutils.MockPatientRepository{}
	suite.nutrition = &testutils.MockNutritionService{}
	suite.now = time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	svc := NewDietChartService(suite.charts, suite.patients, suite.nutrition, zap.NewNop()).(*DietChartService)
	svc.now = func() time.Time { return suite.now }
	suite.service = svc
	suite.ctx = context.Background()
}

func (suite *DietChartServiceTestSuite) createCommand() inbound.CreateDietChartCommand {
	chart := testutils.DailyChart("p1", suite.now, testutils.FoodItem("rice", 150))
	return inbound.CreateDietChartCommand{
		PatientID:      chart.PatientID,
		ChartType:      chart.ChartType,
		StartDate:      chart.StartDate,
		EndDate:        chart.EndDate,
		TargetCalories: chart.TargetCalories,
		DayPlans:       chart.DayPlans,
	}
}

func (suite *DietChartServiceTestSuite) storedChart(status dietchart.Status) *dietchart.Chart {
	chart := testutils.DailyChart("p1", suite.now, testutils.FoodItem("rice", 150))
	chart.ID = "chart-1"
	chart.Status = status
	return &chart
}

func (suite *DietChartServiceTestSuite) TestCreateChart() {
	suite.Run("ValidChart_ShouldStoreDraftWithRollup", func() {
		suite.SetupTest()

		// Arrange
		rollup := &dietchart.Rollup{}
		suite.patients.On("FindByID", mock.Anything, "p1").Return(&patient.Patient{ID: "p1"}, nil).Once()
		suite.charts.On("Save", mock.Anything, mock.AnythingOfType("*dietchart.Chart")).Return(nil).Once()
		suite.nutrition.On("CalculateChart", mock.Anything, mock.AnythingOfType("*dietchart.Chart")).Return(rollup, nil).Once()

		// Act
		dto, err := suite.service.CreateChart(suite.ctx, suite.createCommand())

		// Assert
		require.NoError(suite.T(), err)
		assert.NotEmpty(suite.T(), dto.Chart.ID)
		assert.Equal(suite.T(), dietchart.StatusDraft, dto.Chart.Status)
		assert.Equal(suite.T(), suite.now, dto.Chart.CreatedAt)
		assert.Same(suite.T(), rollup, dto.Rollup)
		suite.charts.AssertExpectations(suite.T())
	})

	suite.Run("UnknownPatient_ShouldReturnNotFound", func() {
		suite.SetupTest()

		// Arrange
		suite.patients.On("FindByID", mock.Anything, "p1").Return(nil, outbound.ErrNotFound).Once()

		// Act
		_, err := suite.service.CreateChart(suite.ctx, suite.createCommand())

		// Assert
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodePatientNotFound, appErr.Code)
		suite.charts.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything)
	})

	suite.Run("TargetOutOfRange_ShouldFailValidation", func() {
		suite.SetupTest()

		// Arrange
		cmd := suite.createCommand()
		cmd.TargetCalories = 300
		suite.patients.On("FindByID", mock.Anything, "p1").Return(&patient.Patient{ID: "p1"}, nil).Once()

		// Act
		_, err := suite.service.CreateChart(suite.ctx, cmd)

		// Assert
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodeValidationFailed, appErr.Code)
		suite.charts.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything)
	})

	suite.Run("SaveFailure_ShouldReturnDataStoreError", func() {
		suite.SetupTest()

		// Arrange
		suite.patients.On("FindByID", mock.Anything, "p1").Return(&patient.Patient{ID: "p1"}, nil).Once()
		suite.charts.On("Save", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

		// Act
		_, err := suite.service.CreateChart(suite.ctx, suite.createCommand())

		// Assert
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodeDataStoreError, appErr.Code)
	})
}

func (suite *DietChartServiceTestSuite) TestGetChart() {
	suite.Run("MissingChart_ShouldReturnNotFound", func() {
		suite.SetupTest()

		// Arrange
		suite.charts.On("FindByID", mock.Anything, "nope").Return(nil, outbound.ErrNotFound).Once()

		// Act
		_, err := suite.service.GetChart(suite.ctx, "nope")

		// Assert
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodeDietChartNotFound, appErr.Code)
	})
}

func (suite *DietChartServiceTestSuite) TestListPatientCharts() {
	suite.Run("SecondPage_ShouldUseDefaultSizeAndCountPages", func() {
		suite.SetupTest()

		// Arrange
		stored := []*dietchart.Chart{suite.storedChart(dietchart.StatusDraft), suite.storedChart(dietchart.StatusActive)}
		suite.charts.On("FindByPatient", mock.Anything, "p1", 20, 20).Return(stored, 45, nil).Once()
		suite.nutrition.On("CalculateChart", mock.Anything, mock.Anything).Return(&dietchart.Rollup{}, nil).Twice()

		// Act
		list, err := suite.service.ListPatientCharts(suite.ctx, "p1", inbound.PaginationParams{Page: 2})

		// Assert
		require.NoError(suite.T(), err)
		assert.Len(suite.T(), list.Charts, 2)
		assert.Equal(suite.T(), 45, list.Total)
		assert.Equal(suite.T(), 2, list.Page)
		assert.Equal(suite.T(), 20, list.PageSize)
		assert.Equal(suite.T(), 3, list.TotalPages)
	})
}

func (suite *DietChartServiceTestSuite) TestUpdateStatus() {
	tests := []struct {
		name     string
		from     dietchart.Status
		to       dietchart.Status
		wantCode apperrors.ErrorCode
	}{
		{"DraftToActive", dietchart.StatusDraft, dietchart.StatusActive, ""},
		{"ActiveToCompleted", dietchart.StatusActive, dietchart.StatusCompleted, ""},
		{"DraftToCancelled", dietchart.StatusDraft, dietchart.StatusCancelled, ""},
		{"DraftToCompleted_ShouldConflict", dietchart.StatusDraft, dietchart.StatusCompleted, apperrors.CodeInvalidTransition},
		{"CompletedToActive_ShouldConflict", dietchart.StatusCompleted, dietchart.StatusActive, apperrors.CodeInvalidTransition},
		{"UnknownStatus_ShouldFailValidation", dietchart.StatusDraft, dietchart.Status("archived"), apperrors.CodeValidationFailed},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()

			// Arrange
			suite.now = suite.now.Add(time.Hour)
			suite.charts.On("FindByID", mock.Anything, "chart-1").Return(suite.storedChart(tt.from), nil).Once()
			if tt.wantCode == "" {
				suite.charts.On("UpdateStatus", mock.Anything, "chart-1", tt.to, suite.now).Return(nil).Once()
				suite.nutrition.On("CalculateChart", mock.Anything, mock.Anything).Return(&dietchart.Rollup{}, nil).Once()
			}

			// Act
			dto, err := suite.service.UpdateStatus(suite.ctx, "chart-1", tt.to)

			// Assert
			if tt.wantCode != "" {
				var appErr *apperrors.AppError
				require.ErrorAs(suite.T(), err, &appErr)
				assert.Equal(suite.T(), tt.wantCode, appErr.Code)
				suite.charts.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
				return
			}
			require.NoError(suite.T(), err)
			assert.Equal(suite.T(), tt.to, dto.Chart.Status)
			assert.Equal(suite.T(), suite.now, dto.Chart.UpdatedAt)
			suite.charts.AssertExpectations(suite.T())
		})
	}
}

func (suite *DietChartServiceTestSuite) TestDeleteChart() {
	suite.Run("ExistingChart_ShouldDelete", func() {
		suite.SetupTest()

		// Arrange
		suite.charts.On("Delete", mock.Anything, "chart-1").Return(nil).Once()

		// Act
		err := suite.service.DeleteChart(suite.ctx, "chart-1")

		// Assert
		assert.NoError(suite.T(), err)
	})

	suite.Run("MissingChart_ShouldReturnNotFound", func() {
		suite.SetupTest()

		// Arrange
		suite.charts.On("Delete", mock.Anything, "chart-1").Return(outbound.ErrNotFound).Once()

		// Act
		err := suite.service.DeleteChart(suite.ctx, "chart-1")

		// Assert
		var appErr *apperrors.AppError
		require.ErrorAs(suite.T(), err, &appErr)
		assert.Equal(suite.T(), apperrors.CodeDietChartNotFound, appErr.Code)
	})
}

func TestDietChartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DietChartServiceTestSuite))
}
