package app

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/cinebook/cinema-booking-system/api"
	"github.com/cinebook/cinema-booking-system/internal/domain"
	"github.com/cinebook/cinema-booking-system/internal/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type HallsTestSuite struct {
	suite.Suite
	app      *Application
	hallRepo *mocks.MockHallRepo
	seatRepo *mocks.MockSeatRepo
}

func (s *HallsTestSuite) SetupTest() {
	s.hallRepo = new(mocks.MockHallRepo)
	s.seatRepo = new(mocks.MockSeatRepo)

	s.app = newTestApplication(func(a *Application) {
		a.hallRepo = s.hallRepo
		a.seatRepo = s.seatRepo
	})
}

func TestHallsSuite(t *testing.T) {
	suite.Run(t, new(HallsTestSuite))
}

func (s *HallsTestSuite) TestCreateHall() {
	tests := []struct {
		name           string
		body           api.HallRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should fail validation when seat count is zero",
			body:           api.HallRequest{Name: "IMAX"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:           "should fail validation when seat count exceeds the label scheme",
			body:           api.HallRequest{Name: "IMAX", TotalSeats: 500},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at most 260",
		},
		{
			name: "should create hall with valid input",
			body: api.HallRequest{Name: "IMAX", TotalSeats: 12},
			setupMocks: func() {
				s.hallRepo.On("Create", mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) {
						args.Get(1).(*domain.Hall).ID = 3
					}).
					Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/halls", tt.body)

			s.app.CreateHall(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{tt.wantStatus, tt.wantErrMessage})

			if tt.wantStatus == http.StatusCreated {
				var resp api.HallResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))

				s.Equal(3, resp.Id)
				s.Equal("IMAX", resp.Name)
				s.Equal(12, resp.TotalSeats)
			}
		})
	}
}

func (s *HallsTestSuite) TestGetSeatsByHall() {
	hall := &domain.Hall{ID: 3, Name: "IMAX", TotalSeats: 12}
	seats := []domain.Seat{
		{ID: 11, HallID: 3, Label: "A1", Available: true},
		{ID: 12, HallID: 3, Label: "A2", Available: false},
	}

	s.Run("should fail when hall does not exist", func() {
		s.SetupTest()

		s.hallRepo.On("GetById", mock.Anything, 999).Return(nil, domain.ErrRecordNotFound)

		w, r := executeRequest(s.T(), http.MethodGet, "/halls/999/seats", nil)
		r = withChiParam(r, "id", "999")

		s.app.GetSeatsByHall(w, r)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("should list the hall's seats", func() {
		s.SetupTest()

		s.hallRepo.On("GetById", mock.Anything, 3).Return(hall, nil)
		s.seatRepo.On("GetByHall", mock.Anything, 3).Return(seats, nil)

		w, r := executeRequest(s.T(), http.MethodGet, "/halls/3/seats", nil)
		r = withChiParam(r, "id", "3")

		s.app.GetSeatsByHall(w, r)

		s.Equal(http.StatusOK, w.Code)

		var resp []api.SeatResponse
		s.NoError(json.NewDecoder(w.Body).Decode(&resp))

		want := []api.SeatResponse{
			{Id: 11, HallId: 3, Label: "A1", Available: true},
			{Id: 12, HallId: 3, Label: "A2", Available: false},
		}

		if diff := cmp.Diff(want, resp); diff != "" {
			s.T().Errorf("response mismatch (-want +got):\n%s", diff)
		}
	})
}
