package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/cinebook/cinema-booking-system/api"
	"github.com/cinebook/cinema-booking-system/internal/domain"
	"github.com/cinebook/cinema-booking-system/internal/mocks"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SeatsTestSuite struct {
	suite.Suite
	app          *Application
	seatRepo     *mocks.MockSeatRepo
	showtimeRepo *mocks.MockShowtimeRepo
	bookingRepo  *mocks.MockBookingRepo
}

func (s *SeatsTestSuite) SetupTest() {
	s.seatRepo = new(mocks.MockSeatRepo)
	s.showtimeRepo = new(mocks.MockShowtimeRepo)
	s.bookingRepo = new(mocks.MockBookingRepo)

	s.app = newTestApplication(func(a *Application) {
		a.seatRepo = s.seatRepo
		a.showtimeRepo = s.showtimeRepo
		a.bookingRepo = s.bookingRepo
	})
}

func TestSeatsSuite(t *testing.T) {
	suite.Run(t, new(SeatsTestSuite))
}

func (s *SeatsTestSuite) TestGetShowtimeSeatMap() {
	showtime := &domain.Showtime{ID: 5, MovieID: 2, HallID: 3}
	seats := []domain.Seat{
		{ID: 11, HallID: 3, Label: "A1", Available: true},
		{ID: 12, HallID: 3, Label: "A2", Available: true},
		{ID: 13, HallID: 3, Label: "A3", Available: false},
	}

	tests := []struct {
		name           string
		showtimeID     string
		setupMocks     func()
		wantStatus     int
		wantResponse   *api.ShowtimeSeatMapResponse
		wantErrMessage string
	}{
		{
			name:       "should fail when showtime ID is invalid",
			showtimeID: "0",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "should fail when showtime does not exist",
			showtimeID: "999",
			setupMocks: func() {
				s.showtimeRepo.On("GetById", mock.Anything, 999).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "should fail when fetching the ledger fails",
			showtimeID: "5",
			setupMocks: func() {
				s.showtimeRepo.On("GetById", mock.Anything, 5).Return(showtime, nil)
				s.seatRepo.On("GetByHall", mock.Anything, 3).Return(seats, nil)
				s.bookingRepo.On("GetByShowtime", mock.Anything, 5).Return(nil, fmt.Errorf("database error"))
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name:       "should overlay the booking ledger on the hall's seats",
			showtimeID: "5",
			setupMocks: func() {
				s.showtimeRepo.On("GetById", mock.Anything, 5).Return(showtime, nil)
				s.seatRepo.On("GetByHall", mock.Anything, 3).Return(seats, nil)
				s.bookingRepo.On("GetByShowtime", mock.Anything, 5).Return([]domain.Booking{
					{ID: 1, UserID: 1, ShowtimeID: 5, SeatLabel: "A1"},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantResponse: &api.ShowtimeSeatMapResponse{
				ShowtimeId: 5,
				HallId:     3,
				Seats: []api.ShowtimeSeat{
					{Id: 11, Label: "A1", Available: false},
					{Id: 12, Label: "A2", Available: true},
					{Id: 13, Label: "A3", Available: false},
				},
			},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodGet, "/showtimes/"+tt.showtimeID+"/seats", nil)
			r = withChiParam(r, "id", tt.showtimeID)

			s.app.GetShowtimeSeatMap(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{tt.wantStatus, tt.wantErrMessage})

			if tt.wantResponse != nil {
				var resp api.ShowtimeSeatMapResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))

				if diff := cmp.Diff(*tt.wantResponse, resp); diff != "" {
					s.T().Errorf("response mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func (s *SeatsTestSuite) TestUpdateSeatAvailability() {
	tests := []struct {
		name           string
		seatID         string
		body           api.SeatAvailabilityRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should fail validation when available flag is missing",
			seatID:         "11",
			body:           api.SeatAvailabilityRequest{},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:   "should fail when seat does not exist",
			seatID: "999",
			body:   api.SeatAvailabilityRequest{Available: ptr(false)},
			setupMocks: func() {
				s.seatRepo.On("UpdateAvailability", mock.Anything, 999, false).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "should take the seat out of service",
			seatID: "11",
			body:   api.SeatAvailabilityRequest{Available: ptr(false)},
			setupMocks: func() {
				s.seatRepo.On("UpdateAvailability", mock.Anything, 11, false).
					Return(&domain.Seat{ID: 11, HallID: 3, Label: "A1", Available: false}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPatch, "/seats/"+tt.seatID+"/availability", tt.body)
			r = withChiParam(r, "id", tt.seatID)

			s.app.UpdateSeatAvailability(w, r)

			s.Equal(tt.wantStatus, w.Code)
			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{tt.wantStatus, tt.wantErrMessage})

			if tt.wantStatus == http.StatusOK {
				var resp api.SeatResponse
				s.NoError(json.NewDecoder(w.Body).Decode(&resp))

				s.Equal(11, resp.Id)
				s.False(resp.Available)
			}
		})
	}
}
