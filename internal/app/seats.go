package app

import (
	"errors"
	"net/http"

	"github.com/cinebook/cinema-booking-system/api"
	"github.com/cinebook/cinema-booking-system/internal/domain"
)

func toSeatResponses(seats []domain.Seat) []api.SeatResponse {
	resp := make([]api.SeatResponse, 0, len(seats))
	for _, seat := range seats {
		resp = append(resp, api.SeatResponse{
			Id:        seat.ID,
			HallId:    seat.HallID,
			Label:     seat.Label,
			Available: seat.Available,
		})
	}

	return resp
}

func (app *Application) GetSeatsByHall(w http.ResponseWriter, r *http.Request) {
	hallId, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if _, err := app.hallRepo.GetById(r.Context(), hallId); err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seats, err := app.seatRepo.GetByHall(r.Context(), hallId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSeatResponses(seats), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetAvailableSeatsByHall(w http.ResponseWriter, r *http.Request) {
	hallId, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if _, err := app.hallRepo.GetById(r.Context(), hallId); err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seats, err := app.seatRepo.GetAvailableByHall(r.Context(), hallId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toSeatResponses(seats), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// GetShowtimeSeatMap reports availability for one showtime: the hall's seats
// with the booking ledger overlaid. A seat is available when it is in
// service and no live booking holds it for this showtime.
func (app *Application) GetShowtimeSeatMap(w http.ResponseWriter, r *http.Request) {
	showtimeId, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetById(r.Context(), showtimeId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	seats, err := app.seatRepo.GetByHall(r.Context(), showtime.HallID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	bookings, err := app.bookingRepo.GetByShowtime(r.Context(), showtimeId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	bookedLabels := make(map[string]bool, len(bookings))
	for _, booking := range bookings {
		bookedLabels[booking.SeatLabel] = true
	}

	resp := api.ShowtimeSeatMapResponse{
		ShowtimeId: showtime.ID,
		HallId:     showtime.HallID,
		Seats:      make([]api.ShowtimeSeat, 0, len(seats)),
	}

	for _, seat := range seats {
		resp.Seats = append(resp.Seats, api.ShowtimeSeat{
			Id:        seat.ID,
			Label:     seat.Label,
			Available: seat.Available && !bookedLabels[seat.Label],
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UpdateSeatAvailability flips the operational flag used to take a seat out
// of service. It never touches the booking ledger.
func (app *Application) UpdateSeatAvailability(w http.ResponseWriter, r *http.Request) {
	seatId, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.SeatAvailabilityRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	seat, err := app.seatRepo.UpdateAvailability(r.Context(), seatId, *input.Available)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.SeatResponse{
		Id:        seat.ID,
		HallId:    seat.HallID,
		Label:     seat.Label,
		Available: seat.Available,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
