package app

import (
	"errors"
	"net/http"

	"github.com/cinebook/cinema-booking-system/api"
	"github.com/cinebook/cinema-booking-system/internal/domain"
)

func toBookingResponse(booking *domain.Booking) api.BookingResponse {
	return api.BookingResponse{
		Id:          booking.ID,
		UserId:      booking.UserID,
		ShowtimeId:  booking.ShowtimeID,
		SeatLabel:   booking.SeatLabel,
		Price:       booking.Price,
		BookingTime: booking.BookingTime,
	}
}

func toBookingResponses(bookings []domain.Booking) []api.BookingResponse {
	resp := make([]api.BookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}

	return resp
}

// CreateBooking reserves a seat for a showtime. Regular users may only book
// for themselves; admins may book on behalf of any user.
func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var input api.CreateBookingRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	if input.UserId != app.contextGetUserId(r) && app.contextGetRole(r) != string(domain.RoleAdmin) {
		app.notPermittedResponse(w, r)
		return
	}

	booking, err := app.engine.Reserve(r.Context(), input.UserId, input.ShowtimeId, input.SeatLabel, input.Price)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// CancelBooking frees the seat for its showtime by deleting the ledger
// entry. Users may only cancel their own bookings.
func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.engine.ByID(r.Context(), id)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	if booking.UserID != app.contextGetUserId(r) && app.contextGetRole(r) != string(domain.RoleAdmin) {
		app.notPermittedResponse(w, r)
		return
	}

	err = app.engine.Cancel(r.Context(), id)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) GetBookingById(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	booking, err := app.engine.ByID(r.Context(), id)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	if booking.UserID != app.contextGetUserId(r) && app.contextGetRole(r) != string(domain.RoleAdmin) {
		app.notPermittedResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetBookingsByUser(w http.ResponseWriter, r *http.Request) {
	userId, err := app.readIDParam(r, "userId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if userId != app.contextGetUserId(r) && app.contextGetRole(r) != string(domain.RoleAdmin) {
		app.notPermittedResponse(w, r)
		return
	}

	bookings, err := app.engine.ByUser(r.Context(), userId)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponses(bookings), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := app.bookingRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponses(bookings), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// UpdateBooking lets admins correct a booking's seat or price. A seat change
// must still respect the one-booking-per-seat rule, which the ledger's
// unique constraint enforces.
func (app *Application) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateBookingRequest

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

	booking, err := app.engine.ByID(r.Context(), id)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	if input.SeatLabel != nil {
		booking.SeatLabel = *input.SeatLabel
	}
	if input.Price != nil {
		booking.Price = *input.Price
	}

	err = app.bookingRepo.Update(r.Context(), booking)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.bookingErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
