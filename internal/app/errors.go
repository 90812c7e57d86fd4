package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/cinebook/cinema-booking-system/api"
	"github.com/cinebook/cinema-booking-system/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
)

const ErrInternalServer = "The server encountered a problem and could not process your request"

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code and stable error code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	resp := api.ErrorResponse{
		Code:      code,
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, api.CodeInternalError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, api.CodeNotFound, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, api.CodeInvalidInput, err.Error())
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	resp := api.ValidationErrorResponse{
		Code:             api.CodeValidationFailed,
		Message:          "One or more fields failed validation",
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: toValidationErrors(err),
	}

	writeErr := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if writeErr != nil {
		app.logError(r, writeErr)
		w.WriteHeader(500)
	}
}

func (app *Application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	message := "Invalid authentication credentials"
	app.errorResponse(w, r, http.StatusUnauthorized, api.CodeUnauthorized, message)
}

func (app *Application) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Bearer")

	message := "You must be authenticated to access this resource"
	app.errorResponse(w, r, http.StatusUnauthorized, api.CodeUnauthorized, message)
}

func (app *Application) notPermittedResponse(w http.ResponseWriter, r *http.Request) {
	message := "Your user account doesn't have the necessary permissions to access this resource"
	app.errorResponse(w, r, http.StatusForbidden, api.CodeForbidden, message)
}

func (app *Application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	message := "Rate limit exceeded"
	app.errorResponse(w, r, http.StatusTooManyRequests, api.CodeRateLimited, message)
}

// bookingErrorResponse maps the reservation engine's sentinel errors onto
// HTTP statuses and stable codes. Conflicts with the ledger are 409, missing
// references 404, anything unexpected 500.
func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrSeatAlreadyBooked):
		app.errorResponse(w, r, http.StatusConflict, api.CodeSeatAlreadyBooked, "Seat is already booked for this showtime")
	case errors.Is(err, domain.ErrSeatUnavailable):
		app.errorResponse(w, r, http.StatusConflict, api.CodeSeatUnavailable, "Seat is out of service")
	case errors.Is(err, domain.ErrSeatNotFound):
		app.errorResponse(w, r, http.StatusNotFound, api.CodeSeatNotFound, "Seat does not exist in the showtime's hall")
	case errors.Is(err, domain.ErrShowtimeNotFound):
		app.errorResponse(w, r, http.StatusNotFound, api.CodeShowtimeNotFound, "Showtime not found")
	case errors.Is(err, domain.ErrUserNotFound):
		app.errorResponse(w, r, http.StatusNotFound, api.CodeUserNotFound, "User not found")
	case errors.Is(err, domain.ErrBookingNotFound):
		app.errorResponse(w, r, http.StatusNotFound, api.CodeBookingNotFound, "Booking not found")
	default:
		app.serverErrorResponse(w, r, err)
	}
}
