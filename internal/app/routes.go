package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("cinema-booking-api", otelchi.WithChiRoutes(r)))
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)

	r.NotFound(app.notFoundResponse)

	r.Get("/health", app.Healthcheck)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.Register)
		r.Post("/login", app.Login)
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(app.requireAuthentication, app.requireAdmin)

		r.Get("/", app.GetUsers)
		r.Get("/{id}", app.GetUserById)
		r.Patch("/{id}/role", app.UpdateUserRole)
		r.Delete("/{id}", app.DeleteUser)
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.GetMovies)
		r.Get("/{id}", app.GetMovieById)
		r.Get("/{id}/showtimes", app.GetShowtimesByMovie)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication, app.requireAdmin)

			r.Post("/", app.CreateMovie)
			r.Put("/{id}", app.UpdateMovie)
			r.Delete("/{id}", app.DeleteMovie)
		})
	})

	r.Route("/halls", func(r chi.Router) {
		r.Get("/", app.GetHalls)
		r.Get("/{id}", app.GetHallById)
		r.Get("/{id}/seats", app.GetSeatsByHall)
		r.Get("/{id}/seats/available", app.GetAvailableSeatsByHall)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication, app.requireAdmin)

			r.Post("/", app.CreateHall)
			r.Put("/{id}", app.UpdateHall)
			r.Delete("/{id}", app.DeleteHall)
		})
	})

	r.Route("/showtimes", func(r chi.Router) {
		r.Get("/", app.GetUpcomingShowtimes)
		r.Get("/{id}", app.GetShowtimeById)
		r.Get("/{id}/seats", app.GetShowtimeSeatMap)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication, app.requireAdmin)

			r.Post("/", app.CreateShowtime)
			r.Put("/{id}", app.UpdateShowtime)
			r.Delete("/{id}", app.DeleteShowtime)
		})
	})

	r.With(app.requireAuthentication, app.requireAdmin).
		Patch("/seats/{id}/availability", app.UpdateSeatAvailability)

	r.Route("/bookings", func(r chi.Router) {
		r.Use(app.requireAuthentication)

		r.With(app.rateLimit).Post("/", app.CreateBooking)
		r.Get("/{id}", app.GetBookingById)
		r.Delete("/{id}", app.CancelBooking)
		r.Get("/user/{userId}", app.GetBookingsByUser)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAdmin)

			r.Get("/", app.GetAllBookings)
			r.Patch("/{id}", app.UpdateBooking)
		})
	})

	return r
}
