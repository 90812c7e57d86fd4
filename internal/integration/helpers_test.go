package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/cinebook/cinema-booking-system/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "requestId" || k == "createdAt" || k == "bookingTime" || k == "id"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func newRecorderFor(app *TestApp, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	return rec
}

// bearerToken forges a token signed with the suite's secret, sidestepping the
// login flow for tests that only need an authenticated identity.
func bearerToken(userId int, role domain.Role) string {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":  strconv.Itoa(userId),
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
		"jti":  uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	if err != nil {
		panic(err)
	}

	return "Bearer " + signed
}

func seedUser(t testing.TB, db *pgxpool.Pool, name string, role domain.Role) int {
	var user domain.User
	require.NoError(t, user.Password.Set("Sup3rSecret!"))

	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id`,
		name, name+"-"+uuid.NewString()+"@example.com", user.Password.Hash, string(role),
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func seedMovie(t testing.TB, db *pgxpool.Pool, title string) int {
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO movies (title, genre, duration_minutes, release_date) VALUES ($1, 'Drama', 120, $2) RETURNING id`,
		title, time.Now().AddDate(0, -1, 0),
	).Scan(&id)
	require.NoError(t, err)

	return id
}

// seedHall inserts a hall and its generated seats, mirroring what the hall
// registry does on create.
func seedHall(t testing.TB, db *pgxpool.Pool, name string, totalSeats int) int {
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO halls (name, total_seats) VALUES ($1, $2) RETURNING id`,
		name, totalSeats,
	).Scan(&id)
	require.NoError(t, err)

	for n := 1; n <= totalSeats; n++ {
		_, err := db.Exec(context.Background(),
			`INSERT INTO seats (hall_id, label, is_available) VALUES ($1, $2, TRUE)`,
			id, domain.SeatLabel(n),
		)
		require.NoError(t, err)
	}

	return id
}

func seedShowtime(t testing.TB, db *pgxpool.Pool, movieId, hallId int, startTime time.Time) int {
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO showtimes (movie_id, hall_id, start_time) VALUES ($1, $2, $3) RETURNING id`,
		movieId, hallId, startTime,
	).Scan(&id)
	require.NoError(t, err)

	return id
}

func countBookings(t testing.TB, db *pgxpool.Pool, showtimeId int, seatLabel string) int {
	var count int
	err := db.QueryRow(context.Background(),
		`SELECT count(*) FROM bookings WHERE showtime_id = $1 AND seat_label = $2`,
		showtimeId, seatLabel,
	).Scan(&count)
	require.NoError(t, err)

	return count
}
