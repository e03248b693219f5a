package get_booking_conflicts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConflictService/internal/api/middleware"
	"github.com/m04kA/SMC-ConflictService/internal/conflicts"
	"github.com/m04kA/SMC-ConflictService/internal/usecase/detect_conflicts"
	"github.com/m04kA/SMC-ConflictService/pkg/logger"
)

type fakeUseCase struct {
	resp  *detect_conflicts.Response
	err   error
	calls int
}

func (f *fakeUseCase) ExecuteForBooking(_ context.Context, _ *detect_conflicts.BookingRequest) (*detect_conflicts.Response, error) {
	f.calls++
	return f.resp, f.err
}

func serve(uc UseCase, url string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/bookings/{bookingId}/conflicts", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("X-User-ID", "3")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_UnknownBookingReturnsEmptyList(t *testing.T) {
	empty := make([]conflicts.ConflictDetails, 0)
	uc := &fakeUseCase{resp: &detect_conflicts.Response{Conflicts: empty, Summary: conflicts.Summarize(empty)}}

	rec := serve(uc, "/api/v1/bookings/999999/conflicts")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, `[]`, string(body["conflicts"]))
	assert.JSONEq(t, `999999`, string(body["bookingId"]))
}

func TestHandle_InvalidID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-5"} {
		t.Run(id, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := serve(uc, "/api/v1/bookings/"+id+"/conflicts")

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, uc.calls)
		})
	}
}

func TestHandle_InternalError(t *testing.T) {
	uc := &fakeUseCase{err: errors.Join(detect_conflicts.ErrInternal, errors.New("db"))}

	rec := serve(uc, "/api/v1/bookings/1/conflicts")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
