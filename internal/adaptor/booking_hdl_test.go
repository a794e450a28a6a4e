package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"fitbook/internal/dto/request"
	"fitbook/internal/dto/response"
	"fitbook/internal/usecase"
	"fitbook/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubBookingService returns canned results so the handler's HTTP
// mapping can be tested in isolation.
type stubBookingService struct {
	result *response.BookingResultResponse
	err    error
}

func (s *stubBookingService) AttemptBooking(ctx context.Context, accountID, classID uuid.UUID) (*response.BookingResultResponse, error) {
	return s.result, s.err
}

func (s *stubBookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	return s.err
}

func (s *stubBookingService) CompleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	return s.err
}

func (s *stubBookingService) GetAccountBookings(ctx context.Context, accountID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	return response.NewPaginatedResponse([]response.BookingResponse{}, req.Page, req.PerPage, 0), s.err
}

func postBooking(t *testing.T, handler *BookingHandler, withAuth bool) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(request.CreateBookingRequest{ClassID: uuid.New().String()})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	if withAuth {
		ctx := utils.SetAccountContext(req.Context(), uuid.New(), "member@example.com", "member")
		req = req.WithContext(ctx)
	}

	rec := httptest.NewRecorder()
	handler.CreateBooking(rec, req)
	return rec
}

func TestCreateBookingSuccess(t *testing.T) {
	svc := &stubBookingService{
		result: &response.BookingResultResponse{
			Booking:          response.BookingResponse{ID: uuid.New().String()},
			RemainingCredits: 3,
		},
	}
	handler := NewBookingHandler(svc, zap.NewNop())

	rec := postBooking(t, handler, true)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Status)
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	handler := NewBookingHandler(&stubBookingService{}, zap.NewNop())

	rec := postBooking(t, handler, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateBookingErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", usecase.ErrNotFound, http.StatusNotFound},
		{"insufficient credits", usecase.ErrInsufficientCredits, http.StatusBadRequest},
		{"class full", usecase.ErrClassFull, http.StatusConflict},
		{"account frozen", usecase.ErrAccountFrozen, http.StatusForbidden},
		{"internal", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewBookingHandler(&stubBookingService{err: fmt.Errorf("attempt booking: %w", tc.err)}, zap.NewNop())

			rec := postBooking(t, handler, true)
			assert.Equal(t, tc.code, rec.Code)

			var resp utils.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Status)
		})
	}
}

func TestCreateBookingRejectsBadBody(t *testing.T) {
	handler := NewBookingHandler(&stubBookingService{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader([]byte("{not json")))
	ctx := utils.SetAccountContext(req.Context(), uuid.New(), "member@example.com", "member")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	handler.CreateBooking(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateBookingRejectsInvalidClassID(t *testing.T) {
	handler := NewBookingHandler(&stubBookingService{}, zap.NewNop())

	body, err := json.Marshal(map[string]string{"class_id": "abc"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	ctx := utils.SetAccountContext(req.Context(), uuid.New(), "member@example.com", "member")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	handler.CreateBooking(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
