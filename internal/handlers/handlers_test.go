package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"cleanhub/config"
	"cleanhub/internal/app"
	"cleanhub/internal/controllers"
	bookingController "cleanhub/internal/controllers/booking"
	enumsController "cleanhub/internal/controllers/enums"
	messageController "cleanhub/internal/controllers/message"
	propertyController "cleanhub/internal/controllers/property"
	"cleanhub/internal/handlers/middleware"
	. "cleanhub/internal/models"
	"cleanhub/internal/types"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubTokens map[string]types.AuthUser

func (s stubTokens) ValidateAccessToken(token string) (types.AuthUser, error) {
	if user, ok := s[token]; ok {
		return user, nil
	}
	return types.AuthUser{}, fmt.Errorf("%w: %s", types.ErrUnauthorized, "Invalid token.")
}

var (
	ownerUser   = types.AuthUser{ID: uuid.New(), Role: string(RoleHomeOwner)}
	cleanerUser = types.AuthUser{ID: uuid.New(), Role: string(RoleCleaner)}
	adminUser   = types.AuthUser{ID: uuid.New(), Role: string(RoleAdmin)}
)

type mockBookingController struct {
	mock.Mock
}

func (m *mockBookingController) CreateBooking(ctx context.Context, user types.AuthUser, request *bookingController.CreateBookingRequest) (*Booking, error) {
	args := m.Called(ctx, user, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *mockBookingController) ListOwnerBookings(ctx context.Context, user types.AuthUser) ([]Booking, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *mockBookingController) NearbyBookings(ctx context.Context, user types.AuthUser) ([]NearbyBooking, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]NearbyBooking), args.Error(1)
}

func (m *mockBookingController) CleanerBookings(ctx context.Context, user types.AuthUser) ([]Booking, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *mockBookingController) CleanerAction(ctx context.Context, user types.AuthUser, request *bookingController.ActionRequest) (*bookingController.ActionResult, error) {
	args := m.Called(ctx, user, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingController.ActionResult), args.Error(1)
}

func (m *mockBookingController) HomeOwnerAction(ctx context.Context, user types.AuthUser, request *bookingController.ActionRequest) (*bookingController.ActionResult, error) {
	args := m.Called(ctx, user, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*bookingController.ActionResult), args.Error(1)
}

func (m *mockBookingController) ListCleaningTypes(ctx context.Context) ([]CleaningType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CleaningType), args.Error(1)
}

func (m *mockBookingController) CreateCleaningType(ctx context.Context, request *bookingController.CleaningTypeRequest) (*CleaningType, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CleaningType), args.Error(1)
}

type mockMessageController struct {
	mock.Mock
}

func (m *mockMessageController) Send(ctx context.Context, user types.AuthUser, request *messageController.SendRequest) (*Message, error) {
	args := m.Called(ctx, user, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Message), args.Error(1)
}

func (m *mockMessageController) Conversation(ctx context.Context, user types.AuthUser, otherID uuid.UUID, query messageController.ConversationQuery) ([]Message, error) {
	args := m.Called(ctx, user, otherID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Message), args.Error(1)
}

func (m *mockMessageController) MarkDelivered(ctx context.Context, user types.AuthUser, request *messageController.MarkDeliveredRequest) (*messageController.UpdateResult, error) {
	args := m.Called(ctx, user, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messageController.UpdateResult), args.Error(1)
}

func (m *mockMessageController) MarkRead(ctx context.Context, user types.AuthUser, request *messageController.MarkReadRequest) (*messageController.UpdateResult, error) {
	args := m.Called(ctx, user, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*messageController.UpdateResult), args.Error(1)
}

func (m *mockMessageController) ListConversations(ctx context.Context, user types.AuthUser) ([]ConversationSummary, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ConversationSummary), args.Error(1)
}

type mockPropertyController struct {
	mock.Mock
}

func (m *mockPropertyController) List(ctx context.Context, user types.AuthUser) ([]Property, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Property), args.Error(1)
}

func (m *mockPropertyController) UploadImages(ctx context.Context, user types.AuthUser, propertyID uuid.UUID, images [][]byte) (*Property, error) {
	args := m.Called(ctx, user, propertyID, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Property), args.Error(1)
}

var (
	_ bookingController.BookingControllerInterface   = (*mockBookingController)(nil)
	_ messageController.MessageControllerInterface   = (*mockMessageController)(nil)
	_ propertyController.PropertyControllerInterface = (*mockPropertyController)(nil)
)

type testServer struct {
	fiber    *fiber.App
	bookings *mockBookingController
	messages *mockMessageController
	property *mockPropertyController
}

func newTestServer(t *testing.T) *testServer {
	s := &testServer{
		fiber:    fiber.New(),
		bookings: &mockBookingController{},
		messages: &mockMessageController{},
		property: &mockPropertyController{},
	}

	a := app.App{
		Middleware: middleware.New(stubTokens{
			"owner-token":   ownerUser,
			"cleaner-token": cleanerUser,
			"admin-token":   adminUser,
		}, config.Config{}),
		Controllers: controllers.Controllers{
			Booking:  s.bookings,
			Message:  s.messages,
			Property: s.property,
			Enums:    enumsController.New(),
		},
	}

	api := s.fiber.Group("/api")
	HealthHandler(api, config.Config{GeneralVersion: "test"})
	NewBookingHandler(a, api).Register()
	NewMessageHandler(a, api).Register()
	NewPropertyHandler(a, api).Register()
	NewEnumsHandler(a, api).Register()

	t.Cleanup(func() {
		s.bookings.AssertExpectations(t)
		s.messages.AssertExpectations(t)
		s.property.AssertExpectations(t)
	})

	return s
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := s.fiber.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	defer resp.Body.Close()
	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return payload
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad", types.ErrValidation), fiber.StatusBadRequest},
		{fmt.Errorf("%w: who", types.ErrUnauthorized), fiber.StatusUnauthorized},
		{fmt.Errorf("%w: no", types.ErrForbidden), fiber.StatusForbidden},
		{fmt.Errorf("%w: gone", types.ErrNotFound), fiber.StatusNotFound},
		{fmt.Errorf("%w: race", types.ErrConflict), fiber.StatusConflict},
		{fmt.Errorf("%w: smtp", types.ErrUpstream), fiber.StatusBadGateway},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestBookingRoutes_RoleGuards(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no token", http.MethodGet, "/api/booking", "", fiber.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/booking", "nope", fiber.StatusUnauthorized},
		{"cleaner cannot create", http.MethodPost, "/api/booking/create", "cleaner-token", fiber.StatusForbidden},
		{"owner cannot browse nearby", http.MethodGet, "/api/booking/nearby", "owner-token", fiber.StatusForbidden},
		{"owner cannot act as cleaner", http.MethodPost, "/api/booking/action", "owner-token", fiber.StatusForbidden},
		{"cleaner cannot act as owner", http.MethodPost, "/api/booking/homeowner-action", "cleaner-token", fiber.StatusForbidden},
		{"only admin adds cleaning types", http.MethodPost, "/api/booking/cleaning-types", "owner-token", fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := s.do(t, tt.method, tt.path, tt.token, map[string]any{})
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestCreateBooking(t *testing.T) {
	s := newTestServer(t)

	booking := &Booking{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}, CleaningType: ServiceType("DEEP_CLEANING")}
	s.bookings.On("CreateBooking", mock.Anything, ownerUser, mock.MatchedBy(func(r *bookingController.CreateBookingRequest) bool {
		return r.CleaningTime == "2026-03-10T09:00:00Z"
	})).Return(booking, nil)

	resp := s.do(t, http.MethodPost, "/api/booking/create", "owner-token", map[string]any{
		"cleaningType": "DEEP_CLEANING",
		"cleaningTime": "2026-03-10T09:00:00Z",
	})

	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	created := body["booking"].(map[string]any)
	assert.Equal(t, booking.ID.String(), created["id"])
}

func TestCleanerAction_MapsErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"missing checklist", fmt.Errorf("%w: %s", types.ErrValidation, "Completion requires a checklist."), fiber.StatusBadRequest, "Completion requires a checklist."},
		{"lost race", fmt.Errorf("%w: %s", types.ErrConflict, "Booking was updated by someone else."), fiber.StatusConflict, "Booking was updated by someone else."},
		{"missing booking", fmt.Errorf("%w: %s", types.ErrNotFound, "Booking not found."), fiber.StatusNotFound, "Booking not found."},
		{"unexpected", errors.New("connection reset"), fiber.StatusInternalServerError, "connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			s.bookings.On("CleanerAction", mock.Anything, cleanerUser, mock.Anything).Return(nil, tt.err)

			resp := s.do(t, http.MethodPost, "/api/booking/action", "cleaner-token", map[string]any{
				"bookingId": uuid.New().String(),
				"action":    "COMPLETE",
			})

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.message, decodeBody(t, resp)["error"])
		})
	}
}

func TestNearbyBookings(t *testing.T) {
	s := newTestServer(t)

	s.bookings.On("NearbyBookings", mock.Anything, cleanerUser).Return([]NearbyBooking{
		{Booking: Booking{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}}, Distance: 1200},
	}, nil)

	resp := s.do(t, http.MethodGet, "/api/booking/nearby", "cleaner-token", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	bookings := decodeBody(t, resp)["bookings"].([]any)
	require.Len(t, bookings, 1)
	assert.Equal(t, float64(1200), bookings[0].(map[string]any)["distance"])
}

func TestConversation_InvalidUserID(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/messages/not-a-uuid", "owner-token", nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid user id.", decodeBody(t, resp)["error"])
}

func TestConversation_PassesPaging(t *testing.T) {
	s := newTestServer(t)

	otherID := uuid.New()
	s.messages.On("Conversation", mock.Anything, ownerUser, otherID, messageController.ConversationQuery{
		Limit:           20,
		LastMessageTime: "2026-03-10T09:00:00Z",
	}).Return([]Message{}, nil)

	resp := s.do(t, http.MethodGet,
		"/api/messages/"+otherID.String()+"?limit=20&lastMessageTime=2026-03-10T09:00:00Z",
		"owner-token", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSendMessage(t *testing.T) {
	s := newTestServer(t)

	recipient := uuid.New()
	s.messages.On("Send", mock.Anything, cleanerUser, mock.MatchedBy(func(r *messageController.SendRequest) bool {
		return r.RecipientID != nil && *r.RecipientID == recipient && r.Message == "On my way"
	})).Return(&Message{BaseUUIDModel: BaseUUIDModel{ID: uuid.New()}, Status: MessageSent}, nil)

	resp := s.do(t, http.MethodPost, "/api/messages", "cleaner-token", map[string]any{
		"recipientId": recipient.String(),
		"message":     "On my way",
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestMarkDelivered_NothingToUpdate(t *testing.T) {
	s := newTestServer(t)

	s.messages.On("MarkDelivered", mock.Anything, ownerUser, mock.Anything).
		Return(&messageController.UpdateResult{Message: "No messages to update.", Updated: []uuid.UUID{}}, nil)

	resp := s.do(t, http.MethodPost, "/api/messages/delivered", "owner-token", map[string]any{
		"senderIds": []string{},
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "No messages to update.", body["message"])
	assert.Empty(t, body["updated"])
}

func TestUploadImages_RejectsBadDataURL(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodPost, "/api/property/"+uuid.New().String()+"/images", "owner-token", map[string]any{
		"images": []string{"data:image/png;base64,@@@"},
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid image data.", decodeBody(t, resp)["error"])
	s.property.AssertNotCalled(t, "UploadImages", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadImages_DecodesDataURLs(t *testing.T) {
	s := newTestServer(t)

	propertyID := uuid.New()
	s.property.On("UploadImages", mock.Anything, ownerUser, propertyID, [][]byte{[]byte("png-bytes")}).
		Return(&Property{BaseUUIDModel: BaseUUIDModel{ID: propertyID}}, nil)

	resp := s.do(t, http.MethodPost, "/api/property/"+propertyID.String()+"/images", "owner-token", map[string]any{
		"images": []string{"data:image/png;base64,cG5nLWJ5dGVz"},
	})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestEnums(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/enum/enums?enumType=nope", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, `Enum type "nope" not found.`, decodeBody(t, resp)["error"])

	resp = s.do(t, http.MethodGet, "/api/enum/enums", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
