package sessionController

import (
	"context"
	"fmt"
	"testing"

	"cleanhub/internal/mocks"
	. "cleanhub/internal/models"
	"cleanhub/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	controller *SessionController
	sessions   *mocks.MockSessionRepository
	notifier   *mocks.MockNotifier
}

func newFixture(t *testing.T) fixture {
	db, _ := mocks.NewTestDB(t)
	f := fixture{
		sessions: &mocks.MockSessionRepository{},
		notifier: &mocks.MockNotifier{},
	}
	f.controller = &SessionController{
		sessionRepo: f.sessions,
		notifier:    f.notifier,
		db:          db,
		log:         logger.New("sessionController"),
	}
	return f
}

func TestCreate_CleanerSubscribesToTopic(t *testing.T) {
	f := newFixture(t)
	user := types.AuthUser{ID: uuid.New(), Role: string(RoleCleaner)}

	f.sessions.On("Exists", mock.Anything, mock.Anything, user.ID, RoleCleaner).Return(false, nil)
	f.sessions.On("Create", mock.Anything, mock.Anything, mock.AnythingOfType("*models.LoggedInUser")).Return(nil)
	f.notifier.On("SubscribeCleaner", mock.Anything, "device-token").Return()

	session, err := f.controller.Create(context.Background(), user, &CreateSessionRequest{
		UserID:   &user.ID,
		FCMToken: " device-token ",
		Role:     RoleCleaner,
	})

	require.NoError(t, err)
	assert.Equal(t, "device-token", session.FCMToken)
	f.notifier.AssertExpectations(t)
}

func TestCreate_HomeOwnerIsNotSubscribed(t *testing.T) {
	f := newFixture(t)
	user := types.AuthUser{ID: uuid.New(), Role: string(RoleHomeOwner)}

	f.sessions.On("Exists", mock.Anything, mock.Anything, user.ID, RoleHomeOwner).Return(false, nil)
	f.sessions.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.controller.Create(context.Background(), user, &CreateSessionRequest{
		UserID:   &user.ID,
		FCMToken: "token",
		Role:     RoleHomeOwner,
	})

	require.NoError(t, err)
	f.notifier.AssertNotCalled(t, "SubscribeCleaner", mock.Anything, mock.Anything)
}

func TestCreate_AlreadyLoggedIn(t *testing.T) {
	user := types.AuthUser{ID: uuid.New(), Role: string(RoleCleaner)}
	request := &CreateSessionRequest{UserID: &user.ID, FCMToken: "token", Role: RoleCleaner}

	t.Run("existing row", func(t *testing.T) {
		f := newFixture(t)
		f.sessions.On("Exists", mock.Anything, mock.Anything, user.ID, RoleCleaner).Return(true, nil)

		_, err := f.controller.Create(context.Background(), user, request)

		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, "User already logged in, on another device", types.ErrorMessage(err))
	})

	t.Run("unique violation", func(t *testing.T) {
		f := newFixture(t)
		f.sessions.On("Exists", mock.Anything, mock.Anything, user.ID, RoleCleaner).Return(false, nil)
		f.sessions.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey))

		_, err := f.controller.Create(context.Background(), user, request)

		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, "User already logged in, on another device", types.ErrorMessage(err))
	})
}

func TestCreate_Validation(t *testing.T) {
	user := types.AuthUser{ID: uuid.New(), Role: string(RoleCleaner)}
	other := uuid.New()

	tests := []struct {
		name     string
		request  *CreateSessionRequest
		sentinel error
		message  string
	}{
		{"missing user", &CreateSessionRequest{FCMToken: "t", Role: RoleCleaner}, types.ErrValidation, "userId is required"},
		{"missing token", &CreateSessionRequest{UserID: &user.ID, Role: RoleCleaner}, types.ErrValidation, "fcmToken is required"},
		{"missing role", &CreateSessionRequest{UserID: &user.ID, FCMToken: "t"}, types.ErrValidation, "role is required"},
		{"bad role", &CreateSessionRequest{UserID: &user.ID, FCMToken: "t", Role: "Gardener"}, types.ErrValidation, "Invalid role."},
		{"other user", &CreateSessionRequest{UserID: &other, FCMToken: "t", Role: RoleCleaner}, types.ErrForbidden, "Cannot register a device for another user."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.controller.Create(context.Background(), user, tt.request)

			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.message, types.ErrorMessage(err))
		})
	}
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	user := types.AuthUser{ID: uuid.New(), Role: string(RoleHomeOwner)}
	admin := types.AuthUser{ID: uuid.New(), Role: string(RoleAdmin)}

	f.sessions.On("Delete", mock.Anything, mock.Anything, user.ID, RoleHomeOwner).Return(true, nil).Once()
	f.sessions.On("Delete", mock.Anything, mock.Anything, user.ID, RoleHomeOwner).Return(false, nil).Once()

	assert.NoError(t, f.controller.Logout(context.Background(), user, &LogoutRequest{UserID: &user.ID, Role: RoleHomeOwner}))

	err := f.controller.Logout(context.Background(), admin, &LogoutRequest{UserID: &user.ID, Role: RoleHomeOwner})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, "Session not found.", types.ErrorMessage(err))

	stranger := types.AuthUser{ID: uuid.New(), Role: string(RoleCleaner)}
	err = f.controller.Logout(context.Background(), stranger, &LogoutRequest{UserID: &user.ID, Role: RoleHomeOwner})
	assert.ErrorIs(t, err, types.ErrForbidden)
}
