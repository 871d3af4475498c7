package repositories

import (
	"context"
	"errors"
	"testing"

	. "cleanhub/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestBookingRepository_Transition(t *testing.T) {
	bookingID := uuid.New()
	cleanerID := uuid.New()

	tests := []struct {
		name         string
		rowsAffected int64
		expected     bool
	}{
		{"guard matched", 1, true},
		{"guard lost to another request", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock := setupTestDB(t)
			repo := NewBookingRepository()

			mock.ExpectExec(`UPDATE "bookings" SET .* WHERE \(id = \$4 AND booking_status IN \(\$5\)\) AND cleaner_id = \$6`).
				WithArgs(
					sqlmock.AnyArg(),
					sqlmock.AnyArg(),
					sqlmock.AnyArg(),
					bookingID,
					BookingInProgress,
					cleanerID,
				).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			won, err := repo.Transition(context.Background(), gormDB, Transition{
				BookingID: bookingID,
				From:      []BookingStatus{BookingInProgress},
				CleanerID: &cleanerID,
				Updates: map[string]any{
					"booking_status": BookingCancelled,
					"cancel_reason":  "sick",
				},
			})

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, won)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookingRepository_Transition_DatabaseError(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewBookingRepository()

	mock.ExpectExec(`UPDATE "bookings"`).WillReturnError(errors.New("connection reset"))

	won, err := repo.Transition(context.Background(), gormDB, Transition{
		BookingID: uuid.New(),
		From:      []BookingStatus{BookingPending},
		Updates:   map[string]any{"booking_status": BookingInProgress},
	})

	assert.Error(t, err)
	assert.False(t, won)
}

func TestBookingRepository_AssignCleaner_LoserDoesNotLink(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewBookingRepository()

	mock.ExpectExec(`UPDATE "bookings" SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	won, err := repo.AssignCleaner(context.Background(), gormDB, uuid.New(), uuid.New())

	assert.NoError(t, err)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_AssignCleaner_OnlyActiveBookings(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewBookingRepository()
	bookingID := uuid.New()

	mock.ExpectExec(`UPDATE "bookings" SET .* WHERE \(id = \$4 AND booking_status IN \(\$5\)\) AND status = \$6`).
		WithArgs(
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			bookingID,
			BookingPending,
			StatusActive,
		).
		WillReturnResult(sqlmock.NewResult(0, 0))

	won, err := repo.AssignCleaner(context.Background(), gormDB, bookingID, uuid.New())

	assert.NoError(t, err)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_AssignCleaner_WinnerLinks(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewBookingRepository()

	mock.ExpectExec(`UPDATE "bookings" SET`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "cleaner_bookings"`).WillReturnResult(sqlmock.NewResult(0, 1))

	won, err := repo.AssignCleaner(context.Background(), gormDB, uuid.New(), uuid.New())

	assert.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ListPendingForServices_NoServices(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewBookingRepository()

	bookings, err := repo.ListPendingForServices(context.Background(), gormDB, nil)

	assert.NoError(t, err)
	assert.Empty(t, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConversationRepository_FindBetween_IsSymmetric(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	first, second := OrderedPair(a, b)

	for _, pair := range [][2]uuid.UUID{{a, b}, {b, a}} {
		gormDB, mock := setupTestDB(t)
		repo := NewConversationRepository()

		mock.ExpectQuery(`SELECT \* FROM "conversations" WHERE \(first_user_id = \$1 AND second_user_id = \$2\)`).
			WithArgs(first, second).
			WillReturnRows(sqlmock.NewRows([]string{"id", "first_user_id", "second_user_id"}))

		_, err := repo.FindBetween(context.Background(), gormDB, pair[0], pair[1])

		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	}
}

func TestConversationRepository_FindOrCreate_ReturnsExisting(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewConversationRepository()

	a := uuid.New()
	b := uuid.New()
	first, second := OrderedPair(a, b)
	existingID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "conversations"`).
		WithArgs(first, second).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_user_id", "second_user_id"}).
			AddRow(existingID.String(), first.String(), second.String()))

	conversation, err := repo.FindOrCreate(context.Background(), gormDB, b, a)

	require.NoError(t, err)
	assert.Equal(t, existingID, conversation.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkDelivered(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewMessageRepository()

	delivered := uuid.New()
	mock.ExpectQuery(`UPDATE "messages" SET .* RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(delivered.String()))

	ids, err := repo.MarkDelivered(context.Background(), gormDB, uuid.New(), []uuid.UUID{uuid.New()})

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{delivered}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkDelivered_NoSenders(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewMessageRepository()

	ids, err := repo.MarkDelivered(context.Background(), gormDB, uuid.New(), nil)

	assert.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepository_MarkRead_AlreadyReadIsNoop(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewMessageRepository()

	mock.ExpectQuery(`UPDATE "messages" SET .* RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`UPDATE "messages" SET .* RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ids, err := repo.MarkRead(context.Background(), gormDB, uuid.New(), uuid.New())

	assert.NoError(t, err)
	assert.Empty(t, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepository_Delete(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		expected     bool
	}{
		{"session removed", 1, true},
		{"no session", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock := setupTestDB(t)
			repo := NewSessionRepository()
			userID := uuid.New()

			mock.ExpectExec(`DELETE FROM "logged_in_users" WHERE user_id = \$1 AND role = \$2`).
				WithArgs(userID, RoleCleaner).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			removed, err := repo.Delete(context.Background(), gormDB, userID, RoleCleaner)

			assert.NoError(t, err)
			assert.Equal(t, tt.expected, removed)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNotificationRepository_CreateBatch_Empty(t *testing.T) {
	gormDB, mock := setupTestDB(t)
	repo := NewNotificationRepository()

	err := repo.CreateBatch(context.Background(), gormDB, nil)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
