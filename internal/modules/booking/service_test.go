package booking

import (
	"context"
	"testing"
	"time"

	"salonbook/internal/domain"
	"salonbook/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) InsertIfFree(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil && b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) IsSlotFree(ctx context.Context, stylistID int64, date, timeOfDay string) (bool, error) {
	args := m.Called(ctx, stylistID, date, timeOfDay)
	return args.Bool(0), args.Error(1)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetByReference(ctx context.Context, reference string) (*domain.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindForStylist(ctx context.Context, stylistID int64, date string) ([]domain.Booking, error) {
	args := m.Called(ctx, stylistID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type MockStylistDirectory struct {
	mock.Mock
}

func (m *MockStylistDirectory) GetByID(ctx context.Context, id int64) (*domain.Stylist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stylist), args.Error(1)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) BookingCreated(b *domain.Booking)   { m.Called(b) }
func (m *MockSender) BookingCancelled(b *domain.Booking) { m.Called(b) }

func testStylist() *domain.Stylist {
	return &domain.Stylist{
		ID:   1,
		Name: "Aruzhan",
		Services: []domain.Service{
			{Name: "Haircut", Price: 45, DurationMinutes: 60},
			{Name: "Coloring", Price: 120, DurationMinutes: 120},
		},
		Availability: domain.Availability{
			Days:  []string{"Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
			Hours: domain.HourRange{Start: "11:00", End: "23:00"},
		},
		IsActive: true,
	}
}

// nextDate returns the next strictly-future date falling on the given
// weekday, formatted for the API.
func nextDate(weekday time.Weekday) string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() != weekday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		StylistID:     1,
		Date:          nextDate(time.Wednesday),
		Time:          "14:00",
		CustomerName:  "Dana",
		CustomerPhone: "+7 701 123 4567",
		Service:       "Haircut",
	}
}

func TestService_Create_Success(t *testing.T) {
	bookings := new(MockBookingRepository)
	stylists := new(MockStylistDirectory)
	notifs := new(MockSender)
	svc := NewService(bookings, stylists, notifs)

	stylists.On("GetByID", mock.Anything, int64(1)).Return(testStylist(), nil)
	bookings.On("IsSlotFree", mock.Anything, int64(1), mock.Anything, "14:00").Return(true, nil)
	bookings.On("InsertIfFree", mock.Anything, mock.Anything).Return(nil)
	notifs.On("BookingCreated", mock.Anything).Return()

	customerID := int64(7)
	req := validRequest()
	req.CustomerID = &customerID

	b, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, int64(999), b.ID)
	require.NotNil(t, b.CustomerID)
	assert.Equal(t, customerID, *b.CustomerID)
	bookings.AssertExpectations(t)
	notifs.AssertExpectations(t)
}

func TestService_Create_GuestSucceeds(t *testing.T) {
	bookings := new(MockBookingRepository)
	stylists := new(MockStylistDirectory)
	svc := NewService(bookings, stylists, nil)

	stylists.On("GetByID", mock.Anything, int64(1)).Return(testStylist(), nil)
	bookings.On("IsSlotFree", mock.Anything, int64(1), mock.Anything, "14:00").Return(true, nil)
	bookings.On("InsertIfFree", mock.Anything, mock.Anything).Return(nil)

	b, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Nil(t, b.CustomerID)
	assert.True(t, b.IsGuest())
}

func TestService_Create_ClosedDay(t *testing.T) {
	bookings := new(MockBookingRepository)
	stylists := new(MockStylistDirectory)
	svc := NewService(bookings, stylists, nil)

	stylists.On("GetByID", mock.Anything, int64(1)).Return(testStylist(), nil)

	req := validRequest()
	req.Date = nextDate(time.Monday)

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	bookings.AssertNotCalled(t, "InsertIfFree", mock.Anything, mock.Anything)
}

func TestService_Create_TimeOffTheGrid(t *testing.T) {
	bookings := new(MockBookingRepository)
	stylists := new(MockStylistDirectory)
	svc := NewService(bookings, stylists, nil)

	stylists.On("GetByID", mock.Anything, int64(1)).Return(testStylist(), nil)

	req := validRequest()
	req.Time = "14:30"

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestService_Create_PastDate(t *testing.T) {
	svc := NewService(new(MockBookingRepository), new(MockStylistDirectory), nil)

	req := validRequest()
	req.Date = time.Now().AddDate(0, 0, -1).Format("2006-01-02")

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestService_Create_Validation(t *testing.T) {
	stylists := new(MockStylistDirectory)
	stylists.On("GetByID", mock.Anything, int64(1)).Return(testStylist(), nil)
	svc := NewService(new(MockBookingRepository), stylists, nil)

	tests := []struct {
		name   string
		mutate func(*CreateBookingRequest)
	}{
		{"unknown service", func(r *CreateBookingRequest) { r.Service = "Beard trim" }},
		{"bad phone", func(r *CreateBookingRequest) { r.CustomerPhone = "call me" }},
		{"short name", func(r *CreateBookingRequest) { r.CustomerName = "D" }},
		{"malformed date", func(r *CreateBookingRequest) { r.Date = "someday" }},
		{"malformed time", func(r *CreateBookingRequest) { r.Time = "2pm" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestService_Create_SlotTakenAtCommit(t *testing.T) {
	bookings := new(MockBookingRepository)
	stylists := new(MockStylistDirectory)
	svc := NewService(bookings, stylists, nil)

	stylists.On("GetByID", mock.Anything, int64(1)).Return(testStylist(), nil)
	bookings.On("IsSlotFree", mock.Anything, int64(1), mock.Anything, "14:00").Return(true, nil)
	bookings.On("InsertIfFree", mock.Anything, mock.Anything).Return(repository.ErrDuplicateSlot)

	_, err := svc.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestService_Create_SlotAlreadyTaken(t *testing.T) {
	bookings := new(MockBookingRepository)
	stylists := new(MockStylistDirectory)
	svc := NewService(bookings, stylists, nil)

	stylists.On("GetByID", mock.Anything, int64(1)).Return(testStylist(), nil)
	bookings.On("IsSlotFree", mock.Anything, int64(1), mock.Anything, "14:00").Return(false, nil)

	_, err := svc.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	bookings.AssertNotCalled(t, "InsertIfFree", mock.Anything, mock.Anything)
}

func TestService_Create_StylistNotFound(t *testing.T) {
	bookings := new(MockBookingRepository)
	stylists := new(MockStylistDirectory)
	svc := NewService(bookings, stylists, nil)

	stylists.On("GetByID", mock.Anything, int64(1)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_AvailableSlots(t *testing.T) {
	bookings := new(MockBookingRepository)
	stylists := new(MockStylistDirectory)
	svc := NewService(bookings, stylists, nil)

	date := nextDate(time.Wednesday)
	stylists.On("GetByID", mock.Anything, int64(1)).Return(testStylist(), nil)
	bookings.On("FindForStylist", mock.Anything, int64(1), date).Return([]domain.Booking{
		{StylistID: 1, Date: date, Time: "14:00", Status: domain.BookingConfirmed},
		{StylistID: 1, Date: date, Time: "15:00", Status: domain.BookingCancelled},
	}, nil)

	slots, err := svc.AvailableSlots(context.Background(), 1, date)
	require.NoError(t, err)

	assert.Len(t, slots, 12)
	assert.NotContains(t, slots, "14:00")
	assert.Contains(t, slots, "15:00", "a cancelled booking frees its slot")
}

func TestService_AvailableSlots_InactiveStylist(t *testing.T) {
	bookings := new(MockBookingRepository)
	stylists := new(MockStylistDirectory)
	svc := NewService(bookings, stylists, nil)

	retired := testStylist()
	retired.IsActive = false
	stylists.On("GetByID", mock.Anything, int64(1)).Return(retired, nil)

	_, err := svc.AvailableSlots(context.Background(), 1, nextDate(time.Wednesday))
	assert.ErrorIs(t, err, ErrNotFound)
	bookings.AssertNotCalled(t, "FindForStylist", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_AvailableSlots_ClosedDayIsEmpty(t *testing.T) {
	bookings := new(MockBookingRepository)
	stylists := new(MockStylistDirectory)
	svc := NewService(bookings, stylists, nil)

	stylists.On("GetByID", mock.Anything, int64(1)).Return(testStylist(), nil)

	slots, err := svc.AvailableSlots(context.Background(), 1, nextDate(time.Monday))
	require.NoError(t, err)
	assert.Empty(t, slots)
	bookings.AssertNotCalled(t, "FindForStylist", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		wantErr error
	}{
		{"confirmed to completed", domain.BookingConfirmed, "completed", nil},
		{"confirmed to cancelled", domain.BookingConfirmed, "cancelled", nil},
		{"pending to completed", domain.BookingPending, "completed", nil},
		{"cancelled is terminal", domain.BookingCancelled, "confirmed", ErrInvalidTransition},
		{"completed is terminal", domain.BookingCompleted, "cancelled", ErrInvalidTransition},
		{"no resurrection", domain.BookingCancelled, "completed", ErrInvalidTransition},
		{"unknown status", domain.BookingConfirmed, "done", ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := new(MockBookingRepository)
			svc := NewService(bookings, new(MockStylistDirectory), nil)

			current := &domain.Booking{ID: 5, StylistID: 1, Status: tt.from}
			bookings.On("GetByID", mock.Anything, int64(5)).Return(current, nil)
			bookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingStatus(tt.to)).Return(nil)

			_, err := svc.UpdateStatus(context.Background(), 5, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_UpdateStatus_LosesRaceToTerminalWrite(t *testing.T) {
	bookings := new(MockBookingRepository)
	svc := NewService(bookings, new(MockStylistDirectory), nil)

	// The read sees an open booking, but another writer cancels it before the
	// conditional update commits.
	current := &domain.Booking{ID: 5, StylistID: 1, Status: domain.BookingConfirmed}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(current, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingCompleted).
		Return(repository.ErrStaleStatus)

	_, err := svc.UpdateStatus(context.Background(), 5, "completed")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Cancel_Authorization(t *testing.T) {
	owner := int64(7)

	tests := []struct {
		name        string
		customerID  *int64
		requesterID int64
		role        string
		wantErr     error
	}{
		{"own booking", &owner, 7, "customer", nil},
		{"someone else's booking", &owner, 8, "customer", ErrForbidden},
		{"admin on any booking", &owner, 1, "admin", nil},
		{"admin on guest booking", nil, 1, "admin", nil},
		{"customer on guest booking", nil, 7, "customer", ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := new(MockBookingRepository)
			svc := NewService(bookings, new(MockStylistDirectory), nil)

			b := &domain.Booking{ID: 5, StylistID: 1, CustomerID: tt.customerID, Status: domain.BookingConfirmed}
			bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)
			bookings.On("UpdateStatus", mock.Anything, int64(5), domain.BookingCancelled).Return(nil)

			_, err := svc.Cancel(context.Background(), 5, tt.requesterID, tt.role)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_Cancel_AlreadyCancelled(t *testing.T) {
	bookings := new(MockBookingRepository)
	svc := NewService(bookings, new(MockStylistDirectory), nil)

	owner := int64(7)
	b := &domain.Booking{ID: 5, CustomerID: &owner, Status: domain.BookingCancelled}
	bookings.On("GetByID", mock.Anything, int64(5)).Return(b, nil)

	_, err := svc.Cancel(context.Background(), 5, 7, "customer")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_ListForStylist_RejectsMalformedDate(t *testing.T) {
	svc := NewService(new(MockBookingRepository), new(MockStylistDirectory), nil)

	_, err := svc.ListForStylist(context.Background(), 1, "not-a-date")
	assert.ErrorIs(t, err, ErrValidation)
}
