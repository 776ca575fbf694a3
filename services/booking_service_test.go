package services

import (
	"errors"
	"regexp"
	"testing"

	"icrrus-backend/models"
)

func validInput(userID, roomID uint) CreateBookingInput {
	return CreateBookingInput{
		UserID:    userID,
		RoomID:    roomID,
		StartTime: "2025-03-10T09:00:00Z",
		EndTime:   "2025-03-10T11:00:00Z",
		Purpose:   "Study session",
	}
}

func TestCreateBookingDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)

	booking, err := svc.Create(validInput(user.ID, room.ID))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if booking.Status != models.BookingPending {
		t.Errorf("status = %q, want %q", booking.Status, models.BookingPending)
	}
	if booking.StudentCount != 1 {
		t.Errorf("student_count = %d, want 1", booking.StudentCount)
	}
	if matched := regexp.MustCompile(`^RES-[0-9A-F]{6}$`).MatchString(booking.QRCodeToken); !matched {
		t.Errorf("qr_code_token = %q, want RES- plus 6 uppercase hex chars", booking.QRCodeToken)
	}
}

func TestCreateBookingCallerSuppliedStatus(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)

	input := validInput(user.ID, room.ID)
	input.Status = models.BookingApproved

	booking, err := svc.Create(input)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if booking.Status != models.BookingApproved {
		t.Errorf("status = %q, want caller-supplied %q", booking.Status, models.BookingApproved)
	}
}

func TestCreateBookingReportsAllProblems(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	_, err := svc.Create(CreateBookingInput{
		StartTime: "not-a-timestamp",
		EndTime:   "also-bad",
	})
	if err == nil {
		t.Fatal("Create() succeeded with empty input")
	}

	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("Create() error = %v, want *ValidationError", err)
	}
	// user_id, room_id, purpose, start_time, end_time
	if len(ve.Problems) != 5 {
		t.Errorf("got %d problems %v, want 5", len(ve.Problems), ve.Problems)
	}
}

func TestCreateBookingTimestampOffsets(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)

	input := validInput(user.ID, room.ID)
	input.StartTime = "2025-03-10T09:00:00+08:00"
	input.EndTime = "2025-03-10T11:00:00+08:00"

	if _, err := svc.Create(input); err != nil {
		t.Fatalf("Create() rejected explicit-offset timestamps: %v", err)
	}
}

// End before start is accepted: no interval ordering check exists in the
// observed behavior, and this pins that down.
func TestCreateBookingAcceptsEndBeforeStart(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)

	input := validInput(user.ID, room.ID)
	input.StartTime = "2025-03-10T11:00:00Z"
	input.EndTime = "2025-03-10T09:00:00Z"

	if _, err := svc.Create(input); err != nil {
		t.Fatalf("Create() rejected end before start: %v", err)
	}
}

func TestCreateBookingAllowsOverlap(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)

	if _, err := svc.Create(validInput(user.ID, room.ID)); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}
	if _, err := svc.Create(validInput(user.ID, room.ID)); err != nil {
		t.Fatalf("overlapping Create() error = %v", err)
	}
}

func TestCreateBookingRegeneratesCollidingToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)

	existing, err := svc.Create(validInput(user.ID, room.ID))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// First generated token collides with the existing booking's; the
	// service must regenerate rather than surface the store error.
	tokens := []string{existing.QRCodeToken, "RES-0FRESH"}
	svc.newToken = func() string {
		token := tokens[0]
		if len(tokens) > 1 {
			tokens = tokens[1:]
		}
		return token
	}

	booking, err := svc.Create(validInput(user.ID, room.ID))
	if err != nil {
		t.Fatalf("Create() with colliding token error = %v", err)
	}
	if booking.QRCodeToken != "RES-0FRESH" {
		t.Errorf("qr_code_token = %q, want regenerated %q", booking.QRCodeToken, "RES-0FRESH")
	}
	if booking.ID == existing.ID {
		t.Errorf("booking id %d collides with existing booking", booking.ID)
	}
}

func TestCreateBookingGivesUpAfterRepeatedCollisions(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)

	existing, err := svc.Create(validInput(user.ID, room.ID))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	calls := 0
	svc.newToken = func() string {
		calls++
		return existing.QRCodeToken
	}

	if _, err := svc.Create(validInput(user.ID, room.ID)); err == nil {
		t.Fatal("Create() succeeded with a permanently colliding token")
	}
	if calls != tokenMaxRetries {
		t.Errorf("token generated %d times, want %d", calls, tokenMaxRetries)
	}

	var count int64
	db.Model(&models.Booking{}).Count(&count)
	if count != 1 {
		t.Errorf("booking count = %d after failed create, want 1", count)
	}
}

func TestSetStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)

	err := svc.SetStatus(999, models.BookingApproved, "")
	if !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("SetStatus(999) error = %v, want ErrBookingNotFound", err)
	}
}

func TestSetStatusIsPermissive(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)
	booking := createBooking(t, db, user.ID, room.ID, models.BookingCheckedIn)

	// No transition table: even CHECKED_IN back to PENDING is allowed.
	if err := svc.SetStatus(booking.ID, models.BookingPending, ""); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	var got models.Booking
	if err := db.First(&got, booking.ID).Error; err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if got.Status != models.BookingPending {
		t.Errorf("status = %q, want %q", got.Status, models.BookingPending)
	}
}

func TestSetStatusStoresRejectionReason(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)
	booking := createBooking(t, db, user.ID, room.ID, models.BookingPending)

	if err := svc.SetStatus(booking.ID, models.BookingRejected, "room closed for maintenance"); err != nil {
		t.Fatalf("SetStatus() error = %v", err)
	}

	var got models.Booking
	if err := db.First(&got, booking.ID).Error; err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if got.Status != models.BookingRejected {
		t.Errorf("status = %q, want %q", got.Status, models.BookingRejected)
	}
	if got.RejectionReason != "room closed for maintenance" {
		t.Errorf("rejection_reason = %q", got.RejectionReason)
	}
}

func TestCheckInWithoutApprovedBooking(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)
	createBooking(t, db, user.ID, room.ID, models.BookingPending)

	_, err := svc.CheckIn(user.ID, room.ID)
	if !errors.Is(err, ErrNoApprovedBooking) {
		t.Errorf("CheckIn() error = %v, want ErrNoApprovedBooking", err)
	}
}

func TestCheckInLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)
	booking := createBooking(t, db, user.ID, room.ID, models.BookingApproved)

	checkedIn, err := svc.CheckIn(user.ID, room.ID)
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if checkedIn.ID != booking.ID {
		t.Errorf("checked in booking %d, want %d", checkedIn.ID, booking.ID)
	}
	if checkedIn.Status != models.BookingCheckedIn {
		t.Errorf("status = %q, want %q", checkedIn.Status, models.BookingCheckedIn)
	}

	// Second attempt: no APPROVED booking remains for the pair.
	if _, err := svc.CheckIn(user.ID, room.ID); !errors.Is(err, ErrNoApprovedBooking) {
		t.Errorf("second CheckIn() error = %v, want ErrNoApprovedBooking", err)
	}
}

func TestCheckInGuardedAgainstConcurrentTransition(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)
	booking := createBooking(t, db, user.ID, room.ID, models.BookingApproved)

	// Simulate a racing writer that moves the booking off APPROVED between
	// the service's read and its conditional update.
	first, err := svc.CheckIn(user.ID, room.ID)
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	res := db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingApproved).
		Update("status", models.BookingCheckedIn)
	if res.Error != nil {
		t.Fatalf("conditional update error = %v", res.Error)
	}
	if res.RowsAffected != 0 {
		t.Errorf("conditional update affected %d rows after check-in, want 0", res.RowsAffected)
	}
	if first.Status != models.BookingCheckedIn {
		t.Errorf("status = %q, want %q", first.Status, models.BookingCheckedIn)
	}
}

func TestCheckInPicksFirstApproved(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)
	first := createBooking(t, db, user.ID, room.ID, models.BookingApproved)
	second := createBooking(t, db, user.ID, room.ID, models.BookingApproved)

	checkedIn, err := svc.CheckIn(user.ID, room.ID)
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if checkedIn.ID != first.ID {
		t.Errorf("checked in booking %d, want first returned %d", checkedIn.ID, first.ID)
	}

	var remaining models.Booking
	if err := db.First(&remaining, second.ID).Error; err != nil {
		t.Fatalf("reload second booking: %v", err)
	}
	if remaining.Status != models.BookingApproved {
		t.Errorf("second booking status = %q, want untouched %q", remaining.Status, models.BookingApproved)
	}
}

func TestListJoinsUserAndRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	user := createUser(t, db, "student@itso.edu")
	room := createRoom(t, db, "Discussion Room A", 6)

	input := validInput(user.ID, room.ID)
	input.StudentCount = 5
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	summaries, err := svc.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}

	got := summaries[0]
	if got.StudentCount != 5 {
		t.Errorf("student_count = %d, want 5", got.StudentCount)
	}
	if got.Purpose != "Study session" {
		t.Errorf("purpose = %q, want %q", got.Purpose, "Study session")
	}
	if got.UserName != "Test User" {
		t.Errorf("user_name = %q, want %q", got.UserName, "Test User")
	}
	if got.RoomName != "Discussion Room A" {
		t.Errorf("room_name = %q, want %q", got.RoomName, "Discussion Room A")
	}
	if got.RoomCapacity != 6 {
		t.Errorf("room_capacity = %d, want 6", got.RoomCapacity)
	}
}

func TestListFallsBackForMissingRelations(t *testing.T) {
	db := newTestDB(t)
	svc := NewBookingService(db)
	createBooking(t, db, 42, 42, models.BookingPending)

	summaries, err := svc.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("got %d summaries, want 1", len(summaries))
	}
	got := summaries[0]
	if got.UserName != "Unknown User" {
		t.Errorf("user_name = %q, want fallback", got.UserName)
	}
	if got.RoomName != "Unknown" {
		t.Errorf("room_name = %q, want fallback", got.RoomName)
	}
	if got.Location != "FACILITY" {
		t.Errorf("location = %q, want fallback FACILITY", got.Location)
	}
}
