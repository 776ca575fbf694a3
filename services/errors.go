package services

import (
	"errors"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrRoomNotFound      = errors.New("room not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrNoApprovedBooking = errors.New("no approved reservation found")
)

// ValidationError carries every rejected field from a single validation pass
// so the client can fix them all at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// isDuplicateEntry reports whether err is a uniqueness violation. The string
// check covers the sqlite engine the tests run against.
func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1062 {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
