package utils

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// NewReservationToken generates the opaque reference stored on a booking as
// qr_code_token, e.g. "RES-4F21A9". The scanner app treats it as a short
// check-in correlator, so only length and uniqueness matter.
func NewReservationToken() string {
	u := uuid.New()
	return "RES-" + strings.ToUpper(hex.EncodeToString(u[:3]))
}
