// Package protocol holds shared codec infrastructure used by every brand's
// pure bytes↔typed-message functions: the §7 error taxonomy, the C-string
// helper, and the Doppler pixel palette.
package protocol

import (
	"errors"
	"fmt"
)

// Sentinel errors matching the §7 error taxonomy. Brand codecs wrap one of
// these with fmt.Errorf("%w", ...) so callers can classify a failure with
// errors.Is regardless of brand.
var (
	ErrTooShort            = errors.New("protocol: packet too short")
	ErrInvalidHeader       = errors.New("protocol: invalid header")
	ErrLengthMismatch      = errors.New("protocol: length mismatch")
	ErrDeserializationFailed = errors.New("protocol: deserialization failed")
	ErrUnknownModel        = errors.New("protocol: unknown radar model")
	ErrInvalidString       = errors.New("protocol: invalid string encoding")
	ErrUnknownPacketType   = errors.New("protocol: unknown packet type")
	ErrInvalidPacket       = errors.New("protocol: invalid packet")
)

// TooShort builds an ErrTooShort wrapping error reporting the expected and
// actual lengths.
func TooShort(expected, actual int) error {
	return fmt.Errorf("%w: expected at least %d bytes, got %d", ErrTooShort, expected, actual)
}

// InvalidHeader builds an ErrInvalidHeader wrapping error.
func InvalidHeader(expected, actual []byte) error {
	return fmt.Errorf("%w: expected % X, got % X", ErrInvalidHeader, expected, actual)
}

// LengthMismatch builds an ErrLengthMismatch wrapping error.
func LengthMismatch(headerLen, actualLen int) error {
	return fmt.Errorf("%w: header says %d bytes, packet has %d", ErrLengthMismatch, headerLen, actualLen)
}

// UnknownModel builds an ErrUnknownModel wrapping error naming the model
// string that was not recognized.
func UnknownModel(model string) error {
	return fmt.Errorf("%w: %s", ErrUnknownModel, model)
}

// UnknownPacketType builds an ErrUnknownPacketType wrapping error.
func UnknownPacketType(tag byte) error {
	return fmt.Errorf("%w: %#02x", ErrUnknownPacketType, tag)
}

// InvalidPacket builds an ErrInvalidPacket wrapping error with a detail
// string.
func InvalidPacket(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidPacket, detail)
}
