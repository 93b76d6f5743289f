package domain

import (
	"encoding/hex"
	"fmt"
)

// Identity is the device's thing name and the MQTT client identifier derived
// from a hardware-unique value. Read-only after startup.
type Identity struct {
	// ThingName is the registered name of the device at the broker.
	ThingName string

	// ClientID is the MQTT client identifier, the lowercase hex encoding of
	// the device's hardware-unique bytes.
	ClientID string
}

// NewIdentity derives an identity from the thing name and hardware-unique bytes.
func NewIdentity(thingName string, hardwareID []byte) (Identity, error) {
	if thingName == "" {
		return Identity{}, fmt.Errorf("%w: thing name is required", ErrInvalidConfig)
	}
	if len(hardwareID) == 0 {
		return Identity{}, fmt.Errorf("%w: hardware id is required", ErrInvalidConfig)
	}
	return Identity{
		ThingName: thingName,
		ClientID:  hex.EncodeToString(hardwareID),
	}, nil
}
