package model

// SensorType is the kind of device a sensor is registered as.
type SensorType string

const (
	SensorTypeAir  SensorType = "air"
	SensorTypeSoil SensorType = "soil"
)

// SensorAddition links an already registered sensor to the signed-in account.
type SensorAddition struct {
	SensorID string `json:"sensor_id" validate:"required"`
	Nickname string `json:"nickname"`
}

// SensorRegistration registers a new sensor at an address.
type SensorRegistration struct {
	SensorID   string     `json:"sensor_id" validate:"required"`
	Nickname   string     `json:"nickname"`
	SensorType SensorType `json:"sensor_type" validate:"required,oneof=air soil"`
	Address    string     `json:"address" validate:"required"`
}

// SensorResult is the backend acknowledgement of a sensor operation.
type SensorResult struct {
	Message string `json:"message"`
}
