package dto

import "github.com/polkiloo/iowasensors/internal/domain/model"

type AddSensorRequest struct {
	SensorID string `json:"sensor_id"`
	Nickname string `json:"nickname"`
}

func (r AddSensorRequest) Addition() model.SensorAddition {
	return model.SensorAddition{SensorID: r.SensorID, Nickname: r.Nickname}
}

type RegisterSensorRequest struct {
	SensorID   string `json:"sensor_id"`
	Nickname   string `json:"nickname"`
	SensorType string `json:"sensor_type"`
	Address    string `json:"address"`
}

func (r RegisterSensorRequest) Registration() model.SensorRegistration {
	return model.SensorRegistration{
		SensorID:   r.SensorID,
		Nickname:   r.Nickname,
		SensorType: model.SensorType(r.SensorType),
		Address:    r.Address,
	}
}

// MessageResponse relays the backend acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
