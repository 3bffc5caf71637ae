package service

import (
	"time"

	"room_climate/internal/logger"
	"room_climate/internal/runtime"
	"room_climate/internal/sensor"
	"room_climate/internal/state"
)

// SensingTask periodically refreshes the stored temperature from the sensor.
type SensingTask struct {
	store   *state.Store
	sensor  sensor.Sensor
	timer   *runtime.Timer
	metrics Metrics
	log     *logger.Logger
}

func NewSensingTask(loop *runtime.Loop, store *state.Store, s sensor.Sensor, interval time.Duration, metrics Metrics, log *logger.Logger) *SensingTask {
	t := &SensingTask{store: store, sensor: s, metrics: metrics, log: log}
	t.timer = loop.NewTimer(interval, t.sense)
	return t
}

// Start arms the first sensing period. Loop only.
func (t *SensingTask) Start() { t.timer.Restart() }

func (t *SensingTask) sense() {
	temp := t.sensor.ReadTemperature()
	t.store.SetTemperature(temp)
	t.metrics.SetTemperature(temp)
	t.log.Debugw("sensing", "temperature", temp)
	t.timer.Restart()
}
