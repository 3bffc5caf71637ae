package service

import (
	"context"
	"math/rand"
	"time"

	"room_climate/internal/actuator"
	"room_climate/internal/logger"
	"room_climate/internal/models"
	"room_climate/internal/observe"
	"room_climate/internal/repository"
	"room_climate/internal/runtime"
	"room_climate/internal/sensor"
	"room_climate/internal/state"
)

// Climate exposes the mutually exclusive cooling/heating controls.
type Climate interface {
	Start(ctx context.Context, kind models.ClimateStatus) error
	Stop(ctx context.Context, kind models.ClimateStatus) error
	// Toggle stops kind when it runs and starts it when the node is off.
	Toggle(ctx context.Context, kind models.ClimateStatus) (models.ClimateStatus, error)
}

// Ventilation exposes the independent ventilation switch.
type Ventilation interface {
	SetVentilation(ctx context.Context, on bool) (bool, error)
	ToggleVentilation(ctx context.Context) (bool, error)
}

// Monitoring exposes read-only state (temperature, status, ventilation).
type Monitoring interface {
	GetState(ctx context.Context) (models.ClimateState, error)
}

// EventLog exposes the append-only journal with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.ClimateEvent, error)
}

// Info serves the greeting resource.
type Info interface {
	Greeting(length *int) string
}

// Observers lets transports subscribe to the periodic temperature push.
type Observers interface {
	Subscribe(buffer int) *observe.Subscription
	Unsubscribe(s *observe.Subscription)
}

// Rand supplies the initial temperature draw.
type Rand interface {
	IntN(n int) int
}

type defaultRand struct{}

func (defaultRand) IntN(n int) int { return rand.Intn(n) }

// Options are the tunables of the node.
type Options struct {
	TempMin         int
	TempMax         int
	SensingInterval time.Duration
	SimInterval     time.Duration

	Simulation  bool
	Cooling     bool
	Heating     bool
	Ventilation bool

	InfoMessage  string
	InfoMaxChunk int

	InitialMode        models.ClimateStatus
	InitialVentilation bool
}

// Defaults of the reference node.
const (
	DefaultTempMin         = 10
	DefaultTempMax         = 30
	DefaultSensingInterval = 5 * time.Second
	DefaultSimInterval     = 20 * time.Second
	DefaultInfoMessage     = "Hello World!"
	DefaultInfoMaxChunk    = 64
)

func DefaultOptions() Options {
	return Options{
		TempMin:         DefaultTempMin,
		TempMax:         DefaultTempMax,
		SensingInterval: DefaultSensingInterval,
		SimInterval:     DefaultSimInterval,
		Simulation:      true,
		Cooling:         true,
		Heating:         true,
		Ventilation:     true,
		InfoMessage:     DefaultInfoMessage,
		InfoMaxChunk:    DefaultInfoMaxChunk,
		InitialMode:     models.StatusOff,
	}
}

// Deps are the collaborators of the node. Loop, Driver and Log are required.
type Deps struct {
	Loop      *runtime.Loop
	Driver    actuator.Driver
	Sensor    sensor.Sensor // defaults to the simulated pass-through
	Rand      Rand
	Journal   Journal
	Metrics   Metrics
	Hub       *observe.Hub
	EventRepo repository.EventRepo
	Log       *logger.Logger
}

// Service aggregates the sub-services used by the transport layer.
type Service struct {
	Climate
	Ventilation
	Monitoring
	EventLog
	Info
	Observers

	opts  Options
	loop  *runtime.Loop
	store *state.Store
	rand  Rand
	log   *logger.Logger

	climateCtl     *ClimateController
	ventilationCtl *VentilationController
	simulator      *Simulator
	sensing        *SensingTask
	notifier       *Notifier
}

// NewService builds every component around one state store owned by deps.Loop.
// Nothing runs until Boot.
func NewService(opts Options, deps Deps) *Service {
	if deps.Rand == nil {
		deps.Rand = defaultRand{}
	}
	if deps.Journal == nil {
		deps.Journal = nopJournal{}
	}
	if deps.Metrics == nil {
		deps.Metrics = nopMetrics{}
	}
	if deps.Hub == nil {
		deps.Hub = observe.NewHub()
	}

	store := state.New(0)
	if deps.Sensor == nil {
		deps.Sensor = sensor.NewSimulated(store)
	}

	s := &Service{
		opts:  opts,
		loop:  deps.Loop,
		store: store,
		rand:  deps.Rand,
		log:   deps.Log,
	}

	var listener ActivationListener
	if opts.Simulation {
		s.simulator = NewSimulator(deps.Loop, store, opts.SimInterval, deps.Journal, deps.Metrics, deps.Log)
		listener = s.simulator
	}

	s.climateCtl = NewClimateController(deps.Loop, store, deps.Driver, listener, ClimateConfig{
		Cooling: opts.Cooling,
		Heating: opts.Heating,
	}, deps.Journal, deps.Metrics, deps.Log)
	s.ventilationCtl = NewVentilationController(deps.Loop, store, deps.Driver, listener, opts.Ventilation, deps.Journal, deps.Metrics, deps.Log)
	s.sensing = NewSensingTask(deps.Loop, store, deps.Sensor, opts.SensingInterval, deps.Metrics, deps.Log)
	s.notifier = NewNotifier(deps.Loop, store, deps.Hub, opts.SensingInterval, deps.Metrics)

	s.Climate = s.climateCtl
	s.Ventilation = s.ventilationCtl
	s.Monitoring = NewMonitoringService(deps.Loop, store)
	s.Info = NewInfoService(opts.InfoMessage, opts.InfoMaxChunk)
	s.Observers = deps.Hub
	if deps.EventRepo != nil {
		s.EventLog = NewEventLogService(deps.EventRepo)
	}
	return s
}

// Boot queues the boot task: seed the temperature, reset the actuators,
// start the periodic tasks and apply the configured initial modes.
func (s *Service) Boot() {
	s.loop.Post(s.boot)
}

func (s *Service) boot() {
	s.log.Infow("boot_starting")

	if s.opts.Simulation {
		span := s.opts.TempMax + 1 - s.opts.TempMin
		s.store.SetTemperature(s.rand.IntN(span) + s.opts.TempMin)
		s.log.Infow("initial_temperature", "temperature", s.store.Temperature())
	}
	s.store.SetStatus(models.StatusOff)
	s.store.SetVentilation(false)

	s.sensing.Start()
	s.notifier.Start()
	if s.simulator != nil {
		s.simulator.Start()
	}

	if s.opts.InitialMode != "" && s.opts.InitialMode != models.StatusOff {
		if err := s.climateCtl.RequestStart(s.opts.InitialMode); err != nil {
			s.log.Errorw("initial_mode_failed", "err", err, "mode", s.opts.InitialMode)
		}
	}
	if s.opts.InitialVentilation {
		if _, err := s.ventilationCtl.RequestSet(true); err != nil {
			s.log.Errorw("initial_ventilation_failed", "err", err)
		}
	}

	s.log.Infow("boot_completed")
}
