//go:build linux

package actuator

import (
	"fmt"

	"room_climate/internal/logger"
	"room_climate/internal/models"

	"github.com/warthog618/go-gpiocdev"
)

// GPIO drives actuators through Linux GPIO character device output lines.
type GPIO struct {
	chip  *gpiocdev.Chip
	lines map[models.System]*gpiocdev.Line
	log   *logger.Logger
}

// NewGPIO requests every line in lines as an output driven low.
func NewGPIO(chipName string, lines Lines, log *logger.Logger) (*GPIO, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %q: %w", chipName, err)
	}

	g := &GPIO{chip: chip, lines: map[models.System]*gpiocdev.Line{}, log: log}
	for sys, offset := range lines {
		l, err := chip.RequestLine(offset, gpiocdev.AsOutput(0))
		if err != nil {
			_ = g.Close()
			return nil, fmt.Errorf("request %s line %d: %w", sys, offset, err)
		}
		g.lines[sys] = l
	}
	return g, nil
}

func (g *GPIO) Activate(s models.System) { g.set(s, 1) }

func (g *GPIO) Deactivate(s models.System) { g.set(s, 0) }

func (g *GPIO) set(s models.System, v int) {
	l, ok := g.lines[s]
	if !ok {
		g.log.Warnw("gpio_line_missing", "system", s)
		return
	}
	if err := l.SetValue(v); err != nil {
		g.log.Errorw("gpio_set_failed", "err", err, "system", s, "value", v)
	}
}

// Close drives every line low and releases the chip.
func (g *GPIO) Close() error {
	var errs []error
	for sys, l := range g.lines {
		if err := l.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("reset %s line: %w", sys, err))
		}
		if err := l.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s line: %w", sys, err))
		}
	}
	if g.chip != nil {
		if err := g.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
