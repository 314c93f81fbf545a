// Package sdljoy reads joysticks through SDL2's joystick subsystem.
//
// SDL keeps process-wide state, so a process should hold at most one open
// Joystick at a time. Open initialises the subsystem and Close shuts it
// down again.
package sdljoy

import (
	"fmt"
	"runtime"

	"github.com/grovetools/joystick/device"
	"github.com/grovetools/joystick/errors"
	"github.com/grovetools/joystick/logging"
	"github.com/veandco/go-sdl2/sdl"
)

// axisScale normalises SDL's signed 16 bit axis values to roughly [-1, 1].
const axisScale = 32768.0

var log = logging.NewLogger("sdljoy")

// Joystick is an open SDL joystick. It implements device.Device.
type Joystick struct {
	index    int
	joy      *sdl.Joystick
	closed   bool
	detached bool
}

// Open is a device.Opener for SDL joysticks.
func Open(index int) (device.Device, error) {
	// the SDL package locks the OS thread in its own init but the goroutine
	// that opens the joystick must also be the one that polls it
	runtime.LockOSThread()

	if err := initSubsystem(); err != nil {
		runtime.UnlockOSThread()
		return nil, errors.DeviceInit(index, err)
	}

	attached := sdl.NumJoysticks()
	if index < 0 || index >= attached {
		sdl.QuitSubSystem(sdl.INIT_JOYSTICK)
		runtime.UnlockOSThread()
		return nil, errors.DeviceNotFound(index, attached)
	}

	joy := sdl.JoystickOpen(index)
	if joy == nil || !joy.Attached() {
		err := sdl.GetError()
		sdl.QuitSubSystem(sdl.INIT_JOYSTICK)
		runtime.UnlockOSThread()
		return nil, errors.DeviceInit(index, err)
	}

	log.WithFields(map[string]interface{}{
		"index": index,
		"name":  joy.Name(),
		"axes":  joy.NumAxes(),
	}).Info("Opened joystick")

	if joy.NumAxes() < 2 {
		log.WithField("axes", joy.NumAxes()).Warn("Joystick reports fewer than two axes")
	}

	return &Joystick{index: index, joy: joy}, nil
}

// List returns the joysticks currently attached.
func List() ([]device.Info, error) {
	if err := initSubsystem(); err != nil {
		return nil, errors.DeviceInit(-1, err)
	}
	defer sdl.QuitSubSystem(sdl.INIT_JOYSTICK)

	var infos []device.Info
	for i := 0; i < sdl.NumJoysticks(); i++ {
		info := device.Info{Index: i, Name: sdl.JoystickNameForIndex(i)}
		if joy := sdl.JoystickOpen(i); joy != nil {
			info.Axes = joy.NumAxes()
			joy.Close()
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func initSubsystem() error {
	// there is no window so joystick events must be delivered regardless of
	// focus
	sdl.SetHint(sdl.HINT_JOYSTICK_ALLOW_BACKGROUND_EVENTS, "1")

	if err := sdl.InitSubSystem(sdl.INIT_JOYSTICK); err != nil {
		return fmt.Errorf("sdl: %w", err)
	}
	return nil
}

// PollEvents drains the SDL event queue. The joystick's axis state is only
// updated as events are pumped.
func (j *Joystick) PollEvents() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
	}

	if !j.closed && !j.detached && !j.joy.Attached() {
		j.detached = true
		log.WithField("index", j.index).Warn("Joystick detached, axes will read as centred")
	}
}

// Axis returns the normalised position of an axis.
func (j *Joystick) Axis(index int) float64 {
	if j.closed {
		return 0
	}
	return float64(j.joy.Axis(index)) / axisScale
}

// Name implements device.Device.
func (j *Joystick) Name() string {
	return j.joy.Name()
}

// Close closes the joystick and shuts down the joystick subsystem.
func (j *Joystick) Close() error {
	if j.closed {
		return nil
	}
	j.closed = true
	j.joy.Close()
	sdl.QuitSubSystem(sdl.INIT_JOYSTICK)
	sdl.Quit()
	log.WithField("index", j.index).Debug("Released joystick")
	return nil
}
