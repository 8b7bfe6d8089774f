// Package home builds rooms and devices from the configured layout.
package home

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/smarthome/internal/config"
	"github.com/dokzlo13/smarthome/internal/device"
	"github.com/dokzlo13/smarthome/internal/room"
)

// Registrar is anything rooms can be added to
type Registrar interface {
	AddRoom(r *room.Room)
}

// Build creates the rooms declared in cfg, devices in declared order
func Build(cfg config.HomeConfig) ([]*room.Room, error) {
	rooms := make([]*room.Room, 0, len(cfg.Rooms))
	for i, rc := range cfg.Rooms {
		name := strings.TrimSpace(rc.Name)
		if name == "" {
			return nil, fmt.Errorf("room %d: %w", i, ErrUnnamedRoom)
		}

		r := room.New(name)
		for j, dc := range rc.Devices {
			kind, err := device.ParseKind(dc.Kind)
			if err != nil {
				return nil, fmt.Errorf("room %q device %d: %w", name, j, err)
			}
			deviceName := dc.Name
			if deviceName == "" {
				deviceName = fmt.Sprintf("%s %s %d", name, kind, j+1)
			}
			d, err := device.New(kind, deviceName)
			if err != nil {
				return nil, fmt.Errorf("room %q device %d: %w", name, j, err)
			}
			r.AddDevice(d)
		}
		rooms = append(rooms, r)
	}
	return rooms, nil
}

// Install builds the layout and registers every room with reg
func Install(reg Registrar, cfg config.HomeConfig) error {
	rooms, err := Build(cfg)
	if err != nil {
		return fmt.Errorf("failed to build home: %w", err)
	}
	for _, r := range rooms {
		reg.AddRoom(r)
	}
	log.Info().Int("rooms", len(rooms)).Msg("Home installed")
	return nil
}
