// Package shell implements the interactive command loop.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/dokzlo13/smarthome/internal/controller"
	"github.com/dokzlo13/smarthome/internal/driver"
	"github.com/dokzlo13/smarthome/internal/eventlog"
	"github.com/dokzlo13/smarthome/internal/ledger"
)

// Options configures a Shell
type Options struct {
	Prompt     string
	EchoEvents bool
	Now        func() time.Time // clock used by "time auto"
}

// Shell reads commands line by line and drives the home
type Shell struct {
	drv  *driver.Driver
	in   io.Reader
	out  io.Writer
	opts Options
}

// New creates a shell. When opts.EchoEvents is set, every log entry is
// printed as "[EVENT] <message>" when it is written.
func New(drv *driver.Driver, in io.Reader, out io.Writer, opts Options) *Shell {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Shell{drv: drv, in: in, out: out, opts: opts}
	if opts.EchoEvents {
		drv.Controller().Subscribe(func(e eventlog.Entry) {
			fmt.Fprintf(s.out, "[EVENT] %s\n", e.Message)
		})
	}
	return s
}

// Run prints the banner and processes commands until input ends,
// "quit" is entered or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)

	go func() {
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	s.printBanner()
	for {
		fmt.Fprint(s.out, s.opts.Prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return nil
		case err := <-readErr:
			fmt.Fprintln(s.out)
			if err != nil {
				return fmt.Errorf("failed to read command: %w", err)
			}
			return nil
		case line := <-lines:
			if quit := s.Execute(line); quit {
				return nil
			}
		}
	}
}

// Execute handles a single command line. Returns true on "quit".
func (s *Shell) Execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		s.printBanner()
		return false
	}

	cmd, args := fields[0], fields[1:]
	log.Debug().Str("command", cmd).Strs("args", args).Msg("Shell command")

	switch cmd {
	case "quit":
		fmt.Fprintln(s.out, "Bye!")
		return true
	case "enter":
		s.enter(args)
	case "time":
		s.setTime(args)
	case "outside":
		s.outside(args)
	case "status":
		s.status()
	case "logs":
		s.logs()
	case "history":
		s.history(args)
	case "help":
		s.printBanner()
	default:
		fmt.Fprintf(s.out, "Unknown command: '%s'\n", cmd)
		s.printBanner()
	}
	return false
}

func (s *Shell) enter(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Please specify a room. Available rooms:")
		s.printRooms()
		return
	}

	name := strings.Join(args, " ")
	err := s.drv.Enter(name)
	if errors.Is(err, driver.ErrUnknownRoom) {
		fmt.Fprintf(s.out, "Unknown room: '%s'\n", name)
		fmt.Fprintln(s.out, "Available rooms:")
		s.printRooms()
	}
}

func (s *Shell) setTime(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Usage: time day / time night / time auto")
		return
	}

	switch args[0] {
	case "night":
		s.drv.SetTime(true)
	case "day":
		s.drv.SetTime(false)
	case "auto":
		night, err := s.drv.AutoTime(s.opts.Now())
		if err != nil {
			if errors.Is(err, driver.ErrNoLocation) {
				fmt.Fprintln(s.out, "No location configured (set geo.lat and geo.lon)")
				return
			}
			fmt.Fprintf(s.out, "Cannot determine time of day: %v\n", err)
			return
		}
		fmt.Fprintf(s.out, "Sun position says: %s\n", dayOrNight(night))
	default:
		fmt.Fprintln(s.out, "Unknown time option (use: day / night / auto)")
	}
}

func (s *Shell) outside(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Usage: outside <temperature>")
		return
	}

	temp, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintln(s.out, "Invalid temperature")
		return
	}

	var rangeErr *driver.TemperatureRangeError
	if err := s.drv.SetOutside(temp); errors.As(err, &rangeErr) {
		fmt.Fprintf(s.out, "Temperature '%s°C' is unrealistic for Earth.\n", controller.FormatTemperature(temp))
		fmt.Fprintf(s.out, "Please enter a value between %s°C and %s°C.\n",
			strconv.FormatFloat(rangeErr.Min, 'f', -1, 64),
			strconv.FormatFloat(rangeErr.Max, 'f', -1, 64))
	}
}

func (s *Shell) status() {
	st := s.drv.Status()

	fmt.Fprintln(s.out, "\n--- STATUS ---")
	if st.Night {
		fmt.Fprintln(s.out, "Night: True")
	} else {
		fmt.Fprintln(s.out, "Night: False")
	}
	fmt.Fprintf(s.out, "Temperature: %s°C\n", controller.FormatTemperature(st.OutsideTemperature))
	if st.Occupied {
		fmt.Fprintf(s.out, "Occupant: %s\n", st.CurrentRoom)
	}

	for _, r := range st.Rooms {
		fmt.Fprintf(s.out, "\nRoom: %s\n", r.Name)
		for _, d := range r.Devices {
			fmt.Fprintf(s.out, "  %s\n", d)
		}
	}
}

func (s *Shell) logs() {
	fmt.Fprintln(s.out, "\n--- EVENT LOG ---")
	entries := s.drv.Logs()
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "  (no events yet)")
	} else {
		for _, entry := range entries {
			fmt.Fprintf(s.out, "  * %s\n", entry)
		}
	}
	fmt.Fprint(s.out, "-----------------\n\n")
}

func (s *Shell) history(args []string) {
	var filter string
	limit := 0
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			limit = n
			continue
		}
		filter = arg
	}

	stimulus, ok := driver.ParseStimulus(filter)
	if !ok {
		fmt.Fprintf(s.out, "Unknown stimulus '%s' (use: enter / time / outside / driver)\n", filter)
		return
	}

	entries, err := s.drv.History(stimulus, limit)
	if errors.Is(err, driver.ErrNoLedger) {
		fmt.Fprintln(s.out, "Event ledger is disabled (set ledger.enabled)")
		return
	}
	if err != nil {
		fmt.Fprintf(s.out, "History unavailable: %v\n", err)
		return
	}

	s.printHistory(entries)
}

func (s *Shell) printHistory(entries []*ledger.Entry) {
	fmt.Fprintln(s.out, "\n--- HISTORY ---")
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "  (no matching events)")
	}
	for _, e := range entries {
		fmt.Fprintf(s.out, "  #%d %s [%s] %s\n", e.Seq, e.Timestamp.Local().Format("15:04:05"), e.Stimulus, e.Message)
	}
	fmt.Fprint(s.out, "---------------\n\n")
}

func (s *Shell) printRooms() {
	fmt.Fprintln(s.out, "  - "+strings.Join(s.drv.Rooms(), "\n  - "))
}

func (s *Shell) printBanner() {
	fmt.Fprint(s.out, banner)
}

func dayOrNight(night bool) string {
	if night {
		return "NIGHT"
	}
	return "DAY"
}
