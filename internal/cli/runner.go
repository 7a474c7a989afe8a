// Package cli drives the discrete-tick simulation from a stdin command
// script and prints the exact documented output grammar for each command.
// Parsing itself is intentionally dumb: a malformed line is logged and
// skipped without advancing any state beyond what its own command would
// have changed, mirroring main.c's drain-to-newline recovery.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pastryforge/pastryforge/internal/bakery"
)

// Runner owns the stdin-to-Dispatcher command loop.
type Runner struct {
	Dispatcher *bakery.Dispatcher
	log        *logrus.Entry
}

// NewRunner constructs a Runner around an already-configured Dispatcher.
func NewRunner(d *bakery.Dispatcher, log *logrus.Logger) *Runner {
	return &Runner{Dispatcher: d, log: logrus.NewEntry(log)}
}

// ParseHeader reads the mandatory first line "P C" (truck period, truck
// capacity). It is separated from Run so callers can construct the
// Dispatcher with these domain values before any command is processed.
func ParseHeader(scanner *bufio.Scanner) (period uint32, capacity uint64, err error) {
	if !scanner.Scan() {
		return 0, 0, fmt.Errorf("missing header line")
	}
	fields := strings.Fields(scanner.Text())
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("malformed header line %q", scanner.Text())
	}
	p, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed truck period %q: %w", fields[0], err)
	}
	c, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed truck capacity %q: %w", fields[1], err)
	}
	return uint32(p), c, nil
}

// Run drains every remaining line from scanner, dispatching each as one
// command and writing the output grammar to w. Every command consumes
// exactly one tick, truck dispatch and expiry sweep included.
func (r *Runner) Run(scanner *bufio.Scanner, w io.Writer) error {
	for scanner.Scan() {
		line := scanner.Text()
		if err := r.dispatchLine(line, w); err != nil {
			r.log.WithFields(logrus.Fields{"line": line, "error": err}).Warn("malformed command line, skipping")
			r.advanceAndPrintTruck(w)
			continue
		}
	}
	return scanner.Err()
}

func (r *Runner) dispatchLine(line string, w io.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "add_recipe":
		return r.handleAddRecipe(fields[1:], w)
	case "remove_recipe":
		return r.handleRemoveRecipe(fields[1:], w)
	case "restock":
		return r.handleRestock(fields[1:], w)
	case "order":
		return r.handleOrder(fields[1:], w)
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func (r *Runner) handleAddRecipe(fields []string, w io.Writer) error {
	if len(fields) < 3 || (len(fields)-1)%2 != 0 {
		return fmt.Errorf("malformed add_recipe arguments")
	}
	name := fields[0]
	lines := make([]bakery.RecipeLine, 0, (len(fields)-1)/2)
	for i := 1; i < len(fields); i += 2 {
		qty, err := strconv.ParseUint(fields[i+1], 10, 32)
		if err != nil {
			return fmt.Errorf("malformed ingredient weight %q: %w", fields[i+1], err)
		}
		lines = append(lines, bakery.RecipeLine{Ingredient: fields[i], Weight: uint32(qty)})
	}

	added := r.Dispatcher.AddRecipe(name, lines)
	r.emit(w, addRecipeToken(added))
	r.advanceAndPrintTruck(w)
	return nil
}

func (r *Runner) handleRemoveRecipe(fields []string, w io.Writer) error {
	if len(fields) != 1 {
		return fmt.Errorf("malformed remove_recipe arguments")
	}
	outcome := r.Dispatcher.RemoveRecipe(fields[0])
	r.emit(w, removeRecipeToken(outcome))
	r.advanceAndPrintTruck(w)
	return nil
}

func (r *Runner) handleRestock(fields []string, w io.Writer) error {
	if len(fields) < 3 || len(fields)%3 != 0 {
		return fmt.Errorf("malformed restock arguments")
	}
	triples := make([]bakery.RestockTriple, 0, len(fields)/3)
	for i := 0; i < len(fields); i += 3 {
		qty, err := strconv.ParseUint(fields[i+1], 10, 32)
		if err != nil {
			return fmt.Errorf("malformed restock qty %q: %w", fields[i+1], err)
		}
		expiry, err := strconv.ParseUint(fields[i+2], 10, 32)
		if err != nil {
			return fmt.Errorf("malformed restock expiry %q: %w", fields[i+2], err)
		}
		triples = append(triples, bakery.RestockTriple{
			Ingredient: fields[i],
			Qty:        uint32(qty),
			Expiry:     uint32(expiry),
		})
	}

	r.Dispatcher.Restock(triples)
	r.emit(w, "restocked")
	r.advanceAndPrintTruck(w)
	return nil
}

func (r *Runner) handleOrder(fields []string, w io.Writer) error {
	if len(fields) != 2 {
		return fmt.Errorf("malformed order arguments")
	}
	qty, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return fmt.Errorf("malformed order qty %q: %w", fields[1], err)
	}

	outcome := r.Dispatcher.PlaceOrder(fields[0], uint32(qty))
	r.emit(w, orderToken(outcome))
	r.advanceAndPrintTruck(w)
	return nil
}

func (r *Runner) advanceAndPrintTruck(w io.Writer) {
	result := r.Dispatcher.Advance()
	if result == nil {
		return
	}
	if result.Empty {
		r.emit(w, "empty truck")
		return
	}
	for _, line := range result.Lines {
		fmt.Fprintf(w, "%d %s %d\n", line.ArrivalTick, line.RecipeName, line.Qty)
	}
}

func (r *Runner) emit(w io.Writer, token string) {
	fmt.Fprintln(w, token)
}

func addRecipeToken(added bool) string {
	if added {
		return "added"
	}
	return "ignored"
}

func removeRecipeToken(outcome bakery.RemoveRecipeOutcome) string {
	switch outcome {
	case bakery.RemoveRemoved:
		return "removed"
	case bakery.RemovePendingOrders:
		return "pending orders"
	default:
		return "not present"
	}
}

func orderToken(outcome bakery.OrderOutcome) string {
	if outcome == bakery.OrderAccepted {
		return "accepted"
	}
	return "rejected"
}
