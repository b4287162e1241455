package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"flooring-chatter/internal/catalog"
	"flooring-chatter/internal/history"
	"flooring-chatter/internal/storage"
)

var (
	ErrInvalidNumber   = errors.New("area is not a number")
	ErrNonPositiveArea = errors.New("area must be positive")
)

const (
	promptCommand = "How can I assist you today? "
	promptType    = "What type of flooring are you looking for? (e.g., Hardwood, Tile): "
	promptProduct = "What product would you like more details about? "
	promptCost    = "Which product do you want to calculate the cost for? "
	promptArea    = "Please enter the area size in square feet: "
)

const (
	msgNoCriteria  = "Please specify a product name or type."
	msgNoMatch     = "Sorry, no matching products found."
	msgNotFound    = "Sorry, we couldn't find that product."
	msgBadNumber   = "Oops! Please enter a valid number for the area size."
	msgNonPositive = "The area size must be a positive number."
	msgNoHistory   = "You haven't had any interactions yet."
	msgUnknown     = "I'm sorry, I didn't quite get that. Type 'help' for a list of commands."
)

type Option func(*Session)

func WithFormatter(f Formatter) Option {
	return func(s *Session) { s.format = f }
}

// Session runs the command loop for one user. It owns the interaction log;
// the catalog is shared and read-only.
type Session struct {
	id      uuid.UUID
	catalog *catalog.Catalog
	history *history.Log
	in      LineReader
	out     io.Writer
	store   storage.Transcript
	format  Formatter
}

func New(c *catalog.Catalog, in LineReader, out io.Writer, store storage.Transcript, opts ...Option) *Session {
	s := &Session{
		id:      uuid.New(),
		catalog: c,
		history: history.NewLog(),
		in:      in,
		out:     out,
		store:   store,
		format:  NewFormatter(out, "$", false),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

// History returns the interaction log entries recorded so far.
func (s *Session) History() []string { return s.history.Entries() }

// Run greets the user and processes commands until exit, end of input or
// interrupt. Cancelling ctx stops the loop before the next command is read.
func (s *Session) Run(ctx context.Context) error {
	log.Printf("session %s: started with %d products", s.id, s.catalog.Len())
	defer log.Printf("session %s: finished after %d logged interactions", s.id, s.history.Len())

	s.greet()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.in.ReadLine(promptCommand)
		if err != nil {
			return s.endOfInput(err)
		}
		cmd := ParseCommand(line)
		if cmd == CmdEmpty {
			continue
		}
		log.Printf("session %s: command %s", s.id, cmd)
		stop, err := s.Handle(cmd)
		if err != nil {
			return s.endOfInput(err)
		}
		if stop {
			return nil
		}
	}
}

func (s *Session) endOfInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupted) {
		s.farewell()
		return nil
	}
	return errors.Wrap(err, "read command")
}

// Handle executes one command. stop reports whether the loop should end;
// err is only set when reading follow-up input failed.
func (s *Session) Handle(cmd Command) (stop bool, err error) {
	switch cmd {
	case CmdExit:
		s.farewell()
		return true, nil
	case CmdList:
		s.handleList()
	case CmdFilter:
		err = s.handleFilter()
	case CmdProduct:
		err = s.handleProduct()
	case CmdCost:
		err = s.handleCost()
	case CmdHelp:
		s.handleHelp()
	case CmdSummary:
		s.handleSummary()
	case CmdSave:
		s.handleSave()
	case CmdEmpty:
	default:
		s.println()
		s.println(msgUnknown)
	}
	return false, err
}

func (s *Session) greet() {
	s.println()
	s.println(s.format.Heading("Hello! Welcome to the Flooring Chatbot."))
	s.println("I can assist you with product details, pricing, and installation costs.")
	s.println("Type 'help' to see all the commands or 'exit' to end the conversation.")
	s.println()
}

func (s *Session) farewell() {
	s.println()
	s.println("Thanks for chatting with me! Have a great day.")
}

func (s *Session) handleList() {
	s.println()
	s.println(s.format.Heading("Here are some of our available products:"))
	s.println(s.format.ProductTable(s.catalog.All()))
}

func (s *Session) handleFilter() error {
	s.println()
	kind, err := s.in.ReadLine(promptType)
	if err != nil {
		return err
	}
	kind = strings.TrimSpace(kind)
	products, err := s.catalog.Lookup("", kind)
	if err != nil {
		s.println(s.format.Warning(lookupMessage(err)))
		return nil
	}
	s.println()
	s.println(s.format.Heading("Here are the products that match your filter:"))
	for _, p := range products {
		s.println(s.format.FilterLine(p))
	}
	return nil
}

func (s *Session) handleProduct() error {
	s.println()
	name, err := s.in.ReadLine(promptProduct)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	products, lookupErr := s.catalog.Lookup(name, "")
	s.history.Append(fmt.Sprintf("Inquired about product: %s.", name))

	s.println()
	s.println(s.format.Heading("Product Details:"))
	if lookupErr != nil {
		s.println(s.format.Warning(lookupMessage(lookupErr)))
		return nil
	}
	s.println(s.format.DetailTable(products))
	return nil
}

func (s *Session) handleCost() error {
	s.println()
	name, err := s.in.ReadLine(promptCost)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if found, err := s.catalog.FindByName(name); err != nil || len(found) == 0 {
		s.println(s.format.Warning(msgNotFound))
		return nil
	}

	raw, err := s.in.ReadLine(promptArea)
	if err != nil {
		return err
	}
	area, err := ParseArea(raw)
	if err != nil {
		log.Printf("session %s: rejected area %q: %v", s.id, raw, err)
		if errors.Is(err, ErrNonPositiveArea) {
			s.println(s.format.Warning(msgNonPositive))
		} else {
			s.println(s.format.Warning(msgBadNumber))
		}
		return nil
	}

	breakdown, err := s.catalog.EstimateCost(name, area)
	if err != nil {
		s.println(s.format.Warning(msgNotFound))
		return nil
	}
	s.history.Append(fmt.Sprintf("Calculated cost for %s: %s.", name, s.format.CostSummary(breakdown)))

	s.println()
	s.println(s.format.Heading("Cost Details:"))
	for _, line := range s.format.CostLines(breakdown) {
		s.println(line)
	}
	if breakdown.MinimumApplied {
		p := s.catalog.Pricing()
		s.println(s.format.Warning(fmt.Sprintf("A minimum charge of %s applies to areas under %s sq ft.",
			s.format.Money(p.MinimumCharge), p.Threshold.String())))
	}
	return nil
}

func (s *Session) handleHelp() {
	s.println()
	s.println(s.format.Heading("Here's a list of commands you can use:"))
	for _, c := range commands {
		s.println(fmt.Sprintf("- '%s': %s", c.name, c.desc))
	}
}

func (s *Session) handleSummary() {
	s.println()
	if s.history.Empty() {
		s.println(msgNoHistory)
		return
	}
	s.println(s.format.Heading("Here's a summary of your interactions with me:"))
	for _, entry := range s.history.Entries() {
		s.println("- " + entry)
	}
}

func (s *Session) handleSave() {
	s.println()
	if err := s.store.Save(s.history.Entries()); err != nil {
		log.Printf("session %s: save to %s failed: %v", s.id, s.store.Path(), err)
		s.println(s.format.Warning(fmt.Sprintf("Sorry, I couldn't save the conversation to '%s': %v", s.store.Path(), err)))
		return
	}
	log.Printf("session %s: saved %d entries to %s", s.id, s.history.Len(), s.store.Path())
	s.println(fmt.Sprintf("Your conversation has been saved as '%s'.", s.store.Path()))
}

func (s *Session) println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func lookupMessage(err error) string {
	if errors.Is(err, catalog.ErrNoCriteria) || errors.Is(err, catalog.ErrEmptyQuery) {
		return msgNoCriteria
	}
	return msgNoMatch
}

// ParseArea validates user input for an area in square feet.
func ParseArea(raw string) (decimal.Decimal, error) {
	area, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, errors.Wrapf(ErrInvalidNumber, "parse %q", raw)
	}
	if !area.IsPositive() {
		return decimal.Decimal{}, errors.Wrapf(ErrNonPositiveArea, "got %s", area)
	}
	return area, nil
}
