package commands

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mamadbah2/farmsim/internal/domain/farm"
	"github.com/mamadbah2/farmsim/internal/domain/models"
	"github.com/mamadbah2/farmsim/internal/metrics"
)

// Reporter turns a night into a stored day report.
type Reporter interface {
	BuildReport(status farm.Status, deaths []farm.Death) models.DayReport
	RecordDay(ctx context.Context, report models.DayReport) error
}

// Dispatcher executes parsed commands against the running game.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
	AdvanceDay(ctx context.Context) (farm.DayResult, string)
	Status() farm.Status
}

// Service implements the Dispatcher interface. The game is single-actor, so
// every call holds mu while it touches it.
type Service struct {
	mu       sync.Mutex
	game     *farm.Game
	vocab    *vocabulary
	reporter Reporter
	printer  *message.Printer
	logger   *zap.Logger
}

// NewService constructs a command dispatcher around game. reporter may be nil.
func NewService(game *farm.Game, reporter Reporter, printer *message.Printer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if printer == nil {
		printer = message.NewPrinter(language.English)
	}
	return &Service{
		game:     game,
		vocab:    newVocabulary(farm.DefaultCatalog()),
		reporter: reporter,
		printer:  printer,
		logger:   logger,
	}
}

// HandleCommand runs one player command and returns the reply text.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	if cmd.Type == models.CommandSleep {
		_, reply := s.AdvanceDay(ctx)
		return reply, nil
	}

	s.mu.Lock()
	reply, err := s.dispatch(cmd)
	balance := s.game.Player().Balance
	s.mu.Unlock()

	outcome := "ok"
	if err != nil {
		outcome = FailureText(err).Code
	}
	metrics.ActionsTotal.WithLabelValues(string(cmd.Type), outcome).Inc()
	metrics.Balance.Set(balance)

	if err != nil {
		s.logger.Info("command rejected", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Error(err))
		return "", err
	}

	s.logger.Info("command applied", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Float64("balance", balance))
	return reply, nil
}

// AdvanceDay ends the current day, records the night and returns the reply
// shown to the player.
func (s *Service) AdvanceDay(ctx context.Context) (farm.DayResult, string) {
	s.mu.Lock()
	result := s.game.AdvanceDay()
	status := s.game.Status()
	population := s.game.Farm().Population()
	s.mu.Unlock()

	metrics.ActionsTotal.WithLabelValues(string(models.CommandSleep), "ok").Inc()
	metrics.DaysAdvanced.Inc()
	metrics.Balance.Set(status.Balance)
	metrics.Population.Reset()
	for kind, n := range population {
		metrics.Population.WithLabelValues(string(kind)).Set(float64(n))
	}
	for _, d := range result.Deaths {
		metrics.CreatureDeaths.WithLabelValues(string(d.Kind), d.Cause.String()).Inc()
		s.logger.Info("creature died", zap.String("kind", string(d.Kind)), zap.String("cause", d.Cause.String()), zap.Int("age", d.Age))
	}
	s.logger.Info("day advanced", zap.Int("day", result.Day), zap.Int("deaths", len(result.Deaths)))

	if s.reporter != nil {
		report := s.reporter.BuildReport(status, result.Deaths)
		if err := s.reporter.RecordDay(ctx, report); err != nil {
			s.logger.Warn("day report not fully stored", zap.Int("day", result.Day), zap.Error(err))
		}
	}

	return result, s.nightText(result, status)
}

// Status returns a snapshot of the game.
func (s *Service) Status() farm.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Status()
}

func (s *Service) dispatch(cmd models.Command) (string, error) {
	p := s.game.Player()

	switch cmd.Type {
	case models.CommandStatus:
		return s.statusText(s.game.Status()), nil
	case models.CommandHelp:
		return helpText, nil
	case models.CommandFeed:
		eaten, err := p.FeedAnimals()
		if err != nil {
			return "", err
		}
		if eaten == 0 {
			return "The animals are not hungry.", nil
		}
		return s.printer.Sprintf("The animals ate %v units of %s.", eaten, farm.AnimalFood.Name()), nil
	case models.CommandWater:
		absorbed, err := p.WaterPlants()
		if err != nil {
			return "", err
		}
		if absorbed == 0 {
			return "The plants are not thirsty.", nil
		}
		return s.printer.Sprintf("The plants absorbed %v units of %s.", absorbed, farm.Water.Name()), nil
	case models.CommandCollect:
		return s.collected(p.CollectAnimalProducts())
	case models.CommandHarvest:
		return s.collected(p.CollectPlantProducts())
	case models.CommandBuy:
		return s.buy(cmd.Args)
	case models.CommandSell:
		return s.sell(cmd.Args)
	case models.CommandBuild:
		return s.build(cmd.Args)
	case models.CommandUpgrade:
		return s.upgrade(cmd.Args)
	default:
		word := strings.TrimSpace(cmd.Raw)
		if fields := strings.Fields(word); len(fields) > 0 {
			word = fields[0]
		}
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCommand, word)
	}
}

func (s *Service) collected(stacks []farm.ProductStack, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if len(stacks) == 0 {
		return "Nothing was ready to collect.", nil
	}
	parts := make([]string, 0, len(stacks))
	for _, stack := range stacks {
		parts = append(parts, stack.String())
	}
	return "Collected " + strings.Join(parts, ", ") + ".", nil
}

func (s *Service) buy(args []string) (string, error) {
	a, err := splitAmount(args)
	if err != nil {
		return "", err
	}
	t, err := s.vocab.resolve(a.name)
	if err != nil {
		return "", err
	}
	p := s.game.Player()

	switch t.class {
	case classProduct:
		qty := 1.0
		if a.hasAmount {
			qty = a.amount
		}
		cost, err := p.BuyProduct(t.product(), qty)
		if err != nil {
			return "", err
		}
		metrics.MoneySpent.Add(cost)
		return s.printer.Sprintf("Bought %v %s for %.2f.", qty, t.product().Name(), cost), nil
	case classCreature:
		count := 1
		if a.hasAmount {
			if count, err = wholeNumber(a.amount); err != nil {
				return "", err
			}
		}
		bought, err := p.BuyCreature(t.creature(), count)
		if err != nil {
			return "", err
		}
		cost := t.creature().Spec().BuyPrice * float64(len(bought))
		metrics.MoneySpent.Add(cost)
		return s.printer.Sprintf("Bought %d %s for %.2f.", len(bought), t.creature().Name(), cost), nil
	default:
		return s.buyBuilding(t.building())
	}
}

func (s *Service) build(args []string) (string, error) {
	t, err := s.vocab.resolve(strings.Join(args, " "))
	if err != nil {
		return "", err
	}
	if t.class != classBuilding {
		return "", fmt.Errorf("%w: usage: build <barn|field>", ErrInvalidArguments)
	}
	return s.buyBuilding(t.building())
}

func (s *Service) buyBuilding(kind farm.BuildingKind) (string, error) {
	b, err := s.game.Player().BuyBuilding(kind)
	if err != nil {
		return "", err
	}
	price := kind.Spec().BuyPrice
	metrics.MoneySpent.Add(price)
	return s.printer.Sprintf("Built %s #%d for %.2f.", kind.Name(), s.buildingNumber(b.ID), price), nil
}

func (s *Service) sell(args []string) (string, error) {
	a, err := splitAmount(args)
	if err != nil {
		return "", err
	}
	t, err := s.vocab.resolve(a.name)
	if err != nil {
		return "", err
	}
	p := s.game.Player()

	switch t.class {
	case classProduct:
		kind := t.product()
		qty := a.amount
		switch {
		case a.all:
			stored, ok := s.game.Farm().StorageQuantity(kind)
			if !ok {
				return "", fmt.Errorf("%w: %s", farm.ErrNoSuchProduct, kind.Name())
			}
			qty = stored
		case !a.hasAmount:
			return "", fmt.Errorf("%w: usage: sell <product> <quantity|all>", ErrInvalidArguments)
		}
		earned, err := p.SellProduct(kind, qty)
		if err != nil {
			return "", err
		}
		metrics.MoneyEarned.Add(earned)
		return s.printer.Sprintf("Sold %v %s for %.2f.", qty, kind.Name(), earned), nil
	case classCreature:
		nth := 1
		if a.hasAmount {
			if nth, err = wholeNumber(a.amount); err != nil {
				return "", err
			}
		}
		b, c, err := s.nthCreature(t.creature(), nth)
		if err != nil {
			return "", err
		}
		age := c.Age
		price, err := p.SellCreature(b.ID, c.ID)
		if err != nil {
			return "", err
		}
		metrics.MoneyEarned.Add(price)
		return s.printer.Sprintf("Sold %s (age %d) for %.2f.", t.creature().Name(), age, price), nil
	default:
		return "", fmt.Errorf("%w: buildings cannot be sold", farm.ErrWrongAction)
	}
}

func (s *Service) upgrade(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: usage: upgrade <building number>", ErrInvalidArguments)
	}

	var b *farm.Building
	if n, err := strconv.Atoi(strings.TrimPrefix(args[0], "#")); err == nil {
		buildings := s.game.Farm().Buildings()
		if n < 1 || n > len(buildings) {
			return "", fmt.Errorf("%w: #%d", farm.ErrBuildingNotFound, n)
		}
		b = buildings[n-1]
	} else {
		t, err := s.vocab.resolve(strings.Join(args, " "))
		if err != nil {
			return "", err
		}
		if t.class != classBuilding {
			return "", fmt.Errorf("%w: usage: upgrade <building number>", ErrInvalidArguments)
		}
		if b = s.firstBuilding(t.building()); b == nil {
			return "", fmt.Errorf("%w: no %s on the farm", farm.ErrBuildingNotFound, t.building().Name())
		}
	}

	paid, err := s.game.Player().UpgradeBuilding(b.ID)
	if err != nil {
		return "", err
	}
	metrics.MoneySpent.Add(paid)
	return s.printer.Sprintf("%s #%d is now level %d with %d slots (paid %.2f).",
		b.Kind.Name(), s.buildingNumber(b.ID), b.Level, b.Slots, paid), nil
}

// nthCreature finds the n-th creature of kind in building-then-arrival order.
func (s *Service) nthCreature(kind farm.CreatureKind, n int) (*farm.Building, *farm.Creature, error) {
	var (
		home  *farm.Building
		found *farm.Creature
		seen  int
	)
	s.game.Farm().Occupants(func(b *farm.Building, c *farm.Creature) bool {
		if c.Kind != kind {
			return true
		}
		seen++
		if seen == n {
			home, found = b, c
			return false
		}
		return true
	})
	if found == nil {
		return nil, nil, fmt.Errorf("%w: %s #%d", farm.ErrCreatureNotFound, kind.Name(), n)
	}
	return home, found, nil
}

// firstBuilding prefers a building of kind that can still be upgraded.
func (s *Service) firstBuilding(kind farm.BuildingKind) *farm.Building {
	var first *farm.Building
	for _, b := range s.game.Farm().Buildings() {
		if b.Kind != kind {
			continue
		}
		if !b.MaxLevel() {
			return b
		}
		if first == nil {
			first = b
		}
	}
	return first
}

func (s *Service) buildingNumber(id string) int {
	for i, b := range s.game.Farm().Buildings() {
		if b.ID == id {
			return i + 1
		}
	}
	return 0
}

type amountArgs struct {
	name      string
	amount    float64
	hasAmount bool
	all       bool
}

// splitAmount separates "animal food 10" into a name and a trailing amount.
func splitAmount(args []string) (amountArgs, error) {
	if len(args) == 0 {
		return amountArgs{}, fmt.Errorf("%w: name what you want", ErrInvalidArguments)
	}
	var a amountArgs
	last := args[len(args)-1]
	switch {
	case last == "all":
		a.all = true
		args = args[:len(args)-1]
	default:
		if v, err := strconv.ParseFloat(last, 64); err == nil {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return amountArgs{}, fmt.Errorf("%w: %q is not an amount", ErrInvalidArguments, last)
			}
			a.amount, a.hasAmount = v, true
			args = args[:len(args)-1]
		}
	}
	a.name = strings.Join(args, " ")
	return a, nil
}

func wholeNumber(v float64) (int, error) {
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %v is not a whole number", ErrInvalidArguments, v)
	}
	return int(v), nil
}
