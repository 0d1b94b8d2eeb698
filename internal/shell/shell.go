package shell

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/eugenenazirov/cloakroom/internal/cloakroom"
	"github.com/eugenenazirov/cloakroom/internal/config"
)

const rule = "-----------------------------------------------------------------------------"

// Shell is the interactive front desk of a single cloakroom. Customer keys
// are kept on a key ring indexed by locker number.
type Shell struct {
	room    *cloakroom.Cloakroom
	keys    map[int]*cloakroom.Key
	console *Console
	logger  *zap.Logger
}

// New creates a shell over room using console for all interaction.
func New(room *cloakroom.Cloakroom, console *Console, logger *zap.Logger) *Shell {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Shell{
		room:    room,
		keys:    make(map[int]*cloakroom.Key),
		console: console,
		logger:  logger,
	}
}

// PromptLayout asks for the number of lockers and the capacity of each.
func PromptLayout(console *Console) (numLockers, maxItems int, err error) {
	numLockers, err = console.ReadInt(
		fmt.Sprintf("Enter number of lockers (number between %d and %d): ", config.MinNumLockers, config.MaxNumLockers),
		config.MinNumLockers, config.MaxNumLockers)
	if err != nil {
		return 0, 0, err
	}
	maxItems, err = console.ReadInt(
		fmt.Sprintf("Enter number of items each locker can hold (number between %d and %d): ", config.MinItemsPerLocker, config.MaxItemsPerLocker),
		config.MinItemsPerLocker, config.MaxItemsPerLocker)
	if err != nil {
		return 0, 0, err
	}
	return numLockers, maxItems, nil
}

// Run shows the main menu until the user quits or input runs out.
func (s *Shell) Run() error {
	for {
		s.console.Println()
		s.console.Println("1) Deposit items in a locker")
		s.console.Println("2) Collect items from a locker")
		s.console.Println("3) Change locker contents")
		s.console.Println("4) Print contents of closed lockers")
		s.console.Println("5) Quit")
		s.console.Println()

		option, err := s.menuOption(5)
		if err != nil {
			return ignoreClosed(err)
		}

		switch option {
		case 1:
			err = s.deposit()
		case 2:
			err = s.collect()
		case 3:
			err = s.change()
		case 4:
			err = s.printClosedLockers()
		case 5:
			return nil
		}
		if err != nil {
			return ignoreClosed(err)
		}
	}
}

func (s *Shell) deposit() error {
	locker, ok := s.room.FindFreeLocker()
	if !ok {
		s.console.Println("There are no free lockers.")
		return s.console.Halt()
	}
	s.console.Printf(" *** Found free locker number %d ***\n", locker.Number())
	return s.editLocker(locker)
}

func (s *Shell) collect() error {
	locker, err := s.openLocker()
	if err != nil || locker == nil {
		return err
	}

	items, err := s.room.Vacate(locker)
	if err != nil {
		return fmt.Errorf("vacate locker %d: %w", locker.Number(), err)
	}
	s.console.Println(rule)
	s.console.Printf("Collected following items from locker number %d:\n", locker.Number())
	s.console.Println(items.String())
	s.console.Println(rule)
	return s.console.Halt()
}

func (s *Shell) change() error {
	locker, err := s.openLocker()
	if err != nil || locker == nil {
		return err
	}
	return s.editLocker(locker)
}

func (s *Shell) printClosedLockers() error {
	closed := s.room.ClosedLockers()
	if len(closed) == 0 {
		s.console.Println("There are no closed lockers.")
	}
	for _, c := range closed {
		s.console.Printf("locker number %d: [%s]\n", c.Number, c.Items)
	}
	return s.console.Halt()
}

// openLocker redeems the key for a locker number entered by the user. A nil
// locker with a nil error means the user was told why nothing was opened.
func (s *Shell) openLocker() (*cloakroom.Locker, error) {
	if len(s.keys) == 0 {
		s.console.Error("there are no closed lockers from which to collect items")
		return nil, s.console.Halt()
	}

	number, err := s.console.ReadInt("Enter locker number printed on key: ", math.MinInt, math.MaxInt)
	if err != nil {
		return nil, err
	}
	key, ok := s.keys[number]
	if !ok {
		s.console.Printf("%s key for locker number %d not found.\n", errPrefix, number)
		return nil, s.console.Halt()
	}
	delete(s.keys, number)

	locker, err := s.room.Open(key)
	if err != nil {
		s.logger.Error("failed to open locker", zap.Int("locker", number), zap.Error(err))
		s.console.Printf("%s %v\n", errPrefix, err)
		return nil, nil
	}
	return locker, nil
}

func (s *Shell) editLocker(locker *cloakroom.Locker) error {
	for {
		s.printLocker(locker)
		s.console.Println("1) Change number of coats")
		s.console.Println("2) Change number of backpacks")
		s.console.Println("3) Change number of umbrellas")
		s.console.Println("4) Change number of other items")
		s.console.Println("5) Close locker")
		s.console.Println()

		option, err := s.menuOption(5)
		if err != nil {
			return s.abandon(locker, err)
		}
		if option == 5 {
			return s.closeLocker(locker)
		}

		category := cloakroom.Categories()[option-1]
		n, err := s.console.ReadInt(fmt.Sprintf("Enter number of %s: ", category), 0, math.MaxUint8)
		if err != nil {
			return s.abandon(locker, err)
		}
		if err := locker.Set(category, uint8(n)); err != nil {
			if !errors.Is(err, cloakroom.ErrCapacityExceeded) {
				return err
			}
			s.console.Error(err.Error())
			if err := s.console.Halt(); err != nil {
				return s.abandon(locker, err)
			}
		}
	}
}

func (s *Shell) closeLocker(locker *cloakroom.Locker) error {
	items := locker.Items()
	key, err := s.room.Close(locker)
	if err != nil {
		return fmt.Errorf("close locker %d: %w", locker.Number(), err)
	}
	s.keys[key.LockerNumber()] = key

	s.console.Println(rule)
	if items.Total() > 0 {
		s.console.Printf("Locker number %d has been closed and key has been obtained. Contents are as follows:\n", key.LockerNumber())
		s.console.Println(items.String())
	} else {
		s.console.Printf("Locker number %d, which is empty, has been closed and key has been obtained.\n", key.LockerNumber())
	}
	s.console.Println(rule)
	return s.console.Halt()
}

// abandon closes a locker left open when input fails so its slot is not
// stuck in the being-changed state.
func (s *Shell) abandon(locker *cloakroom.Locker, cause error) error {
	key, err := s.room.Close(locker)
	if err != nil {
		return errors.Join(cause, err)
	}
	s.keys[key.LockerNumber()] = key
	return cause
}

func (s *Shell) printLocker(locker *cloakroom.Locker) {
	s.console.Println()
	s.console.Println(rule)
	s.console.Printf("Current contents of locker number %d are:\n", locker.Number())
	s.console.Println(locker.Items().String())
	s.console.Printf("Total number of items currently in locker: %d, max items: %d\n", locker.Total(), locker.MaxItems())
	s.console.Println(rule)
	s.console.Println()
}

func (s *Shell) menuOption(max int) (int, error) {
	option, err := s.console.ReadInt(fmt.Sprintf("Please enter option between 1 and %d: ", max), 1, max)
	if err != nil {
		return 0, err
	}
	s.console.Println()
	return option, nil
}

func ignoreClosed(err error) error {
	if errors.Is(err, ErrInputClosed) {
		return nil
	}
	return err
}
