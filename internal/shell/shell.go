package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/iamasit07/connect4-minimax/internal/domain"
	"go.uber.org/zap"
)

const prompt = "connect4> "

const helpText = `Commands (the first letter is enough):
  new            start a new game, you open
  level <n>      search depth of the machine (1-5)
  switch         start a new game, the machine opens
  move <column>  drop your token into column 1-7, the machine replies
  witness        show the winning line
  print          show the board
  help           show this text
  quit           leave the program
`

// Shell is the interactive console front end.
type Shell struct {
	in    *bufio.Scanner
	out   io.Writer
	opts  []domain.Option
	board *domain.Board
	log   *zap.SugaredLogger

	// TrapInterrupt makes Ctrl-C cancel a running search instead of
	// terminating the process.
	TrapInterrupt bool
}

func New(in io.Reader, out io.Writer, log *zap.SugaredLogger, opts ...domain.Option) (*Shell, error) {
	board, err := domain.NewBoard(opts...)
	if err != nil {
		return nil, err
	}
	return &Shell{
		in:    bufio.NewScanner(in),
		out:   out,
		opts:  opts,
		board: board,
		log:   log.Named("shell"),
	}, nil
}

// Run reads commands until quit or end of input.
func (s *Shell) Run(ctx context.Context) error {
	for {
		fmt.Fprint(s.out, prompt)
		if !s.in.Scan() {
			return s.in.Err()
		}

		fields := strings.Fields(s.in.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0])[0] {
		case 'n':
			s.newGame()
		case 'l':
			s.level(fields[1:])
		case 's':
			s.newGame()
			s.machineMove(ctx)
		case 'm':
			s.move(ctx, fields[1:])
		case 'w':
			s.witness()
		case 'p':
			fmt.Fprint(s.out, s.board)
		case 'h':
			fmt.Fprint(s.out, helpText)
		case 'q':
			return nil
		default:
			s.errorf("Invalid command! Type help for a list of commands.")
		}
	}
}

// newGame keeps the current level.
func (s *Shell) newGame() {
	opts := append(append([]domain.Option(nil), s.opts...), domain.WithLevel(s.board.Level()))
	board, err := domain.NewBoard(opts...)
	if err != nil {
		s.fault(err)
		return
	}
	s.board = board
}

func (s *Shell) level(args []string) {
	n, ok := s.intArg(args)
	if !ok {
		return
	}
	board, err := s.board.SetLevel(n)
	if err != nil {
		s.fault(err)
		return
	}
	s.board = board
}

func (s *Shell) move(ctx context.Context, args []string) {
	col, ok := s.intArg(args)
	if !ok {
		return
	}
	if col < 1 || col > domain.Columns {
		s.errorf("Column must be between 1 and %d.", domain.Columns)
		return
	}

	board, ok, err := s.board.Move(col - 1)
	if err != nil {
		s.fault(err)
		return
	}
	if !ok {
		s.errorf("Column %d is full. Choose another one.", col)
		return
	}
	s.board = board

	if s.announceEnd() {
		return
	}
	s.machineMove(ctx)
}

func (s *Shell) machineMove(ctx context.Context) {
	ctx, stop := s.searchContext(ctx)
	defer stop()

	before := s.board.Cells()
	board, _, err := s.board.MachineMove(ctx)
	if errors.Is(err, context.Canceled) {
		s.errorf("Machine move cancelled.")
		return
	}
	if err != nil {
		s.fault(err)
		return
	}
	s.board = board

	after := board.Cells()
	for row := range after {
		for col := range after[row] {
			if before[row][col] != after[row][col] {
				fmt.Fprintf(s.out, "Machine put a token into column %d.\n", col+1)
			}
		}
	}
	s.announceEnd()
}

func (s *Shell) searchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.TrapInterrupt {
		return signal.NotifyContext(ctx, os.Interrupt)
	}
	return context.WithCancel(ctx)
}

// announceEnd prints the result once the game is over.
func (s *Shell) announceEnd() bool {
	if !s.board.IsGameOver() {
		return false
	}
	switch s.board.Winner() {
	case domain.Human:
		fmt.Fprintln(s.out, "Congratulations! You won.")
	case domain.Machine:
		fmt.Fprintln(s.out, "Sorry! Machine wins.")
	default:
		fmt.Fprintln(s.out, "Nobody wins. Tie game.")
	}
	return true
}

func (s *Shell) witness() {
	coords, err := s.board.Witness()
	if errors.Is(err, domain.ErrNoWinner) {
		s.errorf("There is no winner yet.")
		return
	}
	if err != nil {
		s.fault(err)
		return
	}

	parts := make([]string, len(coords))
	for i, at := range coords {
		parts[i] = fmt.Sprintf("(%d,%d)", at.Row+1, at.Col+1)
	}
	fmt.Fprintln(s.out, strings.Join(parts, ", "))
}

func (s *Shell) intArg(args []string) (int, bool) {
	if len(args) != 1 {
		s.errorf("Expected exactly one number.")
		return 0, false
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		s.errorf("Invalid number %q.", args[0])
		return 0, false
	}
	return n, true
}

func (s *Shell) fault(err error) {
	if !domain.IsUsageFault(err) {
		s.log.Errorw("Internal error", "error", err)
	}
	s.errorf("%s.", capitalize(err.Error()))
}

func (s *Shell) errorf(format string, args ...any) {
	fmt.Fprintf(s.out, "Error! "+format+"\n", args...)
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
