package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const localGameID = "local"

var (
	errQuit           = errors.New("quit")
	errHelp           = errors.New("help")
	errUnknownCommand = errors.New("unknown command")
	errOutOfRange     = errors.New("out of range")
)

var playHelp = heredoc.Doc(`
	Commands:
	  <1-9>         play the numbered cell
	  <row> <col>   play the cell at row and column (1-3)
	  jump <step>   go back (or forward) to a step of the move list
	  sort          reverse the order of the move list
	  help          show this help
	  quit          leave the game
`)

func Play() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Plays a game in the terminal",
		Long:  heredoc.Doc(`Two players share the terminal and type their moves in turn.`) + "\n" + playHelp,
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return playLoop(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// playLoop - reads commands from in until quit or end of input, redrawing the game after each one.
func playLoop(in io.Reader, out io.Writer) error {
	engine := tictactoe.NewEngine()
	render(out, engine.View(localGameID))

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		err := execute(engine, scanner.Text())
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, errHelp):
			fmt.Fprint(out, playHelp)
			continue
		case err != nil:
			fmt.Fprintf(out, "%v (type \"help\" for commands)\n", err)
			continue
		}

		view := engine.View(localGameID)
		render(out, view)

		if view.IsFinished() {
			fmt.Fprintln(out, "Game over. Type \"jump <step>\" to revisit a move or \"quit\" to leave.")
		}
	}
}

// execute - runs one line of input against the engine. Indexes are validated here; the engine trusts its callers.
func execute(engine *tictactoe.Engine, line string) error {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return errUnknownCommand
	}

	switch fields[0] {
	case "quit", "q", "exit":
		return errQuit
	case "help", "h", "?":
		return errHelp
	case "sort":
		engine.ToggleAscending()
		return nil
	case "jump", "j":
		if len(fields) != 2 {
			return errUnknownCommand
		}

		step, err := strconv.Atoi(fields[1])
		if err != nil {
			return errUnknownCommand
		}

		if step < 0 || step >= engine.Len() {
			return fmt.Errorf("step %d: %w", step, errOutOfRange)
		}

		engine.JumpTo(step)

		return nil
	}

	cell, err := parseCell(fields)
	if err != nil {
		return err
	}

	engine.ApplyMove(cell)

	return nil
}

// parseCell - "5" or "2 2" both name the center cell.
func parseCell(fields []string) (int, error) {
	numbers := make([]int, len(fields))
	for i, field := range fields {
		n, err := strconv.Atoi(field)
		if err != nil {
			return 0, errUnknownCommand
		}
		numbers[i] = n
	}

	switch len(numbers) {
	case 1:
		if numbers[0] < 1 || numbers[0] > len(entity.Board{}) {
			return 0, fmt.Errorf("cell %d: %w", numbers[0], errOutOfRange)
		}

		return numbers[0] - 1, nil
	case 2:
		row, col := numbers[0], numbers[1]
		if row < 1 || row > entity.BoardSize || col < 1 || col > entity.BoardSize {
			return 0, fmt.Errorf("row %d, col %d: %w", row, col, errOutOfRange)
		}

		return (row-1)*entity.BoardSize + col - 1, nil
	default:
		return 0, errUnknownCommand
	}
}
