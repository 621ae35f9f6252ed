package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"monad-minesweeper/internal/config"
	"monad-minesweeper/internal/game"
)

// Local play against the engine, without a wallet or the chain.
func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Println("config:", err)
		os.Exit(1)
	}
	g := game.NewGameState(cfg.Game, nil)

	fmt.Printf("Minesweeper %dx%d, mines %s\n", cfg.Game.BoardSize, cfg.Game.BoardSize, cfg.Game.Mines)
	fmt.Println("s <mines> start | r <row> <col> reveal | f <row> <col> flag | q quit")

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		var res game.Result
		switch parts[0] {
		case "q":
			return
		case "s":
			if len(parts) != 2 {
				fmt.Println("usage: s <mines>")
				continue
			}
			n, _ := strconv.Atoi(parts[1])
			if err := g.Start(n); err != nil {
				if errors.Is(err, game.ErrInvalidMineCount) {
					fmt.Println("mines range:", cfg.Game.Mines)
				} else {
					fmt.Println(err)
				}
				continue
			}
		case "r", "f":
			if len(parts) != 3 {
				fmt.Printf("usage: %s <row> <col>\n", parts[0])
				continue
			}
			r, _ := strconv.Atoi(parts[1])
			c, _ := strconv.Atoi(parts[2])
			if parts[0] == "r" {
				res, err = g.Reveal(r, c)
			} else {
				res, err = g.Flag(r, c)
			}
			if err != nil {
				if !errors.Is(err, game.ErrInvalidCellAction) {
					fmt.Println(err)
				}
				continue
			}
		default:
			fmt.Println("unknown command")
			continue
		}

		view := game.View(g)
		fmt.Print(view.String())
		switch res.Outcome {
		case game.OutcomeWon:
			js, _ := json.MarshalIndent(res, "", "  ")
			fmt.Printf("You win! score %d\n%s\n", res.Score, js)
		case game.OutcomeLost:
			fmt.Println("Boom. Start again with s <mines>.")
		default:
			if view.IsStarted {
				fmt.Printf("mines remaining: %d\n", view.MinesRemaining)
			}
		}
	}
}
