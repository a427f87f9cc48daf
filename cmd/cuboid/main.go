// Command cuboid is the referee-facing player process. The referee
// sends the player number on the first line; the process echoes it,
// then answers every board-state line with a move line until the
// referee sends -1.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cuboidai/cuboid"
	"github.com/cuboidai/cuboid/encoding/gif"
	"github.com/cuboidai/cuboid/game"
)

var (
	think    = flag.Duration("think", 4*time.Second, "thinking time per turn")
	thinkGet = flag.Duration("thinkget", 2*time.Second, "slice of the thinking time spent on the get when one is forced")
	seed     = flag.Int64("seed", 0, "search tree random seed, 0 seeds from the clock")
	monitor  = flag.String("monitor", "", "file receiving opponent moves and board snapshots")
	record   = flag.String("record", "", "write the game record to this GIF file")
)

func main() {
	flag.Parse()

	conf := cuboid.DefaultConfig()
	conf.Think = *think
	conf.ThinkGet = *thinkGet
	conf.MCTS.Seed = *seed
	if *monitor != "" {
		f, err := os.OpenFile(*monitor, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("open monitor: %v", err)
		}
		defer f.Close()
		conf.Monitor = f
	}
	if *record != "" {
		f, err := os.Create(*record)
		if err != nil {
			log.Fatalf("open record: %v", err)
		}
		defer f.Close()
		enc := gif.NewEncoder(2000, 2000)
		enc.Writer = f
		conf.Record = enc
	}

	in := bufio.NewReader(os.Stdin)
	line, err := in.ReadString('\n')
	if err != nil {
		log.Fatalf("read player number: %v", err)
	}
	id, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || (id != 1 && id != 2) {
		log.Fatalf("bad player number %q", strings.TrimSpace(line))
	}
	fmt.Println(id)

	p := cuboid.NewPlayer(game.Player(id-1), conf)
	if err := p.Run(in, os.Stdout); err != nil {
		log.Fatalf("game aborted: %v", err)
	}
}
