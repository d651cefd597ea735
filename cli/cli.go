// Package cli is the line-oriented front end: it reads commands from a
// reader, feeds them to the engine and waits out each spin before reading
// the next line.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nathoo/spinwheel/console"
	"github.com/nathoo/spinwheel/engine"
	"github.com/nathoo/spinwheel/engine/events"
	"github.com/nathoo/spinwheel/engine/sched"
	"github.com/nathoo/spinwheel/types"
)

// CLI handles terminal interaction with the user.
type CLI struct {
	*console.Session

	Queue     *sched.Queue // the engine's scheduler; drained after each spin
	In        io.Reader
	Out       io.Writer
	EchoInput bool                // echo each line after the prompt, for script playback
	Sleep     func(time.Duration) // waits out a spin; nil skips the wait
}

// New creates a CLI for eng, whose settle callbacks must be scheduled on q.
func New(eng *engine.Engine, q *sched.Queue) *CLI {
	c := &CLI{
		Session: console.NewSession(eng),
		Queue:   q,
		In:      os.Stdin,
		Out:     os.Stdout,
		Sleep:   time.Sleep,
	}
	eng.Events.Subscribe(events.SpinSettled, func(ev types.Event) {
		c.println(console.SettledLine(fmt.Sprint(ev.Data["label"])))
		if c.Trace {
			c.system(console.Trace([]types.Event{ev})...)
		}
	})
	return c
}

// Run prints the title and items, then reads commands until EOF or /quit.
func (c *CLI) Run() {
	if title := c.Engine.State.Title; title != "" {
		c.println(title, "")
	}
	c.println(c.Engine.Step("list").Output...)

	lines := bufio.NewScanner(c.In)
	for {
		fmt.Fprint(c.Out, "> ")
		if !lines.Scan() {
			return
		}
		input := strings.TrimSpace(lines.Text())
		if input == "" || strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.println(input)
		}
		if quit := c.handle(input); quit {
			return
		}
	}
}

// handle runs one input line. It reports true when the user quits.
func (c *CLI) handle(input string) bool {
	if console.IsMeta(input) {
		reply := c.Meta(input)
		c.system(reply.Lines...)
		if reply.Reloaded {
			c.println(c.Engine.Step("list").Output...)
		}
		return reply.Quit
	}

	input, ok := c.Resolve(input)
	if !ok {
		c.println("Nothing to repeat.")
		return false
	}

	result := c.Engine.Step(input)
	c.println(result.Output...)
	if c.Trace {
		c.system(console.Trace(result.Events)...)
	}
	if c.Engine.Spinning() {
		c.waitForSettle()
	}
	return false
}

// waitForSettle sleeps for the remaining spin time, then fires the settle.
func (c *CLI) waitForSettle() {
	wait, ok := c.Queue.NextDue()
	if !ok {
		return
	}
	if c.Sleep != nil && wait > 0 {
		c.Sleep(wait)
	}
	c.Queue.Advance(wait)
}

func (c *CLI) println(lines ...string) {
	for _, l := range lines {
		fmt.Fprintln(c.Out, l)
	}
}

// system prints lines in brackets, marking them as outside the wheel.
func (c *CLI) system(lines ...string) {
	for _, l := range lines {
		fmt.Fprintf(c.Out, "[%s]\n", l)
	}
}
