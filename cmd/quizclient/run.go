package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"quizclient/internal/client"
	"quizclient/internal/render"
	"quizclient/internal/transport"
)

// wsDialer adapts the websocket transport to the client's Dialer.
type wsDialer struct {
	log *zap.Logger
}

func (d wsDialer) Dial(ctx context.Context, endpoint string) (client.Conn, error) {
	return transport.Dial(ctx, endpoint, d.log)
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}

func run(ctx context.Context, cfg *Config) error {
	logger, err := newLogger(cfg.verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(ctx, client.Config{
		Endpoint: cfg.endpoint,
		Dialer:   wsDialer{log: logger},
		Renderer: render.NewConsole(os.Stdout),
		Logger:   logger,
	})

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			c.Inbox() <- client.Shutdown{}
			return nil
		case line, ok := <-lines:
			if !ok {
				c.Inbox() <- client.Shutdown{}
				return nil
			}
			msg, quit := parseCommand(line, cfg.name)
			if quit {
				c.Inbox() <- client.Shutdown{}
				return nil
			}
			if msg != nil {
				c.Inbox() <- msg
			}
		}
	}
}

// parseCommand maps one input line to a client action. Unknown input
// prints usage instead of being silently dropped.
func parseCommand(line, defaultName string) (client.Msg, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit":
		return nil, true
	case "host":
		return client.HostGame{}, false
	case "join":
		if len(args) == 0 {
			return client.OpenJoinForm{}, false
		}
		if len(args) == 1 && defaultName != "" {
			return client.JoinGame{Pin: args[0], Name: defaultName}, false
		}
		if len(args) < 2 {
			fmt.Println("usage: join <pin> <name>")
			return nil, false
		}
		return client.JoinGame{Pin: args[0], Name: strings.Join(args[1:], " ")}, false
	case "start":
		return client.StartGame{}, false
	case "answer":
		if len(args) != 1 {
			fmt.Println("usage: answer <number>")
			return nil, false
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Println("usage: answer <number>")
			return nil, false
		}
		// Options are shown 1-based; the wire uses 0-based indices.
		return client.SubmitAnswer{Option: n - 1}, false
	case "speed":
		return client.SubmitSpeedAnswer{Answer: strings.Join(args, " ")}, false
	case "tiebreak":
		return client.SubmitTiebreakAnswer{Answer: strings.Join(args, " ")}, false
	case "next":
		return client.NextQuestion{}, false
	case "nextround":
		return client.NextRound{}, false
	case "continue":
		return client.ContinueFromSpeedOrder{}, false
	case "pack":
		if len(args) != 1 {
			fmt.Println("usage: pack <id>")
			return nil, false
		}
		return client.SelectPack{PackID: args[0]}, false
	case "startpack":
		return client.StartPackQuestions{}, false
	case "submit":
		return client.SubmitPackAnswer{Answer: strings.Join(args, " ")}, false
	case "correct":
		return client.VerifyPackAnswer{Correct: true}, false
	case "wrong":
		return client.VerifyPackAnswer{Correct: false}, false
	case "endearly":
		return client.EndPackEarly{}, false
	case "endturn":
		return client.EndTurn{}, false
	case "end":
		return client.EndGame{}, false
	case "leave":
		return client.LeaveGame{}, false
	case "home":
		return client.ReturnToLanding{}, false
	default:
		fmt.Printf("unknown command %q\n", cmd)
		return nil, false
	}
}
