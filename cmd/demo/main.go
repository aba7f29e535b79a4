// File: cmd/demo/main.go
//
// Interactive terminal chat against a running server. Useful for poking
// the streaming endpoints without the frontend:
//
//	go run ./cmd/demo -url http://localhost:8080/api/chat -token $TOKEN
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"focus-guardian/internal/chat"
	"focus-guardian/internal/domain/model"
)

func main() {
	endpoint := flag.String("url", "http://localhost:8080/api/chat", "chat endpoint URL")
	token := flag.String("token", "", "bearer token (omit against a dev-mode server)")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	completer := chat.NewHTTPCompleter(*endpoint, *token)
	ctrl := chat.NewController(completer, nil, &logger)

	// Repaint the assistant line as chunks land.
	ctrl.SetOnUpdate(func(transcript []chat.Message) {
		last := transcript[len(transcript)-1]
		if last.Role == chat.RoleAssistant {
			fmt.Printf("\r\033[K< %s", last.Content)
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		cancel()
	}()

	fmt.Printf("connected to %s (empty line or Ctrl-D to quit)\n", *endpoint)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			break
		}

		if err := ctrl.Submit(ctx, line, model.ChatContext{}); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		fmt.Println()
	}
	fmt.Println("\nbye")
}
