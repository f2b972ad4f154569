package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/meridianapp/identity/appwrite"
	"github.com/meridianapp/identity/browserflow"
	"github.com/meridianapp/identity/gateway"
	"github.com/meridianapp/identity/internal/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %s\n", err)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	if err := c.Validate(); err != nil {
		return err
	}

	logger := newLogger(c.GetLogLevel())

	client, err := appwrite.NewClient(c.GetEndpoint(), c.GetProjectID(), appwrite.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("remote client: %w", err)
	}

	service, err := gateway.New(
		gateway.Remotes{Accounts: client.Accounts(), Documents: client.Databases()},
		c.GetDatabaseID(),
		c.GetProfilesCollectionID(),
		gateway.WithLogger(logger),
		gateway.WithRedirectListener(func(ctx context.Context) (gateway.RedirectListener, error) {
			return browserflow.Listen(ctx, c.GetOAuthCallbackPort())
		}),
	)
	if err != nil {
		return fmt.Errorf("gateway: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(service, bufio.NewReader(os.Stdin))
	return app.runREPL(ctx)
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(parsed).With().Timestamp().Logger()
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
