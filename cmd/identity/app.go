package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/meridianapp/identity/appwrite"
	"github.com/meridianapp/identity/gateway"
	"github.com/meridianapp/identity/internal/utils"
)

// App wires the REPL to the identity gateway. Sessions live inside the
// remote client, so the loop is the natural unit of a signed-in lifetime.
type App struct {
	service *gateway.Service
	reader  *bufio.Reader
}

func newApp(service *gateway.Service, reader *bufio.Reader) *App {
	return &App{service: service, reader: reader}
}

func (a *App) runREPL(ctx context.Context) error {
	fmt.Println(`Type "help" for available commands.`)
	for {
		fmt.Print("identity> ")
		line, err := a.reader.ReadString('\n')
		if err != nil {
			return nil
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			printHelp()
		case "signup":
			a.report(a.signUp(ctx))
		case "signin":
			a.report(a.signIn(ctx))
		case "signin-oauth":
			a.report(a.signInOAuth(ctx, parts[1:]))
		case "whoami":
			a.report(a.whoAmI(ctx))
		case "jwt":
			a.report(a.createJWT(ctx))
		case "signout":
			a.report(a.service.SignOut(ctx))
		case "exit", "quit":
			return nil
		default:
			fmt.Printf("Unknown command %q, type \"help\"\n", parts[0])
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}

// report prints command failures instead of aborting the loop: the user
// corrects the input and retries, same as a screen re-showing the form.
func (a *App) report(err error) {
	if err != nil {
		fmt.Printf("Error: %s\n", err)
	}
}

func (a *App) signUp(ctx context.Context) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}
	fullName, err := promptLine(a.reader, "Full name (optional)")
	if err != nil {
		return err
	}

	if err := a.service.SignUp(ctx, email, password, fullName); err != nil {
		return err
	}
	fmt.Println("Account created, you are signed in.")
	return nil
}

func (a *App) signIn(ctx context.Context) error {
	email, password, err := a.promptCredentials()
	if err != nil {
		return err
	}

	if _, err := a.service.SignIn(ctx, email, password); err != nil {
		return err
	}
	fmt.Println("Signed in.")
	return nil
}

func (a *App) signInOAuth(ctx context.Context, args []string) error {
	provider := appwrite.ProviderGoogle
	if len(args) > 0 {
		provider = appwrite.Provider(args[0])
	}

	fmt.Println("Complete the sign-in in your browser...")
	session, err := a.service.SignInWithOAuthToken(ctx, provider)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as account %s via %s.\n", session.UserID, provider)
	return nil
}

func (a *App) whoAmI(ctx context.Context) error {
	state, err := a.service.CurrentSession(ctx)
	if err != nil {
		return err
	}
	if !state.Authenticated() {
		fmt.Println("Not signed in.")
		return nil
	}

	identity, err := a.service.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	profile := utils.Value(identity.Profile)
	fmt.Printf("Account:  %s (%s)\n", identity.Account.ID, identity.Account.Email)
	fmt.Printf("Profile:  %s <%s>\n", profile.FullName, profile.Email)
	return nil
}

func (a *App) createJWT(ctx context.Context) error {
	token, err := a.service.CreateJWT(ctx)
	if err != nil {
		return err
	}

	fmt.Println(token)
	if expiry, err := gateway.TokenExpiry(token); err == nil {
		fmt.Printf("Expires at %s\n", expiry.Format("15:04:05 MST"))
	}
	return nil
}

func (a *App) promptCredentials() (email, password string, err error) {
	email, err = promptLine(a.reader, "Email")
	if err != nil {
		return "", "", err
	}
	password, err = promptPassword()
	if err != nil {
		return "", "", err
	}
	if err := gateway.ValidateCredentials(email, password); err != nil {
		return "", "", err
	}
	return email, password, nil
}

func printHelp() {
	fmt.Println(`Available commands:
  signup                 create an account and sign in
  signin                 sign in with email and password
  signin-oauth [name]    sign in with an OAuth provider (default google)
  whoami                 show the current account and profile
  jwt                    issue a short-lived token for backend calls
  signout                delete the current session
  exit                   leave`)
}
