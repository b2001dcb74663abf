package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alexanderramin/studygo/internal/contract"
	"github.com/alexanderramin/studygo/internal/domain"
	"github.com/alexanderramin/studygo/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// passwordEnv supplies the password for --user in scripts.
const passwordEnv = "STUDYGO_PASSWORD"

type identityFlags struct {
	user     string
	password string
	guest    bool
}

func bindIdentityFlags(fs *pflag.FlagSet, f *identityFlags) {
	fs.StringVarP(&f.user, "user", "u", "", "Sign in as this user")
	fs.StringVar(&f.password, "password", "", "Password for --user (or set "+passwordEnv+")")
	fs.BoolVar(&f.guest, "guest", false, "Continue as guest; nothing is saved")
}

// resolveIdentity signs the caller in, or returns the guest identity when no
// user was named.
func resolveIdentity(cmd *cobra.Command, app *App, f *identityFlags) (domain.Identity, error) {
	username := strings.TrimSpace(f.user)
	if f.guest || username == "" {
		return domain.Guest(), nil
	}
	if app.Accounts == nil {
		return domain.Identity{}, errors.New("accounts are not configured")
	}

	password, err := passwordFor(app, f, username)
	if err != nil {
		return domain.Identity{}, err
	}
	user, err := app.Accounts.Authenticate(cmd.Context(), contract.Credentials{Username: username, Password: password})
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.IdentityOf(user), nil
}

// requireAccount is resolveIdentity for commands that only make sense with
// stored data.
func requireAccount(cmd *cobra.Command, app *App, f *identityFlags) (domain.Identity, error) {
	id, err := resolveIdentity(cmd, app, f)
	if err != nil {
		return id, err
	}
	if id.IsGuest() {
		return id, fmt.Errorf("%w (use --user)", service.ErrGuest)
	}
	return id, nil
}

func passwordFor(app *App, f *identityFlags, username string) (string, error) {
	if f.password != "" {
		return f.password, nil
	}
	if v := os.Getenv(passwordEnv); v != "" {
		return v, nil
	}
	if !app.interactive() {
		return "", fmt.Errorf("password required for %q: use --password or %s", username, passwordEnv)
	}
	var password string
	if err := passwordForm(username, &password).Run(); err != nil {
		return "", err
	}
	return password, nil
}
