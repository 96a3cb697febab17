package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/samroche/recyco/internal/browser"
	"github.com/samroche/recyco/internal/logging"
	"github.com/samroche/recyco/internal/tui"
	"github.com/samroche/recyco/pkg/client"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// configDir returns ~/.recyco.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".recyco"), nil
}

func configPath(name string) (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// readToken returns the access token using precedence: env var > file > empty.
func readToken() string {
	if tok := os.Getenv("RECYCO_TOKEN"); tok != "" {
		return tok
	}
	path, err := configPath("token")
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func writeConfigFile(name string, data []byte) error {
	path, err := configPath(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create ~/.recyco dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

func saveToken(tok string) error {
	return writeConfigFile("token", []byte(tok))
}

// saveSession persists the refresh cookie jar so token renewal survives
// restarts. The access token itself is short-lived; the cookie is the
// durable credential.
func saveSession(cookies []*http.Cookie) error {
	type stored struct {
		Name    string `json:"name"`
		Value   string `json:"value"`
		Expires string `json:"expires,omitempty"`
	}
	out := make([]stored, 0, len(cookies))
	for _, c := range cookies {
		s := stored{Name: c.Name, Value: c.Value}
		if !c.Expires.IsZero() {
			s.Expires = c.Expires.UTC().Format("2006-01-02T15:04:05Z07:00")
		}
		out = append(out, s)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return writeConfigFile("session", data)
}

func loadSession() []*http.Cookie {
	path, err := configPath("session")
	if err != nil {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var stored []struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, s := range stored {
		cookies = append(cookies, &http.Cookie{Name: s.Name, Value: s.Value})
	}
	return cookies
}

// newClient builds a client with the stored session attached and wired to
// persist rotated credentials.
func newClient(apiURL, token string) *client.Client {
	c := client.New(apiURL, token)
	c.SetCookies(loadSession())
	c.OnTokenRefresh = func(tok string) {
		if err := saveToken(tok); err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not persist refreshed token: %v\n", err)
		}
	}
	return c
}

func run() error {
	apiURL := os.Getenv("RECYCO_API_URL")
	if apiURL == "" {
		apiURL = "https://api.recyco.fr"
	}

	logPath, err := configPath("debug.log")
	if err == nil {
		_, closeLog := logging.Setup(logPath, os.Getenv("RECYCO_DEBUG") != "")
		defer closeLog() //nolint:errcheck
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "version", "-v":
			fmt.Println("recyco " + version)
			return nil
		case "help", "--help", "-h":
			printHelp()
			return nil
		case "web":
			return runWeb()
		case "login":
			return runLogin(apiURL)
		case "register":
			return runRegister(apiURL)
		case "logout":
			return runLogout(apiURL)
		}
	}

	token := readToken()
	if token == "" {
		printGreeting()
		return nil
	}
	c := newClient(apiURL, token)
	// Only force re-login on actual auth failures, not transient errors.
	if _, err := c.Me(context.Background()); err != nil {
		if errors.Is(err, client.ErrSessionExpired) || client.IsStatus(err, 401) {
			printGreeting()
			return nil
		}
		// Network/server error — launch the TUI anyway, views surface it.
	}
	return launchTUI(c)
}

func launchTUI(c *client.Client) error {
	app := tui.NewApp(c)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	// Refresh rotates the session cookie; keep the stored one current.
	if err := saveSession(c.Cookies()); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not persist session: %v\n", err)
	}
	return nil
}

// promptLine reads one trimmed line from stdin.
func promptLine(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo.
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}

func runLogin(apiURL string) error {
	email, err := promptLine("email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("mot de passe: ")
	if err != nil {
		return err
	}

	c := newClient(apiURL, "")
	result, err := c.Login(context.Background(), email, password)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			// The server's refusal message, word for word.
			return errors.New(apiErr.Message)
		}
		return fmt.Errorf("login: %w", err)
	}

	if err := saveToken(result.AccessToken); err != nil {
		return err
	}
	if err := saveSession(c.Cookies()); err != nil {
		return err
	}
	fmt.Printf("Bienvenue, @%s ! (%d pts)\n\n", result.User.Username, result.User.TotalScore)

	return launchTUI(c)
}

func runRegister(apiURL string) error {
	username, err := promptLine("nom d'utilisateur: ")
	if err != nil {
		return err
	}
	email, err := promptLine("email: ")
	if err != nil {
		return err
	}
	password, err := promptPassword("mot de passe: ")
	if err != nil {
		return err
	}
	confirm, err := promptPassword("confirmez le mot de passe: ")
	if err != nil {
		return err
	}
	if password != confirm {
		return errors.New("les mots de passe ne correspondent pas")
	}

	c := newClient(apiURL, "")
	if err := c.Register(context.Background(), username, email, password); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			return errors.New(apiErr.Message)
		}
		return fmt.Errorf("register: %w", err)
	}
	fmt.Printf("Compte créé ! Connectez-vous avec: recyco login\n")
	return nil
}

func runLogout(apiURL string) error {
	// Best-effort server-side revocation of the refresh session.
	if tok := readToken(); tok != "" {
		c := newClient(apiURL, tok)
		if err := c.Logout(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "warning: server logout failed: %v\n", err)
		}
	}

	removed := false
	for _, name := range []string{"token", "session"} {
		path, err := configPath(name)
		if err != nil {
			return err
		}
		if err := os.Remove(path); err == nil {
			removed = true
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
	}
	if !removed {
		fmt.Println("Already logged out.")
		return nil
	}
	fmt.Println("Logged out.")
	return nil
}

func runWeb() error {
	siteURL := os.Getenv("RECYCO_SITE_URL")
	if siteURL == "" {
		siteURL = "https://recyco.fr"
	}
	browser.Open(siteURL)
	return nil
}
