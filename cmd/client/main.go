// Package main is the interactive terminal client for the candidate
// service: it drives login/registration and a shell over the roster.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/vitesse-hr/vitesse/internal/client/api"
	"github.com/vitesse-hr/vitesse/internal/client/authflow"
	"github.com/vitesse-hr/vitesse/internal/client/roster"
	"github.com/vitesse-hr/vitesse/internal/client/session"
	"github.com/vitesse-hr/vitesse/internal/models"
)

var (
	version   string
	buildDate string
)

// prompt reads one line of input with the given label.
func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label + ": ")
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// optional converts an empty answer to an unset field.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// promptCandidate collects the create/update form from stdin.
func promptCandidate(scanner *bufio.Scanner) (models.CandidateRequest, error) {
	req := models.CandidateRequest{
		FirstName: prompt(scanner, "first name"),
		LastName:  prompt(scanner, "last name"),
		Email:     prompt(scanner, "email"),
	}
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return req, fmt.Errorf("first name, last name, and email are required")
	}
	if !roster.IsValidEmail(req.Email) {
		return req, fmt.Errorf("invalid email address")
	}
	phone := prompt(scanner, "phone (optional)")
	if phone != "" && !roster.IsValidPhone(phone) {
		return req, fmt.Errorf("invalid phone number")
	}
	req.Phone = optional(phone)
	req.Note = optional(prompt(scanner, "note (optional)"))
	req.LinkedinURL = optional(prompt(scanner, "linkedin URL (optional)"))
	return req, nil
}

func printCandidate(c models.Candidate) {
	star := " "
	if c.IsFavorite {
		star = "*"
	}
	fmt.Printf("%s %s  %s %s <%s>\n", star, c.ID, c.FirstName, c.LastName, c.Email)
}

// repl runs the interactive shell loop over the candidate roster.
func repl(repo *roster.Repository, store session.Store) {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	if err := repo.Load(ctx); err != nil {
		fmt.Println(repo.LastError())
	}

	for {
		fmt.Print("vitesse> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, list, get <id>, search <text>, fav, create, update <id>, delete <id>, favorite <id>, edit, select <id>, selection, batch-delete, whoami, logout, exit")
		case "list":
			if err := repo.Load(ctx); err != nil {
				fmt.Println(repo.LastError())
				continue
			}
			for _, c := range repo.Filtered() {
				printCandidate(c)
			}
		case "get":
			if len(args) < 2 {
				fmt.Println("Usage: get <id>")
				continue
			}
			if err := repo.LoadCandidate(ctx, args[1]); err != nil {
				fmt.Println(repo.LastError())
				continue
			}
			if c, ok := repo.Selected(); ok {
				printCandidate(c)
				if c.Phone != nil {
					fmt.Println("  phone:", *c.Phone)
				}
				if c.Note != nil {
					fmt.Println("  note:", *c.Note)
				}
				if c.LinkedinURL != nil {
					fmt.Println("  linkedin:", *c.LinkedinURL)
				}
			}
		case "search":
			repo.SetSearchText(strings.TrimSpace(strings.TrimPrefix(line, "search")))
			for _, c := range repo.Filtered() {
				printCandidate(c)
			}
		case "fav":
			repo.SetFavoritesOnly(!repo.FavoritesOnly())
			fmt.Println("favorites filter:", repo.FavoritesOnly())
		case "create":
			req, err := promptCandidate(scanner)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := repo.Create(ctx, req); err != nil {
				fmt.Println(repo.LastError())
			} else {
				fmt.Println("Candidate created")
			}
		case "update":
			if len(args) < 2 {
				fmt.Println("Usage: update <id>")
				continue
			}
			req, err := promptCandidate(scanner)
			if err != nil {
				fmt.Println(err)
				continue
			}
			if err := repo.Update(ctx, args[1], req); err != nil {
				fmt.Println(repo.LastError())
			} else {
				fmt.Println("Candidate updated")
			}
		case "delete":
			if len(args) < 2 {
				fmt.Println("Usage: delete <id>")
				continue
			}
			if err := repo.Delete(ctx, args[1]); err != nil {
				fmt.Println(repo.LastError())
			} else {
				fmt.Println("Candidate deleted")
			}
		case "favorite":
			if len(args) < 2 {
				fmt.Println("Usage: favorite <id>")
				continue
			}
			if err := repo.ToggleFavorite(ctx, args[1]); err != nil {
				fmt.Println(repo.LastError())
			} else {
				fmt.Println("Favorite toggled")
			}
		case "edit":
			repo.SetMultiSelect(!repo.MultiSelect())
			fmt.Println("multi-select:", repo.MultiSelect())
		case "select":
			if len(args) < 2 {
				fmt.Println("Usage: select <id>")
				continue
			}
			if !repo.MultiSelect() {
				fmt.Println("Enable multi-select first with 'edit'")
				continue
			}
			repo.ToggleSelection(args[1])
		case "selection":
			for _, id := range repo.SelectedIDs() {
				fmt.Println(id)
			}
		case "batch-delete":
			repo.DeleteSelected(ctx)
			if msg := repo.LastError(); msg != "" {
				fmt.Println(msg)
			} else {
				fmt.Println("Selected candidates deleted")
			}
		case "whoami":
			if _, ok := store.Token(); !ok {
				fmt.Println("not logged in")
			} else if store.IsAdmin() {
				fmt.Println("logged in (admin)")
			} else {
				fmt.Println("logged in")
			}
		case "logout":
			if err := store.Clear(); err != nil {
				fmt.Println("logout failed:", err)
			} else {
				fmt.Println("Session cleared")
				return
			}
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// main parses command-line flags and dispatches to the login, register,
// or shell commands.
func main() {
	var (
		cmd         string
		baseURL     string
		sessionFile string
		email       string
		password    string
		firstName   string
		lastName    string
		confirm     string
		showVer     bool
	)

	flag.StringVar(&cmd, "cmd", "", "command: login | register | shell")
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "candidate API base URL")
	flag.StringVar(&sessionFile, "session", "session.json", "path to the session file")
	flag.StringVar(&email, "email", "", "account email")
	flag.StringVar(&password, "password", "", "account password")
	flag.StringVar(&firstName, "first", "", "first name for registration")
	flag.StringVar(&lastName, "last", "", "last name for registration")
	flag.StringVar(&confirm, "confirm", "", "password confirmation for registration")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Vitesse Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	store := session.NewFileStore(sessionFile)
	client := api.New(baseURL, store, api.WithLogger(logger))

	switch cmd {
	case "login":
		flow := authflow.NewLoginFlow(client, store)
		flow.SetEmail(email)
		flow.SetPassword(password)
		if err := flow.Login(context.Background()); err != nil {
			log.Fatal(flow.ErrorMessage())
		}
		fmt.Println("Login successful")
	case "register":
		flow := authflow.NewRegisterFlow(client, store)
		flow.SetFirstName(firstName)
		flow.SetLastName(lastName)
		flow.SetEmail(email)
		flow.SetPassword(password)
		flow.SetConfirmPassword(confirm)
		if err := flow.Register(context.Background()); err != nil {
			if flow.IsRegistered() {
				fmt.Println(flow.ErrorMessage())
				return
			}
			log.Fatal(flow.ErrorMessage())
		}
		fmt.Println("Registration successful")
	case "shell":
		if _, ok := store.Token(); !ok {
			log.Fatal("no session found, run -cmd=login first")
		}
		repo := roster.New(client, store)
		repl(repo, store)
	default:
		log.Fatalf("unknown command: %s", cmd)
	}
}
