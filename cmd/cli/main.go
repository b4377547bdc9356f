// Command-line client for the todo API. The login session is kept in a
// JSON file under the user config dir, loaded at startup, written at
// login and removed at logout.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/tomnaj/todo-app/internal/client"

	"golang.org/x/term"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	base := os.Getenv("TODO_API_URL")
	if base == "" {
		base = "http://localhost:8080"
	}

	sessions := client.NewSessionFile(sessionPath())
	session, err := sessions.Load()
	if err != nil {
		log.Fatalf("session: %v", err)
	}
	api := client.New(base)
	api.Restore(session)

	ctx := context.Background()
	if err := run(ctx, api, sessions, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, api *client.Client, sessions *client.SessionFile, cmd string, args []string) error {
	switch cmd {
	case "register":
		email, password, err := promptCredentials()
		if err != nil {
			return err
		}
		name := prompt("name (optional): ")
		u, err := api.Register(ctx, email, password, name)
		if err != nil {
			return err
		}
		fmt.Printf("registered %s, now run: todo login\n", u.Email)
		return nil

	case "login":
		email, password, err := promptCredentials()
		if err != nil {
			return err
		}
		u, err := api.Login(ctx, email, password)
		if err != nil {
			return err
		}
		if err := sessions.Save(api.Session()); err != nil {
			return err
		}
		fmt.Printf("logged in as %s\n", u.Email)
		return nil

	case "logout":
		api.Logout()
		if err := sessions.Clear(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil

	case "list":
		tasks, err := api.Tasks(ctx)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("no tasks")
			return nil
		}
		for _, t := range tasks {
			fmt.Printf("%-12s %-36s %s\n", t.Status, t.ID, t.Title)
		}
		return nil

	case "add":
		if len(args) < 1 {
			return fmt.Errorf("usage: todo add <title> [description]")
		}
		desc := strings.Join(args[1:], " ")
		t, err := api.CreateTask(ctx, args[0], desc, "")
		if err != nil {
			return err
		}
		fmt.Printf("created %s\n", t.ID)
		return nil

	case "get":
		if len(args) != 1 {
			return fmt.Errorf("usage: todo get <id>")
		}
		t, err := api.Task(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s\n  status: %s\n  created: %s\n  updated: %s\n",
			t.Title, t.Status, t.CreatedAt.Local(), t.UpdatedAt.Local())
		if t.Description != "" {
			fmt.Printf("  %s\n", t.Description)
		}
		return nil

	case "start", "done":
		if len(args) != 1 {
			return fmt.Errorf("usage: todo %s <id>", cmd)
		}
		status := "IN_PROGRESS"
		if cmd == "done" {
			status = "DONE"
		}
		t, err := api.UpdateTask(ctx, args[0], client.TaskPatch{Status: &status})
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s\n", t.Title, t.Status)
		return nil

	case "edit":
		if len(args) < 2 {
			return fmt.Errorf("usage: todo edit <id> <title>")
		}
		title := strings.Join(args[1:], " ")
		t, err := api.UpdateTask(ctx, args[0], client.TaskPatch{Title: &title})
		if err != nil {
			return err
		}
		fmt.Printf("renamed to %q\n", t.Title)
		return nil

	case "rm":
		if len(args) != 1 {
			return fmt.Errorf("usage: todo rm <id>")
		}
		if err := api.DeleteTask(ctx, args[0]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: todo <command> [args]

  register            create an account
  login               log in and store the session
  logout              drop the stored session
  list                list your tasks
  add <title> [desc]  create a task
  get <id>            show one task
  start <id>          mark IN_PROGRESS
  done <id>           mark DONE
  edit <id> <title>   rename a task
  rm <id>             delete a task`)
}

func prompt(label string) string {
	fmt.Print(label)
	r := bufio.NewReader(os.Stdin)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptCredentials() (email, password string, err error) {
	email = prompt("email: ")
	fmt.Print("password: ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}
	return email, string(b), nil
}

func sessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "todo", "session.json")
}
