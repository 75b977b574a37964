package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

// Swappable for tests.
var bcryptGenerate = bcrypt.GenerateFromPassword

func main() {
	rootCmd := &cobra.Command{
		Use:   "fakebank-cli",
		Short: "FakeBank CLI tool",
		Long:  `A command line interface for interacting with the FakeBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FakeBank API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("FAKEBANK_TOKEN"), "Bearer token (defaults to FAKEBANK_TOKEN)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		registerCmd(),
		loginCmd(),
		accountsCmd(),
		transactionsCmd(),
		searchCmd(),
		transferCmd(),
		chargeCmd(),
		hashPasswordCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func registerCmd() *cobra.Command {
	var accountType string

	cmd := &cobra.Command{
		Use:   "register <username> <pin>",
		Short: "Register a new user with an initial account",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/auth/register", map[string]string{
				"username":     args[0],
				"pin":          args[1],
				"account_type": accountType,
			})
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "personal", "Account type: personal or business")
	return cmd
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <pin>",
		Short: "Authenticate and print a bearer token",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/auth/login", map[string]string{
				"username": args[0],
				"pin":      args[1],
			})
		},
	}
}

func accountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List your accounts",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts", nil)
		},
	}
}

func transactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transactions <account-number>",
		Short: "List an account's transactions, newest first",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts/"+args[0]+"/transactions", nil)
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <account-number>",
		Short: "Look up any account by number",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodGet, "/api/v1/accounts/search?account_number="+args[0], nil)
		},
	}
}

func transferCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "transfer <from-number> <to-number> <amount>",
		Short: "Transfer money between accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/transfers", map[string]string{
				"from_account_number": args[0],
				"to_account_number":   args[1],
				"amount":              args[2],
				"description":         description,
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "Transaction description")
	return cmd
}

func chargeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "charge <business-number> <customer> <customer-pin> <amount> <reason>",
		Short: "Charge a customer from a business account",
		Args:  cobra.ExactArgs(5),
		Run: func(cmd *cobra.Command, args []string) {
			doJSON(http.MethodPost, "/api/v1/charges", map[string]string{
				"business_account_number": args[0],
				"customer_username":       args[1],
				"customer_pin":            args[2],
				"amount":                  args[3],
				"reason":                  args[4],
			})
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-pin <pin>",
		Short: "Hash a PIN the way the server stores it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashed, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hashed))
			return nil
		},
	}
}

func doJSON(method, path string, body any) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, truncate(string(data), 2000))
		os.Exit(1)
	}

	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	printJSON(result)
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode output: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
