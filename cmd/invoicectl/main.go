// invoicectl is a local companion tool: it passes the same access gate as
// the UI, fetches a saved document from the API and renders it to a PDF
// file. Useful for re-printing an invoice without opening the browser app.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/apiclient"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/config"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/editor"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/pdf"
	"github.com/eeyuub/auto-entrepreneur-invoice-generator/internal/session"
	"github.com/joho/godotenv"
)

var (
	apiFlag    = flag.String("api", "http://localhost:3001", "API base URL")
	docFlag    = flag.Uint("doc", 0, "Document id to render (0 lists documents)")
	outFlag    = flag.String("out", "", "Output PDF path (default document-<id>.pdf)")
	logoutFlag = flag.Bool("logout", false, "Discard the stored session and exit")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	sessionPath := cfg.Auth.SessionFile
	if sessionPath == "" {
		sessionPath = session.DefaultSessionPath()
	}
	gate := session.NewGate(cfg.Auth.SecretKey, session.NewFileStore(sessionPath))

	if *logoutFlag {
		if err := gate.Logout(); err != nil {
			log.Fatalf("logout: %v", err)
		}
		fmt.Println("Session discarded")
		return
	}

	if !gate.Authenticated() {
		if err := login(gate); err != nil {
			log.Fatalf("authentication failed: %v", err)
		}
	}

	api := apiclient.New(*apiFlag)
	ctx := context.Background()

	if *docFlag == 0 {
		listDocuments(ctx, api)
		return
	}

	doc, err := api.GetDocument(ctx, *docFlag)
	if err != nil {
		if apiclient.IsNotFound(err) {
			log.Fatalf("document %d not found", *docFlag)
		}
		log.Fatalf("fetch document: %v", err)
	}

	ed := editor.NewEditor(api)
	if err := ed.Load(doc); err != nil {
		log.Fatalf("load document: %v", err)
	}

	data, err := pdf.Render(ed.State())
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	out := *outFlag
	if out == "" {
		out = fmt.Sprintf("document-%d.pdf", doc.ID)
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		log.Fatalf("write %s: %v", out, err)
	}
	fmt.Printf("Wrote %s (%d bytes)\n", out, len(data))
}

// login prompts on stdin until the passphrase matches or input ends.
func login(gate *session.Gate) error {
	for {
		fmt.Print("Passphrase: ")
		var pass string
		if _, err := fmt.Scanln(&pass); err != nil {
			return err
		}
		err := gate.Login(pass)
		if err == nil {
			return nil
		}
		if !errors.Is(err, session.ErrBadPassphrase) {
			return err
		}
		fmt.Println("Incorrect passphrase, try again.")
	}
}

func listDocuments(ctx context.Context, api *apiclient.Client) {
	docs, err := api.ListDocuments(ctx)
	if err != nil {
		log.Fatalf("list documents: %v", err)
	}
	if len(docs) == 0 {
		fmt.Println("No saved documents")
		return
	}
	for _, d := range docs {
		fmt.Printf("%4d  %-8s %-30s %s  %10.2f DH\n", d.ID, d.Type, d.ClientName, d.Date, d.Total)
	}
}
