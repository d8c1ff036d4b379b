package main

import (
	"fmt"
	"io"
	"os"

	"github.com/keshon/agorabot/internal/catalog"
	"github.com/keshon/agorabot/internal/config"
	"github.com/keshon/agorabot/internal/console"
	"github.com/keshon/agorabot/internal/docs"
	"github.com/keshon/agorabot/pkg/cmd"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Collaborators are stubs: only names, descriptions and usages matter.
	registry := cmd.NewRegistry()
	err = catalog.Register(registry, catalog.Options{
		Strategy:    console.New(io.Discard, nil),
		Prefix:      cfg.CommandPrefix,
		DigestStore: stubStore{},
		History:     stubHistory{},
		Sender:      stubSender{},
		Checker:     stubChecker(),
		Jobs:        stubJobs{},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := docs.UpdateReadme(".", registry, cfg.CommandPrefix); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("README.md updated with current commands")
}
