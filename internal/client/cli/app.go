package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophfav/internal/client/client"
	"github.com/dmitrijs2005/gophfav/internal/client/config"
)

type App struct {
	config   *config.Config
	client   client.Client
	userName string
	reader   *bufio.Reader
	out      io.Writer
}

func NewApp(c *config.Config) *App {
	return newApp(c, client.NewHTTPClient(c.ServerAddr, c.RequestTimeout), os.Stdin, os.Stdout)
}

func newApp(c *config.Config, cl client.Client, in io.Reader, out io.Writer) *App {
	return &App{config: c, client: cl, reader: bufio.NewReader(in), out: out}
}

func (a *App) Run(ctx context.Context) {
	fmt.Fprintf(a.out, "gophfav CLI, server %s (type 'help' for commands)\n", a.config.ServerAddr)
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.client.LoggedIn()
}

func (a *App) status() string {
	if a.userName == "" {
		return "(anonymous)"
	}
	return fmt.Sprintf("(%s)", a.userName)
}
