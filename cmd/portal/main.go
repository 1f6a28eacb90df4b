package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"ridepilot/pkg/logger"
	"ridepilot/pkg/portal"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "driver API base url")
	link := flag.String("link", "", "magic link or bare token")
	interval := flag.Duration("interval", portal.DefaultPollInterval, "trip poll interval")
	level := flag.String("log-level", "error", "log level")
	flag.Parse()

	log := logger.New("driver-portal", *level)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := portal.NewClient(*apiURL, nil)
	shell := portal.NewShell(client, log)
	in := lines(os.Stdin)
	term := &terminal{out: os.Stdout}

	shell.Resolve(ctx, *link)
	for ctx.Err() == nil {
		switch shell.State() {
		case portal.ShellLogin:
			if !loginPrompt(ctx, shell, in, term) {
				return
			}
		case portal.ShellDashboard:
			if quit := runDashboard(ctx, shell, client, in, term, *interval, log); quit {
				return
			}
			shell.Logout()
		default:
			return
		}
	}
}

// terminal serializes writes from the poll goroutine and the input loop.
type terminal struct {
	mu    sync.Mutex
	out   io.Writer
	order []string
}

func (t *terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminal) show(snap portal.DashboardSnapshot) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.order = render(t.out, snap)
}

func (t *terminal) tripAt(n int) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 1 || n > len(t.order) {
		return "", false
	}
	return t.order[n-1], true
}

// lines scans r on its own goroutine so prompts can give up on ctx
// cancellation. The channel is closed at EOF.
func lines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- strings.TrimSpace(sc.Text())
		}
	}()
	return ch
}

func readLine(ctx context.Context, in <-chan string) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-in:
		return line, ok
	}
}

func loginPrompt(ctx context.Context, shell *portal.Shell, in <-chan string, term *terminal) bool {
	if msg := shell.Message(); msg != "" {
		term.printf("! %s\n", msg)
	}
	term.printf("\nDriver Login\nDriver ID: ")
	code, ok := readLine(ctx, in)
	if !ok {
		return false
	}
	term.printf("PIN: ")
	pin, ok := readLine(ctx, in)
	if !ok {
		return false
	}
	_ = shell.Login(ctx, code, pin)
	return true
}

// runDashboard returns true when the user quits, false on logout.
func runDashboard(ctx context.Context, shell *portal.Shell, client *portal.Client, in <-chan string, term *terminal, interval time.Duration, log logger.ILogger) bool {
	driver := shell.Driver()
	if driver == nil {
		return false
	}

	dash := portal.NewDashboard(client, *driver, log)
	dash.Interval = interval
	dash.OnChange = func() { term.show(dash.Snapshot()) }

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	term.show(dash.Snapshot())
	go dash.Run(runCtx)

	for {
		cmd, ok := readLine(ctx, in)
		if !ok {
			return true
		}
		switch cmd {
		case "":
		case "q":
			return true
		case "l":
			return false
		case "r":
			go func() { _ = dash.Refresh(runCtx) }()
		default:
			n, err := strconv.Atoi(cmd)
			if err != nil {
				term.printf("unknown command %q\n", cmd)
				continue
			}
			id, ok := term.tripAt(n)
			if !ok {
				term.printf("no trip %d\n", n)
				continue
			}
			dash.Toggle(id)
		}
	}
}
