// Command minilisp is the read-eval-print driver (spec.md §6): it reads
// one line per prompt, runs it through the lexer, parser, and evaluator
// against a persistent global frame, and prints the result. Everything
// in this package is ambient tooling around the language — logging,
// configuration, session correlation, signal handling — none of it is
// part of the evaluated language itself (SPEC_FULL.md §6).
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cbarrick/minilisp/errs"
	"github.com/cbarrick/minilisp/lang"
	"github.com/cbarrick/minilisp/lang/eval"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "minilisp: loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	sessionID := uuid.NewString()
	log := logger.WithField("session", sessionID)

	log.Debugf("starting minilisp, max-depth=%d", cfg.MaxDepth)

	if err := runREPL(cfg, log); err != nil {
		log.WithError(err).Error("minilisp exited with an error")
		os.Exit(1)
	}
}

// runREPL drives the prompt loop and a concurrent SIGINT/SIGTERM watcher
// via golang.org/x/sync/errgroup (SPEC_FULL.md §6): whichever finishes
// first — end of input, the "exit" command, or a signal — ends the run.
// This is the one place in the whole module with real concurrency; the
// evaluator itself stays strictly synchronous (spec.md §5).
func runREPL(cfg Config, log *logrus.Entry) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return watchSignal(ctx, log)
	})
	g.Go(func() error {
		defer stop()
		return repl(cfg, log, os.Stdin, os.Stdout)
	})

	return g.Wait()
}

func watchSignal(ctx context.Context, log *logrus.Entry) error {
	<-ctx.Done()
	if err := ctx.Err(); err != nil && err != context.Canceled {
		log.Warn("interrupted, exiting")
	}
	return nil
}

// repl implements spec.md §6's loop exactly: prompt, read one line,
// lex/parse/eval, print. "exit" (after trimming, per spec.md's own
// normalization note) terminates the loop with a nil error.
func repl(cfg Config, log *logrus.Entry, in *os.File, out *os.File) error {
	fr := eval.NewGlobalFrame()
	scanner := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, cfg.Prompt)
		if !scanner.Scan() {
			return scanner.Err()
		}

		line := scanner.Text()
		if strings.TrimSpace(line) == "exit" {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		start := time.Now()
		expr, err := lang.Parse(strings.NewReader(line))
		if err != nil {
			log.WithError(err).Debug("parse failed")
			fmt.Fprintln(out, err)
			continue
		}
		log.WithField("expr_kind", expr.Kind).Debug("parsed expression")

		v, err := eval.EvalWithDepth(expr, fr, cfg.MaxDepth)
		elapsed := time.Since(start)
		if err != nil {
			logErr := log.WithField("duration", elapsed)
			if kind := errorKind(err); kind != 0 {
				logErr = logErr.WithField("kind", kind)
			}
			logErr.Error("evaluation failed")
			fmt.Fprintln(out, err)
			continue
		}

		log.WithField("duration", elapsed).Debug("evaluation succeeded")
		fmt.Fprintln(out, v)
	}
}

// errorKind recovers the errs.Kind behind err, if any, for a structured
// log field alongside the diagnostic already printed to the user.
func errorKind(err error) errs.Kind {
	var e *errs.Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
