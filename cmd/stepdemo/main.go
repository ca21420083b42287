package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli"
	"golang.org/x/exp/slog"
	"golang.org/x/xerrors"

	"github.com/tmr232/resumable/await"
	"github.com/tmr232/resumable/internal/logging"
	"github.com/tmr232/resumable/sample"
	"github.com/tmr232/resumable/step"
)

const defaultDelay = 100 * time.Millisecond

func logger(c *cli.Context) (*slog.Logger, error) {
	return logging.New(logging.Config{
		Writer: c.App.Writer,
		Level:  c.GlobalString("log-level"),
		Format: c.GlobalString("log-format"),
	})
}

func fib(c *cli.Context) error {
	log, err := logger(c)
	if err != nil {
		return err
	}
	count := c.Int("count")
	stopAbove := c.Int("stop-above")

	var p step.Producer[int]
	switch variant := c.String("variant"); variant {
	case "counter":
		next := sample.FibonacciCounter()
		p = &step.FuncProducer[int]{
			Advance: func() (bool, int, error) { return true, next(), nil },
		}
	case "iterator":
		p = sample.NewFibonacciIterator()
	case "generator":
		gen := sample.Fibonacci(func() { log.Info("cleaning up") })
		defer gen.Close()
		p = gen
	case "delegating":
		gen := sample.Delegating(c.Int("limit"))
		defer gen.Close()
		p = gen
	default:
		return xerrors.Errorf("unknown variant %q", variant)
	}

	for v := range step.All(step.Take(p, count)) {
		log.Info("value", "value", v)
		if stopAbove > 0 && v > stopAbove {
			break
		}
	}
	return p.Error()
}

func fetch(c *cli.Context) error {
	log, err := logger(c)
	if err != nil {
		return err
	}
	d := sample.FetchSubject(sample.FakeFetch(!c.Bool("fail"), c.Duration("delay")), log)
	subject, err := await.Run(context.Background(), d, await.WithLogger(log))
	if err != nil {
		return err
	}
	log.Info("done", "subject", subject, "state", d.State().String())
	return nil
}

type scenarioStep struct {
	op  string
	res step.Result[int, int]
	err error
}

func (s scenarioStep) log(log *slog.Logger) {
	if s.err != nil {
		log.Info(s.op, "err", s.err)
		return
	}
	log.Info(s.op, "result", s.res.String())
}

func adder(cleanup func()) *step.Driver[int, int, int] {
	return step.Go(func(y *step.Yielder[int, int]) (int, error) {
		defer cleanup()
		v, err := y.Yield(10)
		if err != nil {
			v, err = y.Yield(-1)
			if err != nil {
				return 0, err
			}
		}
		return 10 + v, nil
	})
}

func scenario(c *cli.Context) error {
	log, err := logger(c)
	if err != nil {
		return err
	}

	run := func(name string, ops func(d *step.Driver[int, int, int]) []scenarioStep) {
		log := log.With("scenario", name)
		cleanups := 0
		d := adder(func() { cleanups++ })
		res, err := d.Start()
		scenarioStep{"start", res, err}.log(log)
		for _, s := range ops(d) {
			s.log(log)
		}
		log.Info("finished", "state", d.State().String(), "cleanups", cleanups)
	}

	run("resume", func(d *step.Driver[int, int, int]) []scenarioStep {
		res, err := d.Resume(5)
		first := scenarioStep{"resume", res, err}
		res, err = d.Resume(1)
		return []scenarioStep{first, {"resume", res, err}}
	})
	run("terminate", func(d *step.Driver[int, int, int]) []scenarioStep {
		first := d.Terminate()
		second := d.Terminate()
		_, ok := d.Completed()
		log.Info("terminated", "first", first, "second", second, "completed", ok, "err", d.Err())
		return nil
	})
	run("recover", func(d *step.Driver[int, int, int]) []scenarioStep {
		res, err := d.Fail(errors.New("injected"))
		first := scenarioStep{"fail", res, err}
		res, err = d.Fail(errors.New("injected again"))
		return []scenarioStep{first, {"fail", res, err}}
	})
	return nil
}

func newApp(w io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "stepdemo"
	app.Usage = "drive suspendable computations step by step"
	app.Writer = w
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "log-level",
			Value:  "info",
			Usage:  "debug shows every driver transition",
			EnvVar: "STEPDEMO_LOG_LEVEL",
		},
		cli.StringFlag{
			Name:   "log-format",
			Value:  logging.FormatText,
			Usage:  "text or json",
			EnvVar: "STEPDEMO_LOG_FORMAT",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "fib",
			Usage: "print Fibonacci numbers from one of the producers",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "count, n", Value: 10, EnvVar: "STEPDEMO_COUNT"},
				cli.IntFlag{Name: "stop-above", Usage: "stop after the first value above this", EnvVar: "STEPDEMO_STOP_ABOVE"},
				cli.StringFlag{Name: "variant", Value: "generator", Usage: "counter, iterator, generator or delegating", EnvVar: "STEPDEMO_VARIANT"},
				cli.IntFlag{Name: "limit", Value: 20, Usage: "largest value the delegating variant yields"},
			},
			Action: fib,
		},
		{
			Name:  "fetch",
			Usage: "await a fake fetch from inside a generator",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "fail", Usage: "make the fetch fail"},
				cli.DurationFlag{Name: "delay", Value: defaultDelay, EnvVar: "STEPDEMO_DELAY"},
			},
			Action: fetch,
		},
		{
			Name:   "scenario",
			Usage:  "run the resume, terminate and recover scenarios",
			Action: scenario,
		},
	}
	return app
}

func main() {
	if err := newApp(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
