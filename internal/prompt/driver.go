package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user interrupted the wizard (ctrl+c).
var ErrAborted = errors.New("prompt: aborted")

// InputConfig configures a single-line text question.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// ConfirmConfig configures a yes/no question.
type ConfirmConfig struct {
	Message string
	Default bool
	Help    string
}

// SelectConfig configures a single or multi-select question. Answers are
// indices into Options.
type SelectConfig struct {
	Message      string
	Options      []string
	DefaultIndex int
	Defaults     []int // multi-select only
	Help         string
	PageSize     int
}

// Driver asks questions. Run depends only on this interface so it can be
// driven by a script in tests.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out io.Writer
}

// NewSurveyDriver returns a Driver that asks on the controlling terminal.
func NewSurveyDriver() Driver {
	return &surveyDriver{out: os.Stdout}
}

// ask runs one survey prompt unless ctx is already done. survey writes the
// option index when the response is an int or []int.
func (d *surveyDriver) ask(ctx context.Context, p survey.Prompt, response interface{}, opts ...survey.AskOpt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(p, response, opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func (d *surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	var opts []survey.AskOpt
	if v := cfg.Validator; v != nil {
		opts = append(opts, survey.WithValidator(func(ans interface{}) error {
			s, _ := ans.(string)
			return v(s)
		}))
	}
	var out string
	err := d.ask(ctx, &survey.Input{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &out, opts...)
	return out, err
}

func (d *surveyDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	var out bool
	err := d.ask(ctx, &survey.Confirm{Message: cfg.Message, Help: cfg.Help, Default: cfg.Default}, &out)
	return out, err
}

func (d *surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	q := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if cfg.DefaultIndex >= 0 && cfg.DefaultIndex < len(cfg.Options) {
		q.Default = cfg.Options[cfg.DefaultIndex]
	}
	var idx int
	if err := d.ask(ctx, q, &idx); err != nil {
		return 0, err
	}
	return idx, nil
}

func (d *surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	q := &survey.MultiSelect{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help, PageSize: cfg.PageSize}
	if len(cfg.Defaults) > 0 {
		picked := make([]string, 0, len(cfg.Defaults))
		for _, i := range cfg.Defaults {
			picked = append(picked, cfg.Options[i])
		}
		q.Default = picked
	}
	var idxs []int
	if err := d.ask(ctx, q, &idxs); err != nil {
		return nil, err
	}
	return idxs, nil
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}
