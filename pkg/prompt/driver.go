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

// InputConfig configures a single-line text prompt.
type InputConfig struct {
	Message   string
	Default   string
	Help      string
	Validator func(string) error
}

// Driver abstracts the terminal so prompting can be tested without one.
type Driver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Info(ctx context.Context, msg string) error
}

// SurveyDriver prompts on the process terminal with survey.
type SurveyDriver struct {
	out        io.Writer
	infoPrefix string
}

// DriverOption configures a SurveyDriver.
type DriverOption func(*SurveyDriver)

// WithOutput redirects Info messages. Defaults to os.Stdout.
func WithOutput(w io.Writer) DriverOption {
	return func(d *SurveyDriver) {
		if w != nil {
			d.out = w
		}
	}
}

// WithInfoPrefix prepends prefix to Info messages.
func WithInfoPrefix(prefix string) DriverOption {
	return func(d *SurveyDriver) {
		d.infoPrefix = prefix
	}
}

// NewSurveyDriver builds the terminal driver.
func NewSurveyDriver(options ...DriverOption) *SurveyDriver {
	d := &SurveyDriver{out: os.Stdout}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d
}

func (d *SurveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
		Default: cfg.Default,
	}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		opts = append(opts, survey.WithValidator(func(ans any) error {
			value, _ := ans.(string)
			return cfg.Validator(value)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (d *SurveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, d.infoPrefix+msg)
	return err
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
