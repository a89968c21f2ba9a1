package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"

	"github.com/ajaydixit/finsight/config"
	"github.com/ajaydixit/finsight/internal/client"
	"github.com/ajaydixit/finsight/internal/display"
	"github.com/ajaydixit/finsight/internal/i18n"
	"github.com/ajaydixit/finsight/internal/workflow"
)

// InteractiveSession drives the scan loop: pick a file, submit it, show
// the outcome, start over.
type InteractiveSession struct {
	cfg      *config.Config
	client   *client.Client
	flow     *workflow.Workflow
	renderer *display.Renderer
	lang     i18n.Language
}

func NewInteractiveSession(cfg *config.Config) (*InteractiveSession, error) {
	lang, err := i18n.Parse(cfg.Language)
	if err != nil {
		return nil, err
	}

	apiClient := client.New(cfg)
	return &InteractiveSession{
		cfg:      cfg,
		client:   apiClient,
		flow:     workflow.New(apiClient, cfg.BusinessType, cfg.Language),
		renderer: display.NewRenderer(lang),
		lang:     lang,
	}, nil
}

// Start begins the interactive session.
func (s *InteractiveSession) Start(ctx context.Context) error {
	s.showWelcome()

	for {
		if err := s.prepareScan(); err != nil {
			return err
		}

		done, err := s.runScan(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func (s *InteractiveSession) showWelcome() {
	banner := `
███████╗██╗███╗   ██╗███████╗██╗ ██████╗ ██╗  ██╗████████╗
██╔════╝██║████╗  ██║██╔════╝██║██╔════╝ ██║  ██║╚══██╔══╝
█████╗  ██║██╔██╗ ██║███████╗██║██║  ███╗███████║   ██║
██╔══╝  ██║██║╚██╗██║╚════██║██║██║   ██║██╔══██║   ██║
██║     ██║██║ ╚████║███████║██║╚██████╔╝██║  ██║   ██║
╚═╝     ╚═╝╚═╝  ╚═══╝╚══════╝╚═╝ ╚═════╝ ╚═╝  ╚═╝   ╚═╝
`
	welcomeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	taglineStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3B82F6")).
		Italic(true).
		MarginBottom(1)

	fmt.Print(welcomeStyle.Render(banner))
	fmt.Println()
	fmt.Println(taglineStyle.Render(i18n.T(s.lang, "app.tagline")))
}

// prepareScan collects the file and parameters for the next submission.
// It leaves the workflow in FileSelected.
func (s *InteractiveSession) prepareScan() error {
	lang, err := PromptForLanguage(s.lang)
	if err != nil {
		return err
	}
	s.setLanguage(lang)

	businessType, err := PromptForBusinessType(s.lang, s.flow.BusinessType())
	if err != nil {
		return err
	}
	s.flow.SetBusinessType(businessType)

	for {
		path, err := PromptForStatementPath(s.lang)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Println(i18n.T(s.lang, "error.title") + ": " + err.Error())
			continue
		}
		if err := s.flow.SelectFile(filepath.Base(path), data); err != nil {
			return err
		}
		return nil
	}
}

// runScan submits the selected file and handles the outcome, looping on
// retry until the user starts a new scan or exits. Returns done=true
// when the session should end.
func (s *InteractiveSession) runScan(ctx context.Context) (bool, error) {
	for {
		confirmed, err := PromptForConfirmation(s.lang, s.flow.File().Name, s.flow.BusinessType())
		if err != nil {
			return true, err
		}
		if !confirmed {
			// Back to parameter selection with the file still chosen.
			return false, nil
		}

		fmt.Println(i18n.T(s.lang, "upload.submitting"))
		submitErr := s.flow.Submit(ctx)

		if submitErr == nil {
			s.renderer.Result(s.flow.Result(), s.flow.ScanID())
			done, err := s.afterSuccess(ctx)
			if done || err != nil {
				return done, err
			}
			return false, nil
		}

		s.renderer.Failure(submitErr)
		action, err := PromptAfterFailure(s.lang)
		if err != nil {
			return true, err
		}
		switch action {
		case ActionRetry:
			// Failed keeps the file selected; submit again directly.
			continue
		case ActionChangeFile:
			if err := s.flow.Reset(); err != nil {
				return true, err
			}
			return false, nil
		default:
			return true, nil
		}
	}
}

func (s *InteractiveSession) afterSuccess(ctx context.Context) (bool, error) {
	for {
		action, err := PromptAfterSuccess(s.lang)
		if err != nil {
			return true, err
		}
		switch action {
		case ActionGenerateReport:
			report, err := s.client.GenerateReport(ctx, s.flow.Result())
			if err != nil {
				s.renderer.Failure(err)
				continue
			}
			s.renderer.InvestorReport(report)
		case ActionNewScan:
			if err := s.flow.Reset(); err != nil {
				return true, err
			}
			return false, nil
		default:
			return true, nil
		}
	}
}

// setLanguage switches the process-wide display language. It affects
// static labels and the next request only.
func (s *InteractiveSession) setLanguage(lang i18n.Language) {
	s.lang = lang
	s.renderer.SetLanguage(lang)
	// Ignoring the error: lang comes from our own prompt options.
	_ = s.flow.SetLanguage(string(lang))
}
