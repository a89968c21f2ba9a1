package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/ajaydixit/finsight/internal/i18n"
)

// Business categories offered in the interactive flow. Free-form on the
// wire; this list just covers the common cases plus an "other" escape.
var businessTypeOptions = []string{
	"Retail",
	"Services",
	"Manufacturing",
	"Trading",
	"Agriculture",
	"Other",
}

// PromptForStatementPath asks for the statement file to analyze.
func PromptForStatementPath(lang i18n.Language) (string, error) {
	var path string
	prompt := &survey.Input{
		Message: i18n.T(lang, "upload.file"),
		Help:    "The file is sent as-is; the analysis service handles CSV, XLSX and PDF exports.",
	}

	err := survey.AskOne(prompt, &path, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(val.(string))
		if str == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		info, err := os.Stat(str)
		if err != nil {
			return fmt.Errorf("cannot access %q: %v", str, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%q is a directory, not a file", str)
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(path), nil
}

// PromptForBusinessType asks for the business category.
func PromptForBusinessType(lang i18n.Language, current string) (string, error) {
	options := businessTypeOptions
	defaultOption := options[0]
	for _, opt := range options {
		if opt == current {
			defaultOption = opt
		}
	}

	var selected string
	prompt := &survey.Select{
		Message: i18n.T(lang, "upload.business_type"),
		Options: options,
		Default: defaultOption,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	if selected == "Other" {
		var custom string
		input := &survey.Input{
			Message: "Business category:",
			Default: current,
		}
		if err := survey.AskOne(input, &custom, survey.WithValidator(survey.Required)); err != nil {
			return "", err
		}
		return strings.TrimSpace(custom), nil
	}
	return selected, nil
}

// PromptForLanguage asks which language the report should use.
func PromptForLanguage(lang i18n.Language) (i18n.Language, error) {
	options := []string{
		"English (en)",
		"हिन्दी (hi)",
	}
	defaultOption := options[0]
	if lang == i18n.Hindi {
		defaultOption = options[1]
	}

	var selected string
	prompt := &survey.Select{
		Message: i18n.T(lang, "upload.language"),
		Options: options,
		Default: defaultOption,
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	if strings.Contains(selected, "(hi)") {
		return i18n.Hindi, nil
	}
	return i18n.English, nil
}

// PromptForConfirmation shows the submission summary and asks to proceed.
func PromptForConfirmation(lang i18n.Language, fileName, businessType string) (bool, error) {
	fmt.Printf("\n  %s  %s\n  %s  %s\n  %s  %s\n\n",
		"File:", fileName,
		"Category:", businessType,
		"Language:", string(lang),
	)

	var confirmed bool
	prompt := &survey.Confirm{
		Message: i18n.T(lang, "upload.confirm"),
		Default: true,
	}
	err := survey.AskOne(prompt, &confirmed)
	return confirmed, err
}

// Actions offered once a scan finished.
type NextAction int

const (
	ActionGenerateReport NextAction = iota
	ActionNewScan
	ActionRetry
	ActionChangeFile
	ActionExit
)

// PromptAfterSuccess asks what to do with a finished scan.
func PromptAfterSuccess(lang i18n.Language) (NextAction, error) {
	report := i18n.T(lang, "next.report")
	newScan := i18n.T(lang, "next.new_scan")
	exit := i18n.T(lang, "next.exit")

	var choice string
	prompt := &survey.Select{
		Message: " ",
		Options: []string{report, newScan, exit},
		Default: newScan,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return ActionExit, err
	}

	switch choice {
	case report:
		return ActionGenerateReport, nil
	case newScan:
		return ActionNewScan, nil
	default:
		return ActionExit, nil
	}
}

// PromptAfterFailure asks how to recover from a failed scan.
func PromptAfterFailure(lang i18n.Language) (NextAction, error) {
	retry := i18n.T(lang, "next.retry")
	change := i18n.T(lang, "next.change_file")
	exit := i18n.T(lang, "next.exit")

	var choice string
	prompt := &survey.Select{
		Message: " ",
		Options: []string{retry, change, exit},
		Default: retry,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return ActionExit, err
	}

	switch choice {
	case retry:
		return ActionRetry, nil
	case change:
		return ActionChangeFile, nil
	default:
		return ActionExit, nil
	}
}
