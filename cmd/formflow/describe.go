package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formflow/modules/account"
)

var describeForm string

func init() {
	describeCmd.Flags().StringVar(&describeForm, "form", "", "Form to describe (login, signup or hook); all when empty")
	rootCmd.AddCommand(describeCmd)
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print field metadata of the forms",
	Long: `Print labels, placeholders, helper texts and input kinds of a form.

Example:
  formflow describe --form signup -o yaml`,
	Args: cobra.NoArgs,
	RunE: runDescribe,
}

func runDescribe(cmd *cobra.Command, _ []string) error {
	if describeForm != "" {
		info, err := account.Describe(describeForm)
		if err != nil {
			return exitWith(ExitError, err)
		}
		return render(cmd.OutOrStdout(), info)
	}

	forms := make([]account.FormInfo, 0, len(account.FormNames()))
	for _, name := range account.FormNames() {
		info, err := account.Describe(name)
		if err != nil {
			return exitWith(ExitError, err)
		}
		forms = append(forms, info)
	}
	return render(cmd.OutOrStdout(), forms)
}
