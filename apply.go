package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"loan-eligibility/domain"
	"loan-eligibility/format"
	"loan-eligibility/service"
)

func applyCmd() *cobra.Command {
	var input domain.ApplicantInput

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Check eligibility for a loan and save the application",
		Example: `  loancalc apply --name "Asha Rao" --age 30 --income 50000 --amount 500000 --term 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if errs := service.CheckFormBounds(input); len(errs) > 0 {
				printValidationErrors(out, errs)
				return service.ValidationErrors(errs)
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			decision, err := a.Loans.Submit(cmd.Context(), input)
			return printDecision(out, decision, err)
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "applicant name")
	cmd.Flags().IntVar(&input.Age, "age", 0, "applicant age (18-70)")
	cmd.Flags().Float64Var(&input.MonthlyIncome, "income", 0, "monthly income in Rs")
	cmd.Flags().Float64Var(&input.LoanAmount, "amount", 0, "requested loan amount in Rs")
	cmd.Flags().IntVar(&input.LoanTermYears, "term", 1, "loan term in years (1-30)")
	return cmd
}

func printValidationErrors(out io.Writer, errs []service.ValidationError) {
	for _, e := range errs {
		fmt.Fprintln(out, format.ErrorStyle.Render("✗ "+e.Message))
	}
}

// printDecision reports every outcome of Submit. It returns err unchanged
// so the process exit status reflects the outcome.
func printDecision(out io.Writer, d service.Decision, err error) error {
	var (
		verrs      service.ValidationErrors
		ineligible *service.IneligibleError
		storageErr *service.StorageError
	)

	switch {
	case errors.As(err, &verrs):
		printValidationErrors(out, verrs)
		return err
	case errors.As(err, &ineligible):
		fmt.Fprintln(out, format.ErrorStyle.Render("You are not eligible for the loan."))
		fmt.Fprintln(out, "Reasons:")
		for _, r := range ineligible.Reasons {
			fmt.Fprintf(out, "  • %s\n", r)
		}
		return err
	case err != nil && !errors.As(err, &storageErr):
		return err
	}

	fmt.Fprintln(out, format.SuccessStyle.Render("You are eligible for the loan."))
	if d.Result != nil {
		fmt.Fprintf(out, "Estimated monthly EMI:            %s\n", format.Currency(d.Result.EMI))
		fmt.Fprintf(out, "Total interest payable:           %s\n", format.Currency(d.Result.TotalInterest))
		fmt.Fprintf(out, "Total payment (principal+interest): %s\n", format.Currency(d.Result.TotalPayment))
		fmt.Fprintf(out, "Risk assessment:                  %s\n", d.Result.RiskCategory.Label())
	}

	if storageErr != nil {
		fmt.Fprintln(out, format.ErrorStyle.Render("Application could not be saved: "+storageErr.Err.Error()))
		return err
	}
	fmt.Fprintln(out, format.SuccessStyle.Render(fmt.Sprintf("Application saved with id %d.", d.RecordID)))
	return nil
}
