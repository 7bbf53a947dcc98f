package quote

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"printquote/internal/calculators"
)

type lineResult struct {
	line string
	err  error
}

// readLine reads one line from in. The read runs on its own goroutine so a
// cancelled context does not leave the caller blocked on the terminal.
func readLine(ctx context.Context, in *bufio.Reader) (string, error) {
	done := make(chan lineResult, 1)
	go func() {
		line, err := in.ReadString('\n')
		done <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		if res.err != nil && !(errors.Is(res.err, io.EOF) && strings.TrimSpace(res.line) != "") {
			if errors.Is(res.err, io.EOF) {
				return "", io.EOF
			}
			return "", res.err
		}
		return res.line, nil
	}
}

// promptAmount writes label, reads one answer and parses it for field.
// There is no second attempt: a bad answer ends the run.
func (a *App) promptAmount(ctx context.Context, field, label string) (float64, error) {
	if _, err := io.WriteString(a.out, label); err != nil {
		return 0, fmt.Errorf("write prompt: %w", err)
	}

	line, err := readLine(ctx, a.in)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("read %s: %w", field, err)
	}

	return calculators.ParseAmount(field, line, a.cfg.CurrencySymbol)
}

func (a *App) promptJob(ctx context.Context) (calculators.Job, error) {
	var job calculators.Job
	cur := a.cfg.CurrencySymbol

	prompts := []struct {
		field string
		label string
		dest  *float64
	}{
		{calculators.FieldPrintWeight, "Enter print weight (grams): ", &job.PrintWeightGrams},
		{calculators.FieldProfitMargin, "Enter desired profit margin (%): ", &job.ProfitMarginPercent},
		{calculators.FieldSetupCost, fmt.Sprintf("Enter fixed setup cost (%s) (e.g., %s3-%s5 for small prints): ", cur, cur, cur), &job.SetupCost},
		{calculators.FieldOperationalCost, fmt.Sprintf("Enter additional operational cost (%s): ", cur), &job.OperationalCost},
	}

	for _, p := range prompts {
		v, err := a.promptAmount(ctx, p.field, p.label)
		if err != nil {
			return calculators.Job{}, err
		}
		*p.dest = v
	}
	return job, nil
}
