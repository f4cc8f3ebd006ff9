package runner

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marketsim/go-market/models"
)

// Market is the slice of the purchase engine the runner drives.
type Market interface {
	RegisterBuyer(name string, money decimal.Decimal) (*models.Buyer, error)
	RegisterProduct(name string, price decimal.Decimal) (*models.Product, error)
	RegisterDiscountProduct(name string, price, discount decimal.Decimal, validUntil string) (*models.Product, error)
	ProcessPurchase(buyerName, productName string) models.Outcome
	Report() []string
}

// Runner reads the line-oriented simulation script and drives the market:
// buyers ("Name = Amount") until a blank line, products ("Name = Price" or
// "Name = Price : Discount : dd.mm.yyyy") until a blank line, then
// purchases ("Buyer - Product") until END or EOF.
//
// A record with the wrong shape or an unparsable number is skipped with a
// warning. A validation failure during registration stops the run: that is
// the faithful behavior of the original program.
type Runner struct {
	market Market
	in     *bufio.Scanner
	out    io.Writer
}

func New(m Market, in io.Reader, out io.Writer) *Runner {
	return &Runner{
		market: m,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run executes the whole script and prints the final report.
func (r *Runner) Run() error {
	fmt.Fprintln(r.out, "Enter buyers (Name = Amount), blank line to finish:")
	if err := r.readBuyers(); err != nil {
		return err
	}

	fmt.Fprintln(r.out, "Enter products (Name = Price or Name = Price : Discount : dd.mm.yyyy), blank line to finish:")
	if err := r.readProducts(); err != nil {
		return err
	}

	fmt.Fprintln(r.out, "Enter purchases (Buyer - Product), END to finish:")
	r.readPurchases()

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Results:")
	for _, line := range r.market.Report() {
		fmt.Fprintln(r.out, line)
	}
	return nil
}

func (r *Runner) readBuyers() error {
	for r.in.Scan() {
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			return nil
		}

		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			fmt.Fprintln(r.out, "Invalid format. Use: Name = Amount")
			continue
		}
		money, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil {
			fmt.Fprintf(r.out, "Invalid amount %q\n", strings.TrimSpace(parts[1]))
			continue
		}
		if _, err := r.market.RegisterBuyer(parts[0], money); err != nil {
			fmt.Fprintln(r.out, err)
			return err
		}
	}
	return r.in.Err()
}

func (r *Runner) readProducts() error {
	for r.in.Scan() {
		line := strings.TrimSpace(r.in.Text())
		if line == "" {
			return nil
		}

		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			fmt.Fprintln(r.out, "Invalid format. Use: Name = Price or Name = Price : Discount : dd.mm.yyyy")
			continue
		}
		name := parts[0]

		fields := strings.Split(parts[1], ":")
		switch len(fields) {
		case 1:
			price, err := decimal.NewFromString(strings.TrimSpace(fields[0]))
			if err != nil {
				fmt.Fprintf(r.out, "Invalid price %q\n", strings.TrimSpace(fields[0]))
				continue
			}
			if _, err := r.market.RegisterProduct(name, price); err != nil {
				fmt.Fprintln(r.out, err)
				return err
			}
		case 3:
			price, err := decimal.NewFromString(strings.TrimSpace(fields[0]))
			if err != nil {
				fmt.Fprintf(r.out, "Invalid price %q\n", strings.TrimSpace(fields[0]))
				continue
			}
			discount, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
			if err != nil {
				fmt.Fprintf(r.out, "Invalid discount %q\n", strings.TrimSpace(fields[1]))
				continue
			}
			validUntil := strings.TrimSpace(fields[2])
			if _, err := r.market.RegisterDiscountProduct(name, price, discount, validUntil); err != nil {
				fmt.Fprintln(r.out, err)
				return err
			}
		default:
			fmt.Fprintln(r.out, "Invalid format. Use: Name = Price or Name = Price : Discount : dd.mm.yyyy")
		}
	}
	return r.in.Err()
}

func (r *Runner) readPurchases() {
	for r.in.Scan() {
		line := strings.TrimSpace(r.in.Text())
		if line == "END" {
			return
		}
		if line == "" {
			continue
		}

		parts := strings.Split(line, "-")
		if len(parts) != 2 {
			fmt.Fprintln(r.out, "Invalid format. Use: Buyer - Product")
			continue
		}
		out := r.market.ProcessPurchase(parts[0], parts[1])
		fmt.Fprintln(r.out, out)
	}
}
