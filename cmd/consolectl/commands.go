package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/pflag"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/view"
)

var validate = validator.New()

func (a *app) root() *command {
	return &command{
		Name:    "consolectl",
		Summary: "Operate the Shree Balaji Traders billing backend from a terminal.",
		Subcommands: []*command{
			a.loginCommand(),
			a.signupCommand(),
			a.logoutCommand(),
			a.whoamiCommand(),
			a.stockCommand(),
			a.clientsCommand(),
			a.billsCommand(),
			a.myBillsCommand(),
		},
	}
}

func (a *app) flags(name string, extra func(fs *pflag.FlagSet)) func() *pflag.FlagSet {
	return func() *pflag.FlagSet {
		fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
		if extra != nil {
			extra(fs)
		}
		a.commonFlags(fs)
		return fs
	}
}

func noArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	return nil
}

// failure prefers the user-facing text of a view error.
func failure(err error) error {
	var ae *view.ActionError
	if errors.As(err, &ae) {
		return errors.New(ae.Message)
	}
	return err
}

func (a *app) loginCommand() *command {
	var passwordFile string
	return &command{
		Name:    "login",
		Summary: "Log in and save the session for this profile",
		Usage:   "consolectl login <email> [flags]",
		Flags: a.flags("login", func(fs *pflag.FlagSet) {
			fs.StringVar(&passwordFile, "password-file", "", "file holding the password, or - to prompt (default: prompt)")
		}),
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("email is required\n\nUsage: consolectl login <email> [flags]")
			}
			pw, err := a.password(passwordFile)
			if err != nil {
				return err
			}
			return a.withConn(func(c *conn) error {
				dest, err := view.SubmitLogin(a.ctx, c.client.Auth(), c.store, args[0], pw)
				if err != nil {
					return failure(err)
				}
				sess, _ := c.store.Current()
				printNotice(a.out, fmt.Sprintf("Logged in as %s (%s)", args[0], sess.Role))
				fmt.Fprintf(a.out, "Web console home: %s\n", dest)
				return nil
			})
		},
	}
}

func (a *app) signupCommand() *command {
	var form view.SignupForm
	var passwordFile string
	return &command{
		Name:    "signup",
		Summary: "Register an account",
		Usage:   "consolectl signup --name <name> --email <email> [--role client|admin]",
		Flags: a.flags("signup", func(fs *pflag.FlagSet) {
			fs.StringVar(&form.Name, "name", "", "display name")
			fs.StringVar(&form.Email, "email", "", "login email")
			fs.StringVar(&form.Role, "role", "client", "account role: client or admin")
			fs.StringVar(&passwordFile, "password-file", "", "file holding the password, or - to prompt (default: prompt)")
		}),
		Run: func(args []string) error {
			if err := noArgs(args); err != nil {
				return err
			}
			pw, err := a.password(passwordFile)
			if err != nil {
				return err
			}
			form.Password = pw
			if err := validate.Struct(&form); err != nil {
				return fmt.Errorf("invalid signup: %w", err)
			}
			return a.withConn(func(c *conn) error {
				if _, err := view.SubmitSignup(a.ctx, c.client.Auth(), c.store, form); err != nil {
					return failure(err)
				}
				if sess, ok := c.store.Current(); ok {
					printNotice(a.out, fmt.Sprintf("Signed up and logged in as %s (%s)", form.Email, sess.Role))
					return nil
				}
				printNotice(a.out, "Signed up. Run 'consolectl login "+form.Email+"' to continue.")
				return nil
			})
		},
	}
}

func (a *app) logoutCommand() *command {
	return &command{
		Name:    "logout",
		Summary: "Forget the saved session for this profile",
		Flags:   a.flags("logout", nil),
		Run: func(args []string) error {
			if err := noArgs(args); err != nil {
				return err
			}
			return a.withConn(func(c *conn) error {
				if err := c.store.Logout(a.ctx); err != nil {
					return err
				}
				printNotice(a.out, "Logged out")
				return nil
			})
		},
	}
}

func (a *app) whoamiCommand() *command {
	return &command{
		Name:    "whoami",
		Summary: "Show the saved session",
		Flags:   a.flags("whoami", nil),
		Run: func(args []string) error {
			if err := noArgs(args); err != nil {
				return err
			}
			return a.withConn(func(c *conn) error {
				sess, ok := c.store.Current()
				if !ok {
					fmt.Fprintln(a.out, "Not logged in")
					return nil
				}
				rows := [][]string{{"role", string(sess.Role)}, {"profile", a.profile}, {"sessions", c.cfg.SessionBackend}}
				rows = append(rows, tokenClaims(sess.Credential)...)
				printTable(a.out, []string{"Field", "Value"}, rows, "")
				return nil
			})
		},
	}
}

// tokenClaims shows what the credential says about its holder. The
// signature is not checked; only the backend can do that.
func tokenClaims(credential string) [][]string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return [][]string{{"token", "opaque"}}
	}
	var rows [][]string
	for _, k := range []string{"name", "email"} {
		if v, ok := claims[k].(string); ok && v != "" {
			rows = append(rows, []string{k, v})
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		rows = append(rows, []string{"expires", exp.Local().Format(time.RFC1123)})
	}
	return rows
}

func productRows(items []domain.Product) [][]string {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{p.ID.String(), p.Code, p.Name, p.Quantity.String(), p.Rate.Fixed2()})
	}
	return rows
}

func (a *app) stockCommand() *command {
	return &command{
		Name:    "stock",
		Summary: "List, add and edit products",
		Subcommands: []*command{
			{
				Name:    "list",
				Summary: "List products",
				Flags:   a.flags("stock list", nil),
				Run: func(args []string) error {
					return a.withConn(func(c *conn) error {
						if err := a.require(c, domain.RoleAdmin); err != nil {
							return err
						}
						v := view.NewStock()
						if err := v.Mount(a.ctx, c.client.Products()); err != nil {
							return errors.New(v.State().Error)
						}
						printTable(a.out, []string{"ID", "Code", "Name", "Quantity", "Rate"}, productRows(v.State().Items), view.MsgNoProducts)
						return nil
					})
				},
			},
			a.stockAddCommand(),
			a.stockSetCommand(),
		},
	}
}

func productFlags(fs *pflag.FlagSet, code, name *string, qty, rate *float64) {
	fs.StringVar(code, "code", "", "item code")
	fs.StringVar(name, "name", "", "item name")
	fs.Float64Var(qty, "quantity", 0, "quantity in stock")
	fs.Float64Var(rate, "rate", 0, "rate per unit")
}

func (a *app) stockAddCommand() *command {
	var code, name string
	var qty, rate float64
	return &command{
		Name:    "add",
		Summary: "Add a product",
		Usage:   "consolectl stock add --code <code> --name <name> [--quantity n] [--rate n]",
		Flags: a.flags("stock add", func(fs *pflag.FlagSet) {
			productFlags(fs, &code, &name, &qty, &rate)
		}),
		Run: func(args []string) error {
			if err := noArgs(args); err != nil {
				return err
			}
			f := domain.ProductFields{Code: code, Name: name, Quantity: domain.Number(qty), Rate: domain.Number(rate)}
			if err := validate.Struct(&f); err != nil {
				return fmt.Errorf("invalid product: %w", err)
			}
			return a.withConn(func(c *conn) error {
				if err := a.require(c, domain.RoleAdmin); err != nil {
					return err
				}
				v := view.NewStock()
				if err := v.Add(a.ctx, c.client.Products(), f); err != nil {
					return failure(err)
				}
				printNotice(a.out, "Added "+f.Name)
				return nil
			})
		},
	}
}

func (a *app) stockSetCommand() *command {
	var fs *pflag.FlagSet
	var code, name string
	var qty, rate float64
	return &command{
		Name:    "set",
		Summary: "Change a product; fields not given keep their value",
		Usage:   "consolectl stock set <item-id> [--code c] [--name n] [--quantity n] [--rate n]",
		Flags: func() *pflag.FlagSet {
			fs = a.flags("stock set", func(f *pflag.FlagSet) {
				productFlags(f, &code, &name, &qty, &rate)
			})()
			return fs
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("item id is required")
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q", args[0])
			}
			return a.withConn(func(c *conn) error {
				if err := a.require(c, domain.RoleAdmin); err != nil {
					return err
				}
				v := view.NewStock()
				if err := v.Mount(a.ctx, c.client.Products()); err != nil {
					return errors.New(v.State().Error)
				}
				p, ok := v.Product(id)
				if !ok {
					return fmt.Errorf("no product with id %d", id)
				}
				f := p.Fields()
				if fs.Changed("code") {
					f.Code = code
				}
				if fs.Changed("name") {
					f.Name = name
				}
				if fs.Changed("quantity") {
					f.Quantity = domain.Number(qty)
				}
				if fs.Changed("rate") {
					f.Rate = domain.Number(rate)
				}
				if err := validate.Struct(&f); err != nil {
					return fmt.Errorf("invalid product: %w", err)
				}
				if err := v.Update(a.ctx, c.client.Products(), id, f); err != nil {
					return failure(err)
				}
				updated, _ := v.Product(id)
				printTable(a.out, []string{"ID", "Code", "Name", "Quantity", "Rate"}, productRows([]domain.Product{updated}), "")
				return nil
			})
		},
	}
}

func (a *app) clientsCommand() *command {
	var fs *pflag.FlagSet
	var company, address, contact string
	return &command{
		Name:    "clients",
		Summary: "List and edit client accounts",
		Subcommands: []*command{
			{
				Name:    "list",
				Summary: "List clients",
				Flags:   a.flags("clients list", nil),
				Run: func(args []string) error {
					return a.withConn(func(c *conn) error {
						if err := a.require(c, domain.RoleAdmin); err != nil {
							return err
						}
						v := view.NewAdminClients()
						if err := v.Mount(a.ctx, c.client.Clients()); err != nil {
							return errors.New(v.State().Error)
						}
						rows := make([][]string, 0)
						for _, cl := range v.State().Items {
							rows = append(rows, []string{cl.ID.String(), cl.Name, cl.Email, cl.CompanyName, cl.CompanyAddress, cl.ContactNumber})
						}
						printTable(a.out, []string{"ID", "Name", "Email", "Company", "Address", "Contact"}, rows, view.MsgNoClients)
						return nil
					})
				},
			},
			{
				Name:    "set",
				Summary: "Change a client's company details; fields not given keep their value",
				Usage:   "consolectl clients set <id> [--company c] [--address a] [--contact n]",
				Flags: func() *pflag.FlagSet {
					fs = a.flags("clients set", func(f *pflag.FlagSet) {
						f.StringVar(&company, "company", "", "company name")
						f.StringVar(&address, "address", "", "company address")
						f.StringVar(&contact, "contact", "", "contact number")
					})()
					return fs
				},
				Run: func(args []string) error {
					if len(args) != 1 {
						return fmt.Errorf("client id is required")
					}
					return a.withConn(func(c *conn) error {
						if err := a.require(c, domain.RoleAdmin); err != nil {
							return err
						}
						v := view.NewAdminClients()
						if err := v.Mount(a.ctx, c.client.Clients()); err != nil {
							return errors.New(v.State().Error)
						}
						cl, ok := v.Client(args[0])
						if !ok {
							return fmt.Errorf("no client with id %s", args[0])
						}
						f := cl.Fields()
						if fs.Changed("company") {
							f.CompanyName = company
						}
						if fs.Changed("address") {
							f.CompanyAddress = address
						}
						if fs.Changed("contact") {
							f.ContactNumber = contact
						}
						if err := v.Update(a.ctx, c.client.Clients(), args[0], f); err != nil {
							return failure(err)
						}
						printNotice(a.out, "Updated "+cl.Name)
						return nil
					})
				},
			},
		},
	}
}

func billRows(items []domain.Bill, withClient bool) [][]string {
	rows := make([][]string, 0, len(items))
	for _, b := range items {
		row := []string{b.ID.String()}
		if withClient {
			row = append(row, b.ClientName)
		}
		row = append(row, b.ItemName, b.Quantity.String(), b.ItemRate.Fixed2(),
			b.CGST.String()+"%", b.SGST.String()+"%", b.TotalAmount.Fixed2(), b.PaymentMethod,
			b.CreatedAt.Local().Format("02 Jan 2006"))
		rows = append(rows, row)
	}
	return rows
}

var billHeaders = []string{"Item", "Qty", "Rate", "CGST", "SGST", "Total", "Payment", "Date"}

func (a *app) billsCommand() *command {
	var query string
	return &command{
		Name:    "bills",
		Summary: "Generate bills and browse history",
		Subcommands: []*command{
			{
				Name:    "history",
				Summary: "List every bill",
				Flags: a.flags("bills history", func(fs *pflag.FlagSet) {
					fs.StringVarP(&query, "query", "q", "", "only bills whose client or item name contains this")
				}),
				Run: func(args []string) error {
					return a.withConn(func(c *conn) error {
						if err := a.require(c, domain.RoleAdmin); err != nil {
							return err
						}
						v := view.NewBillHistory()
						if err := v.Mount(a.ctx, c.client.Bills()); err != nil {
							return errors.New(v.Filtered("").Error)
						}
						headers := append([]string{"Bill", "Client"}, billHeaders...)
						printTable(a.out, headers, billRows(v.Filtered(query).Items, true), view.MsgNoBills)
						return nil
					})
				},
			},
			{
				Name:    "search",
				Summary: "Look up clients by name",
				Usage:   "consolectl bills search <name>",
				Flags:   a.flags("bills search", nil),
				Run: func(args []string) error {
					if len(args) != 1 {
						return fmt.Errorf("name is required")
					}
					return a.withConn(func(c *conn) error {
						if err := a.require(c, domain.RoleAdmin); err != nil {
							return err
						}
						s, _ := view.NewBill().Suggest(a.ctx, c.client.Bills(), args[0])
						rows := make([][]string, 0, len(s.Clients))
						for _, cl := range s.Clients {
							rows = append(rows, []string{cl.Name, cl.Email, cl.ContactNumber, cl.CompanyName})
						}
						printTable(a.out, []string{"Name", "Email", "Contact", "Company"}, rows, view.MsgNoSuggestions)
						return nil
					})
				},
			},
			a.billCreateCommand(),
		},
	}
}

func (a *app) billCreateCommand() *command {
	var d domain.BillDraft
	var qty, cgst, sgst float64
	return &command{
		Name:    "create",
		Summary: "Generate a bill; the total is computed from quantity, rate and tax",
		Usage:   "consolectl bills create --client <name> --item <item-id> --quantity n --payment <method> [flags]",
		Flags: a.flags("bills create", func(fs *pflag.FlagSet) {
			fs.StringVar(&d.ClientName, "client", "", "client name")
			fs.StringVar(&d.ClientEmail, "email", "", "client email")
			fs.StringVar(&d.ClientPhone, "phone", "", "client phone")
			fs.Int64Var(&d.ItemID, "item", 0, "item id")
			fs.Float64Var(&qty, "quantity", 0, "quantity sold")
			fs.Float64Var(&cgst, "cgst", 0, "CGST percent")
			fs.Float64Var(&sgst, "sgst", 0, "SGST percent")
			fs.StringVar(&d.PaymentMethod, "payment", "", "Cash, UPI, Card or Bank Transfer")
		}),
		Run: func(args []string) error {
			if err := noArgs(args); err != nil {
				return err
			}
			d.Quantity, d.CGST, d.SGST = domain.Number(qty), domain.Number(cgst), domain.Number(sgst)
			return a.withConn(func(c *conn) error {
				if err := a.require(c, domain.RoleAdmin); err != nil {
					return err
				}
				v := view.NewBill()
				if err := v.Mount(a.ctx, c.client.Products()); err != nil {
					return errors.New(v.Products().Error)
				}
				draft := v.Prepare(d)
				if draft.ItemName == "" {
					return fmt.Errorf("no product with id %d", d.ItemID)
				}
				if err := validate.Struct(&draft); err != nil {
					return fmt.Errorf("invalid bill: %w", err)
				}
				if err := v.Submit(a.ctx, c.client.Bills(), draft); err != nil {
					return failure(err)
				}
				notice, _ := v.Outcome()
				printNotice(a.out, notice)
				fmt.Fprintf(a.out, "%s x %s for %s: total %s\n", draft.Quantity, draft.ItemName, draft.ClientName, draft.Total().Fixed2())
				return nil
			})
		},
	}
}

func (a *app) myBillsCommand() *command {
	return &command{
		Name:    "my-bills",
		Summary: "Show your own purchase history (client accounts)",
		Flags:   a.flags("my-bills", nil),
		Run: func(args []string) error {
			if err := noArgs(args); err != nil {
				return err
			}
			return a.withConn(func(c *conn) error {
				if err := a.require(c, domain.RoleClient); err != nil {
					return err
				}
				v := view.NewClientDashboard()
				if err := v.Mount(a.ctx, c.client.Bills()); err != nil {
					return errors.New(v.State().Error)
				}
				fmt.Fprintf(a.out, "Welcome, %s\n", v.ClientName)
				printTable(a.out, append([]string{"Bill"}, billHeaders...), billRows(v.State().Items, false), view.MsgNoPurchases)
				return nil
			})
		},
	}
}
